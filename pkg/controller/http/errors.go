package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/service/rsvp"
	"github.com/secmon-lab/rsvp/pkg/utils/apperr"
)

type errorResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after,omitempty"`
	Updated    *int   `json:"updated,omitempty"`
}

// statusForError maps domain and backend errors to HTTP status codes
func statusForError(err error) int {
	var throttled *model.ThrottledError

	switch {
	case errors.As(err, &throttled):
		return http.StatusTooManyRequests
	case errors.Is(err, model.ErrQueryTooShort),
		errors.Is(err, model.ErrInvalidAttendance):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrGuestNotFound),
		errors.Is(err, model.ErrGroupNotFound),
		errors.Is(err, model.ErrSubmissionNotFound):
		return http.StatusNotFound
	case rsvp.IsCancelled(err),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case rsvp.IsRequestFailed(err), rsvp.IsTransport(err),
		errors.Is(err, model.ErrUpdateNotAcknowledged):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs server-side failures and writes a JSON error body
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeErrorResponse(w, r, err, errorResponse{})
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, err error, resp errorResponse) {
	status := statusForError(err)
	resp.Error = publicMessage(err, status)

	var throttled *model.ThrottledError
	if errors.As(err, &throttled) {
		resp.RetryAfter = throttled.RetryAfterSeconds()
		w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
	}

	if status >= http.StatusInternalServerError {
		apperr.Handle(r.Context(), err)
	} else {
		ctxlog.From(r.Context()).Debug("request rejected", "error", err, "status", status)
	}

	writeJSON(w, r, status, resp)
}

const updateFailedMessage = "could not update attendance for this guest"

// publicMessage keeps backend internals out of responses
func publicMessage(err error, status int) string {
	var throttled *model.ThrottledError
	var updateErr *model.UpdateError
	switch {
	case errors.As(err, &throttled):
		return throttled.Error()
	case errors.As(err, &updateErr) && status != http.StatusServiceUnavailable:
		return updateFailedMessage
	case status == http.StatusBadGateway:
		return "the guest list is unavailable, please try again"
	case status == http.StatusServiceUnavailable:
		return "request was cancelled"
	case status == http.StatusInternalServerError:
		return "internal server error"
	}

	for _, sentinel := range []error{
		model.ErrQueryTooShort,
		model.ErrInvalidAttendance,
		model.ErrGuestNotFound,
		model.ErrGroupNotFound,
		model.ErrSubmissionNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return http.StatusText(status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}
