package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"github.com/secmon-lab/rsvp/pkg/usecase"
)

const maxBodyBytes = 4 << 10

type attendanceRequest struct {
	Attendance *string `json:"attendance"`
}

type handler struct {
	rsvp   usecase.RSVPUseCase
	manage usecase.ManageUseCase
}

// readAttendance decodes {"attendance": "..."} accepting labels and aliases
func readAttendance(w http.ResponseWriter, r *http.Request) (types.Attendance, error) {
	var req attendanceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return "", goerr.Wrap(model.ErrInvalidAttendance, "malformed request body", goerr.V("cause", err.Error()))
	}

	if req.Attendance == nil {
		return "", goerr.Wrap(model.ErrInvalidAttendance, "attendance is required")
	}

	attendance, err := types.ParseAttendance(*req.Attendance)
	if err != nil {
		return "", goerr.Wrap(model.ErrInvalidAttendance, "unknown attendance", goerr.V("attendance", *req.Attendance))
	}
	return attendance, nil
}

// readFilter parses ?q= and ?attendance= for the management routes. An
// empty attendance or "All" leaves attendance unfiltered.
func readFilter(r *http.Request) (model.GuestFilter, error) {
	q := r.URL.Query()
	filter := model.GuestFilter{Query: q.Get("q")}

	if label := strings.TrimSpace(q.Get("attendance")); label != "" && !strings.EqualFold(label, "all") {
		attendance, err := types.ParseAttendance(label)
		if err != nil {
			return filter, goerr.Wrap(model.ErrInvalidAttendance, "unknown attendance filter", goerr.V("attendance", label))
		}
		filter.Attendance = &attendance
	}
	return filter, nil
}

func (h *handler) searchGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.rsvp.SearchGroups(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if groups == nil {
		groups = []*model.Group{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"groups": groups})
}

func (h *handler) getGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.rsvp.GetGroup(r.Context(), types.GroupID(chi.URLParam(r, "groupID")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, group)
}

func (h *handler) setAttendance(w http.ResponseWriter, r *http.Request) {
	attendance, err := readAttendance(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.rsvp.SetAttendance(r.Context(), types.GuestID(chi.URLParam(r, "guestID")), attendance)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *handler) listGuests(w http.ResponseWriter, r *http.Request) {
	filter, err := readFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.manage.ListGuests(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (h *handler) updateGuest(w http.ResponseWriter, r *http.Request) {
	attendance, err := readAttendance(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	guest, err := h.manage.UpdateGuest(r.Context(), types.GuestID(chi.URLParam(r, "guestID")), attendance)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"guest": guest})
}

func (h *handler) bulkUpdateGroup(w http.ResponseWriter, r *http.Request) {
	filter, err := readFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	attendance, err := readAttendance(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.manage.BulkUpdateGroup(r.Context(), types.GroupID(chi.URLParam(r, "groupID")), attendance, filter)
	if err != nil {
		writeErrorResponse(w, r, err, errorResponse{Updated: &updated})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"updated": updated})
}

func (h *handler) history(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	submissions, err := h.manage.History(r.Context(), types.GuestID(chi.URLParam(r, "guestID")), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if submissions == nil {
		submissions = []*model.Submission{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"submissions": submissions})
}

func (h *handler) submission(w http.ResponseWriter, r *http.Request) {
	submission, err := h.manage.Submission(r.Context(), types.SubmissionID(chi.URLParam(r, "submissionID")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"submission": submission})
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "rsvp",
	})
}
