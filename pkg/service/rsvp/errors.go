package rsvp

import (
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// Error tags for categorization
var (
	ErrTagRequestFailed = goerr.NewTag("request_failed")
	ErrTagTransport     = goerr.NewTag("transport_error")
	ErrTagCancelled     = goerr.NewTag("cancelled")
)

// RequestFailedError is returned when the backend answers with a non-2xx status
type RequestFailedError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed: %d %s - %s", e.Status, e.StatusText, e.Body)
}

// IsRequestFailed reports whether err is a non-2xx backend response
func IsRequestFailed(err error) bool {
	return inChain(err, func(e error) bool { return goerr.HasTag(e, ErrTagRequestFailed) })
}

// IsTransport reports whether the request could not complete
func IsTransport(err error) bool {
	return inChain(err, func(e error) bool { return goerr.HasTag(e, ErrTagTransport) })
}

// IsCancelled reports whether the caller's context ended the request
func IsCancelled(err error) bool {
	return inChain(err, func(e error) bool { return goerr.HasTag(e, ErrTagCancelled) })
}

// AsRequestFailed extracts the backend response details from err
func AsRequestFailed(err error) (*RequestFailedError, bool) {
	var reqErr *RequestFailedError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// inChain applies match at every level of the wrap chain
func inChain(err error, match func(error) bool) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if match(err) {
			return true
		}
	}
	return false
}
