package model

import (
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
)

// Sentinel errors for domain operations
var (
	ErrGuestNotFound      = goerr.New("guest not found")
	ErrGroupNotFound      = goerr.New("group not found")
	ErrQueryTooShort      = goerr.New("search query is too short")
	ErrInvalidAttendance  = goerr.New("attendance is not allowed here")
	ErrSubmissionNotFound = goerr.New("submission not found")
	// ErrUpdateNotAcknowledged is returned when the backend answers a write without confirming it
	ErrUpdateNotAcknowledged = goerr.New("attendance update was not acknowledged")
)

// UpdateError marks a failed attendance write for one guest. Err keeps the
// underlying cause so backend tags stay reachable.
type UpdateError struct {
	GuestID types.GuestID
	Err     error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("could not update attendance for guest %s: %v", e.GuestID, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}

// ThrottledError is returned when a guest submitted too many changes within the throttle window
type ThrottledError struct {
	GuestID    types.GuestID
	RetryAfter time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("too many attendance changes for guest %s, try again in %ds", e.GuestID, e.RetryAfterSeconds())
}

// RetryAfterSeconds rounds the wait up to whole seconds, never below one
func (e *ThrottledError) RetryAfterSeconds() int {
	secs := int((e.RetryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
