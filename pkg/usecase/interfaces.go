package usecase

import (
	"context"

	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
)

// RSVPUseCase defines the guest-facing operations
type RSVPUseCase interface {
	// SearchGroups returns the parties whose label or member names contain query
	SearchGroups(ctx context.Context, query string) ([]*model.Group, error)

	// GetGroup returns a single party with its members
	GetGroup(ctx context.Context, groupID types.GroupID) (*model.Group, error)

	// SetAttendance records a guest's own Going / Not Going answer
	SetAttendance(ctx context.Context, guestID types.GuestID, attendance types.Attendance) (*SetAttendanceResult, error)
}

// ManageUseCase defines the host-facing operations
type ManageUseCase interface {
	// ListGuests returns the filtered guest list grouped by party, with counts over the whole list
	ListGuests(ctx context.Context, filter model.GuestFilter) (*ManageView, error)

	// UpdateGuest sets any attendance value for one guest
	UpdateGuest(ctx context.Context, guestID types.GuestID, attendance types.Attendance) (*model.Guest, error)

	// BulkUpdateGroup sets the same attendance for the members of a party that pass filter
	BulkUpdateGroup(ctx context.Context, groupID types.GroupID, attendance types.Attendance, filter model.GuestFilter) (int, error)

	// History returns recorded submissions for a guest, newest first
	History(ctx context.Context, guestID types.GuestID, limit int) ([]*model.Submission, error)

	// Submission returns one recorded submission by ID
	Submission(ctx context.Context, id types.SubmissionID) (*model.Submission, error)
}
