package interfaces

//go:generate moq -out mocks/rsvp_mock.go -pkg mocks . GuestListClient Notifier

import (
	"context"

	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
)

// GuestListClient reads and writes the remote guest list
type GuestListClient interface {
	FetchGuestList(ctx context.Context) (*model.GuestList, error)
	UpdateAttendance(ctx context.Context, id types.GuestID, attendance types.Attendance) (*model.UpdateResult, error)
}

// Notifier announces successful attendance changes
type Notifier interface {
	NotifyAttendance(ctx context.Context, submission *model.Submission) error
}
