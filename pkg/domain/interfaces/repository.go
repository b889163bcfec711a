package interfaces

import (
	"context"

	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
)

// Repository stores the attendance submissions made through this service
type Repository interface {
	PutSubmission(ctx context.Context, submission *model.Submission) error
	GetSubmission(ctx context.Context, id types.SubmissionID) (*model.Submission, error)
	// ListSubmissions returns a guest's submissions, newest first. limit <= 0 means no limit.
	ListSubmissions(ctx context.Context, guestID types.GuestID, limit int) ([]*model.Submission, error)

	// Close closes the repository connection
	Close() error
}
