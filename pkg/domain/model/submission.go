package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
)

// Submission records one attendance write performed through this service
type Submission struct {
	ID         types.SubmissionID `json:"id" firestore:"id" yaml:"id"`
	GuestID    types.GuestID      `json:"guestId" firestore:"guest_id" yaml:"guestId"`
	GuestName  string             `json:"guestName" firestore:"guest_name" yaml:"guestName"`
	GroupID    types.GroupID      `json:"groupId" firestore:"group_id" yaml:"groupId"`
	Previous   types.Attendance   `json:"previous" firestore:"previous" yaml:"previous"`
	Attendance types.Attendance   `json:"attendance" firestore:"attendance" yaml:"attendance"`
	Source     types.Source       `json:"source" firestore:"source" yaml:"source"`
	Succeeded  bool               `json:"succeeded" firestore:"succeeded" yaml:"succeeded"`
	Error      string             `json:"error,omitempty" firestore:"error" yaml:"error,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" firestore:"created_at" yaml:"createdAt"`
}

// NewSubmission creates a submission record for a guest about to change attendance
func NewSubmission(guest *Guest, attendance types.Attendance, source types.Source) (*Submission, error) {
	if guest == nil {
		return nil, goerr.New("guest is nil")
	}
	if err := guest.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid guest")
	}

	return &Submission{
		ID:         types.NewSubmissionID(),
		GuestID:    guest.ID,
		GuestName:  guest.Name,
		GroupID:    guest.GroupKey(),
		Previous:   guest.Attendance,
		Attendance: attendance,
		Source:     source,
		CreatedAt:  time.Now(),
	}, nil
}

// Complete marks the submission with the outcome of the backend write
func (s *Submission) Complete(err error) {
	s.Succeeded = err == nil
	if err != nil {
		s.Error = err.Error()
	}
}
