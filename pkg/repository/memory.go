package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/interfaces"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu          sync.RWMutex
	submissions map[types.SubmissionID]*model.Submission
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		submissions: make(map[types.SubmissionID]*model.Submission),
	}
}

// PutSubmission saves a submission to memory
func (m *Memory) PutSubmission(ctx context.Context, submission *model.Submission) error {
	if submission == nil {
		return goerr.New("submission is nil")
	}
	if submission.ID == "" {
		return goerr.New("submission ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	submissionCopy := *submission
	m.submissions[submission.ID] = &submissionCopy
	return nil
}

// GetSubmission retrieves a submission by ID
func (m *Memory) GetSubmission(ctx context.Context, id types.SubmissionID) (*model.Submission, error) {
	if id == "" {
		return nil, goerr.New("submission ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	submission, exists := m.submissions[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrSubmissionNotFound, "failed to get submission", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	submissionCopy := *submission
	return &submissionCopy, nil
}

// ListSubmissions lists submissions for a guest, newest first
func (m *Memory) ListSubmissions(ctx context.Context, guestID types.GuestID, limit int) ([]*model.Submission, error) {
	if guestID == "" {
		return nil, goerr.New("guest ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var submissions []*model.Submission
	for _, s := range m.submissions {
		if s.GuestID == guestID {
			submissionCopy := *s
			submissions = append(submissions, &submissionCopy)
		}
	}

	sortNewestFirst(submissions)

	if limit > 0 && len(submissions) > limit {
		submissions = submissions[:limit]
	}

	return submissions, nil
}

// Close is a no-op for memory repository
func (m *Memory) Close() error {
	return nil
}

// sortNewestFirst orders by CreatedAt descending; IDs are UUIDv7 and break ties
func sortNewestFirst(submissions []*model.Submission) {
	sort.Slice(submissions, func(i, j int) bool {
		if submissions[i].CreatedAt.Equal(submissions[j].CreatedAt) {
			return submissions[i].ID > submissions[j].ID
		}
		return submissions[i].CreatedAt.After(submissions[j].CreatedAt)
	})
}
