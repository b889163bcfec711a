package repository_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/rsvp/pkg/domain/interfaces"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"github.com/secmon-lab/rsvp/pkg/repository"
)

func newTestSubmission(t *testing.T, guestID types.GuestID, createdAt time.Time) *model.Submission {
	t.Helper()
	guest := &model.Guest{ID: guestID, GroupID: "g1", Name: "Test Guest"}
	s, err := model.NewSubmission(guest, types.AttendanceGoing, types.SourceWeb)
	gt.NoError(t, err)
	s.CreatedAt = createdAt
	s.Complete(nil)
	return s
}

func testRepository(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Run("PutSubmission and GetSubmission", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		guestID := types.GuestID(fmt.Sprintf("guest-%d", time.Now().UnixNano()))
		s := newTestSubmission(t, guestID, time.Now())

		gt.NoError(t, repo.PutSubmission(ctx, s))

		retrieved, err := repo.GetSubmission(ctx, s.ID)
		gt.NoError(t, err)
		gt.Equal(t, retrieved.ID, s.ID)
		gt.Equal(t, retrieved.GuestID, guestID)
		gt.Equal(t, retrieved.GuestName, "Test Guest")
		gt.Equal(t, retrieved.GroupID, types.GroupID("g1"))
		gt.Equal(t, retrieved.Attendance, types.AttendanceGoing)
		gt.Equal(t, retrieved.Source, types.SourceWeb)
		gt.True(t, retrieved.Succeeded)
		gt.True(t, s.CreatedAt.Sub(retrieved.CreatedAt).Abs() < time.Second)
	})

	t.Run("GetSubmission_NotFound", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		_, err := repo.GetSubmission(context.Background(), types.NewSubmissionID())
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrSubmissionNotFound))
	})

	t.Run("ListSubmissions", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		guestID := types.GuestID(fmt.Sprintf("guest-list-%d", time.Now().UnixNano()))
		base := time.Now()

		var saved []*model.Submission
		for i := 0; i < 4; i++ {
			s := newTestSubmission(t, guestID, base.Add(time.Duration(i)*time.Minute))
			gt.NoError(t, repo.PutSubmission(ctx, s))
			saved = append(saved, s)
		}
		other := newTestSubmission(t, types.GuestID(fmt.Sprintf("other-%d", time.Now().UnixNano())), base)
		gt.NoError(t, repo.PutSubmission(ctx, other))

		all, err := repo.ListSubmissions(ctx, guestID, 0)
		gt.NoError(t, err)
		gt.Equal(t, len(all), 4)
		gt.Equal(t, all[0].ID, saved[3].ID)
		gt.Equal(t, all[3].ID, saved[0].ID)

		limited, err := repo.ListSubmissions(ctx, guestID, 2)
		gt.NoError(t, err)
		gt.Equal(t, len(limited), 2)
		gt.Equal(t, limited[0].ID, saved[3].ID)
	})

	t.Run("invalid input", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		gt.Error(t, repo.PutSubmission(ctx, nil))
		gt.Error(t, repo.PutSubmission(ctx, &model.Submission{}))
		_, err := repo.GetSubmission(ctx, "")
		gt.Error(t, err)
		_, err = repo.ListSubmissions(ctx, "", 10)
		gt.Error(t, err)
	})
}

func TestMemoryRepository(t *testing.T) {
	testRepository(t, func(t *testing.T) interfaces.Repository {
		return repository.NewMemory()
	})
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	s := newTestSubmission(t, "guest-copy", time.Now())
	gt.NoError(t, repo.PutSubmission(ctx, s))

	s.GuestName = "changed after save"
	retrieved, err := repo.GetSubmission(ctx, s.ID)
	gt.NoError(t, err)
	gt.Equal(t, retrieved.GuestName, "Test Guest")
}

func TestFirestoreRepository(t *testing.T) {
	// Skip test if Firestore test environment variables are not set
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE")

	if projectID == "" || databaseID == "" {
		t.Skip("Skipping Firestore test: TEST_FIRESTORE_PROJECT and TEST_FIRESTORE_DATABASE must be set")
	}

	testRepository(t, func(t *testing.T) interfaces.Repository {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		ctx = ctxlog.With(ctx, logger)

		repo, err := repository.NewFirestore(ctx, projectID, databaseID)
		gt.NoError(t, err)
		return repo
	})
}
