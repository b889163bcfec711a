package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/rsvp/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"github.com/secmon-lab/rsvp/pkg/repository"
	"github.com/secmon-lab/rsvp/pkg/usecase"
	"github.com/secmon-lab/rsvp/pkg/utils/throttle"
)

func TestNewRSVP(t *testing.T) {
	_, err := usecase.NewRSVP(nil, repository.NewMemory())
	gt.Error(t, err)

	_, err = usecase.NewRSVP(newBackend(), nil)
	gt.Error(t, err)
}

func TestSearchGroups(t *testing.T) {
	ctx := context.Background()
	uc, err := usecase.NewRSVP(newBackend(), repository.NewMemory())
	gt.NoError(t, err)

	t.Run("query shorter than three characters is rejected", func(t *testing.T) {
		_, err := uc.SearchGroups(ctx, "  al ")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrQueryTooShort))
	})

	t.Run("matches group label", func(t *testing.T) {
		groups, err := uc.SearchGroups(ctx, "smiths")
		gt.NoError(t, err)
		gt.Equal(t, len(groups), 1)
		gt.Equal(t, groups[0].ID, types.GroupID("g1"))
		gt.Equal(t, len(groups[0].Members), 2)
	})

	t.Run("matches member name case-insensitively", func(t *testing.T) {
		groups, err := uc.SearchGroups(ctx, "ERIN")
		gt.NoError(t, err)
		gt.Equal(t, len(groups), 1)
		gt.Equal(t, groups[0].ID, types.GroupID("g2"))
	})

	t.Run("no match", func(t *testing.T) {
		groups, err := uc.SearchGroups(ctx, "nobody")
		gt.NoError(t, err)
		gt.Equal(t, len(groups), 0)
	})

	t.Run("fetch failure is returned", func(t *testing.T) {
		failing := &mocks.GuestListClientMock{
			FetchGuestListFunc: func(ctx context.Context) (*model.GuestList, error) {
				return nil, goerr.New("backend down")
			},
		}
		uc, err := usecase.NewRSVP(failing, repository.NewMemory())
		gt.NoError(t, err)

		_, err = uc.SearchGroups(ctx, "smith")
		gt.Error(t, err)
	})
}

func TestGetGroup(t *testing.T) {
	ctx := context.Background()
	uc, err := usecase.NewRSVP(newBackend(), repository.NewMemory())
	gt.NoError(t, err)

	group, err := uc.GetGroup(ctx, "4")
	gt.NoError(t, err)
	gt.Equal(t, group.Name, "Dave Solo")
	gt.Equal(t, len(group.Members), 1)

	_, err = uc.GetGroup(ctx, "missing")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrGroupNotFound))
}

func TestSetAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("writes, records and notifies", func(t *testing.T) {
		backend := newBackend()
		repo := repository.NewMemory()
		notified := make(chan *model.Submission, 1)
		notifier := &mocks.NotifierMock{
			NotifyAttendanceFunc: func(ctx context.Context, s *model.Submission) error {
				notified <- s
				return nil
			},
		}

		uc, err := usecase.NewRSVP(backend, repo,
			usecase.WithNotifier(notifier),
			usecase.WithMessagePicker(func(n int) int { return 0 }),
		)
		gt.NoError(t, err)

		result, err := uc.SetAttendance(ctx, "3", types.AttendanceGoing)
		gt.NoError(t, err)
		gt.True(t, result.Changed)
		gt.Equal(t, result.Guest.Attendance, types.AttendanceGoing)
		gt.Equal(t, result.Message, "Yay, Carol Smith is in! See you there 🎉")

		calls := backend.UpdateAttendanceCalls()
		gt.Equal(t, len(calls), 1)
		gt.Equal(t, calls[0].ID, types.GuestID("3"))
		gt.Equal(t, calls[0].Attendance, types.AttendanceGoing)

		history, err := repo.ListSubmissions(ctx, "3", 10)
		gt.NoError(t, err)
		gt.Equal(t, len(history), 1)
		gt.True(t, history[0].Succeeded)
		gt.Equal(t, history[0].Previous, types.AttendanceNoResponse)
		gt.Equal(t, history[0].Source, types.SourceWeb)

		select {
		case s := <-notified:
			gt.Equal(t, s.GuestID, types.GuestID("3"))
		case <-time.After(time.Second):
			t.Fatal("notification was not dispatched")
		}
	})

	t.Run("not going message", func(t *testing.T) {
		uc, err := usecase.NewRSVP(newBackend(), repository.NewMemory(),
			usecase.WithMessagePicker(func(n int) int { return n - 1 }))
		gt.NoError(t, err)

		result, err := uc.SetAttendance(ctx, "1", types.AttendanceNotGoing)
		gt.NoError(t, err)
		gt.S(t, result.Message).Contains("Alice Smith")
		gt.S(t, result.Message).Contains("make it")
	})

	t.Run("unchanged attendance skips the write", func(t *testing.T) {
		backend := newBackend()
		uc, err := usecase.NewRSVP(backend, repository.NewMemory())
		gt.NoError(t, err)

		result, err := uc.SetAttendance(ctx, "1", types.AttendanceGoing)
		gt.NoError(t, err)
		gt.False(t, result.Changed)
		gt.S(t, result.Message).Contains("already")
		gt.Equal(t, len(backend.UpdateAttendanceCalls()), 0)
	})

	t.Run("guests cannot choose other values", func(t *testing.T) {
		backend := newBackend()
		uc, err := usecase.NewRSVP(backend, repository.NewMemory())
		gt.NoError(t, err)

		for _, a := range []types.Attendance{types.AttendanceMaybe, types.AttendanceNoResponse, "Plus One"} {
			_, err := uc.SetAttendance(ctx, "3", a)
			gt.Error(t, err)
			gt.True(t, errors.Is(err, model.ErrInvalidAttendance))
		}
		gt.Equal(t, len(backend.FetchGuestListCalls()), 0)
	})

	t.Run("unknown guest", func(t *testing.T) {
		uc, err := usecase.NewRSVP(newBackend(), repository.NewMemory())
		gt.NoError(t, err)

		_, err = uc.SetAttendance(ctx, "99", types.AttendanceGoing)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrGuestNotFound))
	})

	t.Run("throttles the fourth change within the window", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		limiter, err := throttle.New(3, 10*time.Second, throttle.WithClock(func() time.Time { return now }))
		gt.NoError(t, err)

		backend := newBackend()
		uc, err := usecase.NewRSVP(backend, repository.NewMemory(), usecase.WithThrottle(limiter))
		gt.NoError(t, err)

		answers := []types.Attendance{types.AttendanceGoing, types.AttendanceNotGoing, types.AttendanceGoing}
		for _, a := range answers {
			now = now.Add(time.Second)
			_, err := uc.SetAttendance(ctx, "3", a)
			gt.NoError(t, err)
		}

		now = now.Add(time.Second)
		_, err = uc.SetAttendance(ctx, "3", types.AttendanceNotGoing)
		gt.Error(t, err)

		var throttled *model.ThrottledError
		gt.True(t, errors.As(err, &throttled))
		// oldest attempt was 3s ago, so it leaves the window in 7s
		gt.Equal(t, throttled.RetryAfter, 7*time.Second)
		gt.Equal(t, len(backend.UpdateAttendanceCalls()), 3)

		// another guest is unaffected
		_, err = uc.SetAttendance(ctx, "2", types.AttendanceGoing)
		gt.NoError(t, err)

		now = now.Add(7 * time.Second)
		_, err = uc.SetAttendance(ctx, "3", types.AttendanceNotGoing)
		gt.NoError(t, err)
	})

	t.Run("backend failure is recorded and not notified", func(t *testing.T) {
		backend := newBackend()
		backend.UpdateAttendanceFunc = func(ctx context.Context, id types.GuestID, attendance types.Attendance) (*model.UpdateResult, error) {
			return nil, goerr.New("request failed: 500")
		}
		notifier := &mocks.NotifierMock{
			NotifyAttendanceFunc: func(ctx context.Context, s *model.Submission) error {
				t.Error("notifier must not be called")
				return nil
			},
		}
		repo := repository.NewMemory()

		uc, err := usecase.NewRSVP(backend, repo, usecase.WithNotifier(notifier))
		gt.NoError(t, err)

		_, err = uc.SetAttendance(ctx, "3", types.AttendanceGoing)
		gt.Error(t, err)
		var updateErr *model.UpdateError
		gt.True(t, errors.As(err, &updateErr))

		history, err := repo.ListSubmissions(ctx, "3", 10)
		gt.NoError(t, err)
		gt.Equal(t, len(history), 1)
		gt.False(t, history[0].Succeeded)
		gt.S(t, history[0].Error).Contains("500")
	})

	t.Run("unacknowledged write is an error", func(t *testing.T) {
		backend := newBackend()
		backend.UpdateAttendanceFunc = func(ctx context.Context, id types.GuestID, attendance types.Attendance) (*model.UpdateResult, error) {
			return &model.UpdateResult{OK: false}, nil
		}

		uc, err := usecase.NewRSVP(backend, repository.NewMemory())
		gt.NoError(t, err)

		_, err = uc.SetAttendance(ctx, "3", types.AttendanceGoing)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrUpdateNotAcknowledged))

		var updateErr *model.UpdateError
		gt.True(t, errors.As(err, &updateErr))
		gt.Equal(t, updateErr.GuestID, types.GuestID("3"))
	})
}
