package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/interfaces"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"github.com/secmon-lab/rsvp/pkg/utils/async"
)

// attendanceWriter performs one backend write and its bookkeeping. It is
// shared by the guest and host flows.
type attendanceWriter struct {
	client   interfaces.GuestListClient
	repo     interfaces.Repository
	notifier interfaces.Notifier
}

// write updates the backend, records a submission with the outcome and, on
// success, notifies asynchronously. The returned guest is a copy carrying the
// new attendance.
func (w *attendanceWriter) write(ctx context.Context, guest *model.Guest, attendance types.Attendance, source types.Source) (*model.Guest, error) {
	submission, err := model.NewSubmission(guest, attendance, source)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create submission")
	}

	result, err := w.client.UpdateAttendance(ctx, guest.ID, attendance)
	if err == nil && (result == nil || !result.OK) {
		err = goerr.Wrap(model.ErrUpdateNotAcknowledged, "backend did not acknowledge attendance update",
			goerr.V("guest_id", guest.ID),
			goerr.V("attendance", attendance))
	}
	submission.Complete(err)

	// History is best effort once the backend has answered.
	if putErr := w.repo.PutSubmission(ctx, submission); putErr != nil {
		ctxlog.From(ctx).Warn("failed to record submission",
			"error", putErr,
			"submission_id", submission.ID,
		)
	}

	if err != nil {
		return nil, goerr.Wrap(&model.UpdateError{GuestID: guest.ID, Err: err}, "failed to update attendance",
			goerr.V("guest_id", guest.ID),
			goerr.V("attendance", attendance))
	}

	ctxlog.From(ctx).Info("attendance updated",
		"guest_id", guest.ID,
		"previous", submission.Previous,
		"attendance", attendance,
		"source", source,
	)

	if w.notifier != nil {
		notifier := w.notifier
		async.Dispatch(ctx, func(ctx context.Context) error {
			return notifier.NotifyAttendance(ctx, submission)
		})
	}

	updated := *guest
	updated.Attendance = attendance
	return &updated, nil
}

func fetchGuests(ctx context.Context, client interfaces.GuestListClient) ([]*model.Guest, error) {
	list, err := client.FetchGuestList(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch guest list")
	}
	return list.Guests, nil
}

func findGuest(ctx context.Context, client interfaces.GuestListClient, id types.GuestID) (*model.Guest, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid guest ID")
	}

	list, err := client.FetchGuestList(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch guest list")
	}

	guest := list.Find(id)
	if guest == nil {
		return nil, goerr.Wrap(model.ErrGuestNotFound, "no such guest", goerr.V("guest_id", id))
	}
	return guest, nil
}
