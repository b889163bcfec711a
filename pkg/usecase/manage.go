package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/interfaces"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
)

// DefaultHistoryLimit is used when History is called without a positive limit
const DefaultHistoryLimit = 20

// ManageView is the host's view of the guest list
type ManageView struct {
	// Groups holds the filtered guests grouped by party
	Groups []*model.Group `json:"groups" yaml:"groups"`
	// Counts covers the whole list regardless of the filter
	Counts model.AttendanceCounts `json:"counts" yaml:"counts"`
}

// Manage implements ManageUseCase
type Manage struct {
	writer attendanceWriter
	source types.Source
}

var _ ManageUseCase = (*Manage)(nil)

// ManageOption configures Manage
type ManageOption func(*Manage)

// WithManageNotifier sends a notification after each successful write
func WithManageNotifier(n interfaces.Notifier) ManageOption {
	return func(uc *Manage) {
		uc.writer.notifier = n
	}
}

// WithSource sets the source recorded on submissions. Defaults to types.SourceManage.
func WithSource(source types.Source) ManageOption {
	return func(uc *Manage) {
		uc.source = source
	}
}

// NewManage creates a new Manage use case
func NewManage(client interfaces.GuestListClient, repo interfaces.Repository, opts ...ManageOption) (*Manage, error) {
	if client == nil {
		return nil, goerr.New("guest list client is required")
	}
	if repo == nil {
		return nil, goerr.New("repository is required")
	}

	uc := &Manage{
		writer: attendanceWriter{client: client, repo: repo},
		source: types.SourceManage,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc, nil
}

func (uc *Manage) ListGuests(ctx context.Context, filter model.GuestFilter) (*ManageView, error) {
	guests, err := fetchGuests(ctx, uc.writer.client)
	if err != nil {
		return nil, err
	}

	return &ManageView{
		Groups: model.GroupGuests(filter.Apply(guests)),
		Counts: model.CountAttendance(guests),
	}, nil
}

func (uc *Manage) UpdateGuest(ctx context.Context, guestID types.GuestID, attendance types.Attendance) (*model.Guest, error) {
	attendance = attendance.Normalize()
	if !attendance.IsValid() {
		return nil, goerr.Wrap(model.ErrInvalidAttendance, "unknown attendance value",
			goerr.V("attendance", attendance))
	}

	guest, err := findGuest(ctx, uc.writer.client, guestID)
	if err != nil {
		return nil, err
	}

	return uc.writer.write(ctx, guest, attendance, uc.source)
}

// BulkUpdateGroup writes the party members passing filter one at a time in
// list order and stops at the first failure. Members written before the
// failure keep their new value; the returned count says how many were written.
// An empty filter selects the whole party.
func (uc *Manage) BulkUpdateGroup(ctx context.Context, groupID types.GroupID, attendance types.Attendance, filter model.GuestFilter) (int, error) {
	attendance = attendance.Normalize()
	if !attendance.IsValid() {
		return 0, goerr.Wrap(model.ErrInvalidAttendance, "unknown attendance value",
			goerr.V("attendance", attendance))
	}
	if groupID == "" {
		return 0, goerr.New("group ID is required")
	}

	guests, err := fetchGuests(ctx, uc.writer.client)
	if err != nil {
		return 0, err
	}

	group := model.FindGroup(model.GroupGuests(guests), groupID)
	if group == nil {
		return 0, goerr.Wrap(model.ErrGroupNotFound, "no such group", goerr.V("group_id", groupID))
	}

	members := filter.Apply(group.Members)
	updated := 0
	for _, member := range members {
		if _, err := uc.writer.write(ctx, member, attendance, uc.source); err != nil {
			return updated, goerr.Wrap(err, "bulk update stopped",
				goerr.V("group_id", groupID),
				goerr.V("updated", updated),
				goerr.V("total", len(members)))
		}
		updated++
	}

	return updated, nil
}

func (uc *Manage) History(ctx context.Context, guestID types.GuestID, limit int) ([]*model.Submission, error) {
	if err := guestID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid guest ID")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	submissions, err := uc.writer.repo.ListSubmissions(ctx, guestID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list submissions", goerr.V("guest_id", guestID))
	}
	return submissions, nil
}

func (uc *Manage) Submission(ctx context.Context, id types.SubmissionID) (*model.Submission, error) {
	if id == "" {
		return nil, goerr.Wrap(model.ErrSubmissionNotFound, "submission ID is empty")
	}

	submission, err := uc.writer.repo.GetSubmission(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get submission", goerr.V("submission_id", id))
	}
	return submission, nil
}
