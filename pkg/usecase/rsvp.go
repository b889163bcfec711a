package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/interfaces"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"github.com/secmon-lab/rsvp/pkg/utils/throttle"
)

// MinSearchLength is the shortest query accepted by SearchGroups, in runes
const MinSearchLength = 3

var (
	goingMessages = []string{
		"Yay, %s is in! See you there 🎉",
		"Got it, saving a seat for %s 🙌",
		"%s is marked as Going. We're excited! 💃",
	}
	notGoingMessages = []string{
		"We'll miss you, %s. If plans change, we'd love to see you 💛",
		"It won't be the same without you, %s. Think you could reconsider? 🙂",
		"Totally understand, %s. But we'd be so happy if you could make it!",
	}
)

// SetAttendanceResult is the outcome of a guest's answer
type SetAttendanceResult struct {
	Guest *model.Guest `json:"guest"`
	// Changed is false when the guest already had the requested attendance and nothing was written
	Changed bool   `json:"changed"`
	Message string `json:"message"`
}

// RSVP implements RSVPUseCase
type RSVP struct {
	writer  attendanceWriter
	limiter *throttle.Limiter
	pick    func(n int) int
}

var _ RSVPUseCase = (*RSVP)(nil)

// RSVPOption configures RSVP
type RSVPOption func(*RSVP)

// WithNotifier sends a notification after each successful write
func WithNotifier(n interfaces.Notifier) RSVPOption {
	return func(uc *RSVP) {
		uc.writer.notifier = n
	}
}

// WithThrottle replaces the default per-guest limiter
func WithThrottle(l *throttle.Limiter) RSVPOption {
	return func(uc *RSVP) {
		uc.limiter = l
	}
}

// WithMessagePicker replaces the random choice of confirmation message
func WithMessagePicker(pick func(n int) int) RSVPOption {
	return func(uc *RSVP) {
		uc.pick = pick
	}
}

// NewRSVP creates a new RSVP use case
func NewRSVP(client interfaces.GuestListClient, repo interfaces.Repository, opts ...RSVPOption) (*RSVP, error) {
	if client == nil {
		return nil, goerr.New("guest list client is required")
	}
	if repo == nil {
		return nil, goerr.New("repository is required")
	}

	uc := &RSVP{
		writer: attendanceWriter{client: client, repo: repo},
		pick:   rand.IntN,
	}
	for _, opt := range opts {
		opt(uc)
	}

	if uc.limiter == nil {
		limiter, err := throttle.New(throttle.DefaultLimit, throttle.DefaultWindow)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create throttle")
		}
		uc.limiter = limiter
	}

	return uc, nil
}

// SearchGroups returns parties matching query in list order
func (uc *RSVP) SearchGroups(ctx context.Context, query string) ([]*model.Group, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchLength {
		return nil, goerr.Wrap(model.ErrQueryTooShort, "query rejected",
			goerr.V("query", query),
			goerr.V("min_length", MinSearchLength))
	}

	guests, err := fetchGuests(ctx, uc.writer.client)
	if err != nil {
		return nil, err
	}

	var matched []*model.Group
	for _, g := range model.GroupGuests(guests) {
		if g.Matches(query) {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

// GetGroup returns the party with the given ID
func (uc *RSVP) GetGroup(ctx context.Context, groupID types.GroupID) (*model.Group, error) {
	if groupID == "" {
		return nil, goerr.New("group ID is required")
	}

	guests, err := fetchGuests(ctx, uc.writer.client)
	if err != nil {
		return nil, err
	}

	group := model.FindGroup(model.GroupGuests(guests), groupID)
	if group == nil {
		return nil, goerr.Wrap(model.ErrGroupNotFound, "no such group", goerr.V("group_id", groupID))
	}
	return group, nil
}

// SetAttendance applies a guest's answer. Guests may only answer Going or Not Going.
func (uc *RSVP) SetAttendance(ctx context.Context, guestID types.GuestID, attendance types.Attendance) (*SetAttendanceResult, error) {
	attendance = attendance.Normalize()
	if attendance != types.AttendanceGoing && attendance != types.AttendanceNotGoing {
		return nil, goerr.Wrap(model.ErrInvalidAttendance, "guests may only answer Going or Not Going",
			goerr.V("attendance", attendance))
	}

	guest, err := findGuest(ctx, uc.writer.client, guestID)
	if err != nil {
		return nil, err
	}

	if guest.Attendance.Normalize() == attendance {
		return &SetAttendanceResult{
			Guest:   guest,
			Changed: false,
			Message: fmt.Sprintf("%s is already marked as %s", guest.Name, attendance.Label()),
		}, nil
	}

	if ok, wait := uc.limiter.Allow(guestID.String()); !ok {
		return nil, &model.ThrottledError{GuestID: guestID, RetryAfter: wait}
	}

	updated, err := uc.writer.write(ctx, guest, attendance, types.SourceWeb)
	if err != nil {
		return nil, err
	}

	return &SetAttendanceResult{
		Guest:   updated,
		Changed: true,
		Message: uc.confirmation(updated),
	}, nil
}

func (uc *RSVP) confirmation(guest *model.Guest) string {
	messages := goingMessages
	if guest.Attendance == types.AttendanceNotGoing {
		messages = notGoingMessages
	}
	return fmt.Sprintf(messages[uc.pick(len(messages))], guest.Name)
}
