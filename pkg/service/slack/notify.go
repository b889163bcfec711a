package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/interfaces"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"github.com/slack-go/slack"
)

// Notifier posts attendance changes to a Slack channel
type Notifier struct {
	client    interfaces.SlackClient
	channelID string
}

// NewNotifier creates a Notifier posting to channelID
func NewNotifier(client interfaces.SlackClient, channelID string) *Notifier {
	return &Notifier{
		client:    client,
		channelID: channelID,
	}
}

// NotifyAttendance posts one message describing the submission
func (n *Notifier) NotifyAttendance(ctx context.Context, submission *model.Submission) error {
	if submission == nil {
		return goerr.New("submission is nil")
	}

	_, _, err := n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(FormatAttendanceText(submission), false),
		slack.MsgOptionBlocks(BuildAttendanceBlocks(submission)...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post attendance notification",
			goerr.V("channel", n.channelID),
			goerr.V("guest_id", submission.GuestID),
		)
	}
	return nil
}

// AttendanceEmoji returns the emoji shown next to an attendance value
func AttendanceEmoji(a types.Attendance) string {
	switch a {
	case types.AttendanceGoing:
		return "🎉"
	case types.AttendanceNotGoing:
		return "💛"
	case types.AttendanceMaybe:
		return "🤔"
	default:
		return "❔"
	}
}

// FormatAttendanceText is the plain-text fallback of the notification
func FormatAttendanceText(s *model.Submission) string {
	return fmt.Sprintf("%s %s: %s → %s", AttendanceEmoji(s.Attendance), s.GuestName, s.Previous.Label(), s.Attendance.Label())
}

// BuildAttendanceBlocks renders the notification body
func BuildAttendanceBlocks(s *model.Submission) []slack.Block {
	header := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("%s *%s* is now *%s*", AttendanceEmoji(s.Attendance), s.GuestName, s.Attendance.Label()),
			false, false),
		nil, nil,
	)

	detail := slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("was %s · party `%s` · via %s", s.Previous.Label(), s.GroupID, s.Source),
			false, false),
	)

	return []slack.Block{header, detail}
}
