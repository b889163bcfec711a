package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/rsvp/pkg/domain/interfaces"
	slackSvc "github.com/secmon-lab/rsvp/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack notification configuration
type Slack struct {
	OAuthToken string
	ChannelID  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token used to post attendance changes",
			Category:    "Slack",
			Sources:     cli.EnvVars("RSVP_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID that receives attendance changes",
			Category:    "Slack",
			Sources:     cli.EnvVars("RSVP_SLACK_CHANNEL"),
			Destination: &s.ChannelID,
		},
	}
}

// ConfigureOptional returns a notifier, or nil when Slack is not configured
func (s *Slack) ConfigureOptional(ctx context.Context) interfaces.Notifier {
	logger := ctxlog.From(ctx)
	if !s.IsConfigured() {
		logger.Info("Slack not configured, attendance changes will not be posted")
		return nil
	}

	logger.Info("Configuring Slack notifier", "channel", s.ChannelID)
	return slackSvc.NewNotifier(slackSvc.New(s.OAuthToken), s.ChannelID)
}

// IsConfigured checks if both token and channel are set
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.ChannelID != ""
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.ChannelID),
	)
}
