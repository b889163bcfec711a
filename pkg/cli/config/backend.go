package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/service/rsvp"
	"github.com/secmon-lab/rsvp/pkg/utils/retry"
	"github.com/urfave/cli/v3"
)

// DefaultEndpointURL is the deployed guest-list web app
const DefaultEndpointURL = "https://script.google.com/macros/s/AKfycbzmlnZfHtG3iWn8l6ExmTxze9kvKR_wuK98__xnD_sthc1f1AtVrZjM8_CAtqin9ea-Lg/exec"

// Backend holds guest-list backend configuration
type Backend struct {
	EndpointURL      string
	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
	RetryJitter      time.Duration
	RequestTimeout   time.Duration
}

// Flags returns CLI flags for Backend configuration
func (b *Backend) Flags() []cli.Flag {
	policy := retry.DefaultPolicy()

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "endpoint",
			Usage:       "Guest list web app URL",
			Category:    "Backend",
			Value:       DefaultEndpointURL,
			Sources:     cli.EnvVars("RSVP_WEB_APP_URL"),
			Destination: &b.EndpointURL,
		},
		&cli.IntFlag{
			Name:        "retry-max-attempts",
			Usage:       "Total attempts for an attendance update",
			Category:    "Backend",
			Value:       policy.MaxAttempts,
			Sources:     cli.EnvVars("RSVP_RETRY_MAX_ATTEMPTS"),
			Destination: &b.RetryMaxAttempts,
		},
		&cli.DurationFlag{
			Name:        "retry-base-delay",
			Usage:       "Backoff before the second attempt, doubled for each later one",
			Category:    "Backend",
			Value:       policy.BaseDelay,
			Sources:     cli.EnvVars("RSVP_RETRY_BASE_DELAY"),
			Destination: &b.RetryBaseDelay,
		},
		&cli.DurationFlag{
			Name:        "retry-jitter",
			Usage:       "Upper bound of random delay added to each backoff",
			Category:    "Backend",
			Value:       policy.Jitter,
			Sources:     cli.EnvVars("RSVP_RETRY_JITTER"),
			Destination: &b.RetryJitter,
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "Timeout of a single request to the guest list (0 disables)",
			Category:    "Backend",
			Value:       rsvp.DefaultRequestTimeout,
			Sources:     cli.EnvVars("RSVP_REQUEST_TIMEOUT"),
			Destination: &b.RequestTimeout,
		},
	}
}

// Policy returns the configured retry policy
func (b *Backend) Policy() retry.Policy {
	return retry.Policy{
		MaxAttempts: b.RetryMaxAttempts,
		BaseDelay:   b.RetryBaseDelay,
		Jitter:      b.RetryJitter,
	}
}

// Configure creates the guest list client
func (b *Backend) Configure() (*rsvp.Client, error) {
	client, err := rsvp.New(
		rsvp.Config{EndpointURL: b.EndpointURL},
		rsvp.WithRetryPolicy(b.Policy()),
		rsvp.WithRequestTimeout(b.RequestTimeout),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create guest list client",
			goerr.V("endpoint", b.EndpointURL))
	}
	return client, nil
}

// LogValue returns structured log value
func (b Backend) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("endpoint", b.EndpointURL),
		slog.Any("retry", b.Policy()),
		slog.Duration("request_timeout", b.RequestTimeout),
	)
}
