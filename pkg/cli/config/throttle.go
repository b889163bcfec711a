package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/utils/throttle"
	"github.com/urfave/cli/v3"
)

// Throttle holds the per-guest change limit
type Throttle struct {
	Attempts int
	Window   time.Duration
}

// Flags returns CLI flags for Throttle configuration
func (t *Throttle) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "throttle-attempts",
			Usage:       "Attendance changes allowed per guest within the window",
			Category:    "Throttle",
			Value:       throttle.DefaultLimit,
			Sources:     cli.EnvVars("RSVP_THROTTLE_ATTEMPTS"),
			Destination: &t.Attempts,
		},
		&cli.DurationFlag{
			Name:        "throttle-window",
			Usage:       "Rolling window for the per-guest change limit",
			Category:    "Throttle",
			Value:       throttle.DefaultWindow,
			Sources:     cli.EnvVars("RSVP_THROTTLE_WINDOW"),
			Destination: &t.Window,
		},
	}
}

// Configure creates the limiter
func (t *Throttle) Configure() (*throttle.Limiter, error) {
	limiter, err := throttle.New(t.Attempts, t.Window)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid throttle configuration",
			goerr.V("attempts", t.Attempts),
			goerr.V("window", t.Window))
	}
	return limiter, nil
}

// LogValue returns structured log value
func (t Throttle) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("attempts", t.Attempts),
		slog.Duration("window", t.Window),
	)
}
