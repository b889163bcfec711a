package retry

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultMaxAttempts = 4
	DefaultBaseDelay   = 250 * time.Millisecond
	DefaultJitter      = 250 * time.Millisecond
)

// Policy describes exponential backoff with additive jitter. Attempt k
// (1-based) that fails waits BaseDelay*2^(k-1) plus a random [0, Jitter)
// before attempt k+1.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration
}

// DefaultPolicy returns the policy used for attendance writes
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		Jitter:      DefaultJitter,
	}
}

// Validate checks the policy is usable
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return goerr.New("max attempts must be at least 1", goerr.V("max_attempts", p.MaxAttempts))
	}
	if p.BaseDelay < 0 {
		return goerr.New("base delay must not be negative", goerr.V("base_delay", p.BaseDelay))
	}
	if p.Jitter < 0 {
		return goerr.New("jitter must not be negative", goerr.V("jitter", p.Jitter))
	}
	return nil
}

// BaseDelayFor returns the delay after failed attempt k, without jitter.
// The result saturates at the largest representable duration.
func (p Policy) BaseDelayFor(attempt int) time.Duration {
	if attempt < 1 || p.BaseDelay <= 0 {
		return 0
	}
	shift := min(attempt-1, 62)
	if p.BaseDelay > time.Duration(math.MaxInt64>>shift) {
		return time.Duration(math.MaxInt64)
	}
	return p.BaseDelay << shift
}

// DelayFor returns the delay after failed attempt k including jitter
func (p Policy) DelayFor(attempt int) time.Duration {
	d := p.BaseDelayFor(attempt)
	if p.Jitter > 0 {
		j := time.Duration(rand.Int64N(int64(p.Jitter)))
		if d > time.Duration(math.MaxInt64)-j {
			return time.Duration(math.MaxInt64)
		}
		d += j
	}
	return d
}

// LogValue returns structured log value
func (p Policy) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("max_attempts", p.MaxAttempts),
		slog.Duration("base_delay", p.BaseDelay),
		slog.Duration("jitter", p.Jitter),
	)
}

// schedule adapts a Policy to backoff.BackOff for a single Do call
type schedule struct {
	policy  Policy
	attempt int
}

func (s *schedule) NextBackOff() time.Duration {
	s.attempt++
	return s.policy.DelayFor(s.attempt)
}

func (s *schedule) Reset() {
	s.attempt = 0
}

// Do runs fn until it succeeds or the policy's attempts are exhausted, and
// returns the last error in the latter case. Every failure is retried the
// same way. Only ctx bounds the total time spent waiting. Once ctx is done
// no further attempt is made and the error from the attempt (or the context
// cause) is returned.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	if err := p.Validate(); err != nil {
		var zero T
		return zero, err
	}

	attempt := 0
	operation := func() (T, error) {
		attempt++
		res, err := fn(ctx)
		if err != nil && ctx.Err() != nil {
			return res, backoff.Permanent(err)
		}
		return res, err
	}

	notify := func(err error, next time.Duration) {
		ctxlog.From(ctx).Debug("retrying after failure",
			slog.Int("attempt", attempt),
			slog.Duration("next", next),
			slog.Any("error", err),
		)
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(&schedule{policy: p}),
		backoff.WithMaxTries(uint(p.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify),
	)
}
