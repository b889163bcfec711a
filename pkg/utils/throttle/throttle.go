package throttle

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultLimit  = 3
	DefaultWindow = 10 * time.Second
	// DefaultKeys bounds how many keys are tracked at once; the least recently
	// used key is forgotten beyond that
	DefaultKeys = 4096
)

// Limiter allows at most Limit attempts per key within a rolling Window
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	history *lru.Cache[string, []time.Time]
	now     func() time.Time
}

// Option configures a Limiter
type Option func(*Limiter)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New creates a Limiter
func New(limit int, window time.Duration, opts ...Option) (*Limiter, error) {
	if limit < 1 {
		return nil, goerr.New("throttle limit must be at least 1", goerr.V("limit", limit))
	}
	if window <= 0 {
		return nil, goerr.New("throttle window must be positive", goerr.V("window", window))
	}

	cache, err := lru.New[string, []time.Time](DefaultKeys)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create throttle cache")
	}

	l := &Limiter{
		limit:   limit,
		window:  window,
		history: cache,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Allow records an attempt for key if it is within the limit. When the limit
// is reached it records nothing and returns the time until the oldest attempt
// leaves the window.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	past, _ := l.history.Get(key)

	recent := make([]time.Time, 0, len(past)+1)
	for _, ts := range past {
		if now.Sub(ts) < l.window {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.limit {
		oldest := recent[0]
		for _, ts := range recent[1:] {
			if ts.Before(oldest) {
				oldest = ts
			}
		}
		l.history.Add(key, recent)
		return false, l.window - now.Sub(oldest)
	}

	l.history.Add(key, append(recent, now))
	return true, 0
}
