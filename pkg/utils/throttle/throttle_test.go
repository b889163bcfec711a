package throttle_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/rsvp/pkg/utils/throttle"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func TestLimiter(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	limiter, err := throttle.New(3, 10*time.Second, throttle.WithClock(clock.Now))
	gt.NoError(t, err)

	for i := 0; i < 3; i++ {
		ok, wait := limiter.Allow("guest-1")
		gt.True(t, ok)
		gt.Equal(t, wait, time.Duration(0))
		clock.now = clock.now.Add(time.Second)
	}

	// Fourth attempt at t+3s is rejected until the first one leaves the window at t+10s
	ok, wait := limiter.Allow("guest-1")
	gt.False(t, ok)
	gt.Equal(t, wait, 7*time.Second)

	// Other keys are independent
	ok, _ = limiter.Allow("guest-2")
	gt.True(t, ok)

	clock.now = clock.now.Add(7 * time.Second)
	ok, _ = limiter.Allow("guest-1")
	gt.True(t, ok)
}

func TestLimiterRejectedAttemptsAreNotRecorded(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	limiter, err := throttle.New(1, 10*time.Second, throttle.WithClock(clock.Now))
	gt.NoError(t, err)

	ok, _ := limiter.Allow("k")
	gt.True(t, ok)

	for i := 0; i < 5; i++ {
		clock.now = clock.now.Add(time.Second)
		ok, _ = limiter.Allow("k")
		gt.False(t, ok)
	}

	clock.now = clock.now.Add(5 * time.Second)
	ok, _ = limiter.Allow("k")
	gt.True(t, ok)
}

func TestNewValidation(t *testing.T) {
	_, err := throttle.New(0, time.Second)
	gt.Error(t, err)

	_, err = throttle.New(1, 0)
	gt.Error(t, err)
}
