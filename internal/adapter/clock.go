package adapter

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Clock is the time source of ledger confirmation and the sweeper loops.
// It satisfies backoff.Clock so receipt polling deadlines use the same source.
//
//go:generate mockgen -source=clock.go -destination=../mocks/clock.go -package=mocks -mock_names=Clock=MockClock
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	// After fires once a sweeper idle interval has elapsed
	After(d time.Duration) <-chan time.Time
	// NewTimer returns the timer backoff waits on between receipt polls
	NewTimer() backoff.Timer
}

type systemClock struct{}

// NewClock returns the wall clock. Times are reported in UTC.
func NewClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (systemClock) NewTimer() backoff.Timer {
	return &pollTimer{}
}

// pollTimer is a reusable time.Timer
type pollTimer struct {
	timer *time.Timer
}

func (t *pollTimer) Start(d time.Duration) {
	if t.timer == nil {
		t.timer = time.NewTimer(d)
		return
	}
	t.timer.Reset(d)
}

func (t *pollTimer) Stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
}

// C is only valid after Start
func (t *pollTimer) C() <-chan time.Time {
	return t.timer.C
}
