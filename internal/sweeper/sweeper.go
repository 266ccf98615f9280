package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-lifecycle-bridge/internal/adapter"
	"github.com/feral-file/ff-lifecycle-bridge/internal/logger"
)

// Sweeper defines the interface for sweeper implementations
// Sweepers are long-running background tasks that perform periodic maintenance
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start begins the sweeper's main loop
	// This is a blocking call that runs until the context is canceled
	Start(ctx context.Context) error

	// Stop gracefully stops the sweeper
	// This should wait for any in-progress work to complete
	Stop(ctx context.Context) error

	// RunOnce performs a single sweep cycle and returns the number of items handled
	RunOnce(ctx context.Context) (int, error)

	// Name returns the sweeper's name for logging and identification
	Name() string
}

// loop drives a sweep cycle until stopped. When a cycle handles nothing the
// loop sleeps for the idle interval before the next one.
type loop struct {
	name      string
	clock     adapter.Clock
	interval  time.Duration
	running   atomic.Bool
	stopOnce  sync.Once
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

func newLoop(name string, clock adapter.Clock, interval time.Duration) *loop {
	return &loop{
		name:      name,
		clock:     clock,
		interval:  interval,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (l *loop) run(ctx context.Context, cycle func(ctx context.Context) (int, error)) error {
	if !l.running.CompareAndSwap(false, true) {
		return fmt.Errorf("%s already running", l.name)
	}
	defer func() {
		l.running.Store(false)
		close(l.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting sweeper",
		zap.String("sweeper", l.name),
		zap.Duration("interval", l.interval))

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Sweeper stopping due to context cancellation",
				zap.String("sweeper", l.name), zap.Error(ctx.Err()))
			return nil
		case <-l.stopChan:
			logger.InfoCtx(ctx, "Sweeper stop requested", zap.String("sweeper", l.name))
			return nil
		default:
		}

		handled, err := cycle(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err, zap.String("sweeper", l.name))
		}
		if handled == 0 || err != nil {
			l.sleep(ctx)
		}
	}
}

func (l *loop) stop(ctx context.Context) error {
	if !l.running.Load() {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping sweeper", zap.String("sweeper", l.name))
	l.stopOnce.Do(func() { close(l.stopChan) })

	select {
	case <-l.stoppedCh:
		logger.InfoCtx(ctx, "Sweeper stopped gracefully", zap.String("sweeper", l.name))
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Sweeper stop interrupted by context timeout", zap.String("sweeper", l.name))
		return ctx.Err()
	}
}

// sleep waits for the idle interval; returns false if interrupted
func (l *loop) sleep(ctx context.Context) bool {
	select {
	case <-l.clock.After(l.interval):
		return true
	case <-ctx.Done():
		return false
	case <-l.stopChan:
		return false
	}
}
