package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-lifecycle-bridge/internal/adapter"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/lifecycle"
	"github.com/feral-file/ff-lifecycle-bridge/internal/logger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/metrics"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store/schema"
)

const (
	OrphanSweeperName = "ledger-orphan"

	ResultResolved       = "resolved"
	ResultAlreadyDeleted = "already_deleted"
	ResultFailed         = "failed"
	ResultNotCreated     = "not_created"
)

// OrphanSweeperConfig holds configuration for the ledger orphan sweeper
type OrphanSweeperConfig struct {
	BatchSize      int           // Orphans fetched per cycle
	WorkerPoolSize int           // Concurrent ledger deletes
	MaxAttempts    int           // Orphans with this many failed retries are left for an operator
	Interval       time.Duration // Idle wait when no orphan is pending
	RetryInterval  time.Duration // Initial backoff of index writes
}

// orphanSweeper retries the compensating ledger delete of entities that
// were created on the ledger but never indexed
type orphanSweeper struct {
	config  *OrphanSweeperConfig
	store   store.Store
	ledger  ledger.Client
	metrics *metrics.Metrics
	*loop
}

// NewOrphanSweeper creates a new ledger orphan sweeper
func NewOrphanSweeper(
	config *OrphanSweeperConfig,
	st store.Store,
	client ledger.Client,
	clock adapter.Clock,
	m *metrics.Metrics,
) Sweeper {
	return &orphanSweeper{
		config:  config,
		store:   st,
		ledger:  client,
		metrics: m,
		loop:    newLoop(OrphanSweeperName, clock, config.Interval),
	}
}

func (s *orphanSweeper) Name() string {
	return OrphanSweeperName
}

func (s *orphanSweeper) Start(ctx context.Context) error {
	return s.run(ctx, s.RunOnce)
}

func (s *orphanSweeper) Stop(ctx context.Context) error {
	return s.stop(ctx)
}

// RunOnce retires one batch of unresolved orphans
func (s *orphanSweeper) RunOnce(ctx context.Context) (int, error) {
	orphans, err := s.store.ListUnresolvedLedgerOrphans(ctx, s.config.MaxAttempts, s.config.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list ledger orphans: %w", err)
	}
	if len(orphans) == 0 {
		logger.DebugCtx(ctx, "No ledger orphans pending")
		return 0, nil
	}

	logger.InfoCtx(ctx, "Found ledger orphans to retire", zap.Int("count", len(orphans)))

	pool := pond.NewPool(s.config.WorkerPoolSize, pond.WithContext(ctx))
	defer pool.StopAndWait()

	var resolved, failed atomic.Int32
	group := pool.NewGroup()
	for _, orphan := range orphans {
		group.Submit(func() {
			if s.retire(ctx, orphan) {
				resolved.Add(1)
			} else {
				failed.Add(1)
			}
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}

	logger.InfoCtx(ctx, "Ledger orphan cycle completed",
		zap.Int32("resolved", resolved.Load()),
		zap.Int32("failed", failed.Load()))

	return len(orphans), nil
}

// retire deletes the orphaned entity on the ledger unless it is already gone,
// then marks the orphan resolved. An orphan recorded by transaction hash is
// first resolved to its entity id from the receipt. Failures are counted on
// the orphan row.
func (s *orphanSweeper) retire(ctx context.Context, orphan schema.LedgerOrphan) bool {
	fields := []zap.Field{
		zap.String("orphanID", orphan.ID),
		zap.String("operationID", orphan.OperationID),
		zap.String("stage", string(orphan.StageType)),
		zap.Uint64("entityID", orphan.EntityID),
		zap.String("txHash", orphan.TxHash),
	}

	result, err := s.retireEntity(ctx, orphan)

	if err != nil {
		logger.WarnCtx(ctx, "Ledger orphan retry failed", append(fields, zap.Error(err))...)
		if incErr := s.withRetry(ctx, func() error {
			return s.store.IncrementLedgerOrphanAttempts(ctx, orphan.ID, err.Error())
		}); incErr != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to record orphan attempt: %w", incErr), fields...)
		}
		s.metrics.IncSweep(OrphanSweeperName, ResultFailed)
		return false
	}

	if err := s.withRetry(ctx, func() error {
		return s.store.ResolveLedgerOrphan(ctx, orphan.ID)
	}); err != nil {
		// the ledger delete is done; the next cycle will see the entity deleted
		logger.ErrorCtx(ctx, fmt.Errorf("failed to resolve ledger orphan: %w", err), fields...)
		s.metrics.IncSweep(OrphanSweeperName, ResultFailed)
		return false
	}

	logger.InfoCtx(ctx, "Ledger orphan retired", append(fields, zap.String("result", result))...)
	s.metrics.IncSweep(OrphanSweeperName, result)
	return true
}

func (s *orphanSweeper) retireEntity(ctx context.Context, orphan schema.LedgerOrphan) (string, error) {
	id := orphan.EntityID
	if id == 0 && orphan.TxHash != "" {
		var err error
		id, err = lifecycle.ConfirmCreated(ctx, s.ledger, orphan.StageType, orphan.TxHash)
		if errors.Is(err, ledger.ErrTransactionReverted) {
			return ResultNotCreated, nil
		}
		if err != nil {
			return "", err
		}
	}

	entity, err := lifecycle.GetEntity(ctx, s.ledger, orphan.StageType, id)
	if err != nil {
		return "", err
	}
	meta := entity.Meta()
	if !meta.Exists() || meta.Deleted() {
		return ResultAlreadyDeleted, nil
	}
	if _, err := lifecycle.DeleteEntity(ctx, s.ledger, orphan.StageType, id); err != nil {
		return "", err
	}
	return ResultResolved, nil
}

// withRetry retries an index write a few times with exponential backoff
func (s *orphanSweeper) withRetry(ctx context.Context, operation func() error) error {
	bo := backoff.NewExponentialBackOff()
	if s.config.RetryInterval > 0 {
		bo.InitialInterval = s.config.RetryInterval
	}
	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, 3), ctx))
}
