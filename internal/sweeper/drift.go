package sweeper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-lifecycle-bridge/internal/adapter"
	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/lifecycle"
	"github.com/feral-file/ff-lifecycle-bridge/internal/logger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/metrics"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store"
)

const (
	DriftSweeperName = "index-drift"

	ResultConsistent = "consistent"
	ResultPruned     = "pruned"
)

// DriftSweeperConfig holds configuration for the index drift sweeper
type DriftSweeperConfig struct {
	BatchSize int           // Ownership rows audited per stage per cycle
	Interval  time.Duration // Idle wait after a full pass over every stage
}

// driftSweeper walks the ownership index and prunes rows whose entity was
// deleted on the ledger, e.g. when the index delete of a Delete operation failed
type driftSweeper struct {
	config  *DriftSweeperConfig
	store   store.Store
	ledger  ledger.Client
	metrics *metrics.Metrics
	*loop
}

// NewDriftSweeper creates a new index drift sweeper
func NewDriftSweeper(
	config *DriftSweeperConfig,
	st store.Store,
	client ledger.Client,
	clock adapter.Clock,
	m *metrics.Metrics,
) Sweeper {
	return &driftSweeper{
		config:  config,
		store:   st,
		ledger:  client,
		metrics: m,
		loop:    newLoop(DriftSweeperName, clock, config.Interval),
	}
}

func (s *driftSweeper) Name() string {
	return DriftSweeperName
}

func (s *driftSweeper) Start(ctx context.Context) error {
	return s.run(ctx, s.RunOnce)
}

func (s *driftSweeper) Stop(ctx context.Context) error {
	return s.stop(ctx)
}

// RunOnce audits the next batch of every stage. A stage whose cursor reached
// the end of the index starts over on the following cycle.
func (s *driftSweeper) RunOnce(ctx context.Context) (int, error) {
	total := 0
	for _, stage := range domain.Stages {
		n, err := s.auditStage(ctx, stage)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func driftCursor(stage domain.Stage) string {
	return fmt.Sprintf("drift:%s", stage)
}

func (s *driftSweeper) auditStage(ctx context.Context, stage domain.Stage) (int, error) {
	cursor := driftCursor(stage)
	after, err := s.store.GetCursor(ctx, cursor)
	if err != nil {
		return 0, err
	}

	rows, err := s.store.ListOwnershipsAfter(ctx, stage, after, s.config.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		if after != "" {
			return 0, s.store.SetCursor(ctx, cursor, "")
		}
		return 0, nil
	}

	ids := make([]uint64, len(rows))
	for i, row := range rows {
		ids[i] = row.EntityID
	}
	entities, err := lifecycle.GetEntities(ctx, s.ledger, stage, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s entities: %w", stage, err)
	}

	for i, row := range rows {
		meta := entities[i].Meta()
		if meta.Exists() && !meta.Deleted() {
			s.metrics.IncSweep(DriftSweeperName, ResultConsistent)
			continue
		}

		if err := s.store.DeleteOwnership(ctx, stage, row.EntityID); err != nil {
			return 0, err
		}
		logger.WarnCtx(ctx, "Pruned ownership of entity gone from the ledger",
			zap.String("stage", string(stage)),
			zap.Uint64("entityID", row.EntityID),
			zap.String("ownerAccountID", row.OwnerAccountID))
		s.metrics.IncSweep(DriftSweeperName, ResultPruned)
	}

	if err := s.store.SetCursor(ctx, cursor, rows[len(rows)-1].ID); err != nil {
		return 0, err
	}
	return len(rows), nil
}
