package lifecycle

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/logger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/metrics"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store"
)

// outcome identifies the ledger entity an operation produced or removed
type outcome struct {
	id             uint64
	originID       *uint64
	ownerAccountID string
}

// saga is one lifecycle operation: a ledger write, the index write that mirrors it
// and the ledger write that reverses the first one
type saga struct {
	stage  domain.Stage
	action domain.Action
	// creates is the stage of the entity mutate produces when it differs from stage
	creates domain.Stage
	// input is validated with its struct tags; nil skips validation
	input interface{}
	// precheck fails fast against current ledger state; the ledger stays the arbiter
	precheck func(ctx context.Context, actor *domain.Actor) error
	// mutate performs the ledger write
	mutate func(ctx context.Context, actor *domain.Actor) (outcome, error)
	// index mirrors the ledger write into the ownership index
	index func(ctx context.Context, actor *domain.Actor, out outcome) error
	// compensate reverses mutate; nil when the ledger write is terminal
	compensate func(ctx context.Context, out outcome) error
}

// orphanPayload is persisted with a ledger orphan for the sweeper and operators
type orphanPayload struct {
	Action         domain.Action `json:"action"`
	ActorAccountID string        `json:"actor_account_id"`
	OwnerAccountID string        `json:"owner_account_id"`
	OriginEntityID *uint64       `json:"origin_entity_id,omitempty"`
}

// runSaga executes the protocol shared by every lifecycle operation:
// authenticate and authorize, validate, write the ledger, write the index
// and, when the index write fails, compensate on the ledger.
// A failed compensation is recorded as an orphan and never replaces the index error.
func (s *service) runSaga(ctx context.Context, credential string, op saga) (outcome, error) {
	info := logger.SagaInfo{
		OperationID: uuid.NewString(),
		Stage:       string(op.stage),
		Action:      string(op.action),
	}

	actor, err := s.authenticate(ctx, credential, op.stage, op.action)
	if err != nil {
		s.metrics.IncSaga(info.Stage, info.Action, metrics.OutcomeRejected)
		return outcome{}, domain.AsError(err)
	}
	info.AccountID = actor.AccountID
	ctx = logger.WithSaga(ctx, info)

	if op.input != nil {
		if err := validateInput(s.validate, op.input); err != nil {
			s.metrics.IncSaga(info.Stage, info.Action, metrics.OutcomeRejected)
			return outcome{}, err
		}
	}

	if op.precheck != nil {
		if err := op.precheck(ctx, actor); err != nil {
			s.metrics.IncSaga(info.Stage, info.Action, metrics.OutcomeRejected)
			logger.InfoSaga(ctx, info, "Precondition failed", zap.Error(err))
			return outcome{}, domain.AsError(err)
		}
	}

	out, err := op.mutate(ctx, actor)
	if err != nil {
		s.metrics.IncSaga(info.Stage, info.Action, metrics.OutcomeLedgerFailed)
		logger.WarnSaga(ctx, info, "Ledger write failed", zap.Error(err))
		// an unconfirmed create may still be mined; leave it to the orphan sweeper
		if pending, ok := ledger.AsPending(err); ok && op.compensate != nil {
			s.recordOrphan(context.WithoutCancel(ctx), info, op, outcome{}, pending.TxHash.Hex(), err)
		}
		return outcome{}, domain.AsError(err)
	}

	if err := op.index(ctx, actor, out); err != nil {
		indexErr := domain.NewInternalError("write ownership index", err)
		logger.ErrorSaga(ctx, info, indexErr, zap.Uint64("entityID", out.id))
		s.compensate(context.WithoutCancel(ctx), info, op, out)
		return outcome{}, indexErr
	}

	s.metrics.IncSaga(info.Stage, info.Action, metrics.OutcomeSuccess)
	logger.InfoSaga(ctx, info, "Lifecycle operation completed", zap.Uint64("entityID", out.id))
	s.publish(ctx, info, op, out)

	return out, nil
}

func (s *service) compensate(ctx context.Context, info logger.SagaInfo, op saga, out outcome) {
	if op.compensate == nil {
		s.metrics.IncSaga(info.Stage, info.Action, metrics.OutcomeIndexFailed)
		return
	}

	if err := op.compensate(ctx, out); err != nil {
		s.metrics.IncSaga(info.Stage, info.Action, metrics.OutcomeCompensationLost)
		s.recordOrphan(ctx, info, op, out, "", err)
		return
	}

	s.metrics.IncSaga(info.Stage, info.Action, metrics.OutcomeCompensated)
	logger.WarnSaga(ctx, info, "Ledger write compensated", zap.Uint64("entityID", out.id))
}

// recordOrphan persists and publishes a ledger entity left without index row.
// An unconfirmed create has no entity id yet and is recorded by its transaction hash.
// Failures here are logged only.
func (s *service) recordOrphan(ctx context.Context, info logger.SagaInfo, op saga, out outcome, txHash string, cause error) {
	stage := op.createdStage()
	logger.ErrorSaga(ctx, info, fmt.Errorf("ledger entity may be orphaned: %w", cause),
		zap.String("createdStage", string(stage)),
		zap.Uint64("entityID", out.id),
		zap.String("txHash", txHash))
	s.metrics.IncOrphan(string(stage))

	payload, err := json.Marshal(orphanPayload{
		Action:         op.action,
		ActorAccountID: info.AccountID,
		OwnerAccountID: out.ownerAccountID,
		OriginEntityID: out.originID,
	})
	if err != nil {
		logger.ErrorSaga(ctx, info, fmt.Errorf("failed to marshal orphan payload: %w", err))
	}

	if _, err := s.store.CreateLedgerOrphan(ctx, store.CreateLedgerOrphanInput{
		OperationID: info.OperationID,
		StageType:   stage,
		EntityID:    out.id,
		TxHash:      txHash,
		Reason:      cause.Error(),
		Payload:     payload,
	}); err != nil {
		logger.ErrorSaga(ctx, info, fmt.Errorf("failed to persist ledger orphan: %w", err),
			zap.Uint64("entityID", out.id))
	}

	if err := s.publisher.PublishOrphan(ctx, &domain.OrphanEvent{
		OperationID: info.OperationID,
		Stage:       stage,
		EntityID:    out.id,
		TxHash:      txHash,
		Reason:      cause.Error(),
		OccurredAt:  s.clock.Now(),
	}); err != nil {
		logger.WarnSaga(ctx, info, "Failed to publish orphan event", zap.Error(err))
	}
}

func (s *service) publish(ctx context.Context, info logger.SagaInfo, op saga, out outcome) {
	err := s.publisher.PublishLifecycleEvent(ctx, &domain.LifecycleEvent{
		OperationID:    info.OperationID,
		Stage:          op.stage,
		Action:         op.action,
		EntityID:       out.id,
		OriginEntityID: out.originID,
		OwnerAccountID: out.ownerAccountID,
		OccurredAt:     s.clock.Now(),
	})
	if err != nil {
		logger.WarnSaga(ctx, info, "Failed to publish lifecycle event", zap.Error(err))
	}
}

func (op saga) createdStage() domain.Stage {
	if op.creates != "" {
		return op.creates
	}
	return op.stage
}
