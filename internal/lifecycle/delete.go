package lifecycle

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger"
)

// Delete soft-deletes an entity on the ledger and removes its ownership and watch rows.
// Entities that already spawned downstream entities cannot be deleted. The ledger
// delete is terminal, so a failed index delete is reported without compensation.
func (s *service) Delete(ctx context.Context, credential string, stage domain.Stage, id uint64) error {
	if !domain.IsValidStage(stage) {
		return domain.NewValidationError(fmt.Sprintf("unknown stage %q", stage))
	}
	if id == 0 {
		return domain.NewValidationError("id is required")
	}

	_, err := s.runSaga(ctx, credential, saga{
		stage:  stage,
		action: domain.ActionDelete,
		precheck: func(ctx context.Context, actor *domain.Actor) error {
			entity, err := GetEntity(ctx, s.ledger, stage, id)
			if err != nil {
				return err
			}
			if err := checkOwned(entity.Meta(), actor.Address); err != nil {
				return err
			}
			return checkDeletable(entity)
		},
		mutate: func(ctx context.Context, actor *domain.Actor) (outcome, error) {
			if _, err := DeleteEntity(ctx, s.ledger, stage, id); err != nil {
				return outcome{}, err
			}
			return outcome{id: id, ownerAccountID: actor.AccountID}, nil
		},
		index: func(ctx context.Context, actor *domain.Actor, out outcome) error {
			return s.store.DeleteOwnership(ctx, stage, out.id)
		},
	})
	return err
}

// checkDeletable rejects entities that moved past their created state
func checkDeletable(entity ledger.Entity) error {
	switch e := entity.(type) {
	case *domain.RawBatch:
		if e.AvailableQuantity < e.Quantity {
			return domain.NewConflictError(domain.CodeAlreadySold,
				fmt.Errorf("raw batch %d sold %d of %d", e.ID, e.Quantity-e.AvailableQuantity, e.Quantity))
		}
	case *domain.SoldBatch:
		if e.UsedQuantity > 0 {
			return domain.NewConflictError(domain.CodeAlreadySold,
				fmt.Errorf("sold batch %d used %d", e.ID, e.UsedQuantity))
		}
	case *domain.ProductBatch:
		if e.SoldQuantity > 0 {
			return domain.NewConflictError(domain.CodeAlreadySold,
				fmt.Errorf("product batch %d sold %d", e.ID, e.SoldQuantity))
		}
	case *domain.WasteItem:
		if e.Recycled() {
			return domain.NewConflictError(domain.CodeAlreadyRecycled,
				fmt.Errorf("waste item %d recycled into %d", e.ID, e.RecycledBatchID))
		}
	}
	return nil
}
