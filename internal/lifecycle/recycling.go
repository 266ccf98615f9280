package lifecycle

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store"
)

// CreateWasteItem registers a discarded product; the recycler owns the item
// and the depositor watches it
func (s *service) CreateWasteItem(ctx context.Context, credential string, input CreateWasteItemInput) (*Created, error) {
	var depositor common.Address

	out, err := s.runSaga(ctx, credential, saga{
		stage:  domain.StageWaste,
		action: domain.ActionCreate,
		input:  &input,
		precheck: func(ctx context.Context, actor *domain.Actor) error {
			product, err := s.getProductBatch(ctx, input.ProductBatchID)
			if err != nil {
				return err
			}
			if err := checkLive(product.LedgerMeta); err != nil {
				return err
			}

			depositor, err = s.resolveAccount(ctx, input.DepositorAccountID)
			return err
		},
		mutate: func(ctx context.Context, actor *domain.Actor) (outcome, error) {
			events, err := s.ledger.Transact(ctx, schema.ContractRecycling, "createWasteItem",
				ledger.BigID(input.ProductBatchID), depositor, ledger.BigID(input.Weight), actor.Address)
			if err != nil {
				return outcome{}, err
			}

			id, err := CreatedID(domain.StageWaste, events)
			if err != nil {
				return outcome{}, err
			}
			origin := input.ProductBatchID
			return outcome{id: id, originID: &origin, ownerAccountID: actor.AccountID}, nil
		},
		index: func(ctx context.Context, actor *domain.Actor, out outcome) error {
			_, err := s.store.CreateOwnershipWithWatch(ctx,
				store.CreateOwnershipInput{
					EntityID:       out.id,
					OriginEntityID: out.originID,
					OwnerAccountID: out.ownerAccountID,
					StageType:      domain.StageWaste,
				},
				store.CreateWatchInput{
					WatcherAccountID: input.DepositorAccountID,
					WatchedEntityID:  out.id,
					StageType:        domain.StageWaste,
				})
			return err
		},
		compensate: func(ctx context.Context, out outcome) error {
			_, err := s.ledger.Transact(ctx, schema.ContractRecycling, "deleteWasteItem", ledger.BigID(out.id))
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return &Created{ID: out.id}, nil
}

// RecycleWasteItems consumes waste items owned by the recycler into a recycled batch
func (s *service) RecycleWasteItems(ctx context.Context, credential string, input RecycleWasteItemsInput) (*Created, error) {
	out, err := s.runSaga(ctx, credential, saga{
		stage:  domain.StageRecycled,
		action: domain.ActionRecycle,
		input:  &input,
		precheck: func(ctx context.Context, actor *domain.Actor) error {
			items, err := s.getWasteItems(ctx, input.WasteItemIDs)
			if err != nil {
				return err
			}
			for i, item := range items {
				if err := checkOwned(item.LedgerMeta, actor.Address); err != nil {
					return err
				}
				if item.Recycled() {
					return domain.NewConflictError(domain.CodeAlreadyRecycled,
						fmt.Errorf("waste item %d already recycled into %d", input.WasteItemIDs[i], item.RecycledBatchID))
				}
			}
			return nil
		},
		mutate: func(ctx context.Context, actor *domain.Actor) (outcome, error) {
			composition, err := domain.EncodeComposition(input.Composition)
			if err != nil {
				return outcome{}, domain.NewValidationError(err.Error())
			}

			events, err := s.ledger.Transact(ctx, schema.ContractRecycling, "recycleWasteItems",
				ledger.BigIDs(input.WasteItemIDs), composition, ledger.BigID(input.Quantity), actor.Address)
			if err != nil {
				return outcome{}, err
			}

			id, err := CreatedID(domain.StageRecycled, events)
			if err != nil {
				return outcome{}, err
			}
			origin := input.WasteItemIDs[0]
			return outcome{id: id, originID: &origin, ownerAccountID: actor.AccountID}, nil
		},
		index: func(ctx context.Context, actor *domain.Actor, out outcome) error {
			_, err := s.store.CreateOwnership(ctx, store.CreateOwnershipInput{
				EntityID:       out.id,
				OriginEntityID: out.originID,
				OwnerAccountID: out.ownerAccountID,
				StageType:      domain.StageRecycled,
			})
			return err
		},
		compensate: func(ctx context.Context, out outcome) error {
			_, err := s.ledger.Transact(ctx, schema.ContractRecycling, "deleteRecycledBatch", ledger.BigID(out.id))
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return &Created{ID: out.id}, nil
}
