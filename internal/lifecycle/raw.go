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

// CreateRawBatch registers a raw batch on the ledger and indexes it under the producer
func (s *service) CreateRawBatch(ctx context.Context, credential string, input CreateRawBatchInput) (*Created, error) {
	out, err := s.runSaga(ctx, credential, saga{
		stage:  domain.StageRaw,
		action: domain.ActionCreate,
		input:  &input,
		mutate: func(ctx context.Context, actor *domain.Actor) (outcome, error) {
			composition, err := domain.EncodeComposition(input.Composition)
			if err != nil {
				return outcome{}, domain.NewValidationError(err.Error())
			}

			events, err := s.ledger.Transact(ctx, schema.ContractRawBatch, "createRawBatch",
				input.Name, ledger.BigID(input.Quantity), composition, actor.Address)
			if err != nil {
				return outcome{}, err
			}

			id, err := CreatedID(domain.StageRaw, events)
			if err != nil {
				return outcome{}, err
			}
			return outcome{id: id, ownerAccountID: actor.AccountID}, nil
		},
		index: func(ctx context.Context, actor *domain.Actor, out outcome) error {
			_, err := s.store.CreateOwnership(ctx, store.CreateOwnershipInput{
				EntityID:       out.id,
				OwnerAccountID: out.ownerAccountID,
				StageType:      domain.StageRaw,
			})
			return err
		},
		compensate: func(ctx context.Context, out outcome) error {
			_, err := s.ledger.Transact(ctx, schema.ContractRawBatch, "deleteRawBatch", ledger.BigID(out.id))
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return &Created{ID: out.id}, nil
}

// SellRawBatch sells part of a raw batch; the resulting sold batch is indexed under the buyer
func (s *service) SellRawBatch(ctx context.Context, credential string, input SellRawBatchInput) (*Created, error) {
	var buyer common.Address

	out, err := s.runSaga(ctx, credential, saga{
		stage:   domain.StageRaw,
		action:  domain.ActionSell,
		creates: domain.StageSold,
		input:   &input,
		precheck: func(ctx context.Context, actor *domain.Actor) error {
			batch, err := s.getRawBatch(ctx, input.RawBatchID)
			if err != nil {
				return err
			}
			if err := checkOwned(batch.LedgerMeta, actor.Address); err != nil {
				return err
			}
			if batch.AvailableQuantity < input.Quantity {
				return domain.NewDomainError(domain.CodeInsufficientAvailableQuantity,
					fmt.Errorf("raw batch %d has %d available, %d requested", batch.ID, batch.AvailableQuantity, input.Quantity))
			}

			buyer, err = s.resolveAccount(ctx, input.BuyerAccountID)
			return err
		},
		mutate: func(ctx context.Context, actor *domain.Actor) (outcome, error) {
			events, err := s.ledger.Transact(ctx, schema.ContractRawBatch, "sellRawBatch",
				ledger.BigID(input.RawBatchID), ledger.BigID(input.Quantity), buyer)
			if err != nil {
				return outcome{}, err
			}

			id, err := CreatedID(domain.StageSold, events)
			if err != nil {
				return outcome{}, err
			}
			origin := input.RawBatchID
			return outcome{id: id, originID: &origin, ownerAccountID: input.BuyerAccountID}, nil
		},
		index: func(ctx context.Context, actor *domain.Actor, out outcome) error {
			_, err := s.store.CreateOwnership(ctx, store.CreateOwnershipInput{
				EntityID:       out.id,
				OriginEntityID: out.originID,
				OwnerAccountID: out.ownerAccountID,
				StageType:      domain.StageSold,
			})
			return err
		},
		compensate: func(ctx context.Context, out outcome) error {
			_, err := s.ledger.Transact(ctx, schema.ContractRawBatch, "deleteSoldBatch", ledger.BigID(out.id))
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return &Created{ID: out.id}, nil
}
