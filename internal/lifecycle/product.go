package lifecycle

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store"
)

// CreateProductBatch makes a product batch out of a sold batch owned by the manufacturer
func (s *service) CreateProductBatch(ctx context.Context, credential string, input CreateProductBatchInput) (*Created, error) {
	out, err := s.runSaga(ctx, credential, saga{
		stage:  domain.StageProduct,
		action: domain.ActionCreate,
		input:  &input,
		precheck: func(ctx context.Context, actor *domain.Actor) error {
			sold, err := s.getSoldBatch(ctx, input.SoldBatchID)
			if err != nil {
				return err
			}
			if err := checkOwned(sold.LedgerMeta, actor.Address); err != nil {
				return err
			}
			var unused uint64
			if sold.Quantity > sold.UsedQuantity {
				unused = sold.Quantity - sold.UsedQuantity
			}
			if unused < input.Quantity {
				return domain.NewDomainError(domain.CodeInsufficientAvailableQuantity,
					fmt.Errorf("sold batch %d has %d unused, %d requested", sold.ID, unused, input.Quantity))
			}

			inUse, err := s.ledger.Call(ctx, schema.ContractProductBatch, "trackingCodeInUse", input.TrackingCode)
			if err != nil {
				return err
			}
			taken, err := inUse.Bool()
			if err != nil {
				return domain.NewInternalError("decode trackingCodeInUse", err)
			}
			if taken {
				return domain.NewConflictError(domain.CodeAlreadyInUse,
					fmt.Errorf("tracking code %s already in use", input.TrackingCode))
			}
			return nil
		},
		mutate: func(ctx context.Context, actor *domain.Actor) (outcome, error) {
			composition, err := domain.EncodeComposition(input.Composition)
			if err != nil {
				return outcome{}, domain.NewValidationError(err.Error())
			}

			events, err := s.ledger.Transact(ctx, schema.ContractProductBatch, "createProductBatch",
				ledger.BigID(input.SoldBatchID), input.Name, ledger.BigID(input.Quantity), input.TrackingCode, composition,
				actor.Address)
			if err != nil {
				return outcome{}, err
			}

			id, err := CreatedID(domain.StageProduct, events)
			if err != nil {
				return outcome{}, err
			}
			origin := input.SoldBatchID
			return outcome{id: id, originID: &origin, ownerAccountID: actor.AccountID}, nil
		},
		index: func(ctx context.Context, actor *domain.Actor, out outcome) error {
			_, err := s.store.CreateOwnership(ctx, store.CreateOwnershipInput{
				EntityID:       out.id,
				OriginEntityID: out.originID,
				OwnerAccountID: out.ownerAccountID,
				StageType:      domain.StageProduct,
			})
			return err
		},
		compensate: func(ctx context.Context, out outcome) error {
			_, err := s.ledger.Transact(ctx, schema.ContractProductBatch, "deleteProductBatch", ledger.BigID(out.id))
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return &Created{ID: out.id}, nil
}
