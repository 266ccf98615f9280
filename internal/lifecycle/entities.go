package lifecycle

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/codec"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
)

// StageMethods names the ledger methods serving one stage and the event
// announcing a new entity of the stage
type StageMethods struct {
	Contract   string
	Get        string
	GetMany    string
	Delete     string
	Created    string
	CreatedArg int
}

var stageMethods = map[domain.Stage]StageMethods{
	domain.StageRaw:      {schema.ContractRawBatch, "getRawBatch", "getRawBatches", "deleteRawBatch", "RawBatchCreated", 0},
	domain.StageSold:     {schema.ContractRawBatch, "getSoldBatch", "getSoldBatches", "deleteSoldBatch", "RawBatchSold", 1},
	domain.StageProduct:  {schema.ContractProductBatch, "getProductBatch", "getProductBatches", "deleteProductBatch", "ProductBatchCreated", 0},
	domain.StageWaste:    {schema.ContractRecycling, "getWasteItem", "getWasteItems", "deleteWasteItem", "WasteItemCreated", 0},
	domain.StageRecycled: {schema.ContractRecycling, "getRecycledBatch", "getRecycledBatches", "deleteRecycledBatch", "RecycledBatchCreated", 0},
}

// MethodsFor returns the ledger methods of a stage
func MethodsFor(stage domain.Stage) (StageMethods, error) {
	m, ok := stageMethods[stage]
	if !ok {
		return StageMethods{}, domain.NewValidationError(fmt.Sprintf("unknown stage %q", stage))
	}
	return m, nil
}

// GetEntity reads one entity of a stage from the ledger
func GetEntity(ctx context.Context, client ledger.Client, stage domain.Stage, id uint64) (ledger.Entity, error) {
	m, err := MethodsFor(stage)
	if err != nil {
		return nil, err
	}
	v, err := client.Call(ctx, m.Contract, m.Get, ledger.BigID(id))
	if err != nil {
		return nil, err
	}
	return ledger.DecodeEntity(stage, v)
}

// GetEntities reads entities of a stage with the array getter, in ids order
func GetEntities(ctx context.Context, client ledger.Client, stage domain.Stage, ids []uint64) ([]ledger.Entity, error) {
	m, err := MethodsFor(stage)
	if err != nil {
		return nil, err
	}
	v, err := client.Call(ctx, m.Contract, m.GetMany, ledger.BigIDs(ids))
	if err != nil {
		return nil, err
	}
	items, err := v.Items()
	if err != nil {
		return nil, domain.NewInternalError("decode "+m.GetMany, err)
	}
	if len(items) != len(ids) {
		return nil, domain.NewInternalError("decode "+m.GetMany,
			fmt.Errorf("requested %d entities, ledger returned %d", len(ids), len(items)))
	}

	entities := make([]ledger.Entity, len(items))
	for i, item := range items {
		entities[i], err = ledger.DecodeEntity(stage, item)
		if err != nil {
			return nil, err
		}
	}
	return entities, nil
}

// CreatedID returns the id of the entity of a stage created by a transaction
func CreatedID(stage domain.Stage, events []codec.Event) (uint64, error) {
	m, err := MethodsFor(stage)
	if err != nil {
		return 0, err
	}
	return ledger.EventID(events, m.Created, m.CreatedArg)
}

// ConfirmCreated resolves the id of the entity of a stage created by a
// transaction that was sent but never confirmed
func ConfirmCreated(ctx context.Context, client ledger.Client, stage domain.Stage, txHash string) (uint64, error) {
	m, err := MethodsFor(stage)
	if err != nil {
		return 0, err
	}
	events, err := client.Confirm(ctx, m.Contract, common.HexToHash(txHash))
	if err != nil {
		return 0, err
	}
	return CreatedID(stage, events)
}

// DeleteEntity soft-deletes an entity on the ledger
func DeleteEntity(ctx context.Context, client ledger.Client, stage domain.Stage, id uint64) ([]codec.Event, error) {
	m, err := MethodsFor(stage)
	if err != nil {
		return nil, err
	}
	return client.Transact(ctx, m.Contract, m.Delete, ledger.BigID(id))
}

// checkLive rejects entities that were never created or are soft-deleted
func checkLive(meta domain.LedgerMeta) error {
	if !meta.Exists() {
		return domain.NewNotFoundError(domain.CodeEntityNotFound)
	}
	if meta.Deleted() {
		return domain.NewNotFoundError(domain.CodeEntityDeleted)
	}
	return nil
}

// checkOwned rejects live entities the actor does not own
func checkOwned(meta domain.LedgerMeta, owner common.Address) error {
	if err := checkLive(meta); err != nil {
		return err
	}
	if !meta.OwnedBy(owner) {
		return domain.NewForbiddenError(domain.CodeNotOwner)
	}
	return nil
}

func (s *service) getRawBatch(ctx context.Context, id uint64) (*domain.RawBatch, error) {
	v, err := s.ledger.Call(ctx, schema.ContractRawBatch, "getRawBatch", ledger.BigID(id))
	if err != nil {
		return nil, err
	}
	return ledger.DecodeRawBatch(v)
}

func (s *service) getSoldBatch(ctx context.Context, id uint64) (*domain.SoldBatch, error) {
	v, err := s.ledger.Call(ctx, schema.ContractRawBatch, "getSoldBatch", ledger.BigID(id))
	if err != nil {
		return nil, err
	}
	return ledger.DecodeSoldBatch(v)
}

func (s *service) getProductBatch(ctx context.Context, id uint64) (*domain.ProductBatch, error) {
	v, err := s.ledger.Call(ctx, schema.ContractProductBatch, "getProductBatch", ledger.BigID(id))
	if err != nil {
		return nil, err
	}
	return ledger.DecodeProductBatch(v)
}

func (s *service) getWasteItems(ctx context.Context, ids []uint64) ([]*domain.WasteItem, error) {
	entities, err := GetEntities(ctx, s.ledger, domain.StageWaste, ids)
	if err != nil {
		return nil, err
	}
	items := make([]*domain.WasteItem, len(entities))
	for i, e := range entities {
		items[i] = e.(*domain.WasteItem)
	}
	return items, nil
}
