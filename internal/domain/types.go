package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Stage represents a lifecycle stage of a container entity
type Stage string

const (
	StageRaw      Stage = "raw"
	StageSold     Stage = "sold"
	StageProduct  Stage = "product"
	StageWaste    Stage = "waste"
	StageRecycled Stage = "recycled"
)

// Stages lists every lifecycle stage in lifecycle order
var Stages = []Stage{StageRaw, StageSold, StageProduct, StageWaste, StageRecycled}

// IsValidStage checks if a stage is valid
func IsValidStage(stage Stage) bool {
	for _, s := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// ParseStage parses a stage from its string or URL form (e.g. "raw-batches")
func ParseStage(s string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw", "raw-batches":
		return StageRaw, nil
	case "sold", "sold-batches":
		return StageSold, nil
	case "product", "product-batches":
		return StageProduct, nil
	case "waste", "waste-items":
		return StageWaste, nil
	case "recycled", "recycled-batches":
		return StageRecycled, nil
	default:
		return "", fmt.Errorf("unknown stage: %s", s)
	}
}

// Action represents an operation on a lifecycle stage
type Action string

const (
	ActionCreate  Action = "create"
	ActionSell    Action = "sell"
	ActionRecycle Action = "recycle"
	ActionDelete  Action = "delete"
	ActionList    Action = "list"
	ActionUnwatch Action = "unwatch"
)

// Role represents the role claimed by an authenticated account
type Role string

const (
	RoleProducer     Role = "producer"
	RoleManufacturer Role = "manufacturer"
	RoleRecycler     Role = "recycler"
	RoleDepositor    Role = "depositor"
	RoleAdmin        Role = "admin"
)

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	return role == RoleProducer ||
		role == RoleManufacturer ||
		role == RoleRecycler ||
		role == RoleDepositor ||
		role == RoleAdmin
}

// Principal is the identity resolved from a verified credential
type Principal struct {
	AccountID string
	Role      Role
}

// Actor is an authorized principal with its resolved ledger address
type Actor struct {
	Principal
	Address common.Address
}

// LedgerMeta holds the fields shared by every ledger entity
type LedgerMeta struct {
	ID        uint64         `json:"id"`
	Owner     common.Address `json:"owner"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt string         `json:"deleted_at"`
}

// Deleted reports whether the entity carries a soft-deletion marker
func (m LedgerMeta) Deleted() bool {
	return m.DeletedAt != NOT_DELETED
}

// Exists reports whether the ledger returned a populated entity.
// The ledger answers lookups of unknown ids with a zero-valued record.
func (m LedgerMeta) Exists() bool {
	return m.Owner != (common.Address{}) && !m.CreatedAt.IsZero()
}

// OwnedBy reports whether the entity is owned by the given address
func (m LedgerMeta) OwnedBy(address common.Address) bool {
	return m.Owner == address
}

// Meta returns the shared ledger fields
func (m LedgerMeta) Meta() LedgerMeta {
	return m
}

// RawBatch is a batch of raw material registered by a producer
type RawBatch struct {
	LedgerMeta
	Name              string      `json:"name"`
	Quantity          uint64      `json:"quantity"`
	AvailableQuantity uint64      `json:"available_quantity"`
	Composition       Composition `json:"composition"`
}

// SoldBatch is the portion of a raw batch sold to a buyer
type SoldBatch struct {
	LedgerMeta
	RawBatchID   uint64 `json:"raw_batch_id"`
	Quantity     uint64 `json:"quantity"`
	UsedQuantity uint64 `json:"used_quantity"`
}

// ProductBatch is a batch of finished products made from a sold batch
type ProductBatch struct {
	LedgerMeta
	SoldBatchID  uint64      `json:"sold_batch_id"`
	Name         string      `json:"name"`
	Quantity     uint64      `json:"quantity"`
	SoldQuantity uint64      `json:"sold_quantity"`
	TrackingCode string      `json:"tracking_code"`
	Composition  Composition `json:"composition"`
}

// WasteItem is a discarded product deposited for recycling
type WasteItem struct {
	LedgerMeta
	ProductBatchID  uint64         `json:"product_batch_id"`
	Depositor       common.Address `json:"depositor"`
	Weight          uint64         `json:"weight"`
	RecycledBatchID uint64         `json:"recycled_batch_id"`
}

// Recycled reports whether the waste item was consumed by a recycled batch
func (w WasteItem) Recycled() bool {
	return w.RecycledBatchID != 0
}

// RecycledBatch is recycled material produced from waste items
type RecycledBatch struct {
	LedgerMeta
	WasteItemIDs []uint64    `json:"waste_item_ids"`
	Composition  Composition `json:"composition"`
	Quantity     uint64      `json:"quantity"`
}

// LifecycleEvent is published after a lifecycle operation completes on both stores
type LifecycleEvent struct {
	OperationID    string    `json:"operation_id"`
	Stage          Stage     `json:"stage"`
	Action         Action    `json:"action"`
	EntityID       uint64    `json:"entity_id"`
	OriginEntityID *uint64   `json:"origin_entity_id,omitempty"`
	OwnerAccountID string    `json:"owner_account_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// OrphanEvent is published when a compensating ledger call failed and an entity was left without index row
type OrphanEvent struct {
	OperationID string    `json:"operation_id"`
	Stage       Stage     `json:"stage"`
	EntityID    uint64    `json:"entity_id,omitempty"`
	TxHash      string    `json:"tx_hash,omitempty"`
	Reason      string    `json:"reason"`
	OccurredAt  time.Time `json:"occurred_at"`
}
