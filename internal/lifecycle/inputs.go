package lifecycle

import (
	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

// CreateRawBatchInput registers a raw batch owned by the producer
type CreateRawBatchInput struct {
	Name        string             `json:"name" validate:"required,max=256"`
	Quantity    uint64             `json:"quantity" validate:"gt=0"`
	Composition domain.Composition `json:"composition" validate:"required,min=1,dive"`
}

// SellRawBatchInput sells part of a raw batch to another account
type SellRawBatchInput struct {
	RawBatchID     uint64 `json:"-" validate:"required"`
	Quantity       uint64 `json:"quantity" validate:"gt=0"`
	BuyerAccountID string `json:"buyer_account_id" validate:"required"`
}

// CreateProductBatchInput makes a product batch out of a sold batch
type CreateProductBatchInput struct {
	SoldBatchID  uint64             `json:"sold_batch_id" validate:"required"`
	Name         string             `json:"name" validate:"required,max=256"`
	Quantity     uint64             `json:"quantity" validate:"gt=0"`
	TrackingCode string             `json:"tracking_code" validate:"required,max=128"`
	Composition  domain.Composition `json:"composition" validate:"required,min=1,dive"`
}

// CreateWasteItemInput registers a discarded product for a depositor
type CreateWasteItemInput struct {
	ProductBatchID     uint64 `json:"product_batch_id" validate:"required"`
	DepositorAccountID string `json:"depositor_account_id" validate:"required"`
	Weight             uint64 `json:"weight" validate:"gt=0"`
}

// RecycleWasteItemsInput turns waste items into a recycled batch
type RecycleWasteItemsInput struct {
	WasteItemIDs []uint64          `json:"waste_item_ids" validate:"required,min=1,unique,dive,required"`
	Composition  domain.Composition `json:"composition" validate:"required,min=1,dive"`
	Quantity     uint64             `json:"quantity" validate:"gt=0"`
}

// Page bounds a list query
type Page struct {
	Limit  int `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `form:"offset" validate:"omitempty,min=0"`
}

// Created is returned by operations that create a ledger entity
type Created struct {
	ID uint64 `json:"id"`
}

// Owned is an entity listed by owner
type Owned struct {
	IndexID  string       `json:"index_id"`
	Stage    domain.Stage `json:"stage"`
	OriginID *uint64      `json:"origin_id,omitempty"`
	Entity   interface{}  `json:"entity"`
}

// Watched is an entity listed by watcher
type Watched struct {
	WatchID string       `json:"watch_id"`
	Stage   domain.Stage `json:"stage"`
	Entity  interface{}  `json:"entity"`
}
