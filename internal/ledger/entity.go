package ledger

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/codec"
)

// record reads typed fields out of a decoded tuple, keeping the first error
type record struct {
	value codec.Value
	err   error
}

func (r *record) field(name string) (codec.Value, bool) {
	if r.err != nil {
		return codec.Value{}, false
	}
	v, ok := r.value.Field(name)
	if !ok {
		r.err = fmt.Errorf("missing field %s", name)
		return codec.Value{}, false
	}
	return v, true
}

func (r *record) uint(name string) uint64 {
	v, ok := r.field(name)
	if !ok {
		return 0
	}
	n, err := v.Uint64()
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
	}
	return n
}

func (r *record) uints(name string) []uint64 {
	v, ok := r.field(name)
	if !ok {
		return nil
	}
	items, err := v.Items()
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
		return nil
	}
	out := make([]uint64, len(items))
	for i, item := range items {
		n, err := item.Uint64()
		if err != nil {
			r.err = fmt.Errorf("%s[%d]: %w", name, i, err)
			return nil
		}
		out[i] = n
	}
	return out
}

func (r *record) str(name string) string {
	v, ok := r.field(name)
	if !ok {
		return ""
	}
	s, err := v.Str()
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
	}
	return s
}

func (r *record) address(name string) common.Address {
	v, ok := r.field(name)
	if !ok {
		return common.Address{}
	}
	a, err := v.Address()
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
	}
	return a
}

func (r *record) composition(name string) domain.Composition {
	s := r.str(name)
	if r.err != nil {
		return nil
	}
	c, err := domain.DecodeComposition(s)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
	}
	return c
}

func (r *record) meta() domain.LedgerMeta {
	meta := domain.LedgerMeta{
		ID:        r.uint("id"),
		Owner:     r.address("owner"),
		DeletedAt: r.str("deletedAt"),
	}
	if createdAt := r.uint("createdAt"); createdAt > 0 {
		meta.CreatedAt = time.Unix(int64(createdAt), 0).UTC()
	}
	return meta
}

func (r *record) done(kind string) error {
	if r.err != nil {
		return domain.NewInternalError("decode "+kind, r.err)
	}
	return nil
}

// DecodeRawBatch casts a decoded raw batch tuple
func DecodeRawBatch(v codec.Value) (*domain.RawBatch, error) {
	r := &record{value: v}
	b := &domain.RawBatch{
		LedgerMeta:        r.meta(),
		Name:              r.str("name"),
		Quantity:          r.uint("quantity"),
		AvailableQuantity: r.uint("availableQuantity"),
		Composition:       r.composition("composition"),
	}
	return b, r.done("raw batch")
}

// DecodeSoldBatch casts a decoded sold batch tuple
func DecodeSoldBatch(v codec.Value) (*domain.SoldBatch, error) {
	r := &record{value: v}
	b := &domain.SoldBatch{
		LedgerMeta:   r.meta(),
		RawBatchID:   r.uint("rawBatchId"),
		Quantity:     r.uint("quantity"),
		UsedQuantity: r.uint("usedQuantity"),
	}
	return b, r.done("sold batch")
}

// DecodeProductBatch casts a decoded product batch tuple
func DecodeProductBatch(v codec.Value) (*domain.ProductBatch, error) {
	r := &record{value: v}
	b := &domain.ProductBatch{
		LedgerMeta:   r.meta(),
		SoldBatchID:  r.uint("soldBatchId"),
		Name:         r.str("name"),
		Quantity:     r.uint("quantity"),
		SoldQuantity: r.uint("soldQuantity"),
		TrackingCode: r.str("trackingCode"),
		Composition:  r.composition("composition"),
	}
	return b, r.done("product batch")
}

// DecodeWasteItem casts a decoded waste item tuple
func DecodeWasteItem(v codec.Value) (*domain.WasteItem, error) {
	r := &record{value: v}
	w := &domain.WasteItem{
		LedgerMeta:      r.meta(),
		ProductBatchID:  r.uint("productBatchId"),
		Depositor:       r.address("depositor"),
		Weight:          r.uint("weight"),
		RecycledBatchID: r.uint("recycledBatchId"),
	}
	return w, r.done("waste item")
}

// DecodeRecycledBatch casts a decoded recycled batch tuple
func DecodeRecycledBatch(v codec.Value) (*domain.RecycledBatch, error) {
	r := &record{value: v}
	b := &domain.RecycledBatch{
		LedgerMeta:   r.meta(),
		WasteItemIDs: r.uints("wasteItemIds"),
		Composition:  r.composition("composition"),
		Quantity:     r.uint("quantity"),
	}
	return b, r.done("recycled batch")
}

// Entity is implemented by every decoded ledger entity
type Entity interface {
	Meta() domain.LedgerMeta
}

// DecodeEntity casts a decoded tuple of the given stage
func DecodeEntity(stage domain.Stage, v codec.Value) (Entity, error) {
	switch stage {
	case domain.StageRaw:
		return DecodeRawBatch(v)
	case domain.StageSold:
		return DecodeSoldBatch(v)
	case domain.StageProduct:
		return DecodeProductBatch(v)
	case domain.StageWaste:
		return DecodeWasteItem(v)
	case domain.StageRecycled:
		return DecodeRecycledBatch(v)
	default:
		return nil, domain.NewInternalError("decode entity", fmt.Errorf("unknown stage %q", stage))
	}
}

// EventID reads the uint argument idx of the first event named name.
// A confirmed transaction without the event is an internal error.
func EventID(events []codec.Event, name string, idx int) (uint64, error) {
	v, ok := FindArg(events, name, idx)
	if !ok {
		return 0, domain.NewInternalError("read ledger event", fmt.Errorf("%s argument %d: %w", name, idx, domain.ErrEventNotFound))
	}
	id, err := v.Uint64()
	if err != nil {
		return 0, domain.NewInternalError("read ledger event", fmt.Errorf("%s argument %d: %w", name, idx, err))
	}
	return id, nil
}

// BigID converts an entity id into the ledger uint256 argument
func BigID(id uint64) *big.Int {
	return new(big.Int).SetUint64(id)
}

// BigIDs converts entity ids into a ledger uint256[] argument
func BigIDs(ids []uint64) []*big.Int {
	out := make([]*big.Int, len(ids))
	for i, id := range ids {
		out[i] = BigID(id)
	}
	return out
}
