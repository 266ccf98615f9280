package lifecycle_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-lifecycle-bridge/internal/adapter"
	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/codec"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
	"github.com/feral-file/ff-lifecycle-bridge/internal/lifecycle"
	"github.com/feral-file/ff-lifecycle-bridge/internal/mocks"
	storeschema "github.com/feral-file/ff-lifecycle-bridge/internal/store/schema"
)

const (
	credential = "bearer-token"
	createdAt  = uint64(1_700_000_000)
)

var (
	producer     = domain.Principal{AccountID: "acc-producer", Role: domain.RoleProducer}
	manufacturer = domain.Principal{AccountID: "acc-manufacturer", Role: domain.RoleManufacturer}
	recycler     = domain.Principal{AccountID: "acc-recycler", Role: domain.RoleRecycler}
	depositor    = domain.Principal{AccountID: "acc-depositor", Role: domain.RoleDepositor}

	addresses = map[string]common.Address{
		producer.AccountID:     common.HexToAddress("0x1111111111111111111111111111111111111111"),
		manufacturer.AccountID: common.HexToAddress("0x2222222222222222222222222222222222222222"),
		recycler.AccountID:     common.HexToAddress("0x3333333333333333333333333333333333333333"),
		depositor.AccountID:    common.HexToAddress("0x4444444444444444444444444444444444444444"),
	}

	roles = map[string]domain.Role{
		producer.AccountID:     producer.Role,
		manufacturer.AccountID: manufacturer.Role,
		recycler.AccountID:     recycler.Role,
		depositor.AccountID:    depositor.Role,
	}

	stranger = common.HexToAddress("0x9999999999999999999999999999999999999999")

	testComposition = domain.Composition{
		{Name: "PET", Amount: decimal.RequireFromString("0.8"), Unit: "kg"},
		{Name: "HDPE", Amount: decimal.RequireFromString("0.2"), Unit: "kg"},
	}
)

type fixture struct {
	ledger     *mocks.MockLedgerClient
	store      *mocks.MockStore
	verifier   *mocks.MockVerifier
	authorizer *mocks.MockAuthorizer
	publisher  *mocks.MockPublisher
	registry   *schema.Registry
	svc        lifecycle.Service
}

func newFixture(t *testing.T, cfg lifecycle.Config) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	registry, err := schema.Load(map[string]common.Address{
		schema.ContractRawBatch:     common.HexToAddress("0xa1"),
		schema.ContractProductBatch: common.HexToAddress("0xa2"),
		schema.ContractRecycling:    common.HexToAddress("0xa3"),
	})
	require.NoError(t, err)

	f := &fixture{
		ledger:     mocks.NewMockLedgerClient(ctrl),
		store:      mocks.NewMockStore(ctrl),
		verifier:   mocks.NewMockVerifier(ctrl),
		authorizer: mocks.NewMockAuthorizer(ctrl),
		publisher:  mocks.NewMockPublisher(ctrl),
		registry:   registry,
	}
	f.svc = lifecycle.NewService(cfg, f.ledger, f.store, f.verifier, f.authorizer, f.publisher, adapter.NewClock(), nil)
	return f
}

// expectAuth expects a successful credential check of p for (stage, action)
func (f *fixture) expectAuth(p domain.Principal, stage domain.Stage, action domain.Action) {
	principal := p
	f.verifier.EXPECT().Verify(gomock.Any(), credential).Return(&principal, nil)
	f.authorizer.EXPECT().Authorize(p, stage, action).Return(nil)
	f.expectAccount(p.AccountID)
}

func (f *fixture) expectAccount(accountID string) {
	f.store.EXPECT().GetAccountByID(gomock.Any(), accountID).Return(&storeschema.Account{
		ID:      accountID,
		Address: addresses[accountID].Hex(),
		Role:    roles[accountID],
	}, nil)
}

// expectPublished expects one lifecycle event and hands it to check
func (f *fixture) expectPublished(t *testing.T, check func(*domain.LifecycleEvent)) {
	f.publisher.EXPECT().PublishLifecycleEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.LifecycleEvent) error {
			assert.NotEmpty(t, e.OperationID)
			assert.False(t, e.OccurredAt.IsZero())
			check(e)
			return nil
		})
}

// value decodes a positional tuple the way a ledger call returns it
func (f *fixture) value(t *testing.T, contract, method string, raw interface{}) codec.Value {
	t.Helper()
	c, err := f.registry.Contract(contract)
	require.NoError(t, err)
	m, err := c.Method(method)
	require.NoError(t, err)
	v, err := codec.Decode(m.Outputs, []any{raw})
	require.NoError(t, err)
	return v
}

func rawBatchTuple(id, quantity, available uint64, owner common.Address, deletedAt string) []any {
	return []any{id, "PET flakes", quantity, available, "[]", owner, createdAt, deletedAt}
}

func soldBatchTuple(id, rawBatchID, quantity, used uint64, owner common.Address) []any {
	return []any{id, rawBatchID, quantity, used, owner, createdAt, ""}
}

func productBatchTuple(id, soldBatchID, quantity, sold uint64, owner common.Address, deletedAt string) []any {
	return []any{id, soldBatchID, "bottles", quantity, sold, "TC-1", "[]", owner, createdAt, deletedAt}
}

func wasteItemTuple(id, productBatchID uint64, owner common.Address, recycledBatchID uint64) []any {
	return []any{id, productBatchID, addresses[depositor.AccountID], owner, uint64(250), recycledBatchID, createdAt, ""}
}

func recycledBatchTuple(id uint64, wasteItemIDs []any, owner common.Address) []any {
	return []any{id, wasteItemIDs, "[]", uint64(40), owner, createdAt, ""}
}

func event(name string, args ...codec.Value) codec.Event {
	fields := make([]codec.Field, len(args))
	for i, a := range args {
		fields[i] = codec.Field{Value: a}
	}
	return codec.Event{Name: name, Args: fields}
}

func encoded(t *testing.T, c domain.Composition) string {
	t.Helper()
	s, err := domain.EncodeComposition(c)
	require.NoError(t, err)
	return s
}

func requireKind(t *testing.T, err error, kind domain.ErrorKind, status int, code string) {
	t.Helper()
	require.Error(t, err)
	e := domain.AsError(err)
	assert.Equal(t, kind, e.Kind)
	assert.Equal(t, status, e.Status)
	if code != "" {
		assert.Equal(t, code, e.Code)
	}
}

func ptr[T any](v T) *T {
	return &v
}
