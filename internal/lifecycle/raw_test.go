package lifecycle_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/codec"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
	"github.com/feral-file/ff-lifecycle-bridge/internal/lifecycle"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store"
	storeschema "github.com/feral-file/ff-lifecycle-bridge/internal/store/schema"
)

func rawBatchInput() lifecycle.CreateRawBatchInput {
	return lifecycle.CreateRawBatchInput{Name: "PET flakes", Quantity: 100, Composition: testComposition}
}

func (f *fixture) expectCreateRawBatch(t *testing.T, id uint64) {
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "createRawBatch",
			"PET flakes", ledger.BigID(100), encoded(t, testComposition), addresses[producer.AccountID]).
		Return([]codec.Event{
			event("RawBatchCreated", codec.Uint64Value(id), codec.AddressValue(addresses[producer.AccountID]), codec.Uint64Value(100)),
		}, nil)
}

func TestCreateRawBatch_Success(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})
	ctx := context.Background()

	f.expectAuth(producer, domain.StageRaw, domain.ActionCreate)
	f.expectCreateRawBatch(t, 7)
	f.store.EXPECT().CreateOwnership(gomock.Any(), store.CreateOwnershipInput{
		EntityID:       7,
		OwnerAccountID: producer.AccountID,
		StageType:      domain.StageRaw,
	}).Return(&storeschema.Ownership{ID: "own-1", EntityID: 7}, nil)
	f.expectPublished(t, func(e *domain.LifecycleEvent) {
		assert.Equal(t, domain.StageRaw, e.Stage)
		assert.Equal(t, domain.ActionCreate, e.Action)
		assert.Equal(t, uint64(7), e.EntityID)
		assert.Nil(t, e.OriginEntityID)
		assert.Equal(t, producer.AccountID, e.OwnerAccountID)
	})

	created, err := f.svc.CreateRawBatch(ctx, credential, rawBatchInput())
	require.NoError(t, err)
	assert.Equal(t, &lifecycle.Created{ID: 7}, created)
}

func TestCreateRawBatch_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})

	f.expectAuth(producer, domain.StageRaw, domain.ActionCreate)
	f.expectCreateRawBatch(t, 7)
	f.store.EXPECT().CreateOwnership(gomock.Any(), gomock.Any()).Return(&storeschema.Ownership{}, nil)
	f.publisher.EXPECT().PublishLifecycleEvent(gomock.Any(), gomock.Any()).Return(errors.New("nats: no responders"))

	created, err := f.svc.CreateRawBatch(context.Background(), credential, rawBatchInput())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), created.ID)
}

func TestCreateRawBatch_IndexFailureCompensates(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})

	f.expectAuth(producer, domain.StageRaw, domain.ActionCreate)
	f.expectCreateRawBatch(t, 7)
	f.store.EXPECT().CreateOwnership(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset by peer"))
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "deleteRawBatch", ledger.BigID(7)).
		Return(nil, nil).
		Times(1)

	created, err := f.svc.CreateRawBatch(context.Background(), credential, rawBatchInput())
	assert.Nil(t, created)
	requireKind(t, err, domain.KindInternal, http.StatusInternalServerError, "")
	assert.Contains(t, err.Error(), "write ownership index")
}

func TestCreateRawBatch_CompensationSurvivesCancellation(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.expectAuth(producer, domain.StageRaw, domain.ActionCreate)
	f.expectCreateRawBatch(t, 7)
	f.store.EXPECT().CreateOwnership(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, store.CreateOwnershipInput) (*storeschema.Ownership, error) {
			cancel()
			return nil, context.Canceled
		})
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "deleteRawBatch", ledger.BigID(7)).
		DoAndReturn(func(ctx context.Context, _, _ string, _ ...interface{}) ([]codec.Event, error) {
			assert.NoError(t, ctx.Err())
			return nil, nil
		})

	_, err := f.svc.CreateRawBatch(ctx, credential, rawBatchInput())
	requireKind(t, err, domain.KindInternal, http.StatusInternalServerError, "")
}

func TestCreateRawBatch_CompensationFailureRecordsOrphan(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})

	f.expectAuth(producer, domain.StageRaw, domain.ActionCreate)
	f.expectCreateRawBatch(t, 7)
	f.store.EXPECT().CreateOwnership(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset by peer"))
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "deleteRawBatch", ledger.BigID(7)).
		Return(nil, domain.NewInternalError("await confirmation", domain.ErrNoReceipt))

	var operationID string
	f.store.EXPECT().CreateLedgerOrphan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreateLedgerOrphanInput) (*storeschema.LedgerOrphan, error) {
			operationID = input.OperationID
			assert.NotEmpty(t, input.OperationID)
			assert.Equal(t, domain.StageRaw, input.StageType)
			assert.Equal(t, uint64(7), input.EntityID)
			assert.Contains(t, input.Reason, "receipt")

			var payload map[string]interface{}
			require.NoError(t, json.Unmarshal(input.Payload, &payload))
			assert.Equal(t, "create", payload["action"])
			assert.Equal(t, producer.AccountID, payload["actor_account_id"])
			return &storeschema.LedgerOrphan{ID: "orphan-1"}, nil
		})
	f.publisher.EXPECT().PublishOrphan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.OrphanEvent) error {
			assert.Equal(t, operationID, e.OperationID)
			assert.Equal(t, uint64(7), e.EntityID)
			assert.Equal(t, domain.StageRaw, e.Stage)
			return nil
		})

	created, err := f.svc.CreateRawBatch(context.Background(), credential, rawBatchInput())
	assert.Nil(t, created)
	requireKind(t, err, domain.KindInternal, http.StatusInternalServerError, "")
	// the index failure is reported, not the compensation failure
	assert.Contains(t, err.Error(), "write ownership index")
	assert.NotErrorIs(t, err, domain.ErrNoReceipt)
}

func TestCreateRawBatch_UnconfirmedRecordsPendingOrphan(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})
	txHash := common.HexToHash("0xfeed")

	f.expectAuth(producer, domain.StageRaw, domain.ActionCreate)
	ctx, cancel := context.WithCancel(context.Background())
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "createRawBatch", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string, ...interface{}) ([]codec.Event, error) {
			cancel()
			return nil, domain.NewInternalError("await confirmation", &ledger.PendingError{
				Contract: schema.ContractRawBatch,
				Method:   "createRawBatch",
				TxHash:   txHash,
				Err:      context.Canceled,
			})
		})
	f.store.EXPECT().CreateLedgerOrphan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input store.CreateLedgerOrphanInput) (*storeschema.LedgerOrphan, error) {
			assert.NoError(t, ctx.Err())
			assert.Equal(t, domain.StageRaw, input.StageType)
			assert.Zero(t, input.EntityID)
			assert.Equal(t, txHash.Hex(), input.TxHash)
			return &storeschema.LedgerOrphan{ID: "orphan-1"}, nil
		})
	f.publisher.EXPECT().PublishOrphan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.OrphanEvent) error {
			assert.Equal(t, txHash.Hex(), e.TxHash)
			assert.Zero(t, e.EntityID)
			return nil
		})

	created, err := f.svc.CreateRawBatch(ctx, credential, rawBatchInput())
	assert.Nil(t, created)
	requireKind(t, err, domain.KindInternal, http.StatusInternalServerError, "")
}

func TestCreateRawBatch_RejectedWriteRecordsNoOrphan(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})

	f.expectAuth(producer, domain.StageRaw, domain.ActionCreate)
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "createRawBatch", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.NewInternalError("ledger createRawBatch failed", errors.New("insufficient funds for gas")))

	_, err := f.svc.CreateRawBatch(context.Background(), credential, rawBatchInput())
	requireKind(t, err, domain.KindInternal, http.StatusInternalServerError, "")
}

func TestCreateRawBatch_MissingEvent(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})

	f.expectAuth(producer, domain.StageRaw, domain.ActionCreate)
	f.ledger.EXPECT().Transact(gomock.Any(), schema.ContractRawBatch, "createRawBatch",
		gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]codec.Event{}, nil)

	_, err := f.svc.CreateRawBatch(context.Background(), credential, rawBatchInput())
	requireKind(t, err, domain.KindInternal, http.StatusInternalServerError, "")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestCreateRawBatch_Validation(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})

	f.expectAuth(producer, domain.StageRaw, domain.ActionCreate)

	_, err := f.svc.CreateRawBatch(context.Background(), credential, lifecycle.CreateRawBatchInput{
		Composition: domain.Composition{{Name: "PET", Unit: "kg"}},
	})
	requireKind(t, err, domain.KindValidation, http.StatusBadRequest, "")

	msg := domain.AsError(err).Message
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "quantity must be greater than 0")
	assert.Contains(t, msg, "composition[0].amount must be greater than 0")
}

func TestCreateRawBatch_AuthFailures(t *testing.T) {
	t.Run("invalid credential", func(t *testing.T) {
		f := newFixture(t, lifecycle.Config{})
		f.verifier.EXPECT().Verify(gomock.Any(), credential).
			Return(nil, domain.NewUnauthenticatedError(domain.CodeInvalidCredential, errors.New("token is expired")))

		_, err := f.svc.CreateRawBatch(context.Background(), credential, rawBatchInput())
		requireKind(t, err, domain.KindUnauthenticated, http.StatusUnauthorized, domain.CodeInvalidCredential)
	})

	t.Run("role not allowed", func(t *testing.T) {
		f := newFixture(t, lifecycle.Config{})
		principal := depositor
		f.verifier.EXPECT().Verify(gomock.Any(), credential).Return(&principal, nil)
		f.authorizer.EXPECT().Authorize(depositor, domain.StageRaw, domain.ActionCreate).
			Return(domain.NewForbiddenError(domain.CodeRoleNotAllowed))

		_, err := f.svc.CreateRawBatch(context.Background(), credential, rawBatchInput())
		requireKind(t, err, domain.KindForbidden, http.StatusForbidden, domain.CodeRoleNotAllowed)
	})

	t.Run("account not onboarded", func(t *testing.T) {
		f := newFixture(t, lifecycle.Config{})
		principal := producer
		f.verifier.EXPECT().Verify(gomock.Any(), credential).Return(&principal, nil)
		f.authorizer.EXPECT().Authorize(producer, domain.StageRaw, domain.ActionCreate).Return(nil)
		f.store.EXPECT().GetAccountByID(gomock.Any(), producer.AccountID).Return(nil, nil)

		_, err := f.svc.CreateRawBatch(context.Background(), credential, rawBatchInput())
		requireKind(t, err, domain.KindUnauthenticated, http.StatusUnauthorized, domain.CodeUnknownAccount)
	})

	t.Run("token role differs from onboarded role", func(t *testing.T) {
		f := newFixture(t, lifecycle.Config{})
		// a depositor account presenting a producer token
		principal := domain.Principal{AccountID: depositor.AccountID, Role: domain.RoleProducer}
		f.verifier.EXPECT().Verify(gomock.Any(), credential).Return(&principal, nil)
		f.authorizer.EXPECT().Authorize(principal, domain.StageRaw, domain.ActionCreate).Return(nil)
		f.expectAccount(depositor.AccountID)

		_, err := f.svc.CreateRawBatch(context.Background(), credential, rawBatchInput())
		requireKind(t, err, domain.KindForbidden, http.StatusForbidden, domain.CodeRoleMismatch)
	})
}

func sellInput(quantity uint64) lifecycle.SellRawBatchInput {
	return lifecycle.SellRawBatchInput{RawBatchID: 7, Quantity: quantity, BuyerAccountID: manufacturer.AccountID}
}

func (f *fixture) expectRawBatch(t *testing.T, id, quantity, available uint64, owner string) {
	f.ledger.EXPECT().
		Call(gomock.Any(), schema.ContractRawBatch, "getRawBatch", ledger.BigID(id)).
		Return(f.value(t, schema.ContractRawBatch, "getRawBatch",
			rawBatchTuple(id, quantity, available, addresses[owner], "")), nil)
}

func TestSellRawBatch_Success(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})

	f.expectAuth(producer, domain.StageRaw, domain.ActionSell)
	f.expectRawBatch(t, 7, 100, 100, producer.AccountID)
	f.expectAccount(manufacturer.AccountID)
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "sellRawBatch",
			ledger.BigID(7), ledger.BigID(70), addresses[manufacturer.AccountID]).
		Return([]codec.Event{
			event("RawBatchSold", codec.Uint64Value(7), codec.Uint64Value(12),
				codec.AddressValue(addresses[manufacturer.AccountID]), codec.Uint64Value(70)),
		}, nil)
	f.store.EXPECT().CreateOwnership(gomock.Any(), store.CreateOwnershipInput{
		EntityID:       12,
		OriginEntityID: ptr(uint64(7)),
		OwnerAccountID: manufacturer.AccountID,
		StageType:      domain.StageSold,
	}).Return(&storeschema.Ownership{}, nil)
	f.expectPublished(t, func(e *domain.LifecycleEvent) {
		assert.Equal(t, domain.ActionSell, e.Action)
		assert.Equal(t, uint64(12), e.EntityID)
		require.NotNil(t, e.OriginEntityID)
		assert.Equal(t, uint64(7), *e.OriginEntityID)
		assert.Equal(t, manufacturer.AccountID, e.OwnerAccountID)
	})

	created, err := f.svc.SellRawBatch(context.Background(), credential, sellInput(70))
	require.NoError(t, err)
	assert.Equal(t, uint64(12), created.ID)
}

func TestSellRawBatch_InsufficientQuantity(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})

	f.expectAuth(producer, domain.StageRaw, domain.ActionSell)
	f.expectRawBatch(t, 7, 100, 30, producer.AccountID)

	created, err := f.svc.SellRawBatch(context.Background(), credential, sellInput(50))
	assert.Nil(t, created)
	requireKind(t, err, domain.KindDomain, http.StatusBadRequest, domain.CodeInsufficientAvailableQuantity)
}

func TestSellRawBatch_LedgerRejectsConcurrentSale(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})

	// the read still shows the full quantity; the ledger is the arbiter
	f.expectAuth(producer, domain.StageRaw, domain.ActionSell)
	f.expectRawBatch(t, 7, 100, 100, producer.AccountID)
	f.expectAccount(manufacturer.AccountID)
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "sellRawBatch", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, ledger.Classify("sellRawBatch", errors.New("execution reverted: insufficient quantity")))

	created, err := f.svc.SellRawBatch(context.Background(), credential, sellInput(50))
	assert.Nil(t, created)
	requireKind(t, err, domain.KindDomain, http.StatusBadRequest, domain.CodeInsufficientAvailableQuantity)
}

func TestSellRawBatch_Preconditions(t *testing.T) {
	t.Run("not the owner", func(t *testing.T) {
		f := newFixture(t, lifecycle.Config{})
		f.expectAuth(producer, domain.StageRaw, domain.ActionSell)
		f.ledger.EXPECT().Call(gomock.Any(), schema.ContractRawBatch, "getRawBatch", ledger.BigID(7)).
			Return(f.value(t, schema.ContractRawBatch, "getRawBatch", rawBatchTuple(7, 100, 100, stranger, "")), nil)

		_, err := f.svc.SellRawBatch(context.Background(), credential, sellInput(10))
		requireKind(t, err, domain.KindForbidden, http.StatusForbidden, domain.CodeNotOwner)
	})

	t.Run("deleted batch", func(t *testing.T) {
		f := newFixture(t, lifecycle.Config{})
		f.expectAuth(producer, domain.StageRaw, domain.ActionSell)
		f.ledger.EXPECT().Call(gomock.Any(), schema.ContractRawBatch, "getRawBatch", ledger.BigID(7)).
			Return(f.value(t, schema.ContractRawBatch, "getRawBatch",
				rawBatchTuple(7, 100, 100, addresses[producer.AccountID], "1700000500")), nil)

		_, err := f.svc.SellRawBatch(context.Background(), credential, sellInput(10))
		requireKind(t, err, domain.KindNotFound, http.StatusNotFound, domain.CodeEntityDeleted)
	})

	t.Run("unknown buyer", func(t *testing.T) {
		f := newFixture(t, lifecycle.Config{})
		f.expectAuth(producer, domain.StageRaw, domain.ActionSell)
		f.expectRawBatch(t, 7, 100, 100, producer.AccountID)
		f.store.EXPECT().GetAccountByID(gomock.Any(), manufacturer.AccountID).Return(nil, nil)

		_, err := f.svc.SellRawBatch(context.Background(), credential, sellInput(10))
		requireKind(t, err, domain.KindNotFound, http.StatusNotFound, domain.CodeUnknownAccount)
	})

	t.Run("missing raw batch id", func(t *testing.T) {
		f := newFixture(t, lifecycle.Config{})
		f.expectAuth(producer, domain.StageRaw, domain.ActionSell)

		_, err := f.svc.SellRawBatch(context.Background(), credential, lifecycle.SellRawBatchInput{
			Quantity: 10, BuyerAccountID: manufacturer.AccountID,
		})
		requireKind(t, err, domain.KindValidation, http.StatusBadRequest, "")
	})
}

func TestSellRawBatch_IndexFailureDeletesSoldBatch(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})

	f.expectAuth(producer, domain.StageRaw, domain.ActionSell)
	f.expectRawBatch(t, 7, 100, 100, producer.AccountID)
	f.expectAccount(manufacturer.AccountID)
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "sellRawBatch", gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]codec.Event{
			event("RawBatchSold", codec.Uint64Value(7), codec.Uint64Value(12),
				codec.AddressValue(addresses[manufacturer.AccountID]), codec.Uint64Value(70)),
		}, nil)
	f.store.EXPECT().CreateOwnership(gomock.Any(), gomock.Any()).Return(nil, errors.New("deadlock detected"))
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "deleteSoldBatch", ledger.BigID(12)).
		Return(nil, nil)

	_, err := f.svc.SellRawBatch(context.Background(), credential, sellInput(70))
	requireKind(t, err, domain.KindInternal, http.StatusInternalServerError, "")
}

func TestSellRawBatch_UnconfirmedRecordsSoldOrphan(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})
	txHash := common.HexToHash("0xbeef")

	f.expectAuth(producer, domain.StageRaw, domain.ActionSell)
	f.expectRawBatch(t, 7, 100, 100, producer.AccountID)
	f.expectAccount(manufacturer.AccountID)
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "sellRawBatch", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.NewInternalError("await confirmation", &ledger.PendingError{
			Contract: schema.ContractRawBatch,
			Method:   "sellRawBatch",
			TxHash:   txHash,
			Err:      domain.ErrNoReceipt,
		}))
	// the orphan is the sold batch the sale would create, not the raw batch sold from
	f.store.EXPECT().CreateLedgerOrphan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreateLedgerOrphanInput) (*storeschema.LedgerOrphan, error) {
			assert.Equal(t, domain.StageSold, input.StageType)
			assert.Equal(t, txHash.Hex(), input.TxHash)
			return &storeschema.LedgerOrphan{ID: "orphan-1"}, nil
		})
	f.publisher.EXPECT().PublishOrphan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.OrphanEvent) error {
			assert.Equal(t, domain.StageSold, e.Stage)
			return nil
		})

	_, err := f.svc.SellRawBatch(context.Background(), credential, sellInput(70))
	requireKind(t, err, domain.KindInternal, http.StatusInternalServerError, "")
}

func TestSellRawBatch_CompensationFailureRecordsSoldOrphan(t *testing.T) {
	f := newFixture(t, lifecycle.Config{})

	f.expectAuth(producer, domain.StageRaw, domain.ActionSell)
	f.expectRawBatch(t, 7, 100, 100, producer.AccountID)
	f.expectAccount(manufacturer.AccountID)
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "sellRawBatch", gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]codec.Event{
			event("RawBatchSold", codec.Uint64Value(7), codec.Uint64Value(12),
				codec.AddressValue(addresses[manufacturer.AccountID]), codec.Uint64Value(70)),
		}, nil)
	f.store.EXPECT().CreateOwnership(gomock.Any(), gomock.Any()).Return(nil, errors.New("deadlock detected"))
	f.ledger.EXPECT().
		Transact(gomock.Any(), schema.ContractRawBatch, "deleteSoldBatch", ledger.BigID(12)).
		Return(nil, domain.NewInternalError("ledger deleteSoldBatch failed", errors.New("nonce too low")))
	f.store.EXPECT().CreateLedgerOrphan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreateLedgerOrphanInput) (*storeschema.LedgerOrphan, error) {
			assert.Equal(t, domain.StageSold, input.StageType)
			assert.Equal(t, uint64(12), input.EntityID)
			assert.Empty(t, input.TxHash)
			return &storeschema.LedgerOrphan{ID: "orphan-1"}, nil
		})
	f.publisher.EXPECT().PublishOrphan(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.SellRawBatch(context.Background(), credential, sellInput(70))
	requireKind(t, err, domain.KindInternal, http.StatusInternalServerError, "")
}
