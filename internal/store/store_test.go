package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestOwnership(entityID uint64, owner string, stage domain.Stage) CreateOwnershipInput {
	return CreateOwnershipInput{
		EntityID:       entityID,
		OwnerAccountID: owner,
		StageType:      stage,
	}
}

func buildTestAccount(subject, address string, role domain.Role) CreateAccountInput {
	return CreateAccountInput{
		Subject: subject,
		Address: address,
		Role:    role,
	}
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

// =============================================================================
// Test: Ownerships
// =============================================================================

func testOwnerships(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		input := buildTestOwnership(7, "U1", domain.StageRaw)
		created, err := store.CreateOwnership(ctx, input)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Len(t, created.ID, 26)

		got, err := store.GetOwnership(ctx, domain.StageRaw, 7)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "U1", got.OwnerAccountID)
		assert.Nil(t, got.OriginEntityID)
	})

	t.Run("same entity id in different stages", func(t *testing.T) {
		_, err := store.CreateOwnership(ctx, buildTestOwnership(8, "U1", domain.StageRaw))
		require.NoError(t, err)

		sold := buildTestOwnership(8, "U2", domain.StageSold)
		sold.OriginEntityID = uint64Ptr(8)
		_, err = store.CreateOwnership(ctx, sold)
		require.NoError(t, err)

		got, err := store.GetOwnership(ctx, domain.StageSold, 8)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "U2", got.OwnerAccountID)
		require.NotNil(t, got.OriginEntityID)
		assert.Equal(t, uint64(8), *got.OriginEntityID)
	})

	t.Run("duplicate live row is rejected", func(t *testing.T) {
		_, err := store.CreateOwnership(ctx, buildTestOwnership(9, "U1", domain.StageProduct))
		require.NoError(t, err)
		_, err = store.CreateOwnership(ctx, buildTestOwnership(9, "U3", domain.StageProduct))
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("missing row returns nil", func(t *testing.T) {
		got, err := store.GetOwnership(ctx, domain.StageRecycled, 404)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete removes row and frees the key", func(t *testing.T) {
		_, err := store.CreateOwnership(ctx, buildTestOwnership(10, "U1", domain.StageWaste))
		require.NoError(t, err)

		require.NoError(t, store.DeleteOwnership(ctx, domain.StageWaste, 10))

		got, err := store.GetOwnership(ctx, domain.StageWaste, 10)
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = store.CreateOwnership(ctx, buildTestOwnership(10, "U1", domain.StageWaste))
		assert.NoError(t, err)
	})

	t.Run("delete of a missing row is a no-op", func(t *testing.T) {
		assert.NoError(t, store.DeleteOwnership(ctx, domain.StageRaw, 999))
	})
}

func testListOwnerships(t *testing.T, store Store) {
	ctx := context.Background()

	for _, id := range []uint64{1, 2, 3} {
		_, err := store.CreateOwnership(ctx, buildTestOwnership(id, "owner-a", domain.StageRaw))
		require.NoError(t, err)
	}
	_, err := store.CreateOwnership(ctx, buildTestOwnership(4, "owner-a", domain.StageSold))
	require.NoError(t, err)
	_, err = store.CreateOwnership(ctx, buildTestOwnership(5, "owner-b", domain.StageRaw))
	require.NoError(t, err)

	t.Run("by owner and stage in creation order", func(t *testing.T) {
		rows, err := store.ListOwnerships(ctx, OwnershipFilter{OwnerAccountID: "owner-a", StageType: domain.StageRaw})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, uint64(1), rows[0].EntityID)
		assert.Equal(t, uint64(3), rows[2].EntityID)
	})

	t.Run("all stages", func(t *testing.T) {
		rows, err := store.ListOwnerships(ctx, OwnershipFilter{OwnerAccountID: "owner-a"})
		require.NoError(t, err)
		assert.Len(t, rows, 4)
	})

	t.Run("pagination", func(t *testing.T) {
		rows, err := store.ListOwnerships(ctx, OwnershipFilter{OwnerAccountID: "owner-a", StageType: domain.StageRaw, Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, uint64(2), rows[0].EntityID)
	})

	t.Run("after cursor", func(t *testing.T) {
		first, err := store.ListOwnershipsAfter(ctx, domain.StageRaw, "", 2)
		require.NoError(t, err)
		require.Len(t, first, 2)

		rest, err := store.ListOwnershipsAfter(ctx, domain.StageRaw, first[1].ID, 10)
		require.NoError(t, err)
		require.Len(t, rest, 2)
		assert.Equal(t, uint64(3), rest[0].EntityID)
		assert.Equal(t, uint64(5), rest[1].EntityID)
	})
}

// =============================================================================
// Test: Watches
// =============================================================================

func testWatches(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("ownership with watch", func(t *testing.T) {
		ownership, err := store.CreateOwnershipWithWatch(ctx,
			buildTestOwnership(21, "recycler", domain.StageWaste),
			CreateWatchInput{WatcherAccountID: "depositor", WatchedEntityID: 21, StageType: domain.StageWaste})
		require.NoError(t, err)
		assert.Equal(t, uint64(21), ownership.EntityID)

		watches, err := store.ListWatches(ctx, "depositor", 0, 0)
		require.NoError(t, err)
		require.Len(t, watches, 1)
		assert.Equal(t, uint64(21), watches[0].WatchedEntityID)
	})

	t.Run("failed ownership insert leaves no watch", func(t *testing.T) {
		_, err := store.CreateOwnership(ctx, buildTestOwnership(22, "recycler", domain.StageWaste))
		require.NoError(t, err)

		_, err = store.CreateOwnershipWithWatch(ctx,
			buildTestOwnership(22, "recycler", domain.StageWaste),
			CreateWatchInput{WatcherAccountID: "depositor-2", WatchedEntityID: 22, StageType: domain.StageWaste})
		require.Error(t, err)

		watches, err := store.ListWatches(ctx, "depositor-2", 0, 0)
		require.NoError(t, err)
		assert.Empty(t, watches)
	})

	t.Run("unwatch only by the watcher", func(t *testing.T) {
		watch, err := store.CreateWatch(ctx, CreateWatchInput{WatcherAccountID: "w1", WatchedEntityID: 30, StageType: domain.StageProduct})
		require.NoError(t, err)

		deleted, err := store.DeleteWatch(ctx, "someone-else", watch.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = store.DeleteWatch(ctx, "w1", watch.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		watches, err := store.ListWatches(ctx, "w1", 0, 0)
		require.NoError(t, err)
		assert.Empty(t, watches)

		deleted, err = store.DeleteWatch(ctx, "w1", watch.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("entity delete removes watches", func(t *testing.T) {
		_, err := store.CreateOwnershipWithWatch(ctx,
			buildTestOwnership(40, "recycler", domain.StageWaste),
			CreateWatchInput{WatcherAccountID: "depositor-3", WatchedEntityID: 40, StageType: domain.StageWaste})
		require.NoError(t, err)

		require.NoError(t, store.DeleteOwnership(ctx, domain.StageWaste, 40))

		watches, err := store.ListWatches(ctx, "depositor-3", 0, 0)
		require.NoError(t, err)
		assert.Empty(t, watches)
	})
}

// =============================================================================
// Test: Accounts
// =============================================================================

func testAccounts(t *testing.T, store Store) {
	ctx := context.Background()
	address := "0x1111111111111111111111111111111111111111"

	created, err := store.CreateAccount(ctx, buildTestAccount("alice@example.com", address, domain.RoleProducer))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	t.Run("get by id and subject", func(t *testing.T) {
		byID, err := store.GetAccountByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, address, byID.Address)
		assert.Equal(t, domain.RoleProducer, byID.Role)

		bySubject, err := store.GetAccountBySubject(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, bySubject)
		assert.Equal(t, created.ID, bySubject.ID)
	})

	t.Run("missing account returns nil", func(t *testing.T) {
		got, err := store.GetAccountByID(ctx, "01J0000000000000000000000")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("address existence", func(t *testing.T) {
		exists, err := store.AccountAddressExists(ctx, address)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = store.AccountAddressExists(ctx, "0x2222222222222222222222222222222222222222")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("address is unique", func(t *testing.T) {
		_, err := store.CreateAccount(ctx, buildTestAccount("bob@example.com", address, domain.RoleRecycler))
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("subject is unique", func(t *testing.T) {
		_, err := store.CreateAccount(ctx, buildTestAccount("alice@example.com", "0x3333333333333333333333333333333333333333", domain.RoleProducer))
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

// =============================================================================
// Test: Ledger orphans
// =============================================================================

func testLedgerOrphans(t *testing.T, store Store) {
	ctx := context.Background()

	first, err := store.CreateLedgerOrphan(ctx, CreateLedgerOrphanInput{
		OperationID: "op-1",
		StageType:   domain.StageRaw,
		EntityID:    7,
		Reason:      "ledger unavailable",
		Payload:     []byte(`{"actor":"U1"}`),
	})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := store.CreateLedgerOrphan(ctx, CreateLedgerOrphanInput{
		OperationID: "op-2",
		StageType:   domain.StageSold,
		EntityID:    8,
		Reason:      "ledger unavailable",
	})
	require.NoError(t, err)

	orphans, err := store.ListUnresolvedLedgerOrphans(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, orphans, 2)
	assert.Equal(t, first.ID, orphans[0].ID)
	assert.JSONEq(t, `{"actor":"U1"}`, string(orphans[0].Payload))
	assert.Empty(t, orphans[0].TxHash)

	t.Run("attempts exhaust the retry budget", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, store.IncrementLedgerOrphanAttempts(ctx, second.ID, "still failing"))
		}

		orphans, err := store.ListUnresolvedLedgerOrphans(ctx, 3, 10)
		require.NoError(t, err)
		require.Len(t, orphans, 1)
		assert.Equal(t, first.ID, orphans[0].ID)

		all, err := store.ListUnresolvedLedgerOrphans(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, 3, all[1].Attempts)
		assert.Equal(t, "still failing", all[1].Reason)
	})

	t.Run("unconfirmed create keeps its transaction hash", func(t *testing.T) {
		txHash := "0x00000000000000000000000000000000000000000000000000000000000000ff"
		pending, err := store.CreateLedgerOrphan(ctx, CreateLedgerOrphanInput{
			OperationID: "op-3",
			StageType:   domain.StageWaste,
			TxHash:      txHash,
			Reason:      "not confirmed within 2m0s",
		})
		require.NoError(t, err)

		all, err := store.ListUnresolvedLedgerOrphans(ctx, 0, 10)
		require.NoError(t, err)
		var found bool
		for _, o := range all {
			if o.ID == pending.ID {
				found = true
				assert.Zero(t, o.EntityID)
				assert.Equal(t, txHash, o.TxHash)
			}
		}
		assert.True(t, found)
		require.NoError(t, store.ResolveLedgerOrphan(ctx, pending.ID))
	})

	t.Run("resolved orphans are not listed", func(t *testing.T) {
		require.NoError(t, store.ResolveLedgerOrphan(ctx, first.ID))

		orphans, err := store.ListUnresolvedLedgerOrphans(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, orphans, 1)
		assert.Equal(t, second.ID, orphans[0].ID)
	})
}

// =============================================================================
// Test: Cursors
// =============================================================================

func testCursors(t *testing.T, store Store) {
	ctx := context.Background()

	value, err := store.GetCursor(ctx, "drift:raw")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, store.SetCursor(ctx, "drift:raw", "01HX"))
	value, err = store.GetCursor(ctx, "drift:raw")
	require.NoError(t, err)
	assert.Equal(t, "01HX", value)

	require.NoError(t, store.SetCursor(ctx, "drift:raw", "01HY"))
	value, err = store.GetCursor(ctx, "drift:raw")
	require.NoError(t, err)
	assert.Equal(t, "01HY", value)
}

// RunStoreTests runs every store test against the store returned by initDB
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Ownerships", testOwnerships},
		{"ListOwnerships", testListOwnerships},
		{"Watches", testWatches},
		{"Accounts", testAccounts},
		{"LedgerOrphans", testLedgerOrphans},
		{"Cursors", testCursors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
