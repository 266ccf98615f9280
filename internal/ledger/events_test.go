package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/codec"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
)

func TestExtractEvents_IndexedAndData(t *testing.T) {
	contract := testContract(t, schema.ContractRawBatch)

	created := buildLog(t, contract, "RawBatchCreated",
		[]common.Hash{uintTopic(7), addressTopic(ownerAddress)}, BigID(100))
	created.Index = 3

	events := ExtractEvents(contract, &types.Receipt{Logs: []*types.Log{created}})
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "RawBatchCreated", e.Name)
	assert.Equal(t, schema.ContractRawBatch, e.Contract)
	assert.Equal(t, uint(3), e.LogIndex)
	require.Len(t, e.Args, 3)
	assert.Equal(t, "id", e.Args[0].Name)
	assert.Equal(t, "owner", e.Args[1].Name)
	assert.Equal(t, "quantity", e.Args[2].Name)

	id, err := e.Args[0].Value.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)

	owner, err := e.Args[1].Value.Address()
	require.NoError(t, err)
	assert.Equal(t, ownerAddress, owner)

	quantity, err := e.Args[2].Value.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(100), quantity)
}

func TestExtractEvents_MixedOrder(t *testing.T) {
	contract := testContract(t, schema.ContractRawBatch)

	sold := buildLog(t, contract, "RawBatchSold",
		[]common.Hash{uintTopic(7), uintTopic(12)}, buyerAddress, BigID(50))

	events := ExtractEvents(contract, &types.Receipt{Logs: []*types.Log{sold}})
	require.Len(t, events, 1)

	soldID, ok := FindArg(events, "RawBatchSold", 1)
	require.True(t, ok)
	v, err := soldID.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(12), v)

	buyer, ok := FindArg(events, "RawBatchSold", 2)
	require.True(t, ok)
	a, err := buyer.Address()
	require.NoError(t, err)
	assert.Equal(t, buyerAddress, a)
}

func TestExtractEvents_ArrayData(t *testing.T) {
	contract := testContract(t, schema.ContractRecycling)

	recycled := buildLog(t, contract, "RecycledBatchCreated",
		[]common.Hash{uintTopic(9), addressTopic(ownerAddress)}, BigIDs([]uint64{4, 5, 6}))

	events := ExtractEvents(contract, &types.Receipt{Logs: []*types.Log{recycled}})
	require.Len(t, events, 1)

	ids, ok := events[0].Arg(2)
	require.True(t, ok)
	items, err := ids.Items()
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, want := range []uint64{4, 5, 6} {
		got, err := items[i].Uint64()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestExtractEvents_SkipsMalformedLogs(t *testing.T) {
	contract := testContract(t, schema.ContractRawBatch)
	other := testContract(t, schema.ContractProductBatch)

	good := buildLog(t, contract, "RawBatchDeleted", []common.Hash{uintTopic(7)})

	foreign := buildLog(t, contract, "RawBatchDeleted", []common.Hash{uintTopic(8)})
	foreign.Address = common.HexToAddress("0x00000000000000000000000000000000000000ff")

	noTopics := &types.Log{Address: contract.Address}

	unknown := buildLog(t, other, "ProductBatchDeleted", []common.Hash{uintTopic(9)})
	unknown.Address = contract.Address

	truncated := buildLog(t, contract, "RawBatchCreated",
		[]common.Hash{uintTopic(10), addressTopic(ownerAddress)}, BigID(1))
	truncated.Data = truncated.Data[:10]

	missingTopic := buildLog(t, contract, "RawBatchSold",
		[]common.Hash{uintTopic(7)}, buyerAddress, BigID(1))

	events := ExtractEvents(contract, &types.Receipt{
		Logs: []*types.Log{nil, foreign, noTopics, unknown, truncated, missingTopic, good},
	})
	require.Len(t, events, 1)
	assert.Equal(t, "RawBatchDeleted", events[0].Name)
}

func TestExtractEvents_NilReceipt(t *testing.T) {
	assert.Nil(t, ExtractEvents(testContract(t, schema.ContractRawBatch), nil))
}

func TestFindFirstArg(t *testing.T) {
	events := []codec.Event{
		{Name: "Other", Args: []codec.Field{{Name: "id", Value: codec.Uint64Value(1)}}},
		{Name: "RawBatchCreated", Args: []codec.Field{{Name: "id", Value: codec.Uint64Value(7)}}},
		{Name: "RawBatchCreated", Args: []codec.Field{{Name: "id", Value: codec.Uint64Value(8)}}},
	}
	fallback := codec.Uint64Value(0)

	got := FindFirstArg(events, "RawBatchCreated", 0, fallback)
	v, err := got.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)

	// a missing event and a missing argument both yield the fallback
	missing := FindFirstArg(events, "RawBatchSold", 0, fallback)
	v, err = missing.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	outOfRange := FindFirstArg(events, "RawBatchCreated", 4, fallback)
	v, err = outOfRange.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	_, ok := FindArg(events, "RawBatchSold", 0)
	assert.False(t, ok)
}

func TestEventID(t *testing.T) {
	events := []codec.Event{
		{Name: "RawBatchCreated", Args: []codec.Field{{Name: "id", Value: codec.Uint64Value(7)}}},
	}

	id, err := EventID(events, "RawBatchCreated", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)

	_, err = EventID(events, "RawBatchSold", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	assert.Equal(t, 500, domain.StatusOf(err))

	_, err = EventID([]codec.Event{{Name: "X", Args: []codec.Field{{Name: "id", Value: codec.StringValue("7")}}}}, "X", 0)
	require.Error(t, err)
}
