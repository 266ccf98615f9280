package ledger

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
)

var (
	rawBatchAddress     = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	productBatchAddress = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	recyclingAddress    = common.HexToAddress("0x00000000000000000000000000000000000000a3")

	ownerAddress = common.HexToAddress("0x1111111111111111111111111111111111111111")
	buyerAddress = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	registry, err := schema.Load(map[string]common.Address{
		schema.ContractRawBatch:     rawBatchAddress,
		schema.ContractProductBatch: productBatchAddress,
		schema.ContractRecycling:    recyclingAddress,
	})
	require.NoError(t, err)
	return registry
}

func testContract(t *testing.T, name string) *schema.Contract {
	t.Helper()
	contract, err := testRegistry(t).Contract(name)
	require.NoError(t, err)
	return contract
}

// buildLog encodes an event the way the ledger emits it
func buildLog(t *testing.T, contract *schema.Contract, name string, indexed []common.Hash, data ...interface{}) *types.Log {
	t.Helper()
	event, ok := contract.ABI.Events[name]
	require.True(t, ok, "event %s", name)

	payload, err := event.Inputs.NonIndexed().Pack(data...)
	require.NoError(t, err)

	return &types.Log{
		Address: contract.Address,
		Topics:  append([]common.Hash{event.ID}, indexed...),
		Data:    payload,
	}
}

func uintTopic(v uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(v))
}

func addressTopic(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}

// encodeRevert builds the Error(string) payload a reverting contract returns
func encodeRevert(t *testing.T, reason string) []byte {
	t.Helper()
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	return append([]byte{0x08, 0xc3, 0x79, 0xa0}, packed...)
}
