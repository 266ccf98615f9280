package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
)

// Fixtures for the external client tests, which import the generated mocks.

var (
	RawBatchAddress = rawBatchAddress
	OwnerAddress    = ownerAddress
	BuyerAddress    = buyerAddress
)

func NewTestRegistry(t *testing.T) *schema.Registry {
	return testRegistry(t)
}

func NewTestContract(t *testing.T, name string) *schema.Contract {
	return testContract(t, name)
}

func BuildLog(t *testing.T, contract *schema.Contract, name string, indexed []common.Hash, data ...interface{}) *types.Log {
	return buildLog(t, contract, name, indexed, data...)
}

func UintTopic(v uint64) common.Hash {
	return uintTopic(v)
}

func AddressTopic(a common.Address) common.Hash {
	return addressTopic(a)
}

func EncodeRevert(t *testing.T, reason string) []byte {
	return encodeRevert(t, reason)
}

func NewRPCDataError(msg string, data interface{}) error {
	return &rpcDataError{msg: msg, data: data}
}
