package domain

import (
	"fmt"
	"strings"
)

// DID represents a Decentralized Identifier (W3C standard)
type DID string

// NewAccountDID creates the did:pkh identifier of an account address on an EVM chain
// Reference: https://github.com/w3c-ccg/did-pkh
func NewAccountDID(address string, chainID int64) DID {
	return DID(fmt.Sprintf("did:pkh:eip155:%d:%s", chainID, strings.ToLower(address)))
}

// String returns the string representation of the DID
func (d DID) String() string {
	return string(d)
}
