package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAccountDID(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		chainID  int64
		expected DID
	}{
		{
			name:     "mainnet mixed case address",
			address:  "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01",
			chainID:  1,
			expected: "did:pkh:eip155:1:0xabcdef0123456789abcdef0123456789abcdef01",
		},
		{
			name:     "private chain",
			address:  "0x1111111111111111111111111111111111111111",
			chainID:  1337,
			expected: "did:pkh:eip155:1337:0x1111111111111111111111111111111111111111",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			did := NewAccountDID(tt.address, tt.chainID)
			assert.Equal(t, tt.expected, did)
			assert.Equal(t, string(tt.expected), did.String())
		})
	}
}
