package domain

const (
	// Ledger constants
	ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// ACCOUNT_ADDRESS_BYTES is the width of an allocated account address
	ACCOUNT_ADDRESS_BYTES = 20

	// NOT_DELETED is the ledger sentinel for "not deleted"; any other value marks soft deletion
	NOT_DELETED = ""
)

// ObjectAccounts is the authorization object guarding account onboarding
const ObjectAccounts = "accounts"
