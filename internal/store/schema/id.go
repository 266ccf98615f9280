package schema

import "github.com/oklog/ulid/v2"

// NewID returns a new lexicographically sortable row identifier
func NewID() string {
	return ulid.Make().String()
}

// Models lists every table model, in migration order
func Models() []interface{} {
	return []interface{}{
		&Account{},
		&Ownership{},
		&Watch{},
		&LedgerOrphan{},
		&KeyValueStore{},
	}
}
