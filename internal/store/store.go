package store

import (
	"context"
	"errors"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store/schema"
)

// ErrDuplicate is returned when a write violates a uniqueness constraint
var ErrDuplicate = errors.New("duplicate record")

// CreateOwnershipInput represents the input for creating an ownership row
type CreateOwnershipInput struct {
	EntityID       uint64
	OriginEntityID *uint64
	OwnerAccountID string
	StageType      domain.Stage
}

// CreateWatchInput represents the input for creating a watch row
type CreateWatchInput struct {
	WatcherAccountID string
	WatchedEntityID  uint64
	StageType        domain.Stage
}

// CreateAccountInput represents the input for creating an account
type CreateAccountInput struct {
	Subject string
	Address string
	Role    domain.Role
}

// CreateLedgerOrphanInput represents the input for recording a failed compensation
type CreateLedgerOrphanInput struct {
	OperationID string
	StageType   domain.Stage
	EntityID    uint64
	TxHash      string
	Reason      string
	Payload     []byte
}

// OwnershipFilter represents the filter for listing ownerships
type OwnershipFilter struct {
	OwnerAccountID string
	StageType      domain.Stage
	Limit          int
	Offset         int
}

// Store defines the interface for the ownership index database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateOwnership inserts an ownership row
	CreateOwnership(ctx context.Context, input CreateOwnershipInput) (*schema.Ownership, error)
	// CreateOwnershipWithWatch inserts an ownership row and a watch row in one transaction
	CreateOwnershipWithWatch(ctx context.Context, ownership CreateOwnershipInput, watch CreateWatchInput) (*schema.Ownership, error)
	// GetOwnership retrieves the live ownership row of an entity, nil if none
	GetOwnership(ctx context.Context, stage domain.Stage, entityID uint64) (*schema.Ownership, error)
	// DeleteOwnership hard-deletes the ownership row of an entity and soft-deletes its watches
	DeleteOwnership(ctx context.Context, stage domain.Stage, entityID uint64) error
	// ListOwnerships lists live ownership rows of an owner in creation order
	ListOwnerships(ctx context.Context, filter OwnershipFilter) ([]schema.Ownership, error)
	// ListOwnershipsAfter lists live ownership rows of a stage with id greater than afterID
	ListOwnershipsAfter(ctx context.Context, stage domain.Stage, afterID string, limit int) ([]schema.Ownership, error)

	// CreateWatch inserts a watch row
	CreateWatch(ctx context.Context, input CreateWatchInput) (*schema.Watch, error)
	// ListWatches lists live watch rows of a watcher in creation order
	ListWatches(ctx context.Context, watcherAccountID string, limit, offset int) ([]schema.Watch, error)
	// DeleteWatch soft-deletes a watch row of the watcher; reports whether a row was deleted
	DeleteWatch(ctx context.Context, watcherAccountID, watchID string) (bool, error)

	// CreateAccount inserts an account
	CreateAccount(ctx context.Context, input CreateAccountInput) (*schema.Account, error)
	// GetAccountByID retrieves an account by id, nil if none
	GetAccountByID(ctx context.Context, id string) (*schema.Account, error)
	// GetAccountBySubject retrieves an account by identity provider subject, nil if none
	GetAccountBySubject(ctx context.Context, subject string) (*schema.Account, error)
	// AccountAddressExists reports whether an address is already allocated
	AccountAddressExists(ctx context.Context, address string) (bool, error)

	// CreateLedgerOrphan records a ledger entity whose compensation failed
	CreateLedgerOrphan(ctx context.Context, input CreateLedgerOrphanInput) (*schema.LedgerOrphan, error)
	// ListUnresolvedLedgerOrphans lists unresolved orphans with fewer than maxAttempts retries, oldest first
	ListUnresolvedLedgerOrphans(ctx context.Context, maxAttempts, limit int) ([]schema.LedgerOrphan, error)
	// ResolveLedgerOrphan marks an orphan resolved
	ResolveLedgerOrphan(ctx context.Context, id string) error
	// IncrementLedgerOrphanAttempts records a failed retry
	IncrementLedgerOrphanAttempts(ctx context.Context, id, reason string) error

	// GetCursor retrieves a named cursor, "" if unset
	GetCursor(ctx context.Context, name string) (string, error)
	// SetCursor stores a named cursor
	SetCursor(ctx context.Context, name, value string) error

	// Ping checks the database connection
	Ping(ctx context.Context) error
}
