package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance.
// Any gorm dialector works; tests run it against SQLite.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// pgUniqueViolation is the SQLSTATE of unique_violation
const pgUniqueViolation = "23505"

// GormConfig returns the gorm configuration every store connection is opened
// with. A nil log keeps the gorm default logger.
func GormConfig(log gormlogger.Interface) *gorm.Config {
	return &gorm.Config{
		Logger:         log,
		TranslateError: true,
	}
}

// Migrate creates or updates the index tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(schema.Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

func translateError(err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// isUniqueViolation recognizes unique violations whether or not the
// dialector translated them
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// =============================================================================
// Ownerships
// =============================================================================

// CreateOwnership inserts an ownership row
func (s *pgStore) CreateOwnership(ctx context.Context, input CreateOwnershipInput) (*schema.Ownership, error) {
	ownership := newOwnership(input)
	if err := s.db.WithContext(ctx).Create(ownership).Error; err != nil {
		return nil, fmt.Errorf("failed to create ownership: %w", translateError(err))
	}
	return ownership, nil
}

// CreateOwnershipWithWatch inserts an ownership row and a watch row atomically
func (s *pgStore) CreateOwnershipWithWatch(ctx context.Context, ownershipInput CreateOwnershipInput, watchInput CreateWatchInput) (*schema.Ownership, error) {
	ownership := newOwnership(ownershipInput)
	watch := newWatch(watchInput)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ownership).Error; err != nil {
			return fmt.Errorf("failed to create ownership: %w", translateError(err))
		}
		if err := tx.Create(watch).Error; err != nil {
			return fmt.Errorf("failed to create watch: %w", translateError(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ownership, nil
}

// GetOwnership retrieves the live ownership row of an entity
func (s *pgStore) GetOwnership(ctx context.Context, stage domain.Stage, entityID uint64) (*schema.Ownership, error) {
	var ownership schema.Ownership
	err := s.db.WithContext(ctx).
		Where("stage_type = ? AND entity_id = ?", stage, entityID).
		First(&ownership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ownership: %w", err)
	}
	return &ownership, nil
}

// DeleteOwnership hard-deletes the ownership row and soft-deletes the watches of the entity
func (s *pgStore) DeleteOwnership(ctx context.Context, stage domain.Stage, entityID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("stage_type = ? AND entity_id = ?", stage, entityID).
			Delete(&schema.Ownership{}).Error; err != nil {
			return fmt.Errorf("failed to delete ownership: %w", err)
		}

		if err := tx.Where("stage_type = ? AND watched_entity_id = ?", stage, entityID).
			Delete(&schema.Watch{}).Error; err != nil {
			return fmt.Errorf("failed to delete watches: %w", err)
		}

		return nil
	})
}

// ListOwnerships lists live ownership rows of an owner, oldest first
func (s *pgStore) ListOwnerships(ctx context.Context, filter OwnershipFilter) ([]schema.Ownership, error) {
	query := s.db.WithContext(ctx).
		Where("owner_account_id = ?", filter.OwnerAccountID)
	if filter.StageType != "" {
		query = query.Where("stage_type = ?", filter.StageType)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var ownerships []schema.Ownership
	if err := query.Order("id ASC").Find(&ownerships).Error; err != nil {
		return nil, fmt.Errorf("failed to list ownerships: %w", err)
	}
	return ownerships, nil
}

// ListOwnershipsAfter lists live ownership rows of a stage after the given row id
func (s *pgStore) ListOwnershipsAfter(ctx context.Context, stage domain.Stage, afterID string, limit int) ([]schema.Ownership, error) {
	query := s.db.WithContext(ctx).Where("stage_type = ?", stage)
	if afterID != "" {
		query = query.Where("id > ?", afterID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var ownerships []schema.Ownership
	if err := query.Order("id ASC").Find(&ownerships).Error; err != nil {
		return nil, fmt.Errorf("failed to list ownerships: %w", err)
	}
	return ownerships, nil
}

func newOwnership(input CreateOwnershipInput) *schema.Ownership {
	return &schema.Ownership{
		EntityID:       input.EntityID,
		OriginEntityID: input.OriginEntityID,
		OwnerAccountID: input.OwnerAccountID,
		StageType:      input.StageType,
	}
}

// =============================================================================
// Watches
// =============================================================================

// CreateWatch inserts a watch row
func (s *pgStore) CreateWatch(ctx context.Context, input CreateWatchInput) (*schema.Watch, error) {
	watch := newWatch(input)
	if err := s.db.WithContext(ctx).Create(watch).Error; err != nil {
		return nil, fmt.Errorf("failed to create watch: %w", translateError(err))
	}
	return watch, nil
}

// ListWatches lists live watch rows of a watcher, oldest first
func (s *pgStore) ListWatches(ctx context.Context, watcherAccountID string, limit, offset int) ([]schema.Watch, error) {
	query := s.db.WithContext(ctx).Where("watcher_account_id = ?", watcherAccountID)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var watches []schema.Watch
	if err := query.Order("id ASC").Find(&watches).Error; err != nil {
		return nil, fmt.Errorf("failed to list watches: %w", err)
	}
	return watches, nil
}

// DeleteWatch soft-deletes a watch row owned by the watcher
func (s *pgStore) DeleteWatch(ctx context.Context, watcherAccountID, watchID string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND watcher_account_id = ?", watchID, watcherAccountID).
		Delete(&schema.Watch{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete watch: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func newWatch(input CreateWatchInput) *schema.Watch {
	return &schema.Watch{
		WatcherAccountID: input.WatcherAccountID,
		WatchedEntityID:  input.WatchedEntityID,
		StageType:        input.StageType,
	}
}

// =============================================================================
// Accounts
// =============================================================================

// CreateAccount inserts an account
func (s *pgStore) CreateAccount(ctx context.Context, input CreateAccountInput) (*schema.Account, error) {
	account := &schema.Account{
		Subject: input.Subject,
		Address: input.Address,
		Role:    input.Role,
	}
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", translateError(err))
	}
	return account, nil
}

// GetAccountByID retrieves an account by id
func (s *pgStore) GetAccountByID(ctx context.Context, id string) (*schema.Account, error) {
	return s.getAccount(ctx, "id = ?", id)
}

// GetAccountBySubject retrieves an account by identity provider subject
func (s *pgStore) GetAccountBySubject(ctx context.Context, subject string) (*schema.Account, error) {
	return s.getAccount(ctx, "subject = ?", subject)
}

func (s *pgStore) getAccount(ctx context.Context, cond string, value string) (*schema.Account, error) {
	var account schema.Account
	err := s.db.WithContext(ctx).Where(cond, value).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// AccountAddressExists reports whether an address is already allocated
func (s *pgStore) AccountAddressExists(ctx context.Context, address string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.Account{}).
		Where("address = ?", address).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check account address: %w", err)
	}
	return count > 0, nil
}

// =============================================================================
// Ledger orphans
// =============================================================================

// CreateLedgerOrphan records a ledger entity whose compensation failed
func (s *pgStore) CreateLedgerOrphan(ctx context.Context, input CreateLedgerOrphanInput) (*schema.LedgerOrphan, error) {
	orphan := &schema.LedgerOrphan{
		OperationID: input.OperationID,
		StageType:   input.StageType,
		EntityID:    input.EntityID,
		TxHash:      input.TxHash,
		Reason:      input.Reason,
		Payload:     input.Payload,
	}
	if err := s.db.WithContext(ctx).Create(orphan).Error; err != nil {
		return nil, fmt.Errorf("failed to create ledger orphan: %w", err)
	}
	return orphan, nil
}

// ListUnresolvedLedgerOrphans lists unresolved orphans still under the retry budget, oldest first
func (s *pgStore) ListUnresolvedLedgerOrphans(ctx context.Context, maxAttempts, limit int) ([]schema.LedgerOrphan, error) {
	query := s.db.WithContext(ctx).Where("resolved_at IS NULL")
	if maxAttempts > 0 {
		query = query.Where("attempts < ?", maxAttempts)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var orphans []schema.LedgerOrphan
	if err := query.Order("created_at ASC, id ASC").Find(&orphans).Error; err != nil {
		return nil, fmt.Errorf("failed to list ledger orphans: %w", err)
	}
	return orphans, nil
}

// ResolveLedgerOrphan marks an orphan resolved
func (s *pgStore) ResolveLedgerOrphan(ctx context.Context, id string) error {
	now := time.Now().UTC()
	err := s.db.WithContext(ctx).
		Model(&schema.LedgerOrphan{}).
		Where("id = ?", id).
		Update("resolved_at", &now).Error
	if err != nil {
		return fmt.Errorf("failed to resolve ledger orphan: %w", err)
	}
	return nil
}

// IncrementLedgerOrphanAttempts records a failed retry and its reason
func (s *pgStore) IncrementLedgerOrphanAttempts(ctx context.Context, id, reason string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.LedgerOrphan{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts": gorm.Expr("attempts + 1"),
			"reason":   reason,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update ledger orphan: %w", err)
	}
	return nil
}

// Ping checks the database connection
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
