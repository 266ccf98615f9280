package schema

import (
	"time"

	"gorm.io/gorm"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

// Watch represents the watches table - a non-owning account's interest in a ledger entity
type Watch struct {
	// ID is the row primary key (ULID)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// WatcherAccountID references the watching account
	WatcherAccountID string `gorm:"column:watcher_account_id;not null;type:text;index:idx_watches_watcher"`
	// WatchedEntityID is the ledger identifier of the watched entity
	WatchedEntityID uint64 `gorm:"column:watched_entity_id;not null;index:idx_watches_entity,priority:1"`
	// StageType is the lifecycle stage of the watched entity
	StageType domain.Stage `gorm:"column:stage_type;not null;type:text;index:idx_watches_entity,priority:2"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// DeletedAt is set when the watcher relinquishes interest or the entity is deleted
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName specifies the table name for the Watch model
func (Watch) TableName() string {
	return "watches"
}

// BeforeCreate assigns a ULID primary key
func (w *Watch) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = NewID()
	}
	return nil
}
