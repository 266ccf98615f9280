package schema

import (
	"time"

	"gorm.io/gorm"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

// Ownership represents the ownerships table - which account owns which ledger entity, per stage
type Ownership struct {
	// ID is the row primary key (ULID)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// EntityID is the ledger identifier of the entity
	EntityID uint64 `gorm:"column:entity_id;not null;uniqueIndex:idx_ownerships_entity_stage,priority:1,where:deleted_at IS NULL"`
	// OriginEntityID is the upstream entity this one was derived from, if any
	OriginEntityID *uint64 `gorm:"column:origin_entity_id"`
	// OwnerAccountID references the owning account
	OwnerAccountID string `gorm:"column:owner_account_id;not null;type:text;index:idx_ownerships_owner_stage,priority:1"`
	// StageType is the lifecycle stage of the entity
	StageType domain.Stage `gorm:"column:stage_type;not null;type:text;uniqueIndex:idx_ownerships_entity_stage,priority:2,where:deleted_at IS NULL;index:idx_ownerships_owner_stage,priority:2"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// DeletedAt is set for rows removed without a hard delete
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName specifies the table name for the Ownership model
func (Ownership) TableName() string {
	return "ownerships"
}

// BeforeCreate assigns a ULID primary key
func (o *Ownership) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = NewID()
	}
	return nil
}
