package schema

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

// LedgerOrphan represents the ledger_orphans table - ledger entities left without an
// ownership row because the compensating delete failed or the creating transaction
// was never confirmed
type LedgerOrphan struct {
	// ID is the row primary key (ULID)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// OperationID correlates the orphan with the operation that created it
	OperationID string `gorm:"column:operation_id;not null;type:text"`
	// StageType is the stage of the orphaned entity
	StageType domain.Stage `gorm:"column:stage_type;not null;type:text"`
	// EntityID is the ledger identifier of the orphaned entity; 0 until the
	// creating transaction is confirmed
	EntityID uint64 `gorm:"column:entity_id;not null"`
	// TxHash is the unconfirmed creating transaction, empty when EntityID is known
	TxHash string `gorm:"column:tx_hash;type:text"`
	// Reason is the compensation failure message
	Reason string `gorm:"column:reason;not null;type:text"`
	// Payload holds the operation context (actor, inputs) as JSON
	Payload datatypes.JSON `gorm:"column:payload;type:jsonb"`
	// Attempts counts the retries made by the sweeper
	Attempts int `gorm:"column:attempts;not null;default:0"`
	// ResolvedAt is set once the entity was deleted on the ledger
	ResolvedAt *time.Time `gorm:"column:resolved_at;index"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the LedgerOrphan model
func (LedgerOrphan) TableName() string {
	return "ledger_orphans"
}

// BeforeCreate assigns a ULID primary key
func (o *LedgerOrphan) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = NewID()
	}
	return nil
}
