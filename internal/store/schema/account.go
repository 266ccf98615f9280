package schema

import (
	"time"

	"gorm.io/gorm"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

// Account represents the accounts table - onboarded accounts and their allocated ledger address
type Account struct {
	// ID is the account identifier carried by credentials (ULID)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Subject is the identity provider subject the account was onboarded for
	Subject string `gorm:"column:subject;not null;type:text;uniqueIndex:idx_accounts_subject"`
	// Address is the allocated ledger address, "0x" followed by 40 hex characters
	Address string `gorm:"column:address;not null;type:text;uniqueIndex:idx_accounts_address"`
	// Role is the lifecycle role of the account
	Role domain.Role `gorm:"column:role;not null;type:text"`
	// CreatedAt is the timestamp when this account was created
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}

// BeforeCreate assigns a ULID primary key
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	return nil
}
