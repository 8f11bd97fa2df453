package models

import (
	"time"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusInUse        AccountStatus = "IN_USE"
	AccountStatusUnregistered AccountStatus = "UNREGISTERED"
)

// Account holds a single balance for one owning user. The owner is set at
// creation and never reassigned. Once the status moves to UNREGISTERED the
// balance is frozen at zero; accounts are never physically deleted.
type Account struct {
	ID             uint          `gorm:"primarykey"`
	AccountUserID  uint          `gorm:"index;not null"`
	AccountUser    *AccountUser  `gorm:"foreignKey:AccountUserID"`
	AccountNumber  string        `gorm:"uniqueIndex;not null"`
	Status         AccountStatus `gorm:"type:varchar(16);not null;default:'IN_USE'"`
	Balance        int64         `gorm:"not null;default:0"` // minor units, never negative
	RegisteredAt   time.Time     `gorm:"not null"`
	UnregisteredAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
