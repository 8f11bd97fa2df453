package models

import (
	"time"
)

// TransactionType distinguishes debits from reversals.
type TransactionType string

const (
	TransactionTypeUse    TransactionType = "USE"
	TransactionTypeCancel TransactionType = "CANCEL"
)

// TransactionResult records whether the attempt went through.
type TransactionResult string

const (
	TransactionResultSuccess TransactionResult = "SUCCESS"
	TransactionResultFail    TransactionResult = "FAIL"
)

// Transaction is an immutable record of one balance-affecting attempt.
// Every use/cancel invocation produces exactly one row, failures included;
// failed rows keep the amount that was attempted and snapshot the balance
// the account still holds. TransactionID is the externally visible opaque
// identifier, distinct from the storage primary key.
type Transaction struct {
	ID              uint              `gorm:"primarykey"`
	AccountID       uint              `gorm:"index;not null"`
	Account         *Account          `gorm:"foreignKey:AccountID"`
	TransactionID   string            `gorm:"uniqueIndex;not null"`
	Type            TransactionType   `gorm:"type:varchar(8);not null"`
	Result          TransactionResult `gorm:"type:varchar(8);not null"`
	Amount          int64             `gorm:"not null"`
	BalanceSnapshot int64             `gorm:"not null"` // balance after the attempt
	TransactedAt    time.Time         `gorm:"index;not null"`
	CreatedAt       time.Time
}
