package models

import (
	"time"
)

// AccountUser is the identity that owns accounts. The name is what the
// bank displays; the email/password fields only exist for the API layer
// and are never consulted by the account or transaction engines.
type AccountUser struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	TokenVersion int    `gorm:"default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
