package account

import (
	"context"
	"time"

	"corebank/internal/models"
)

// Cache is the account cache surface the service needs. Implemented by
// cache.CacheService; failures are soft and never abort an operation.
type Cache interface {
	GetAccountByID(ctx context.Context, id uint) (*models.Account, error)
	CacheAccount(ctx context.Context, account *models.Account) error
	InvalidateAccount(ctx context.Context, account *models.Account) error
}

// OpenResult is returned from Open. A plain value; no entity reference
// leaks out of the engine.
type OpenResult struct {
	OwnerID       uint      `json:"user_id"`
	AccountNumber string    `json:"account_number"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// CloseResult is returned from Close.
type CloseResult struct {
	OwnerID        uint                 `json:"user_id"`
	AccountNumber  string               `json:"account_number"`
	Status         models.AccountStatus `json:"status"`
	UnregisteredAt time.Time            `json:"unregistered_at"`
}

// Detail is the public projection of one account.
type Detail struct {
	ID             uint                 `json:"id"`
	OwnerID        uint                 `json:"user_id"`
	AccountNumber  string               `json:"account_number"`
	Status         models.AccountStatus `json:"status"`
	Balance        int64                `json:"balance"`
	RegisteredAt   time.Time            `json:"registered_at"`
	UnregisteredAt *time.Time           `json:"unregistered_at,omitempty"`
}

// Summary is one row of a user's account listing.
type Summary struct {
	AccountNumber string `json:"account_number"`
	Balance       int64  `json:"balance"`
}
