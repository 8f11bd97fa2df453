package transaction

import (
	"context"
	"time"

	"corebank/internal/models"
)

// Cache is the invalidation surface the engine needs after a balance
// mutation. Implemented by cache.CacheService.
type Cache interface {
	InvalidateAccount(ctx context.Context, account *models.Account) error
}

// Result is the transfer-safe summary of one use, cancel or query. No
// live entity reference leaks out of the engine.
type Result struct {
	AccountNumber   string                   `json:"account_number"`
	Type            models.TransactionType   `json:"transaction_type"`
	Result          models.TransactionResult `json:"transaction_result"`
	TransactionID   string                   `json:"transaction_id"`
	Amount          int64                    `json:"amount"`
	BalanceSnapshot int64                    `json:"balance_snapshot"`
	TransactedAt    time.Time                `json:"transacted_at"`
}
