package repositories

import (
	"corebank/internal/models"
)

// TransactionRepository defines transaction-record lookups by the
// externally visible transaction identifier.
type TransactionRepository interface {
	Create(txn *models.Transaction) error
	// GetByTransactionID loads a transaction with its owning account
	// preloaded, or ErrTransactionNotFound.
	GetByTransactionID(transactionID string) (*models.Transaction, error)
}
