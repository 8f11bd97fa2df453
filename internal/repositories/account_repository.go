package repositories

import (
	"corebank/internal/models"
)

// AccountRepository defines the account-related queries the engines
// consume. Transaction rows are written through this repository as well so
// a balance mutation and its record commit inside one database
// transaction.
type AccountRepository interface {
	Create(account *models.Account) error
	GetByID(id uint) (*models.Account, error)
	GetByAccountNumber(number string) (*models.Account, error)
	// GetLatest returns the account holding the numerically highest
	// account number, or ErrAccountNotFound when no account exists yet.
	GetLatest() (*models.Account, error)
	CountByUser(userID uint) (int64, error)
	ListByUser(userID uint) ([]*models.Account, error)
	Update(account *models.Account) error

	CreateTransaction(txn *models.Transaction) error

	// ExecuteInTransaction runs fn against a repository bound to a single
	// database transaction; every write inside commits or rolls back as
	// one unit.
	ExecuteInTransaction(fn func(AccountRepository) error) error
}
