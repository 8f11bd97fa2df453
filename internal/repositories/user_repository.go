package repositories

import (
	"errors"

	"corebank/internal/models"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDatabaseOperation   = errors.New("database operation failed")
)

// UserRepository defines the user lookups consumed by the engines and the
// auth layer.
type UserRepository interface {
	Create(user *models.AccountUser) error
	GetByID(id uint) (*models.AccountUser, error)
	GetByEmail(email string) (*models.AccountUser, error)
	Update(user *models.AccountUser) error
	IncrementTokenVersion(userID uint) error
}
