package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "corebank/internal/errors"
	"corebank/internal/models"
	"corebank/internal/repositories"

	"github.com/google/uuid"
)

// cancelWindowYears is how long after the original transaction a cancel
// is still allowed. Exactly one year old is still cancellable.
const cancelWindowYears = 1

// Service defines the balance-affecting operations and transaction
// lookups.
type Service interface {
	UseBalance(ctx context.Context, userID uint, accountNumber string, amount int64) (*Result, error)
	SaveFailedUseTransaction(ctx context.Context, accountNumber string, amount int64) error
	CancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (*Result, error)
	QueryTransaction(ctx context.Context, transactionID string) (*Result, error)
}

type service struct {
	userRepo    repositories.UserRepository
	accountRepo repositories.AccountRepository
	txnRepo     repositories.TransactionRepository
	cache       Cache
	metrics     MetricsCollector
}

// NewService creates a new transaction service. Metrics is optional; a
// no-op collector is used when nil.
func NewService(
	userRepo repositories.UserRepository,
	accountRepo repositories.AccountRepository,
	txnRepo repositories.TransactionRepository,
	cache Cache,
	metrics MetricsCollector,
) Service {
	if userRepo == nil {
		panic("user repo is required")
	}
	if accountRepo == nil {
		panic("account repo is required")
	}
	if txnRepo == nil {
		panic("transaction repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		cache:       cache,
		metrics:     metrics,
	}
}

// UseBalance debits the account and records a SUCCESS transaction, both
// inside one database transaction. Validation failures return a domain
// error without writing anything; the caller records the failed attempt
// through SaveFailedUseTransaction.
func (s *service) UseBalance(ctx context.Context, userID uint, accountNumber string, amount int64) (*Result, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	account, err := s.getAccountByNumber(accountNumber)
	if err != nil {
		return nil, err
	}

	if err := validateUseBalance(user, account, amount); err != nil {
		return nil, err
	}

	txn := s.buildTransaction(account, models.TransactionTypeUse, models.TransactionResultSuccess, amount)

	err = s.accountRepo.ExecuteInTransaction(func(tx repositories.AccountRepository) error {
		account.Balance -= amount
		if err := tx.Update(account); err != nil {
			return err
		}
		txn.BalanceSnapshot = account.Balance
		return tx.CreateTransaction(txn)
	})
	if err != nil {
		s.metrics.RecordError("use", "persist")
		return nil, fmt.Errorf("use balance: %w", err)
	}

	s.cache.InvalidateAccount(ctx, account)
	s.metrics.RecordTransaction("use", amount)

	return toResult(account.AccountNumber, txn), nil
}

// SaveFailedUseTransaction records a FAIL use attempt against the
// account's unchanged balance. It is a recovery path: no ownership check,
// no account mutation. Callers invoke it after UseBalance failed
// somewhere downstream of the account lookup.
func (s *service) SaveFailedUseTransaction(ctx context.Context, accountNumber string, amount int64) error {
	account, err := s.getAccountByNumber(accountNumber)
	if err != nil {
		return err
	}

	txn := s.buildTransaction(account, models.TransactionTypeUse, models.TransactionResultFail, amount)
	if err := s.txnRepo.Create(txn); err != nil {
		s.metrics.RecordError("use", "persist_failed_record")
		return fmt.Errorf("save failed use transaction: %w", err)
	}
	return nil
}

// CancelBalance reverses a previous use in full, crediting the account
// and recording a SUCCESS CANCEL transaction in the same database
// transaction.
func (s *service) CancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (*Result, error) {
	original, err := s.getTransaction(transactionID)
	if err != nil {
		return nil, err
	}

	account, err := s.getAccountByNumber(accountNumber)
	if err != nil {
		return nil, err
	}

	if err := validateCancelBalance(original, account, amount); err != nil {
		return nil, err
	}

	txn := s.buildTransaction(account, models.TransactionTypeCancel, models.TransactionResultSuccess, amount)

	err = s.accountRepo.ExecuteInTransaction(func(tx repositories.AccountRepository) error {
		account.Balance += amount
		if err := tx.Update(account); err != nil {
			return err
		}
		txn.BalanceSnapshot = account.Balance
		return tx.CreateTransaction(txn)
	})
	if err != nil {
		s.metrics.RecordError("cancel", "persist")
		return nil, fmt.Errorf("cancel balance: %w", err)
	}

	s.cache.InvalidateAccount(ctx, account)
	s.metrics.RecordTransaction("cancel", amount)

	return toResult(account.AccountNumber, txn), nil
}

// QueryTransaction looks one transaction up by its opaque identifier.
// Pure read path; no ownership or status validation.
func (s *service) QueryTransaction(ctx context.Context, transactionID string) (*Result, error) {
	txn, err := s.getTransaction(transactionID)
	if err != nil {
		return nil, err
	}

	accountNumber := ""
	if txn.Account != nil {
		accountNumber = txn.Account.AccountNumber
	} else if account, err := s.accountRepo.GetByID(txn.AccountID); err == nil {
		accountNumber = account.AccountNumber
	}

	return toResult(accountNumber, txn), nil
}

func (s *service) getUser(userID uint) (*models.AccountUser, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *service) getAccountByNumber(number string) (*models.Account, error) {
	account, err := s.accountRepo.GetByAccountNumber(number)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *service) getTransaction(transactionID string) (*models.Transaction, error) {
	txn, err := s.txnRepo.GetByTransactionID(transactionID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, err
	}
	return txn, nil
}

func (s *service) buildTransaction(account *models.Account, txType models.TransactionType, result models.TransactionResult, amount int64) *models.Transaction {
	return &models.Transaction{
		AccountID:       account.ID,
		TransactionID:   newTransactionID(),
		Type:            txType,
		Result:          result,
		Amount:          amount,
		BalanceSnapshot: account.Balance,
		TransactedAt:    time.Now(),
	}
}

// newTransactionID generates the opaque externally visible identifier.
func newTransactionID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func validateUseBalance(user *models.AccountUser, account *models.Account, amount int64) error {
	if user.ID != account.AccountUserID {
		return apperrors.ErrOwnerMismatch
	}
	if account.Status != models.AccountStatusInUse {
		return apperrors.ErrAccountAlreadyClosed
	}
	if amount > account.Balance {
		return apperrors.ErrAmountExceedsBalance
	}
	return nil
}

func validateCancelBalance(original *models.Transaction, account *models.Account, amount int64) error {
	if original.AccountID != account.ID {
		return apperrors.ErrTransactionAccountMismatch
	}
	if original.Amount != amount {
		return apperrors.ErrCancelMustBeFull
	}
	if original.TransactedAt.Before(time.Now().AddDate(-cancelWindowYears, 0, 0)) {
		return apperrors.ErrOrderTooOldToCancel
	}
	return nil
}

func toResult(accountNumber string, txn *models.Transaction) *Result {
	return &Result{
		AccountNumber:   accountNumber,
		Type:            txn.Type,
		Result:          txn.Result,
		TransactionID:   txn.TransactionID,
		Amount:          txn.Amount,
		BalanceSnapshot: txn.BalanceSnapshot,
		TransactedAt:    txn.TransactedAt,
	}
}
