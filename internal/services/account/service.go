// Package account implements the account lifecycle rules: opening with
// sequential account numbers, closing, and lookups.
package account

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	apperrors "corebank/internal/errors"
	"corebank/internal/models"
	"corebank/internal/repositories"
)

// Service defines the account lifecycle operations.
type Service interface {
	Open(ctx context.Context, userID uint) (*OpenResult, error)
	Close(ctx context.Context, userID uint, accountNumber string) (*CloseResult, error)
	GetAccount(ctx context.Context, id uint) (*Detail, error)
	ListAccounts(ctx context.Context, userID uint) ([]Summary, error)
}

type service struct {
	userRepo    repositories.UserRepository
	accountRepo repositories.AccountRepository
	cache       Cache
}

// NewService creates a new account service.
func NewService(userRepo repositories.UserRepository, accountRepo repositories.AccountRepository, cache Cache) Service {
	if userRepo == nil {
		panic("user repo is required")
	}
	if accountRepo == nil {
		panic("account repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}

	return &service{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		cache:       cache,
	}
}

// Open creates a new IN_USE account with a zero balance for the user. The
// account number continues the global sequence: the highest existing
// number plus one, or the seed when no account exists anywhere yet.
func (s *service) Open(ctx context.Context, userID uint) (*OpenResult, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	count, err := s.accountRepo.CountByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	if count >= MaxAccountsPerUser {
		return nil, apperrors.ErrMaxAccountsPerUserExceeded
	}

	number, err := s.nextAccountNumber()
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		AccountUserID: user.ID,
		AccountNumber: number,
		Status:        models.AccountStatusInUse,
		Balance:       0,
		RegisteredAt:  time.Now(),
	}
	if err := s.accountRepo.Create(account); err != nil {
		return nil, err
	}

	s.cache.CacheAccount(ctx, account)

	return &OpenResult{
		OwnerID:       user.ID,
		AccountNumber: account.AccountNumber,
		RegisteredAt:  account.RegisteredAt,
	}, nil
}

// Close unregisters the account. Ordered checks, first failure wins:
// owner mismatch, already closed, balance not empty.
func (s *service) Close(ctx context.Context, userID uint, accountNumber string) (*CloseResult, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	account, err := s.getAccountByNumber(accountNumber)
	if err != nil {
		return nil, err
	}

	if err := validateClose(user, account); err != nil {
		return nil, err
	}

	now := time.Now()
	account.Status = models.AccountStatusUnregistered
	account.UnregisteredAt = &now
	if err := s.accountRepo.Update(account); err != nil {
		return nil, err
	}

	s.cache.InvalidateAccount(ctx, account)

	return &CloseResult{
		OwnerID:        user.ID,
		AccountNumber:  account.AccountNumber,
		Status:         account.Status,
		UnregisteredAt: now,
	}, nil
}

// GetAccount loads one account by its storage id.
func (s *service) GetAccount(ctx context.Context, id uint) (*Detail, error) {
	if account, err := s.cache.GetAccountByID(ctx, id); err == nil {
		return toDetail(account), nil
	}

	account, err := s.accountRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}

	s.cache.CacheAccount(ctx, account)

	return toDetail(account), nil
}

// ListAccounts returns every account the user owns, in storage order.
func (s *service) ListAccounts(ctx context.Context, userID uint) ([]Summary, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(accounts))
	for _, a := range accounts {
		summaries = append(summaries, Summary{
			AccountNumber: a.AccountNumber,
			Balance:       a.Balance,
		})
	}
	return summaries, nil
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

func (s *service) nextAccountNumber() (string, error) {
	latest, err := s.accountRepo.GetLatest()
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return fmt.Sprintf(accountNumberFormat, AccountNumberSeed), nil
		}
		return "", fmt.Errorf("failed to get latest account: %w", err)
	}

	n, err := strconv.ParseInt(latest.AccountNumber, 10, 64)
	if err != nil {
		return "", fmt.Errorf("stored account number %q is not numeric: %w", latest.AccountNumber, err)
	}
	return fmt.Sprintf(accountNumberFormat, n+1), nil
}

func validateClose(user *models.AccountUser, account *models.Account) error {
	if user.ID != account.AccountUserID {
		return apperrors.ErrOwnerMismatch
	}
	if account.Status == models.AccountStatusUnregistered {
		return apperrors.ErrAccountAlreadyClosed
	}
	if account.Balance != 0 {
		return apperrors.ErrBalanceNotEmpty
	}
	return nil
}

func toDetail(account *models.Account) *Detail {
	return &Detail{
		ID:             account.ID,
		OwnerID:        account.AccountUserID,
		AccountNumber:  account.AccountNumber,
		Status:         account.Status,
		Balance:        account.Balance,
		RegisteredAt:   account.RegisteredAt,
		UnregisteredAt: account.UnregisteredAt,
	}
}
