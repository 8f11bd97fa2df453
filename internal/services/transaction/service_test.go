package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "corebank/internal/errors"
	"corebank/internal/models"
	"corebank/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.AccountUser) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*models.AccountUser, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccountUser), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.AccountUser, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccountUser), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.AccountUser) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepository) IncrementTokenVersion(userID uint) error {
	return m.Called(userID).Error(0)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(account *models.Account) error {
	return m.Called(account).Error(0)
}

func (m *MockAccountRepository) GetByID(id uint) (*models.Account, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByAccountNumber(number string) (*models.Account, error) {
	args := m.Called(number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetLatest() (*models.Account, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) CountByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) ListByUser(userID uint) ([]*models.Account, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(account *models.Account) error {
	return m.Called(account).Error(0)
}

func (m *MockAccountRepository) CreateTransaction(txn *models.Transaction) error {
	return m.Called(txn).Error(0)
}

func (m *MockAccountRepository) ExecuteInTransaction(fn func(repositories.AccountRepository) error) error {
	args := m.Called(fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(txn *models.Transaction) error {
	return m.Called(txn).Error(0)
}

func (m *MockTransactionRepository) GetByTransactionID(transactionID string) (*models.Transaction, error) {
	args := m.Called(transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// stubCache ignores invalidations; the database stays authoritative in
// these tests.
type stubCache struct{}

func (stubCache) InvalidateAccount(context.Context, *models.Account) error { return nil }

type fixture struct {
	userRepo    *MockUserRepository
	accountRepo *MockAccountRepository
	txnRepo     *MockTransactionRepository
	service     Service
}

func newFixture() *fixture {
	f := &fixture{
		userRepo:    new(MockUserRepository),
		accountRepo: new(MockAccountRepository),
		txnRepo:     new(MockTransactionRepository),
	}
	f.service = NewService(f.userRepo, f.accountRepo, f.txnRepo, stubCache{}, nil)
	return f
}

func TestUseBalance_Success(t *testing.T) {
	f := newFixture()

	user := &models.AccountUser{ID: 12, Name: "Pobi"}
	account := &models.Account{
		ID:            1,
		AccountUserID: 12,
		AccountNumber: "1000000012",
		Status:        models.AccountStatusInUse,
		Balance:       10000,
	}
	f.userRepo.On("GetByID", uint(12)).Return(user, nil)
	f.accountRepo.On("GetByAccountNumber", "1000000012").Return(account, nil)
	f.accountRepo.On("ExecuteInTransaction", mock.Anything).Return(nil)
	f.accountRepo.On("Update", account).Return(nil)

	var saved *models.Transaction
	f.accountRepo.On("CreateTransaction", mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*models.Transaction)
	}).Return(nil)

	result, err := f.service.UseBalance(context.Background(), 12, "1000000012", 1000)

	require.NoError(t, err)
	assert.Equal(t, "1000000012", result.AccountNumber)
	assert.Equal(t, models.TransactionTypeUse, result.Type)
	assert.Equal(t, models.TransactionResultSuccess, result.Result)
	assert.Equal(t, int64(1000), result.Amount)
	assert.Equal(t, int64(9000), result.BalanceSnapshot)
	assert.Len(t, result.TransactionID, 32)

	assert.Equal(t, int64(9000), account.Balance)
	require.NotNil(t, saved)
	assert.Equal(t, int64(1000), saved.Amount)
	assert.Equal(t, int64(9000), saved.BalanceSnapshot)
	assert.Equal(t, models.TransactionResultSuccess, saved.Result)
}

func TestUseBalance_UserNotFound(t *testing.T) {
	f := newFixture()
	f.userRepo.On("GetByID", uint(1)).Return(nil, repositories.ErrUserNotFound)

	_, err := f.service.UseBalance(context.Background(), 1, "1000000000", 1000)

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUseBalance_AccountNotFound(t *testing.T) {
	f := newFixture()
	f.userRepo.On("GetByID", uint(12)).Return(&models.AccountUser{ID: 12}, nil)
	f.accountRepo.On("GetByAccountNumber", "1000000000").Return(nil, repositories.ErrAccountNotFound)

	_, err := f.service.UseBalance(context.Background(), 12, "1000000000", 1000)

	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestUseBalance_Validation(t *testing.T) {
	tests := []struct {
		name    string
		account *models.Account
		amount  int64
		wantErr error
	}{
		{
			name: "owner mismatch",
			account: &models.Account{
				AccountUserID: 13,
				Status:        models.AccountStatusInUse,
				Balance:       10000,
			},
			amount:  1000,
			wantErr: apperrors.ErrOwnerMismatch,
		},
		{
			name: "unregistered account cannot be used",
			account: &models.Account{
				AccountUserID: 12,
				Status:        models.AccountStatusUnregistered,
				Balance:       0,
			},
			amount:  1000,
			wantErr: apperrors.ErrAccountAlreadyClosed,
		},
		{
			name: "amount exceeds balance",
			account: &models.Account{
				AccountUserID: 12,
				Status:        models.AccountStatusInUse,
				Balance:       100,
			},
			amount:  1000,
			wantErr: apperrors.ErrAmountExceedsBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.userRepo.On("GetByID", uint(12)).Return(&models.AccountUser{ID: 12}, nil)
			f.accountRepo.On("GetByAccountNumber", "1000000000").Return(tt.account, nil)

			_, err := f.service.UseBalance(context.Background(), 12, "1000000000", tt.amount)

			assert.ErrorIs(t, err, tt.wantErr)
			// A rejected use writes nothing itself.
			f.accountRepo.AssertNotCalled(t, "Update", mock.Anything)
			f.accountRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything)
		})
	}
}

func TestSaveFailedUseTransaction(t *testing.T) {
	f := newFixture()

	account := &models.Account{
		ID:            1,
		AccountUserID: 12,
		AccountNumber: "1000000012",
		Status:        models.AccountStatusInUse,
		Balance:       10000,
	}
	f.accountRepo.On("GetByAccountNumber", "1000000012").Return(account, nil)

	var saved *models.Transaction
	f.txnRepo.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*models.Transaction)
	}).Return(nil)

	err := f.service.SaveFailedUseTransaction(context.Background(), "1000000012", 200)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, models.TransactionTypeUse, saved.Type)
	assert.Equal(t, models.TransactionResultFail, saved.Result)
	assert.Equal(t, int64(200), saved.Amount)
	// The account keeps its balance; the snapshot records it untouched.
	assert.Equal(t, int64(10000), saved.BalanceSnapshot)
	assert.Equal(t, int64(10000), account.Balance)
}

func TestSaveFailedUseTransaction_AccountNotFound(t *testing.T) {
	f := newFixture()
	f.accountRepo.On("GetByAccountNumber", "1000000000").Return(nil, repositories.ErrAccountNotFound)

	err := f.service.SaveFailedUseTransaction(context.Background(), "1000000000", 200)

	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	f.txnRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCancelBalance_Success(t *testing.T) {
	f := newFixture()

	account := &models.Account{
		ID:            1,
		AccountUserID: 12,
		AccountNumber: "1000000012",
		Status:        models.AccountStatusInUse,
		Balance:       9000,
	}
	original := &models.Transaction{
		AccountID:     1,
		TransactionID: "transactionId",
		Type:          models.TransactionTypeUse,
		Result:        models.TransactionResultSuccess,
		Amount:        1000,
		TransactedAt:  time.Now(),
	}
	f.txnRepo.On("GetByTransactionID", "transactionId").Return(original, nil)
	f.accountRepo.On("GetByAccountNumber", "1000000012").Return(account, nil)
	f.accountRepo.On("ExecuteInTransaction", mock.Anything).Return(nil)
	f.accountRepo.On("Update", account).Return(nil)

	var saved *models.Transaction
	f.accountRepo.On("CreateTransaction", mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*models.Transaction)
	}).Return(nil)

	result, err := f.service.CancelBalance(context.Background(), "transactionId", "1000000012", 1000)

	require.NoError(t, err)
	assert.Equal(t, models.TransactionTypeCancel, result.Type)
	assert.Equal(t, models.TransactionResultSuccess, result.Result)
	assert.Equal(t, int64(1000), result.Amount)
	assert.Equal(t, int64(10000), result.BalanceSnapshot)
	assert.NotEqual(t, "transactionId", result.TransactionID)

	assert.Equal(t, int64(10000), account.Balance)
	require.NotNil(t, saved)
	assert.Equal(t, int64(10000), saved.BalanceSnapshot)
}

func TestCancelBalance_TransactionNotFound(t *testing.T) {
	f := newFixture()
	f.txnRepo.On("GetByTransactionID", "transactionId").Return(nil, repositories.ErrTransactionNotFound)

	_, err := f.service.CancelBalance(context.Background(), "transactionId", "1000000000", 1000)

	assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
}

func TestCancelBalance_AccountNotFound(t *testing.T) {
	f := newFixture()
	f.txnRepo.On("GetByTransactionID", "transactionId").Return(&models.Transaction{}, nil)
	f.accountRepo.On("GetByAccountNumber", "1000000000").Return(nil, repositories.ErrAccountNotFound)

	_, err := f.service.CancelBalance(context.Background(), "transactionId", "1000000000", 1000)

	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestCancelBalance_Validation(t *testing.T) {
	account := func() *models.Account {
		return &models.Account{
			ID:            1,
			AccountUserID: 12,
			AccountNumber: "1000000012",
			Status:        models.AccountStatusInUse,
			Balance:       10000,
		}
	}

	tests := []struct {
		name     string
		original *models.Transaction
		amount   int64
		wantErr  error
	}{
		{
			name: "transaction belongs to another account",
			original: &models.Transaction{
				AccountID:    2,
				Amount:       1000,
				TransactedAt: time.Now(),
			},
			amount:  1000,
			wantErr: apperrors.ErrTransactionAccountMismatch,
		},
		{
			name: "partial cancel is rejected",
			original: &models.Transaction{
				AccountID:    1,
				Amount:       2000,
				TransactedAt: time.Now(),
			},
			amount:  1000,
			wantErr: apperrors.ErrCancelMustBeFull,
		},
		{
			name: "older than one year is rejected",
			original: &models.Transaction{
				AccountID:    1,
				Amount:       1000,
				TransactedAt: time.Now().AddDate(-1, 0, -1),
			},
			amount:  1000,
			wantErr: apperrors.ErrOrderTooOldToCancel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.txnRepo.On("GetByTransactionID", "transactionId").Return(tt.original, nil)
			f.accountRepo.On("GetByAccountNumber", "1000000012").Return(account(), nil)

			_, err := f.service.CancelBalance(context.Background(), "transactionId", "1000000012", tt.amount)

			assert.ErrorIs(t, err, tt.wantErr)
			f.accountRepo.AssertNotCalled(t, "Update", mock.Anything)
			f.accountRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything)
		})
	}
}

func TestCancelBalance_WithinOneYearStillCancellable(t *testing.T) {
	f := newFixture()

	account := &models.Account{
		ID:            1,
		AccountUserID: 12,
		AccountNumber: "1000000012",
		Status:        models.AccountStatusInUse,
		Balance:       9000,
	}
	original := &models.Transaction{
		AccountID:    1,
		Amount:       1000,
		TransactedAt: time.Now().AddDate(-1, 0, 0).Add(time.Minute),
	}
	f.txnRepo.On("GetByTransactionID", "transactionId").Return(original, nil)
	f.accountRepo.On("GetByAccountNumber", "1000000012").Return(account, nil)
	f.accountRepo.On("ExecuteInTransaction", mock.Anything).Return(nil)
	f.accountRepo.On("Update", account).Return(nil)
	f.accountRepo.On("CreateTransaction", mock.Anything).Return(nil)

	_, err := f.service.CancelBalance(context.Background(), "transactionId", "1000000012", 1000)

	assert.NoError(t, err)
}

func TestUseThenCancelRestoresBalance(t *testing.T) {
	f := newFixture()

	account := &models.Account{
		ID:            1,
		AccountUserID: 12,
		AccountNumber: "1000000000",
		Status:        models.AccountStatusInUse,
		Balance:       10000,
	}
	f.userRepo.On("GetByID", uint(12)).Return(&models.AccountUser{ID: 12}, nil)
	f.accountRepo.On("GetByAccountNumber", "1000000000").Return(account, nil)
	f.accountRepo.On("ExecuteInTransaction", mock.Anything).Return(nil)
	f.accountRepo.On("Update", account).Return(nil)

	var lastSaved *models.Transaction
	f.accountRepo.On("CreateTransaction", mock.Anything).Run(func(args mock.Arguments) {
		lastSaved = args.Get(0).(*models.Transaction)
	}).Return(nil)

	useResult, err := f.service.UseBalance(context.Background(), 12, "1000000000", 500)
	require.NoError(t, err)
	assert.Equal(t, int64(9500), account.Balance)

	f.txnRepo.On("GetByTransactionID", useResult.TransactionID).Return(lastSaved, nil)

	cancelResult, err := f.service.CancelBalance(context.Background(), useResult.TransactionID, "1000000000", 500)
	require.NoError(t, err)

	assert.Equal(t, int64(10000), account.Balance)
	assert.Equal(t, int64(10000), cancelResult.BalanceSnapshot)
}

func TestQueryTransaction(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture()

		transactedAt := time.Now().AddDate(0, -1, 0)
		f.txnRepo.On("GetByTransactionID", "transactionId").Return(&models.Transaction{
			AccountID:       1,
			Account:         &models.Account{ID: 1, AccountNumber: "1000000012"},
			TransactionID:   "transactionId",
			Type:            models.TransactionTypeUse,
			Result:          models.TransactionResultSuccess,
			Amount:          1000,
			BalanceSnapshot: 9000,
			TransactedAt:    transactedAt,
		}, nil)

		result, err := f.service.QueryTransaction(context.Background(), "transactionId")

		require.NoError(t, err)
		assert.Equal(t, "1000000012", result.AccountNumber)
		assert.Equal(t, models.TransactionTypeUse, result.Type)
		assert.Equal(t, models.TransactionResultSuccess, result.Result)
		assert.Equal(t, int64(1000), result.Amount)
		assert.Equal(t, "transactionId", result.TransactionID)
		assert.True(t, result.TransactedAt.Equal(transactedAt))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.txnRepo.On("GetByTransactionID", "transactionId").Return(nil, repositories.ErrTransactionNotFound)

		_, err := f.service.QueryTransaction(context.Background(), "transactionId")
		assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
	})
}

func TestNewTransactionIDIsOpaqueHex(t *testing.T) {
	id := newTransactionID()
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")

	other := newTransactionID()
	assert.NotEqual(t, id, other)
}

func TestUseBalance_PersistFailure(t *testing.T) {
	f := newFixture()

	account := &models.Account{
		ID:            1,
		AccountUserID: 12,
		AccountNumber: "1000000012",
		Status:        models.AccountStatusInUse,
		Balance:       10000,
	}
	f.userRepo.On("GetByID", uint(12)).Return(&models.AccountUser{ID: 12}, nil)
	f.accountRepo.On("GetByAccountNumber", "1000000012").Return(account, nil)
	f.accountRepo.On("ExecuteInTransaction", mock.Anything).Return(errors.New("deadlock"))

	_, err := f.service.UseBalance(context.Background(), 12, "1000000012", 1000)

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrAmountExceedsBalance)
}
