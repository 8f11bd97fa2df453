package repositories

import (
	"fmt"

	"corebank/internal/models"

	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByAccountNumber(number string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("account_number = ?", number).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetLatest() (*models.Account, error) {
	var account models.Account
	err := r.db.Order("account_number DESC").First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get latest account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Account{}).Where("account_user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

func (r *accountRepository) ListByUser(userID uint) ([]*models.Account, error) {
	var accounts []*models.Account
	err := r.db.Where("account_user_id = ?", userID).Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) Update(account *models.Account) error {
	if err := r.db.Save(account).Error; err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

func (r *accountRepository) CreateTransaction(txn *models.Transaction) error {
	if err := r.db.Create(txn).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *accountRepository) ExecuteInTransaction(fn func(AccountRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&accountRepository{db: tx})
	})
}
