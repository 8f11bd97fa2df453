package repositories

import (
	"context"
	"log"

	"corebank/internal/models"
	"corebank/internal/repositories/cache"

	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB, cache *cache.CacheService) UserRepository {
	return &userRepository{
		db:    db,
		cache: cache,
	}
}

func (r *userRepository) Create(user *models.AccountUser) error {
	if err := r.db.Create(user).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *userRepository) GetByID(id uint) (*models.AccountUser, error) {
	key := r.cache.GenerateKey("user", "id", id)
	if user, err := r.cache.GetUser(context.Background(), key); err == nil {
		return user, nil
	}

	var user models.AccountUser
	if err := r.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := r.cache.CacheUser(context.Background(), &user); err != nil {
		log.Printf("failed to cache user %d: %v", user.ID, err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.AccountUser, error) {
	var user models.AccountUser
	result := r.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.AccountUser) error {
	if err := r.db.Save(user).Error; err != nil {
		return ErrDatabaseOperation
	}

	if err := r.cache.InvalidateUser(context.Background(), user); err != nil {
		log.Printf("failed to invalidate user cache %d: %v", user.ID, err)
	}

	return nil
}

func (r *userRepository) IncrementTokenVersion(userID uint) error {
	err := r.db.Model(&models.AccountUser{}).Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
	if err != nil {
		return ErrDatabaseOperation
	}

	var user models.AccountUser
	if err := r.db.First(&user, userID).Error; err == nil {
		if err := r.cache.InvalidateUser(context.Background(), &user); err != nil {
			log.Printf("failed to invalidate user cache %d: %v", userID, err)
		}
	}

	return nil
}
