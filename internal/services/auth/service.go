// Package auth handles registration, login and token lifecycle for
// account users. It sits entirely outside the account/transaction rule
// engines; those only ever see a user id.
package auth

import (
	"errors"
	"log"

	"corebank/internal/models"
	"corebank/internal/repositories"
	"corebank/internal/utils"
	"corebank/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(name, email, password string) (*models.AccountUser, error)
	Login(email, password string) (*models.AccountUser, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
	GetUserByID(userID uint) (*models.AccountUser, error)
	GetUserTokenVersion(userID uint) (int, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{
		userRepo: userRepo,
	}
}

func (s *service) Register(name, email, password string) (*models.AccountUser, error) {
	if name == "" || email == "" {
		return nil, errors.New("name and email are required")
	}
	if len(password) < 8 || !validation.HasSpecialChar(password) {
		return nil, errors.New("password must be at least 8 characters and contain special characters")
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &models.AccountUser{
		Name:         name,
		Email:        email,
		Password:     string(hashed),
		TokenVersion: 1,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, errors.New("failed to create user")
	}
	return user, nil
}

func (s *service) Login(email, password string) (*models.AccountUser, string, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		log.Printf("login failed: no user for email %s", email)
		return nil, "", "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("login failed: wrong password for user %d", user.ID)
		return nil, "", "", errors.New("invalid credentials")
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		log.Println("error generating tokens:", err)
		return nil, "", "", errors.New("error generating tokens")
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	if user.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
	})
}

func (s *service) Logout(userID uint) error {
	return s.userRepo.IncrementTokenVersion(userID)
}

func (s *service) GetUserByID(userID uint) (*models.AccountUser, error) {
	return s.userRepo.GetByID(userID)
}

func (s *service) GetUserTokenVersion(userID uint) (int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}
