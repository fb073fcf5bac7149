package services

import (
	"context"
	"errors"
	"fmt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService handles registration and authentication business logic
type AccountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountService
func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *AccountService) Register(ctx context.Context, username, email, password, confirmation string) (*models.User, error) {
	if password == "" || password != confirmation {
		return nil, auctionerrors.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	err = s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, auctionerrors.ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.Info("user registered", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})

	return user, nil
}

// Authenticate checks a username/password pair and returns the user.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, auctionerrors.ErrInvalidCredential
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.IsActive {
		return nil, auctionerrors.ErrInvalidCredential
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, auctionerrors.ErrInvalidCredential
	}

	return &user, nil
}

// ChangePassword replaces a user's password after verifying the old one.
func (s *AccountService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword, confirmation string) error {
	if newPassword == "" || newPassword != confirmation {
		return auctionerrors.ErrPasswordMismatch
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return auctionerrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return auctionerrors.ErrInvalidCredential
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.WithContext(ctx).Model(&user).Update("password_hash", string(hash)).Error
}

// GetUserByID retrieves a user by their ID
func (s *AccountService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, auctionerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
