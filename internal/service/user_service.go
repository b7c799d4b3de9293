package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"travelreview/internal/apperr"
	"travelreview/internal/model"
	"travelreview/internal/repository"
)

// UserService contains business logic for user accounts.
type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(ur *repository.UserRepository) *UserService {
	return &UserService{userRepo: ur}
}

// Register creates a new account. Username and email must be unique; the
// password is stored as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, username, email, password, fullName string) (*model.UserAccount, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperr.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email %q", apperr.ErrValidation, email)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperr.ErrValidation)
	}

	taken, err := s.userRepo.UsernameOrEmailTaken(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	if taken {
		return nil, fmt.Errorf("%w: username or email already registered", apperr.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("UserService.Register: hash password: %w", err)
	}

	u := &model.UserAccount{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return u, nil
}

// GetByID returns one account.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.UserAccount, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return u, nil
}

// UpdateProfile changes the mutable profile fields of an account. The
// username cannot change.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, email, fullName string) (*model.UserAccount, error) {
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email %q", apperr.ErrValidation, email)
	}
	err := s.userRepo.UpdateProfile(ctx, id, email, fullName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return s.GetByID(ctx, id)
}

// Verify marks the account as verified.
func (s *UserService) Verify(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Verify(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return nil
}
