package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quizzy/internal/database"
	"quizzy/internal/models"
	"quizzy/internal/repository"
	"quizzy/internal/security"
	"quizzy/internal/validation"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService handles registration, login and identity resolution
type AuthService struct {
	userRepo *repository.UserRepository
}

// NewAuthService creates an auth service bound to a request's connection
func NewAuthService(conn database.DBTX) *AuthService {
	return &AuthService{userRepo: repository.NewUserRepository(conn)}
}

// Register creates a new account. The name is checked for uniqueness before
// the password is validated, so a taken name is reported regardless of the
// password. The check and the insert are separate statements; a concurrent
// registration of the same name is caught by the UNIQUE constraint instead.
func (s *AuthService) Register(ctx context.Context, name, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateUsername(name); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetUserByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUsernameTaken
	}

	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, name, passwordHash)
	if errors.Is(err, repository.ErrDuplicateName) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials. Input that cannot be a valid password is
// rejected before storage is queried; an unknown name and a wrong password
// produce the same error.
func (s *AuthService) Login(ctx context.Context, name, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateUsername(name); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CurrentIdentity resolves the name stored in a session to its user.
// It returns nil without error when name is empty or no longer exists.
func (s *AuthService) CurrentIdentity(ctx context.Context, name string) (*models.User, error) {
	if name == "" {
		return nil, nil
	}

	user, err := s.userRepo.GetUserByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	return user, nil
}
