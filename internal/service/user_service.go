package service

import (
	"context"
	"errors"
	"fmt"

	"quizzy/internal/database"
	"quizzy/internal/models"
	"quizzy/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService handles user listing, profiles and role changes
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a user service bound to a request's connection
func NewUserService(conn database.DBTX) *UserService {
	return &UserService{userRepo: repository.NewUserRepository(conn)}
}

// ListUsers returns every user. There is no paging.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListTeachers returns the users who can be asked questions
func (s *UserService) ListTeachers(ctx context.Context) ([]models.User, error) {
	teachers, err := s.userRepo.GetTeachers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

// GetProfile returns the user with the given ID
func (s *UserService) GetProfile(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Promote marks the user with the given ID as a teacher. Any signed-in user
// may promote any other user.
func (s *UserService) Promote(ctx context.Context, id int64) error {
	found, err := s.userRepo.SetTeacher(ctx, id, true)
	if err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}
	if !found {
		return ErrUserNotFound
	}
	return nil
}

// PromoteByName marks the named user as a teacher
func (s *UserService) PromoteByName(ctx context.Context, name string) (*models.User, error) {
	user, err := s.byName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.Promote(ctx, user.ID); err != nil {
		return nil, err
	}
	user.Teacher = true
	return user, nil
}

// GrantAdmin sets the admin flag on the named user
func (s *UserService) GrantAdmin(ctx context.Context, name string) (*models.User, error) {
	user, err := s.byName(ctx, name)
	if err != nil {
		return nil, err
	}
	found, err := s.userRepo.SetAdmin(ctx, user.ID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to grant admin: %w", err)
	}
	if !found {
		return nil, ErrUserNotFound
	}
	user.Admin = true
	return user, nil
}

func (s *UserService) byName(ctx context.Context, name string) (*models.User, error) {
	user, err := s.userRepo.GetUserByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
