package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizzy/internal/database"
	"quizzy/internal/models"
)

// ErrDuplicateName is returned when an insert collides with an existing username
var ErrDuplicateName = errors.New("username already exists")

const userColumns = "id, name, password_hash, teacher, admin, created_at"

// UserRepository handles database operations for users
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new non-teacher, non-admin user
func (r *UserRepository) CreateUser(ctx context.Context, name, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (name, password_hash, teacher, admin)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query, name, passwordHash, false, false)
	if err != nil {
		if r.db.GetDialect().IsUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:           id,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}

// GetUserByName retrieves a user by name
func (r *UserRepository) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE name = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetAllUsers retrieves every user ordered by name
func (r *UserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY name"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.PasswordHash,
			&user.Teacher,
			&user.Admin,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// GetTeachers retrieves users with the teacher flag set
func (r *UserRepository) GetTeachers(ctx context.Context) ([]models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE teacher = ? ORDER BY name"
	rows, err := r.db.QueryContext(ctx, query, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query teachers: %w", err)
	}
	defer rows.Close()

	var teachers []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.PasswordHash,
			&user.Teacher,
			&user.Admin,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan teacher: %w", err)
		}
		teachers = append(teachers, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teachers: %w", err)
	}

	return teachers, nil
}

// SetTeacher sets the teacher flag for a user. It reports whether a row matched.
func (r *UserRepository) SetTeacher(ctx context.Context, id int64, teacher bool) (bool, error) {
	return r.setFlag(ctx, "UPDATE users SET teacher = ? WHERE id = ?", id, teacher)
}

// SetAdmin sets the admin flag for a user. It reports whether a row matched.
func (r *UserRepository) SetAdmin(ctx context.Context, id int64, admin bool) (bool, error) {
	return r.setFlag(ctx, "UPDATE users SET admin = ? WHERE id = ?", id, admin)
}

func (r *UserRepository) setFlag(ctx context.Context, query string, id int64, value bool) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return false, fmt.Errorf("failed to update user: %w", err)
	}

	// MySQL counts changed rows, not matched rows, so re-setting a flag reports 0
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	if rows > 0 {
		return true, nil
	}

	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.PasswordHash,
		&user.Teacher,
		&user.Admin,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
