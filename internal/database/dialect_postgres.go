package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// pqUniqueViolation is SQLSTATE unique_violation
const pqUniqueViolation = "23505"

// PostgresDialect talks to PostgreSQL through lib/pq
type PostgresDialect struct{}

func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) Name() string       { return "postgres" }
func (d *PostgresDialect) DriverName() string { return "postgres" }

// DSN accepts a postgres:// URL or a key=value connection string and tags
// the session with application_name=quizzy unless one is set.
func (d *PostgresDialect) DSN(target Target) (string, error) {
	dsn := target.URL
	if dsn == "" {
		return "", errors.New("postgres: DATABASE_URL is empty")
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return "", fmt.Errorf("postgres: invalid DATABASE_URL: %w", err)
		}
		dsn = converted
	}

	if !strings.Contains(dsn, "application_name=") {
		dsn += " application_name=quizzy"
	}
	return dsn, nil
}

func (d *PostgresDialect) Rebind(query string) string { return bindNumbered(query) }
func (d *PostgresDialect) UsesReturning() bool        { return true }

// Setup has nothing to do; foreign keys are always enforced
func (d *PostgresDialect) Setup(ctx context.Context, db *sql.DB) error {
	return nil
}

func (d *PostgresDialect) MigrationsTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS migrations (
	id BIGSERIAL PRIMARY KEY,
	filename TEXT NOT NULL UNIQUE,
	executed_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
}

func (d *PostgresDialect) IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
