package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// SQLiteDialect talks to a local database file through mattn/go-sqlite3
type SQLiteDialect struct{}

func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) Name() string       { return "sqlite" }
func (d *SQLiteDialect) DriverName() string { return "sqlite3" }

// DSN turns on foreign keys and a busy timeout for every pooled connection.
// A path that already carries options is used as given.
func (d *SQLiteDialect) DSN(target Target) (string, error) {
	if target.Path == "" {
		return "", errors.New("sqlite: DB_PATH is empty")
	}
	if strings.Contains(target.Path, "?") {
		return target.Path, nil
	}
	return target.Path + "?_foreign_keys=on&_busy_timeout=5000", nil
}

func (d *SQLiteDialect) Rebind(query string) string { return query }
func (d *SQLiteDialect) UsesReturning() bool        { return false }

// Setup switches the file to WAL so readers do not block the writer.
// journal_mode is persistent, so one connection is enough.
func (d *SQLiteDialect) Setup(ctx context.Context, db *sql.DB) error {
	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		return err
	}
	return nil
}

func (d *SQLiteDialect) MigrationsTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS migrations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT NOT NULL UNIQUE,
	executed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
}

func (d *SQLiteDialect) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
