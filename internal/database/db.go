package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"quizzy/internal/config"
)

// DB is the shared connection pool. Requests do not query it directly; they
// borrow a *Conn through a Provider.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Initialize opens a SQLite database at dbPath with the default pool
func Initialize(dbPath string) (*DB, error) {
	return Open(context.Background(), NewSQLiteDialect(), Target{Path: dbPath}, DefaultPool)
}

// InitializeWithConfig opens the database selected by DATABASE_TYPE
func InitializeWithConfig(cfg *config.Config) (*DB, error) {
	dialect, err := DialectFor(cfg.DatabaseType)
	if err != nil {
		return nil, err
	}

	pool := DefaultPool
	pool.MaxOpen = cfg.DBMaxOpenConns
	pool.MaxIdle = cfg.DBMaxIdleConns

	return Open(context.Background(), dialect, Target{Path: cfg.DatabasePath, URL: cfg.DatabaseURL}, pool)
}

// DialectFor maps a DATABASE_TYPE value to its dialect
func DialectFor(databaseType string) (Dialect, error) {
	switch strings.ToLower(databaseType) {
	case "sqlite", "sqlite3", "":
		return NewSQLiteDialect(), nil
	case "postgres", "postgresql":
		return NewPostgresDialect(), nil
	case "mysql", "mariadb":
		return NewMySQLDialect(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", databaseType)
	}
}

// Open connects, verifies and configures a pool for dialect
func Open(ctx context.Context, dialect Dialect, target Target, pool PoolSettings) (*DB, error) {
	dsn, err := dialect.DSN(target)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect.Name(), err)
	}
	pool.apply(sqlDB)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect.Name(), err)
	}

	if err := dialect.Setup(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to set up %s database: %w", dialect.Name(), err)
	}

	return &DB{DB: sqlDB, Dialect: dialect}, nil
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, db.Dialect.Rebind(query), args...)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRowContext(ctx, db.Dialect.Rebind(query), args...)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return db.DB.ExecContext(ctx, db.Dialect.Rebind(query), args...)
}

// ExecReturningID runs an INSERT and returns the new row's ID
func (db *DB) ExecReturningID(ctx context.Context, query string, args ...interface{}) (int64, error) {
	return insertID(ctx, db.DB, db.Dialect, query, args...)
}

func (db *DB) GetDialect() Dialect {
	return db.Dialect
}

// execer is the part of *sql.DB, *sql.Conn and *sql.Tx used for inserts
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// insertID reads the generated ID through LastInsertId, or through an
// appended RETURNING id where the driver has no LastInsertId
func insertID(ctx context.Context, e execer, dialect Dialect, query string, args ...interface{}) (int64, error) {
	query = dialect.Rebind(query)

	if !dialect.UsesReturning() {
		result, err := e.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	}

	query = strings.TrimSuffix(strings.TrimSpace(query), ";") + " RETURNING id"

	var id int64
	if err := e.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
