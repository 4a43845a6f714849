package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect hides the differences between SQLite, PostgreSQL and MySQL.
// Queries are written with ? placeholders and rebound per dialect.
type Dialect interface {
	// Name is the short dialect name; it doubles as the migrations subdirectory
	Name() string
	DriverName() string
	DSN(target Target) (string, error)
	Rebind(query string) string
	// UsesReturning reports whether inserted IDs must be read back through
	// RETURNING because sql.Result.LastInsertId is unsupported
	UsesReturning() bool
	// Setup runs once against a freshly opened pool
	Setup(ctx context.Context, db *sql.DB) error
	MigrationsTableDDL() string
	IsUniqueViolation(err error) bool
}

// Target locates the database: a file path for SQLite, a URL or driver DSN
// for the server databases
type Target struct {
	Path string
	URL  string
}

// PoolSettings bounds the pool every request borrows its connection from
type PoolSettings struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

// DefaultPool is used when no settings are configured
var DefaultPool = PoolSettings{
	MaxOpen:     25,
	MaxIdle:     5,
	MaxLifetime: 5 * time.Minute,
	MaxIdleTime: time.Minute,
}

func (p PoolSettings) apply(db *sql.DB) {
	db.SetMaxOpenConns(p.MaxOpen)
	db.SetMaxIdleConns(p.MaxIdle)
	db.SetConnMaxLifetime(p.MaxLifetime)
	db.SetConnMaxIdleTime(p.MaxIdleTime)
}

// bindNumbered rewrites ? placeholders as $1, $2, ...
func bindNumbered(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
