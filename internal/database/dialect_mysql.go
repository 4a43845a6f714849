package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

// MySQLDialect talks to MySQL or MariaDB through go-sql-driver/mysql
type MySQLDialect struct{}

func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) Name() string       { return "mysql" }
func (d *MySQLDialect) DriverName() string { return "mysql" }

// DSN takes a driver DSN such as user:pass@tcp(host:3306)/quizzy. DATETIME
// columns are scanned into time.Time, and foreign key checks are set on
// every new connection.
func (d *MySQLDialect) DSN(target Target) (string, error) {
	if target.URL == "" {
		return "", errors.New("mysql: DATABASE_URL is empty")
	}

	cfg, err := mysql.ParseDSN(target.URL)
	if err != nil {
		return "", fmt.Errorf("mysql: invalid DATABASE_URL: %w", err)
	}
	cfg.ParseTime = true
	if cfg.Params == nil {
		cfg.Params = make(map[string]string)
	}
	cfg.Params["foreign_key_checks"] = "1"
	return cfg.FormatDSN(), nil
}

func (d *MySQLDialect) Rebind(query string) string { return query }
func (d *MySQLDialect) UsesReturning() bool        { return false }

func (d *MySQLDialect) Setup(ctx context.Context, db *sql.DB) error {
	return nil
}

func (d *MySQLDialect) MigrationsTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS migrations (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	filename VARCHAR(255) NOT NULL UNIQUE,
	executed_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
)`
}

func (d *MySQLDialect) IsUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
