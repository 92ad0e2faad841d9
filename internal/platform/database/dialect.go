package database

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Supported dialect names, as used in configuration.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Dialect hides the differences between the supported databases.
type Dialect interface {
	// Name returns the configuration name of the dialect.
	Name() string

	// DriverName returns the database/sql driver name for sql.Open.
	DriverName() string

	// GooseDialect returns the dialect name goose expects.
	GooseDialect() string

	// MigrationsDir returns the embedded directory holding this dialect's migrations.
	MigrationsDir() string

	// Rebind rewrites ? placeholders into the dialect's syntax.
	Rebind(query string) string

	// ConfigureConnection applies pool settings and per-database pragmas.
	ConfigureConnection(db *sql.DB) error
}

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case DriverPostgres, "postgresql", "pgx":
		return PostgresDialect{}, nil
	case DriverSQLite, "sqlite3":
		return SQLiteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, ...
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

// PostgresDialect talks to PostgreSQL through the pgx stdlib driver.
type PostgresDialect struct{}

func (PostgresDialect) Name() string          { return DriverPostgres }
func (PostgresDialect) DriverName() string    { return "pgx" }
func (PostgresDialect) GooseDialect() string  { return "postgres" }
func (PostgresDialect) MigrationsDir() string { return "migrations/postgres" }

func (PostgresDialect) Rebind(query string) string {
	return rewritePlaceholdersToNumbered(query)
}

func (PostgresDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

// SQLiteDialect uses mattn/go-sqlite3.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string          { return DriverSQLite }
func (SQLiteDialect) DriverName() string    { return "sqlite3" }
func (SQLiteDialect) GooseDialect() string  { return "sqlite3" }
func (SQLiteDialect) MigrationsDir() string { return "migrations/sqlite" }

func (SQLiteDialect) Rebind(query string) string {
	return query
}

// ConfigureConnection pins the pool to one long-lived connection. SQLite
// serializes writers anyway, and an in-memory database lives only as long
// as its connection.
func (SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return nil
}
