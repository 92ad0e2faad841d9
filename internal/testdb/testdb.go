// Package testdb opens migrated throwaway databases for tests.
//
// Every call to Open returns a fresh in-memory SQLite database with the
// full schema applied, so tests never share state and need no cleanup
// beyond what Open registers with t.Cleanup.
package testdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/database"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

// Open returns a migrated in-memory database that is closed when the test ends.
func Open(t *testing.T) *database.DB {
	t.Helper()

	ctx := context.Background()
	l, _ := logger.NewTestLogger(t)

	db, err := database.Open(ctx, database.DriverSQLite, ":memory:", l)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(ctx, db.DB, db.Dialect, database.MigrateUp, l), "failed to migrate test database")
	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *database.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// CreateUser stores a user with a placeholder password hash.
func CreateUser(t *testing.T, db *database.DB, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: "$2a$04$abcdefghijklmnopqrstuv",
	}
	require.NoError(t, database.NewUserStore(db, db.Dialect, nil).Create(context.Background(), user))
	return user
}
