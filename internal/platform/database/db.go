package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// DB is a connection pool paired with the dialect it was opened with.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to the database for the given driver name and verifies the
// connection with a ping.
func Open(ctx context.Context, driver, dsn string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "database"))

	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	logger.Info("opening database connection",
		slog.String("dialect", dialect.Name()),
		slog.String("url", MaskURL(dsn)))

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established", slog.String("dialect", dialect.Name()))
	return &DB{DB: db, Dialect: dialect}, nil
}

// MaskURL hides the password of a connection URL for logging. Strings that
// are not URLs with credentials, such as SQLite paths, are returned as is.
func MaskURL(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
