// Package main implements the entry point for the LexiQuiz API server,
// which stores users' vocabulary lists and runs translation quizzes over them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lexiquiz/lexiquiz-api/internal/config"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/database"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/logger"
)

func main() {
	migrate := flag.String("migrate", "", "run a migration command (up, down, status, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrate); err != nil {
		log.Printf("lexiquiz-api: %v", err)
		stop()
		os.Exit(1)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves HTTP until ctx is canceled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, l, err := initializeApp()
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.URL, l)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		if err := database.Migrate(ctx, db.DB, db.Dialect, migrateCmd, l); err != nil {
			return fmt.Errorf("migration %s failed: %w", migrateCmd, err)
		}
		return nil
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db.DB, db.Dialect, database.MigrateUp, l); err != nil {
			_ = db.Close()
			return fmt.Errorf("automatic migration failed: %w", err)
		}
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l := logger.Setup(logger.LoggerConfig{
		Level:  cfg.Server.LogLevel,
		Format: cfg.Server.LogFormat,
	})

	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))
	l.Debug("database configuration", slog.String("url", database.MaskURL(cfg.Database.URL)))

	return cfg, l, nil
}
