package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexiquiz/lexiquiz-api/internal/access"
	"github.com/lexiquiz/lexiquiz-api/internal/api/middleware"
	"github.com/lexiquiz/lexiquiz-api/internal/config"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/database"
	"github.com/lexiquiz/lexiquiz-api/internal/service"
	"github.com/lexiquiz/lexiquiz-api/internal/service/auth"
	"github.com/lexiquiz/lexiquiz-api/internal/store"
)

// viewsPrefix is where the view endpoints are mounted; redirects point there.
const viewsPrefix = "/api/views"

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *database.DB

	// Stores
	userStore store.UserStore
	wordStore store.WordStore

	// Services
	jwtService  auth.JWTService
	userService service.UserService
	wordService service.WordService
	quizService service.QuizService

	viewGate *middleware.ViewGate
	sweeper  *service.Sweeper
}

// newApplication wires stores, services and the access gate. The database
// must already be migrated.
func newApplication(cfg *config.Config, logger *slog.Logger, db *database.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.userStore = database.NewUserStore(db.DB, db.Dialect, logger)
	app.wordStore = database.NewWordStore(db.DB, db.Dialect, logger)

	wordRepo := service.NewWordRepositoryAdapter(app.wordStore, db.DB)
	userRepo := service.NewUserRepositoryAdapter(app.userStore, db.DB)

	passwords := auth.NewBcryptVerifier(cfg.Auth.BCryptCost)
	app.userService, err = service.NewUserService(userRepo, passwords, passwords, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.wordService, err = service.NewWordService(wordRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create word service: %w", err)
	}

	app.quizService, err = service.NewQuizService(wordRepo, service.NewSessionRegistry(time.Now), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz service: %w", err)
	}

	gate, err := access.NewGate(accessTable(cfg.Access))
	if err != nil {
		return nil, fmt.Errorf("invalid access configuration: %w", err)
	}
	app.viewGate = middleware.NewViewGate(gate, cfg.Access.LoginView, cfg.Access.HomeView, viewsPrefix)

	app.sweeper, err = service.NewSweeper(
		app.quizService,
		cfg.Quiz.SweepInterval(),
		cfg.Quiz.SessionIdleTimeout(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session sweeper: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

func accessTable(c config.AccessConfig) access.Table {
	return access.Table{
		PermitAll:         c.PermitAll,
		AuthenticatedOnly: c.AuthenticatedOnly,
		UserRole:          c.UserRole,
		AdminRole:         c.AdminRole,
	}
}

// Run starts the session sweeper and serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.sweeper.Start(); err != nil {
		return fmt.Errorf("failed to start session sweeper: %w", err)
	}

	router, err := app.setupRouter()
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.sweeper != nil {
		app.sweeper.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.Any("error", err))
		}
	}

	app.logger.Info("application shutdown completed")
}
