package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lexiquiz/lexiquiz-api/internal/api"
	apiMiddleware "github.com/lexiquiz/lexiquiz-api/internal/api/middleware"
	"github.com/rs/cors"
)

// View names guarding the API groups.
const (
	viewLogin    = "login"
	viewRegister = "register"
	viewWordList = "wordList"
	viewQuiz     = "quiz"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	authHandler, err := api.NewAuthHandler(app.userService, app.jwtService, app.config.Auth, app.logger)
	if err != nil {
		return nil, err
	}
	wordHandler, err := api.NewWordHandler(app.wordService, app.logger)
	if err != nil {
		return nil, err
	}
	quizHandler, err := api.NewQuizHandler(app.quizService, app.config.Access.HomeView, app.logger)
	if err != nil {
		return nil, err
	}
	viewHandler := api.NewViewHandler(app.viewGate)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: app.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Location", "X-Trace-ID"},
		MaxAge:         300,
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		// Identity is optional here; the view gate decides what anonymous
		// callers may reach.
		r.Use(authMiddleware.Optional)

		r.With(app.viewGate.Require(viewRegister)).Post("/auth/register", authHandler.Register)
		r.With(app.viewGate.Require(viewLogin)).Post("/auth/login", authHandler.Login)

		r.Get("/views/{view}", viewHandler.CheckView)

		r.Route("/words", func(r chi.Router) {
			r.Use(app.viewGate.Require(viewWordList))
			r.Get("/", wordHandler.ListWords)
			r.Post("/", wordHandler.CreateWord)
			r.Post("/import", wordHandler.ImportWords)
			r.Delete("/{id}", wordHandler.DeleteWord)
		})

		r.Route("/quiz", func(r chi.Router) {
			r.Use(app.viewGate.Require(viewQuiz))
			r.Post("/", quizHandler.StartQuiz)
			r.Get("/", quizHandler.CurrentPrompt)
			r.Delete("/", quizHandler.QuitQuiz)
			r.Post("/answer", quizHandler.SubmitAnswer)
			r.Post("/finish", quizHandler.FinishQuiz)
			r.Post("/commit", quizHandler.CommitQuiz)
			r.Get("/summary", quizHandler.Summary)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := app.db.PingContext(r.Context()); err != nil {
			app.logger.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r, nil
}
