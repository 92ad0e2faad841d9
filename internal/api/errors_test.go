package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/lexiquiz/lexiquiz-api/internal/api/shared"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/domain/quiz"
	"github.com/lexiquiz/lexiquiz-api/internal/service"
	"github.com/lexiquiz/lexiquiz-api/internal/service/auth"
	"github.com/lexiquiz/lexiquiz-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	wrapped := func(err error) error { return fmt.Errorf("quiz service failed: %w", err) }

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"word not found", store.ErrWordNotFound, http.StatusNotFound},
		{"no session", service.ErrNoActiveSession, http.StatusNotFound},
		{"already answered", wrapped(quiz.ErrAlreadyAnswered), http.StatusConflict},
		{"no active prompt", quiz.ErrNoActivePrompt, http.StatusConflict},
		{"invalid state", quiz.ErrInvalidSessionState, http.StatusConflict},
		{"session mismatch", service.ErrSessionMismatch, http.StatusConflict},
		{
			"commit pending",
			service.NewServiceError("quiz", "commit_quiz", "failed", fmt.Errorf("%w: %w", service.ErrCommitPending, errors.New("locked"))),
			http.StatusConflict,
		},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"empty word set", quiz.ErrEmptyWordSet, http.StatusUnprocessableEntity},
		{"nothing to import", service.ErrNothingToImport, http.StatusUnprocessableEntity},
		{"domain field", domain.ErrWordOriginalEmpty, http.StatusBadRequest},
		{"validation error", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), http.StatusBadRequest},
		{"bad json", fmt.Errorf("%w: eof", shared.ErrInvalidJSON), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "No words to practice", GetSafeErrorMessage(quiz.ErrEmptyWordSet))
	assert.Equal(t, "Word not found", GetSafeErrorMessage(store.ErrWordNotFound))
	assert.Equal(t, "Word original text cannot be empty", GetSafeErrorMessage(domain.ErrWordOriginalEmpty))
	assert.Equal(t, "Id has invalid format",
		GetSafeErrorMessage(domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID)))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(errors.New("pq: relation words missing")))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	v := validator.New()
	err := v.Struct(RegisterRequest{Email: "not-an-email", Password: "correct-horse-battery"})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Invalid email: invalid email format", SanitizeValidationError(errs))
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(err))
	assert.Equal(t, "Invalid email: invalid email format", GetSafeErrorMessage(err))
}
