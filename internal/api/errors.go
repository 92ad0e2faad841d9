package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lexiquiz/lexiquiz-api/internal/api/shared"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/domain/quiz"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/spreadsheet"
	"github.com/lexiquiz/lexiquiz-api/internal/service"
	"github.com/lexiquiz/lexiquiz-api/internal/service/auth"
	"github.com/lexiquiz/lexiquiz-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	var domainValidation *domain.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrNoActiveSession):
		return http.StatusNotFound

	// The caller broke the quiz protocol or raced another request
	case errors.Is(err, quiz.ErrNoActivePrompt),
		errors.Is(err, quiz.ErrAlreadyAnswered),
		errors.Is(err, quiz.ErrInvalidSessionState),
		errors.Is(err, service.ErrSessionMismatch),
		errors.Is(err, service.ErrCommitPending),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Well-formed requests that cannot be processed
	case errors.Is(err, quiz.ErrEmptyWordSet),
		errors.Is(err, service.ErrNothingToImport):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrInvalidJSON),
		errors.Is(err, spreadsheet.ErrUnsupportedFormat),
		isDomainFieldError(err),
		errors.As(err, &validationErrs),
		errors.As(err, &domainValidation):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// domainFieldErrors are the validation sentinels of the domain entities.
var domainFieldErrors = []error{
	domain.ErrWordUserIDEmpty, domain.ErrWordOriginalEmpty, domain.ErrWordTranslatedEmpty,
	domain.ErrWordProgressNegative, domain.ErrEmptyEmail, domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort, domain.ErrPasswordTooLong, domain.ErrEmptyPassword,
}

func isDomainFieldError(err error) bool {
	for _, target := range domainFieldErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return SanitizeValidationError(validationErrs)
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid token"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this word"

	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, service.ErrNoActiveSession):
		return "No quiz in progress"

	case errors.Is(err, quiz.ErrEmptyWordSet):
		return "No words to practice"
	case errors.Is(err, service.ErrNothingToImport):
		return "No words found in file"
	case errors.Is(err, service.ErrCommitPending):
		return "Quiz results have not been saved yet, retry the commit"
	case errors.Is(err, service.ErrSessionMismatch):
		return "This quiz is no longer active"
	case errors.Is(err, quiz.ErrAlreadyAnswered):
		return "This word has already been answered"
	case errors.Is(err, quiz.ErrNoActivePrompt):
		return "There is no word waiting for an answer"
	case errors.Is(err, quiz.ErrInvalidSessionState):
		return "The quiz cannot do that in its current state"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, shared.ErrInvalidJSON):
		return "Invalid request format"
	case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
		return "Unsupported file format, upload .xlsx or .csv"
	}

	if isDomainFieldError(err) {
		// domain sentinel messages are written for users
		for _, target := range domainFieldErrors {
			if errors.Is(err, target) {
				return capitalize(target.Error())
			}
		}
	}

	var domainValidation *domain.ValidationError
	if errors.As(err, &domainValidation) {
		return capitalize(domainValidation.Error())
	}

	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"
	}

	return "An unexpected error occurred"
}

// SanitizeValidationError turns validator errors into a short message
// naming the first failing field.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// HandleAPIError writes the response for err. A non-empty message replaces
// the default safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
