package service

import (
	"errors"
	"fmt"
)

// Common service errors. Callers check them with errors.Is; the API layer
// maps each one to an HTTP status.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrNoActiveSession indicates the user has no quiz session in progress.
	ErrNoActiveSession = errors.New("no quiz session in progress")

	// ErrSessionMismatch indicates a request named a quiz session other than
	// the user's current one, typically a stale browser tab.
	ErrSessionMismatch = errors.New("quiz session is not the current session")

	// ErrCommitPending indicates a completed session whose progress has not
	// been saved yet. The caller should retry the commit.
	ErrCommitPending = errors.New("quiz progress has not been saved")

	// ErrNothingToImport indicates an import file without a single usable row.
	ErrNothingToImport = errors.New("no words found in import file")
)

// ServiceError is the error type returned by services for failures that
// are not one of the sentinel errors above.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
