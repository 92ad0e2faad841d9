package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
)

// WordStore defines the interface for vocabulary persistence.
type WordStore interface {
	// FindByOwner returns every word owned by the user, oldest first.
	// An owner without words gets an empty slice, not an error.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Word, error)

	// GetByID returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// Save inserts a word whose ID is uuid.Nil, assigning a fresh ID, and
	// updates an existing word otherwise. Updating a missing word returns
	// ErrWordNotFound. Invalid words are rejected with ErrInvalidEntity.
	//
	// Progress updates from a quiz session should be saved together through
	// WithTx and RunInTransaction.
	Save(ctx context.Context, word *domain.Word) error

	// Delete returns ErrWordNotFound if the word does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a WordStore bound to tx.
	WithTx(tx *sql.Tx) WordStore
}
