package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/store"
)

// WordRepository defines the word persistence operations the services need.
type WordRepository interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Word, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	Save(ctx context.Context, word *domain.Word) error
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) WordRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// UserRepository defines the user persistence operations the services need.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	WithTx(tx *sql.Tx) UserRepository
	DB() *sql.DB
}

// NewWordRepositoryAdapter creates a new adapter that allows a store.WordStore
// to be used where a WordRepository is expected.
func NewWordRepositoryAdapter(wordStore store.WordStore, db *sql.DB) WordRepository {
	return &wordRepositoryAdapter{wordStore: wordStore, db: db}
}

type wordRepositoryAdapter struct {
	wordStore store.WordStore
	db        *sql.DB
}

func (a *wordRepositoryAdapter) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Word, error) {
	return a.wordStore.FindByOwner(ctx, ownerID)
}

func (a *wordRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	return a.wordStore.GetByID(ctx, id)
}

func (a *wordRepositoryAdapter) Save(ctx context.Context, word *domain.Word) error {
	return a.wordStore.Save(ctx, word)
}

func (a *wordRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return a.wordStore.Delete(ctx, id)
}

func (a *wordRepositoryAdapter) WithTx(tx *sql.Tx) WordRepository {
	return &wordRepositoryAdapter{wordStore: a.wordStore.WithTx(tx), db: a.db}
}

func (a *wordRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewUserRepositoryAdapter creates a new adapter that allows a store.UserStore
// to be used where a UserRepository is expected.
func NewUserRepositoryAdapter(userStore store.UserStore, db *sql.DB) UserRepository {
	return &userRepositoryAdapter{userStore: userStore, db: db}
}

type userRepositoryAdapter struct {
	userStore store.UserStore
	db        *sql.DB
}

func (a *userRepositoryAdapter) Create(ctx context.Context, user *domain.User) error {
	return a.userStore.Create(ctx, user)
}

func (a *userRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return a.userStore.GetByID(ctx, id)
}

func (a *userRepositoryAdapter) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return a.userStore.GetByEmail(ctx, email)
}

func (a *userRepositoryAdapter) WithTx(tx *sql.Tx) UserRepository {
	return &userRepositoryAdapter{userStore: a.userStore.WithTx(tx), db: a.db}
}

func (a *userRepositoryAdapter) DB() *sql.DB {
	return a.db
}
