package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/testdb"
	"github.com/stretchr/testify/mock"
)

// newTxDB returns a database for RunInTransaction to begin and commit
// around mocked repositories.
func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	return testdb.Open(t).DB
}

// MockWordRepository mocks the WordRepository interface
type MockWordRepository struct {
	mock.Mock
	db *sql.DB
}

func (m *MockWordRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Word, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockWordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) Save(ctx context.Context, word *domain.Word) error {
	args := m.Called(ctx, word)
	if args.Error(0) == nil && word.IsNew() {
		word.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockWordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWordRepository) WithTx(tx *sql.Tx) WordRepository {
	return m
}

func (m *MockWordRepository) DB() *sql.DB {
	return m.db
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
	db *sql.DB
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) WithTx(tx *sql.Tx) UserRepository {
	return m
}

func (m *MockUserRepository) DB() *sql.DB {
	return m.db
}
