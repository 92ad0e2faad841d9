package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/logger"
	"github.com/lexiquiz/lexiquiz-api/internal/store"
)

const wordColumns = `id, user_id, original, translated, progress, created_at, updated_at`

// WordStore implements store.WordStore on a SQL database.
type WordStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewWordStore creates a WordStore. If logger is nil, slog.Default is used.
func NewWordStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *WordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if dialect == nil {
		panic("dialect cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WordStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "word_store")),
	}
}

var _ store.WordStore = (*WordStore)(nil)

// WithTx implements store.WordStore.WithTx.
func (s *WordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &WordStore{
		db:      tx,
		dialect: s.dialect,
		logger:  s.logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (domain.Word, error) {
	var w domain.Word
	err := row.Scan(&w.ID, &w.UserID, &w.Original, &w.Translated, &w.Progress, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

// FindByOwner implements store.WordStore.FindByOwner.
func (s *WordStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`SELECT ` + wordColumns + ` FROM words WHERE user_id = ? ORDER BY created_at, id`)
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to query words", slog.String("user_id", ownerID.String()), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list words: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	words := make([]domain.Word, 0)
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", MapError(err))
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate words: %w", MapError(err))
	}

	log.Debug("listed words", slog.String("user_id", ownerID.String()), slog.Int("count", len(words)))
	return words, nil
}

// GetByID implements store.WordStore.GetByID.
func (s *WordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	query := s.dialect.Rebind(`SELECT ` + wordColumns + ` FROM words WHERE id = ?`)

	w, err := scanWord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get word",
			slog.String("word_id", id.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get word: %w", MapError(err))
	}
	return &w, nil
}

// Save implements store.WordStore.Save.
func (s *WordStore) Save(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("rejected invalid word", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	now := time.Now().UTC()
	word.UpdatedAt = now

	if word.IsNew() {
		word.ID = uuid.New()
		if word.CreatedAt.IsZero() {
			word.CreatedAt = now
		}

		query := s.dialect.Rebind(`INSERT INTO words (` + wordColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
		_, err := s.db.ExecContext(ctx, query,
			word.ID, word.UserID, word.Original, word.Translated, word.Progress, word.CreatedAt, word.UpdatedAt)
		if err != nil {
			word.ID = uuid.Nil
			log.Error("failed to insert word", slog.String("error", err.Error()))
			return fmt.Errorf("failed to insert word: %w", MapError(err))
		}

		log.Debug("word created", slog.String("word_id", word.ID.String()))
		return nil
	}

	query := s.dialect.Rebind(
		`UPDATE words SET original = ?, translated = ?, progress = ?, updated_at = ? WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, word.Original, word.Translated, word.Progress, word.UpdatedAt, word.ID)
	if err != nil {
		log.Error("failed to update word", slog.String("word_id", word.ID.String()), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update word: %w", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrWordNotFound); err != nil {
		return err
	}

	log.Debug("word updated", slog.String("word_id", word.ID.String()), slog.Int("progress", word.Progress))
	return nil
}

// Delete implements store.WordStore.Delete.
func (s *WordStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`DELETE FROM words WHERE id = ?`), id)
	if err != nil {
		log.Error("failed to delete word", slog.String("word_id", id.String()), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete word: %w", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrWordNotFound); err != nil {
		return err
	}

	log.Debug("word deleted", slog.String("word_id", id.String()))
	return nil
}
