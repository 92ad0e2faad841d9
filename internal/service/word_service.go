package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/logger"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/spreadsheet"
	"github.com/lexiquiz/lexiquiz-api/internal/store"
)

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	Imported    []domain.Word
	SkippedRows []int
}

// WordService manages a user's vocabulary list.
type WordService interface {
	// ListWords returns the user's words, oldest first.
	ListWords(ctx context.Context, userID uuid.UUID) ([]domain.Word, error)

	// AddWord creates a word with zero progress.
	AddWord(ctx context.Context, userID uuid.UUID, original, translated string) (*domain.Word, error)

	// DeleteWord removes one of the user's words. Deleting another user's
	// word returns ErrNotOwned.
	DeleteWord(ctx context.Context, userID, wordID uuid.UUID) error

	// ImportWords adds every pair of a parsed spreadsheet in one transaction.
	ImportWords(ctx context.Context, userID uuid.UUID, sheet *spreadsheet.Result) (*ImportResult, error)
}

type wordServiceImpl struct {
	words  WordRepository
	logger *slog.Logger
}

// NewWordService creates a new WordService.
func NewWordService(words WordRepository, logger *slog.Logger) (WordService, error) {
	if words == nil {
		return nil, domain.NewValidationError("words", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &wordServiceImpl{
		words:  words,
		logger: logger.With(slog.String("component", "word_service")),
	}, nil
}

// ListWords implements WordService.
func (s *wordServiceImpl) ListWords(ctx context.Context, userID uuid.UUID) ([]domain.Word, error) {
	words, err := s.words.FindByOwner(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list words",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, NewServiceError("word", "list_words", "failed to list words", err)
	}
	return words, nil
}

// AddWord implements WordService.
func (s *wordServiceImpl) AddWord(ctx context.Context, userID uuid.UUID, original, translated string) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	word, err := domain.NewWord(userID, original, translated)
	if err != nil {
		return nil, err
	}

	if err := s.words.Save(ctx, word); err != nil {
		log.Error("failed to save word",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, NewServiceError("word", "add_word", "failed to save word", err)
	}

	log.Debug("word added",
		slog.String("user_id", userID.String()),
		slog.String("word_id", word.ID.String()))
	return word, nil
}

// DeleteWord implements WordService.
func (s *wordServiceImpl) DeleteWord(ctx context.Context, userID, wordID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()))

	return store.RunInTransaction(ctx, s.words.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.words.WithTx(tx)

		word, err := txRepo.GetByID(ctx, wordID)
		if err != nil {
			if errors.Is(err, store.ErrWordNotFound) {
				return err
			}
			log.Error("failed to load word for deletion", slog.String("error", err.Error()))
			return NewServiceError("word", "delete_word", "failed to load word", err)
		}

		if !word.OwnedBy(userID) {
			log.Warn("attempt to delete a word owned by another user")
			return ErrNotOwned
		}

		if err := txRepo.Delete(ctx, wordID); err != nil {
			log.Error("failed to delete word", slog.String("error", err.Error()))
			return NewServiceError("word", "delete_word", "failed to delete word", err)
		}

		log.Debug("word deleted")
		return nil
	})
}

// ImportWords implements WordService. Either every pair is stored or none.
func (s *wordServiceImpl) ImportWords(
	ctx context.Context,
	userID uuid.UUID,
	sheet *spreadsheet.Result,
) (*ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if sheet == nil || len(sheet.Pairs) == 0 {
		return nil, ErrNothingToImport
	}

	words := make([]domain.Word, 0, len(sheet.Pairs))
	for _, p := range sheet.Pairs {
		w, err := domain.NewWord(userID, p.Original, p.Translated)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", p.Row, err)
		}
		words = append(words, *w)
	}

	err := store.RunInTransaction(ctx, s.words.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.words.WithTx(tx)
		for i := range words {
			if err := txRepo.Save(ctx, &words[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to import words",
			slog.String("user_id", userID.String()),
			slog.Int("rows", len(words)),
			slog.String("error", err.Error()))
		return nil, NewServiceError("word", "import_words", "failed to save imported words", err)
	}

	log.Info("words imported",
		slog.String("user_id", userID.String()),
		slog.Int("imported", len(words)),
		slog.Int("skipped", len(sheet.Skipped)))

	return &ImportResult{Imported: words, SkippedRows: sheet.Skipped}, nil
}
