package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/domain/quiz"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/logger"
	"github.com/lexiquiz/lexiquiz-api/internal/store"
)

// PromptView is the word a user must translate next.
type PromptView struct {
	SessionID  uuid.UUID
	WordID     uuid.UUID
	Original   string
	Position   int
	Total      int
	IsLast     bool // offer a finish action instead of next
	Completion float64
}

// AnswerInput is one submitted answer. SessionID and Position are optional;
// when set they must match the current session and its active item.
type AnswerInput struct {
	SessionID uuid.UUID
	Position  *int
	Answer    string
}

// AnswerResult reports the grading of one answer. Next is nil once every
// item has been graded.
type AnswerResult struct {
	SessionID  uuid.UUID
	Position   int
	Correct    bool
	Exhausted  bool
	Completion float64
	Next       *PromptView
}

// QuizSummary is the review of a completed session.
type QuizSummary struct {
	SessionID uuid.UUID
	Rows      []quiz.SummaryRow
	Correct   int
	Total     int
	Committed bool
}

// QuizService drives quiz sessions for users.
type QuizService interface {
	// StartQuiz starts a session over all of the user's words, replacing any
	// session in progress. Returns quiz.ErrEmptyWordSet when the user has no
	// words and ErrCommitPending when a finished session is still unsaved.
	StartQuiz(ctx context.Context, userID uuid.UUID) (*PromptView, error)

	// CurrentPrompt returns the word waiting for an answer.
	CurrentPrompt(ctx context.Context, userID uuid.UUID) (*PromptView, error)

	// SubmitAnswer grades the answer against the active item.
	SubmitAnswer(ctx context.Context, userID uuid.UUID, in AnswerInput) (*AnswerResult, error)

	// FinishQuiz grades in.Answer against the active item if one is left,
	// completes the session and saves all progress in one transaction.
	// If saving fails the session is kept and the error wraps ErrCommitPending.
	FinishQuiz(ctx context.Context, userID uuid.UUID, in AnswerInput) (*QuizSummary, error)

	// CommitQuiz retries saving a completed session. Committing an already
	// saved session returns its summary again.
	CommitQuiz(ctx context.Context, userID uuid.UUID) (*QuizSummary, error)

	// QuitQuiz abandons the session in progress. It succeeds when there is
	// nothing to quit.
	QuitQuiz(ctx context.Context, userID uuid.UUID) error

	// Summary returns the review of the user's completed session.
	Summary(ctx context.Context, userID uuid.UUID) (*QuizSummary, error)

	// SweepIdle quits and drops sessions without activity since cutoff and
	// returns how many were dropped.
	SweepIdle(ctx context.Context, cutoff time.Time) int
}

type quizServiceImpl struct {
	words    WordRepository
	registry *SessionRegistry
	logger   *slog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(words WordRepository, registry *SessionRegistry, logger *slog.Logger) (QuizService, error) {
	if words == nil {
		return nil, domain.NewValidationError("words", "cannot be nil", domain.ErrValidation)
	}
	if registry == nil {
		return nil, domain.NewValidationError("registry", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &quizServiceImpl{
		words:    words,
		registry: registry,
		logger:   logger.With(slog.String("component", "quiz_service")),
	}, nil
}

func promptOf(s *quiz.Session) (*PromptView, error) {
	word, err := s.CurrentPrompt()
	if err != nil {
		return nil, err
	}
	return &PromptView{
		SessionID:  s.ID,
		WordID:     word.ID,
		Original:   word.Original,
		Position:   s.Cursor(),
		Total:      s.Len(),
		IsLast:     s.IsLastItem(),
		Completion: s.Completion(),
	}, nil
}

func summaryOf(e *sessionEntry) (*QuizSummary, error) {
	rows, err := e.session.Summary()
	if err != nil {
		return nil, err
	}
	return &QuizSummary{
		SessionID: e.session.ID,
		Rows:      rows,
		Correct:   e.session.CorrectCount(),
		Total:     e.session.Len(),
		Committed: e.committed,
	}, nil
}

// checkSession rejects input aimed at a session other than the current one.
func checkSession(s *quiz.Session, in AnswerInput) error {
	if in.SessionID != uuid.Nil && in.SessionID != s.ID {
		return ErrSessionMismatch
	}
	return nil
}

// StartQuiz implements QuizService.
func (s *quizServiceImpl) StartQuiz(ctx context.Context, userID uuid.UUID) (*PromptView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	if s.registry.HasPendingCommit(userID) {
		return nil, ErrCommitPending
	}

	words, err := s.words.FindByOwner(ctx, userID)
	if err != nil {
		log.Error("failed to load words for quiz", slog.String("error", err.Error()))
		return nil, NewServiceError("quiz", "start_quiz", "failed to load words", err)
	}

	session, err := quiz.Start(words)
	if err != nil {
		log.Debug("cannot start quiz", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.registry.put(userID, session); err != nil {
		return nil, err
	}

	log.Info("quiz started",
		slog.String("session_id", session.ID.String()),
		slog.Int("words", session.Len()))

	return promptOf(session)
}

// CurrentPrompt implements QuizService.
func (s *quizServiceImpl) CurrentPrompt(ctx context.Context, userID uuid.UUID) (*PromptView, error) {
	var view *PromptView
	err := s.registry.with(userID, func(e *sessionEntry) error {
		var err error
		view, err = promptOf(e.session)
		return err
	})
	return view, err
}

// SubmitAnswer implements QuizService.
func (s *quizServiceImpl) SubmitAnswer(ctx context.Context, userID uuid.UUID, in AnswerInput) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	var result *AnswerResult
	err := s.registry.with(userID, func(e *sessionEntry) error {
		if err := checkSession(e.session, in); err != nil {
			return err
		}

		var (
			outcome quiz.GradingOutcome
			err     error
		)
		if in.Position != nil {
			outcome, err = e.session.GradeAt(*in.Position, in.Answer)
		} else {
			outcome, err = e.session.SubmitAnswer(in.Answer)
		}
		if err != nil {
			log.Warn("answer rejected",
				slog.String("session_id", e.session.ID.String()),
				slog.String("error", err.Error()))
			return err
		}

		result = &AnswerResult{
			SessionID:  e.session.ID,
			Position:   outcome.Position,
			Correct:    outcome.Correct,
			Exhausted:  outcome.Exhausted,
			Completion: e.session.Completion(),
		}
		if !outcome.Exhausted {
			next, err := promptOf(e.session)
			if err != nil {
				return err
			}
			result.Next = next
		}

		log.Debug("answer graded",
			slog.String("session_id", e.session.ID.String()),
			slog.Int("position", outcome.Position),
			slog.Bool("correct", outcome.Correct))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FinishQuiz implements QuizService.
func (s *quizServiceImpl) FinishQuiz(ctx context.Context, userID uuid.UUID, in AnswerInput) (*QuizSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	var summary *QuizSummary
	err := s.registry.with(userID, func(e *sessionEntry) error {
		if err := checkSession(e.session, in); err != nil {
			return err
		}
		if in.Position != nil && !e.session.Exhausted() && *in.Position != e.session.Cursor() {
			if *in.Position < e.session.Cursor() {
				return fmt.Errorf("%w: position %d", quiz.ErrAlreadyAnswered, *in.Position)
			}
			return fmt.Errorf("%w: position %d is not the active item", quiz.ErrNoActivePrompt, *in.Position)
		}

		updates, err := e.session.Finish(in.Answer)
		if err != nil {
			log.Warn("finish rejected",
				slog.String("session_id", e.session.ID.String()),
				slog.String("error", err.Error()))
			return err
		}
		e.updates = updates

		log.Info("quiz completed",
			slog.String("session_id", e.session.ID.String()),
			slog.Int("correct", e.session.CorrectCount()),
			slog.Int("total", e.session.Len()))

		if err := s.commit(ctx, e); err != nil {
			return err
		}

		summary, err = summaryOf(e)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// CommitQuiz implements QuizService.
func (s *quizServiceImpl) CommitQuiz(ctx context.Context, userID uuid.UUID) (*QuizSummary, error) {
	var summary *QuizSummary
	err := s.registry.with(userID, func(e *sessionEntry) error {
		if e.session.State() != quiz.StateCompleted {
			return fmt.Errorf("%w: nothing to commit in a %s session", quiz.ErrInvalidSessionState, e.session.State())
		}
		if !e.committed {
			if err := s.commit(ctx, e); err != nil {
				return err
			}
		}
		var err error
		summary, err = summaryOf(e)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// commit saves every progress update of e in one transaction. Words deleted
// while the session ran are skipped. Must be called with e.mu held.
func (s *quizServiceImpl) commit(ctx context.Context, e *sessionEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("session_id", e.session.ID.String()))

	changed := 0
	err := store.RunInTransaction(ctx, s.words.DB(), func(ctx context.Context, tx *sql.Tx) error {
		changed = 0
		txRepo := s.words.WithTx(tx)
		for _, u := range e.updates {
			word := u.Word
			word.Progress = u.NewProgress()
			if err := txRepo.Save(ctx, &word); err != nil {
				if errors.Is(err, store.ErrWordNotFound) {
					log.Warn("word deleted during quiz, progress dropped",
						slog.String("word_id", word.ID.String()))
					continue
				}
				return err
			}
			if u.Changed() {
				changed++
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to save quiz progress",
			slog.Int("updates", len(e.updates)),
			slog.String("error", err.Error()))
		return NewServiceError("quiz", "commit_quiz", "failed to save progress",
			fmt.Errorf("%w: %w", ErrCommitPending, err))
	}

	e.committed = true
	e.updates = nil
	log.Info("quiz progress saved", slog.Int("words_changed", changed))
	return nil
}

// QuitQuiz implements QuizService. A completed session with unsaved
// progress is kept so the commit can still be retried.
func (s *quizServiceImpl) QuitQuiz(ctx context.Context, userID uuid.UUID) error {
	e, ok := s.registry.get(userID)
	if !ok {
		return nil
	}

	e.mu.Lock()
	pending := e.pendingCommit()
	e.session.Quit()
	sessionID := e.session.ID
	e.mu.Unlock()

	if pending {
		logger.FromContextOrDefault(ctx, s.logger).Debug("quit ignored, progress not saved yet",
			slog.String("user_id", userID.String()),
			slog.String("session_id", sessionID.String()))
		return nil
	}

	s.registry.remove(userID, e)
	logger.FromContextOrDefault(ctx, s.logger).Info("quiz quit",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sessionID.String()))
	return nil
}

// Summary implements QuizService.
func (s *quizServiceImpl) Summary(ctx context.Context, userID uuid.UUID) (*QuizSummary, error) {
	var summary *QuizSummary
	err := s.registry.with(userID, func(e *sessionEntry) error {
		var err error
		summary, err = summaryOf(e)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// SweepIdle implements QuizService.
func (s *quizServiceImpl) SweepIdle(ctx context.Context, cutoff time.Time) int {
	log := logger.FromContextOrDefault(ctx, s.logger)

	expired := s.registry.sweep(cutoff)
	for _, x := range expired {
		attrs := []any{
			slog.String("user_id", x.UserID.String()),
			slog.String("session_id", x.SessionID.String()),
			slog.String("state", string(x.State)),
		}
		if x.Discarded > 0 {
			log.Warn("expired quiz session with unsaved progress", append(attrs, slog.Int("discarded", x.Discarded))...)
			continue
		}
		log.Debug("expired idle quiz session", attrs...)
	}
	return len(expired)
}
