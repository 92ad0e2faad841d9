package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/domain/quiz"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/database"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/logger"
	"github.com/lexiquiz/lexiquiz-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type quizFixture struct {
	svc      QuizService
	words    WordRepository
	registry *SessionRegistry
	userID   uuid.UUID
	clock    *time.Time
	logs     *logger.TestLogBuffer
}

// newQuizFixture wires a QuizService to a migrated in-memory SQLite store
// and a user owning the given (original, translated) pairs.
func newQuizFixture(t *testing.T, pairs ...[2]string) *quizFixture {
	t.Helper()
	ctx := context.Background()
	l, logs := logger.NewTestLogger(t)

	db := testdb.Open(t)
	user := testdb.CreateUser(t, db, "learner@example.com")

	words := NewWordRepositoryAdapter(database.NewWordStore(db, db.Dialect, l), db.DB)
	for _, p := range pairs {
		w, err := domain.NewWord(user.ID, p[0], p[1])
		require.NoError(t, err)
		require.NoError(t, words.Save(ctx, w))
	}

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := &now
	registry := NewSessionRegistry(func() time.Time { return *clock })

	svc, err := NewQuizService(words, registry, l)
	require.NoError(t, err)

	return &quizFixture{svc: svc, words: words, registry: registry, userID: user.ID, clock: clock, logs: logs}
}

func (f *quizFixture) progress(t *testing.T) map[string]int {
	t.Helper()
	words, err := f.words.FindByOwner(context.Background(), f.userID)
	require.NoError(t, err)
	out := make(map[string]int, len(words))
	for _, w := range words {
		out[w.Original] = w.Progress
	}
	return out
}

func TestNewQuizServiceValidation(t *testing.T) {
	_, err := NewQuizService(nil, NewSessionRegistry(nil), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewQuizService(&MockWordRepository{}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestQuizEndToEnd(t *testing.T) {
	f := newQuizFixture(t, [2]string{"dog", "pies"}, [2]string{"cat", "kot"})
	ctx := context.Background()

	prompt, err := f.svc.StartQuiz(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "dog", prompt.Original)
	assert.Equal(t, 0, prompt.Position)
	assert.Equal(t, 2, prompt.Total)
	assert.False(t, prompt.IsLast)

	res, err := f.svc.SubmitAnswer(ctx, f.userID, AnswerInput{SessionID: prompt.SessionID, Answer: "pies"})
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.False(t, res.Exhausted)
	require.NotNil(t, res.Next)
	assert.Equal(t, "cat", res.Next.Original)
	assert.True(t, res.Next.IsLast)

	res, err = f.svc.SubmitAnswer(ctx, f.userID, AnswerInput{Answer: "pies"})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.True(t, res.Exhausted)
	assert.Nil(t, res.Next)
	assert.InDelta(t, 1.0, res.Completion, 1e-9)

	summary, err := f.svc.FinishQuiz(ctx, f.userID, AnswerInput{Answer: "ignored"})
	require.NoError(t, err)
	assert.True(t, summary.Committed)
	assert.Equal(t, 1, summary.Correct)
	assert.Equal(t, 2, summary.Total)
	require.Len(t, summary.Rows, 2)
	assert.Equal(t, "pies", summary.Rows[1].Answer)
	assert.False(t, summary.Rows[1].Correct)

	assert.Equal(t, map[string]int{"dog": 1, "cat": 0}, f.progress(t))

	again, err := f.svc.Summary(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, summary.SessionID, again.SessionID)
}

func TestQuizCommitLogsChangedWords(t *testing.T) {
	f := newQuizFixture(t, [2]string{"dog", "pies"}, [2]string{"cat", "kot"}, [2]string{"cow", "krowa"})
	ctx := context.Background()
	answers := map[string]string{"dog": "pies", "cat": "wrong", "cow": "krowa"}

	prompt, err := f.svc.StartQuiz(ctx, f.userID)
	require.NoError(t, err)
	for !prompt.IsLast {
		res, err := f.svc.SubmitAnswer(ctx, f.userID, AnswerInput{Answer: answers[prompt.Original]})
		require.NoError(t, err)
		require.NotNil(t, res.Next)
		prompt = res.Next
	}
	_, err = f.svc.FinishQuiz(ctx, f.userID, AnswerInput{Answer: answers[prompt.Original]})
	require.NoError(t, err)

	entries, err := f.logs.Entries()
	require.NoError(t, err)

	var saved map[string]any
	for _, e := range entries {
		if e["msg"] == "quiz progress saved" {
			saved = e
		}
	}
	require.NotNil(t, saved, "no progress log entry")
	assert.EqualValues(t, 2, saved["words_changed"])
	assert.Equal(t, map[string]int{"dog": 1, "cat": 0, "cow": 1}, f.progress(t))
}

func TestQuizStartWithoutWords(t *testing.T) {
	f := newQuizFixture(t)

	_, err := f.svc.StartQuiz(context.Background(), f.userID)
	assert.ErrorIs(t, err, quiz.ErrEmptyWordSet)
	assert.Equal(t, 0, f.registry.Len())
}

func TestQuizFinishGradesPendingAnswer(t *testing.T) {
	f := newQuizFixture(t, [2]string{"dog", "pies"})
	ctx := context.Background()

	prompt, err := f.svc.StartQuiz(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, prompt.IsLast)

	summary, err := f.svc.FinishQuiz(ctx, f.userID, AnswerInput{Answer: "pies"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Correct)
	assert.Equal(t, map[string]int{"dog": 1}, f.progress(t))

	_, err = f.svc.FinishQuiz(ctx, f.userID, AnswerInput{Answer: "pies"})
	assert.ErrorIs(t, err, quiz.ErrInvalidSessionState)
	assert.Equal(t, map[string]int{"dog": 1}, f.progress(t))
}

func TestQuizFinishEarlyLeavesUnreachedWords(t *testing.T) {
	f := newQuizFixture(t, [2]string{"dog", "pies"}, [2]string{"cat", "kot"}, [2]string{"cow", "krowa"})
	ctx := context.Background()

	_, err := f.svc.StartQuiz(ctx, f.userID)
	require.NoError(t, err)

	summary, err := f.svc.FinishQuiz(ctx, f.userID, AnswerInput{Answer: "pies"})
	require.NoError(t, err)
	assert.False(t, summary.Rows[1].Answered)
	assert.Equal(t, map[string]int{"dog": 1, "cat": 0, "cow": 0}, f.progress(t))
}

func TestQuizRejectsStaleInput(t *testing.T) {
	f := newQuizFixture(t, [2]string{"dog", "pies"}, [2]string{"cat", "kot"})
	ctx := context.Background()

	_, err := f.svc.SubmitAnswer(ctx, f.userID, AnswerInput{Answer: "pies"})
	assert.ErrorIs(t, err, ErrNoActiveSession)

	prompt, err := f.svc.StartQuiz(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(ctx, f.userID, AnswerInput{SessionID: uuid.New(), Answer: "pies"})
	assert.ErrorIs(t, err, ErrSessionMismatch)

	zero := 0
	_, err = f.svc.SubmitAnswer(ctx, f.userID, AnswerInput{SessionID: prompt.SessionID, Position: &zero, Answer: "pies"})
	require.NoError(t, err)

	// a double-submitted form must not grade the next word
	_, err = f.svc.SubmitAnswer(ctx, f.userID, AnswerInput{SessionID: prompt.SessionID, Position: &zero, Answer: "pies"})
	assert.ErrorIs(t, err, quiz.ErrAlreadyAnswered)

	_, err = f.svc.FinishQuiz(ctx, f.userID, AnswerInput{Position: &zero, Answer: "kot"})
	assert.ErrorIs(t, err, quiz.ErrAlreadyAnswered)

	current, err := f.svc.CurrentPrompt(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.Position)
}

func TestQuizQuit(t *testing.T) {
	f := newQuizFixture(t, [2]string{"dog", "pies"}, [2]string{"cat", "kot"})
	ctx := context.Background()

	require.NoError(t, f.svc.QuitQuiz(ctx, f.userID))

	_, err := f.svc.StartQuiz(ctx, f.userID)
	require.NoError(t, err)
	_, err = f.svc.SubmitAnswer(ctx, f.userID, AnswerInput{Answer: "pies"})
	require.NoError(t, err)

	require.NoError(t, f.svc.QuitQuiz(ctx, f.userID))
	require.NoError(t, f.svc.QuitQuiz(ctx, f.userID))

	_, err = f.svc.CurrentPrompt(ctx, f.userID)
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.Equal(t, map[string]int{"dog": 0, "cat": 0}, f.progress(t))
}

func TestQuizStartReplacesActiveSession(t *testing.T) {
	f := newQuizFixture(t, [2]string{"dog", "pies"}, [2]string{"cat", "kot"})
	ctx := context.Background()

	first, err := f.svc.StartQuiz(ctx, f.userID)
	require.NoError(t, err)
	_, err = f.svc.SubmitAnswer(ctx, f.userID, AnswerInput{Answer: "pies"})
	require.NoError(t, err)

	second, err := f.svc.StartQuiz(ctx, f.userID)
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.Equal(t, 0, second.Position)
	assert.Equal(t, 1, f.registry.Len())

	_, err = f.svc.SubmitAnswer(ctx, f.userID, AnswerInput{SessionID: first.SessionID, Answer: "kot"})
	assert.ErrorIs(t, err, ErrSessionMismatch)
}

func TestQuizSummaryBeforeCompletion(t *testing.T) {
	f := newQuizFixture(t, [2]string{"dog", "pies"})
	ctx := context.Background()

	_, err := f.svc.Summary(ctx, f.userID)
	assert.ErrorIs(t, err, ErrNoActiveSession)

	_, err = f.svc.StartQuiz(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.Summary(ctx, f.userID)
	assert.ErrorIs(t, err, quiz.ErrInvalidSessionState)

	_, err = f.svc.CommitQuiz(ctx, f.userID)
	assert.ErrorIs(t, err, quiz.ErrInvalidSessionState)
}

func TestQuizCommitRetry(t *testing.T) {
	l, _ := logger.NewTestLogger(t)
	userID := uuid.New()
	words := []domain.Word{
		{ID: uuid.New(), UserID: userID, Original: "dog", Translated: "pies"},
		{ID: uuid.New(), UserID: userID, Original: "cat", Translated: "kot", Progress: 3},
	}

	repo := &MockWordRepository{db: newTxDB(t)}
	repo.On("FindByOwner", mock.Anything, userID).Return(words, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("database is locked")).Once()
	repo.On("Save", mock.Anything, mock.MatchedBy(func(w *domain.Word) bool { return w.Original == "dog" })).
		Return(nil).Once()
	repo.On("Save", mock.Anything, mock.MatchedBy(func(w *domain.Word) bool {
		return w.Original == "cat" && w.Progress == 4
	})).Return(nil).Once()

	svc, err := NewQuizService(repo, NewSessionRegistry(nil), l)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.StartQuiz(ctx, userID)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, userID, AnswerInput{Answer: "wrong"})
	require.NoError(t, err)

	_, err = svc.FinishQuiz(ctx, userID, AnswerInput{Answer: "kot"})
	require.ErrorIs(t, err, ErrCommitPending)

	_, err = svc.StartQuiz(ctx, userID)
	assert.ErrorIs(t, err, ErrCommitPending)

	require.NoError(t, svc.QuitQuiz(ctx, userID))

	summary, err := svc.Summary(ctx, userID)
	require.NoError(t, err)
	assert.False(t, summary.Committed)

	summary, err = svc.CommitQuiz(ctx, userID)
	require.NoError(t, err)
	assert.True(t, summary.Committed)
	assert.Equal(t, 1, summary.Correct)

	summary, err = svc.CommitQuiz(ctx, userID)
	require.NoError(t, err)
	assert.True(t, summary.Committed)
	repo.AssertExpectations(t)

	_, err = svc.StartQuiz(ctx, userID)
	assert.NoError(t, err)
}

func TestQuizCommitSkipsDeletedWords(t *testing.T) {
	f := newQuizFixture(t, [2]string{"dog", "pies"}, [2]string{"cat", "kot"})
	ctx := context.Background()

	_, err := f.svc.StartQuiz(ctx, f.userID)
	require.NoError(t, err)

	words, err := f.words.FindByOwner(ctx, f.userID)
	require.NoError(t, err)
	require.NoError(t, f.words.Delete(ctx, words[1].ID))

	_, err = f.svc.SubmitAnswer(ctx, f.userID, AnswerInput{Answer: "pies"})
	require.NoError(t, err)
	summary, err := f.svc.FinishQuiz(ctx, f.userID, AnswerInput{Answer: "kot"})
	require.NoError(t, err)
	assert.True(t, summary.Committed)
	assert.Equal(t, map[string]int{"dog": 1}, f.progress(t))
}

func TestQuizSweepIdle(t *testing.T) {
	f := newQuizFixture(t, [2]string{"dog", "pies"})
	ctx := context.Background()

	_, err := f.svc.StartQuiz(ctx, f.userID)
	require.NoError(t, err)

	assert.Equal(t, 0, f.svc.SweepIdle(ctx, f.clock.Add(-time.Minute)))
	assert.Equal(t, 1, f.registry.Len())

	*f.clock = f.clock.Add(45 * time.Minute)
	assert.Equal(t, 1, f.svc.SweepIdle(ctx, f.clock.Add(-30*time.Minute)))
	assert.Equal(t, 0, f.registry.Len())

	_, err = f.svc.CurrentPrompt(ctx, f.userID)
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.Equal(t, map[string]int{"dog": 0}, f.progress(t))
}
