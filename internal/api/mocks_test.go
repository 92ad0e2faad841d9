package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/spreadsheet"
	"github.com/lexiquiz/lexiquiz-api/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockWordService struct{ mock.Mock }

func (m *MockWordService) ListWords(ctx context.Context, userID uuid.UUID) ([]domain.Word, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockWordService) AddWord(ctx context.Context, userID uuid.UUID, original, translated string) (*domain.Word, error) {
	args := m.Called(ctx, userID, original, translated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordService) DeleteWord(ctx context.Context, userID, wordID uuid.UUID) error {
	return m.Called(ctx, userID, wordID).Error(0)
}

func (m *MockWordService) ImportWords(
	ctx context.Context,
	userID uuid.UUID,
	sheet *spreadsheet.Result,
) (*service.ImportResult, error) {
	args := m.Called(ctx, userID, sheet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

type MockQuizService struct{ mock.Mock }

func (m *MockQuizService) StartQuiz(ctx context.Context, userID uuid.UUID) (*service.PromptView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PromptView), args.Error(1)
}

func (m *MockQuizService) CurrentPrompt(ctx context.Context, userID uuid.UUID) (*service.PromptView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PromptView), args.Error(1)
}

func (m *MockQuizService) SubmitAnswer(
	ctx context.Context,
	userID uuid.UUID,
	in service.AnswerInput,
) (*service.AnswerResult, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnswerResult), args.Error(1)
}

func (m *MockQuizService) FinishQuiz(
	ctx context.Context,
	userID uuid.UUID,
	in service.AnswerInput,
) (*service.QuizSummary, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuizSummary), args.Error(1)
}

func (m *MockQuizService) CommitQuiz(ctx context.Context, userID uuid.UUID) (*service.QuizSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuizSummary), args.Error(1)
}

func (m *MockQuizService) QuitQuiz(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockQuizService) Summary(ctx context.Context, userID uuid.UUID) (*service.QuizSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuizSummary), args.Error(1)
}

func (m *MockQuizService) SweepIdle(ctx context.Context, cutoff time.Time) int {
	return m.Called(ctx, cutoff).Int(0)
}
