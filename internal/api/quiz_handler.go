package api

import (
	"log/slog"
	"net/http"

	"github.com/lexiquiz/lexiquiz-api/internal/api/shared"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/service"
)

// QuizHandler exposes the quiz session of the authenticated user.
type QuizHandler struct {
	quiz     service.QuizService
	homeView string
	logger   *slog.Logger
}

// NewQuizHandler creates a new QuizHandler. homeView is where clients are
// sent after quitting.
func NewQuizHandler(quiz service.QuizService, homeView string, logger *slog.Logger) (*QuizHandler, error) {
	if quiz == nil {
		return nil, domain.NewValidationError("quiz", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizHandler{
		quiz:     quiz,
		homeView: homeView,
		logger:   logger.With(slog.String("component", "quiz_handler")),
	}, nil
}

// StartQuiz handles POST /quiz.
func (h *QuizHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	prompt, err := h.quiz.StartQuiz(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, promptToResponse(prompt))
}

// CurrentPrompt handles GET /quiz.
func (h *QuizHandler) CurrentPrompt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	prompt, err := h.quiz.CurrentPrompt(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, promptToResponse(prompt))
}

// SubmitAnswer handles POST /quiz/answer.
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req AnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.quiz.SubmitAnswer(r.Context(), userID, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		SessionID:  result.SessionID,
		Position:   result.Position,
		Correct:    result.Correct,
		Exhausted:  result.Exhausted,
		Completion: result.Completion,
		Next:       promptToResponse(result.Next),
	})
}

// FinishQuiz handles POST /quiz/finish.
func (h *QuizHandler) FinishQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req AnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	summary, err := h.quiz.FinishQuiz(r.Context(), userID, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaryToResponse(summary))
}

// CommitQuiz handles POST /quiz/commit.
func (h *QuizHandler) CommitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	summary, err := h.quiz.CommitQuiz(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaryToResponse(summary))
}

// QuitQuiz handles DELETE /quiz.
func (h *QuizHandler) QuitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.quiz.QuitQuiz(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuitResponse{Redirect: h.homeView})
}

// Summary handles GET /quiz/summary.
func (h *QuizHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	summary, err := h.quiz.Summary(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaryToResponse(summary))
}
