package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/service"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	AccessToken string    `json:"token"`
	ExpiresAt   string    `json:"expires_at"` // RFC 3339
}

// CreateWordRequest defines the payload for adding a word.
type CreateWordRequest struct {
	Original   string `json:"original"   validate:"required,max=255"`
	Translated string `json:"translated" validate:"required,max=255"`
}

// WordResponse is one vocabulary entry.
type WordResponse struct {
	ID         uuid.UUID `json:"id"`
	Original   string    `json:"original"`
	Translated string    `json:"translated"`
	Progress   int       `json:"progress"`
	Mastery    float64   `json:"mastery"`
	CreatedAt  time.Time `json:"created_at"`
}

// ImportResponse reports a finished import.
type ImportResponse struct {
	Imported    int            `json:"imported"`
	SkippedRows []int          `json:"skipped_rows"`
	Words       []WordResponse `json:"words"`
}

// AnswerRequest defines the payload for answering and finishing a quiz.
// SessionID and Position are optional guards against stale clients.
type AnswerRequest struct {
	SessionID *uuid.UUID `json:"session_id,omitempty"`
	Position  *int       `json:"position,omitempty" validate:"omitempty,gte=0"`
	Answer    string     `json:"answer"`
}

// PromptResponse is the word waiting for an answer.
type PromptResponse struct {
	SessionID  uuid.UUID `json:"session_id"`
	WordID     uuid.UUID `json:"word_id"`
	Original   string    `json:"original"`
	Position   int       `json:"position"`
	Total      int       `json:"total"`
	IsLast     bool      `json:"is_last"`
	Completion float64   `json:"completion"`
}

// AnswerResponse reports the grading of an answer.
type AnswerResponse struct {
	SessionID  uuid.UUID       `json:"session_id"`
	Position   int             `json:"position"`
	Correct    bool            `json:"correct"`
	Exhausted  bool            `json:"exhausted"`
	Completion float64         `json:"completion"`
	Next       *PromptResponse `json:"next,omitempty"`
}

// SummaryRowResponse is one reviewed word.
type SummaryRowResponse struct {
	WordID     uuid.UUID `json:"word_id"`
	Original   string    `json:"original"`
	Translated string    `json:"translated"`
	Answer     string    `json:"answer"`
	Answered   bool      `json:"answered"`
	Correct    bool      `json:"correct"`
	Progress   int       `json:"progress"`
}

// SummaryResponse is the review of a completed quiz.
type SummaryResponse struct {
	SessionID uuid.UUID            `json:"session_id"`
	Correct   int                  `json:"correct"`
	Total     int                  `json:"total"`
	Committed bool                 `json:"committed"`
	Rows      []SummaryRowResponse `json:"rows"`
}

// QuitResponse tells the client where to go after quitting.
type QuitResponse struct {
	Redirect string `json:"redirect"`
}

// ViewResponse reports whether the caller may see a view.
type ViewResponse struct {
	View     string `json:"view"`
	Class    string `json:"class"`
	Granted  bool   `json:"granted"`
	Redirect string `json:"redirect,omitempty"`
}

func wordToResponse(w domain.Word) WordResponse {
	return WordResponse{
		ID:         w.ID,
		Original:   w.Original,
		Translated: w.Translated,
		Progress:   w.Progress,
		Mastery:    w.Mastery(),
		CreatedAt:  w.CreatedAt,
	}
}

func wordsToResponse(words []domain.Word) []WordResponse {
	out := make([]WordResponse, len(words))
	for i, w := range words {
		out[i] = wordToResponse(w)
	}
	return out
}

func promptToResponse(p *service.PromptView) *PromptResponse {
	if p == nil {
		return nil
	}
	return &PromptResponse{
		SessionID:  p.SessionID,
		WordID:     p.WordID,
		Original:   p.Original,
		Position:   p.Position,
		Total:      p.Total,
		IsLast:     p.IsLast,
		Completion: p.Completion,
	}
}

func summaryToResponse(s *service.QuizSummary) SummaryResponse {
	rows := make([]SummaryRowResponse, len(s.Rows))
	for i, row := range s.Rows {
		rows[i] = SummaryRowResponse{
			WordID:     row.Word.ID,
			Original:   row.Word.Original,
			Translated: row.Word.Translated,
			Answer:     row.Answer,
			Answered:   row.Answered,
			Correct:    row.Correct,
			Progress:   row.Word.Progress,
		}
	}
	return SummaryResponse{
		SessionID: s.SessionID,
		Correct:   s.Correct,
		Total:     s.Total,
		Committed: s.Committed,
		Rows:      rows,
	}
}

func (r AnswerRequest) toInput() service.AnswerInput {
	in := service.AnswerInput{Position: r.Position, Answer: r.Answer}
	if r.SessionID != nil {
		in.SessionID = *r.SessionID
	}
	return in
}
