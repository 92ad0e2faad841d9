package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MasteryThreshold is the progress value at which a word counts as fully learned.
const MasteryThreshold = 5

// Word-specific validation errors
var (
	// ErrWordUserIDEmpty is returned when a word has no owner.
	ErrWordUserIDEmpty = errors.New("word user ID cannot be empty")

	// ErrWordOriginalEmpty is returned when the original text is empty or blank.
	ErrWordOriginalEmpty = errors.New("word original text cannot be empty")

	// ErrWordTranslatedEmpty is returned when the translated text is empty or blank.
	ErrWordTranslatedEmpty = errors.New("word translated text cannot be empty")

	// ErrWordProgressNegative is returned when the progress counter is below zero.
	ErrWordProgressNegative = errors.New("word progress cannot be negative")
)

// Word is one vocabulary entry owned by a user: an original text, its
// translation, and a counter of how many times the user translated it correctly.
//
// A zero ID means the word has not been saved yet; the store assigns one on
// first save.
type Word struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Original   string    `json:"original"`
	Translated string    `json:"translated"`
	Progress   int       `json:"progress"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewWord creates an unsaved Word for the given owner.
// Returns an error if validation fails.
func NewWord(userID uuid.UUID, original, translated string) (*Word, error) {
	now := time.Now().UTC()
	word := &Word{
		UserID:     userID,
		Original:   original,
		Translated: translated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
// Blank texts are rejected, but the stored text is never trimmed because
// grading compares answers literally.
func (w *Word) Validate() error {
	if w.UserID == uuid.Nil {
		return ErrWordUserIDEmpty
	}

	if strings.TrimSpace(w.Original) == "" {
		return ErrWordOriginalEmpty
	}

	if strings.TrimSpace(w.Translated) == "" {
		return ErrWordTranslatedEmpty
	}

	if w.Progress < 0 {
		return ErrWordProgressNegative
	}

	return nil
}

// IsNew reports whether the word has never been saved.
func (w *Word) IsNew() bool {
	return w.ID == uuid.Nil
}

// Mastery returns the learning level in [0, 1], reaching 1 at MasteryThreshold.
func (w *Word) Mastery() float64 {
	if w.Progress <= 0 {
		return 0
	}
	if w.Progress >= MasteryThreshold {
		return 1
	}
	return float64(w.Progress) / MasteryThreshold
}

// OwnedBy reports whether the word belongs to the given user.
func (w *Word) OwnedBy(userID uuid.UUID) bool {
	return w.UserID == userID
}
