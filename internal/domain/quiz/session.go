package quiz

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
)

// State is the lifecycle state of a Session.
type State string

// Session states. A freshly started session is ACTIVE with the cursor at 0.
const (
	StateActive    State = "active"
	StateCompleted State = "completed"
	StateAborted   State = "aborted"
)

// IsTerminal reports whether no further transitions are possible.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateAborted
}

// Item pairs one word with the answer given for it during a session.
type Item struct {
	Word     domain.Word // in-session copy, Progress includes any increment
	Answer   string
	Answered bool
	Correct  bool

	baseline int // progress when the session started
}

// GradingOutcome is the result of grading one answer.
type GradingOutcome struct {
	Position  int
	Word      domain.Word
	Answer    string
	Correct   bool
	Exhausted bool // every item has now been graded
}

// ProgressUpdate carries the final progress of one word after a completed session.
type ProgressUpdate struct {
	Word             domain.Word // Progress holds the new value
	PreviousProgress int
}

// NewProgress returns the progress value to persist.
func (u ProgressUpdate) NewProgress() int {
	return u.Word.Progress
}

// Changed reports whether the session altered the word's progress.
func (u ProgressUpdate) Changed() bool {
	return u.Word.Progress != u.PreviousProgress
}

// SummaryRow is one line of the post-session review.
type SummaryRow struct {
	Word     domain.Word
	Answer   string
	Answered bool
	Correct  bool
}

// Session is one practice run over a fixed, ordered set of words.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	items  []Item
	cursor int
	state  State
}

// Start builds a session with one item per word, in the given order.
// The words are copied, so later changes to the caller's slice do not
// affect the session. Returns ErrEmptyWordSet when words is empty.
func Start(words []domain.Word) (*Session, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordSet
	}

	items := make([]Item, len(words))
	for i, w := range words {
		items[i] = Item{Word: w, baseline: w.Progress}
	}

	return &Session{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
		items:     items,
		state:     StateActive,
	}, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Len returns the number of items in the session.
func (s *Session) Len() int {
	return len(s.items)
}

// Cursor returns the index of the next item to grade.
func (s *Session) Cursor() int {
	return s.cursor
}

// Exhausted reports whether every item has been graded.
func (s *Session) Exhausted() bool {
	return s.cursor >= len(s.items)
}

// IsLastItem reports whether the active item is the final one, in which case
// the caller should offer a finish action rather than a next action.
func (s *Session) IsLastItem() bool {
	return s.state == StateActive && s.cursor == len(s.items)-1
}

// Completion returns the fraction of items graded so far.
func (s *Session) Completion() float64 {
	return float64(s.cursor) / float64(len(s.items))
}

// CorrectCount returns how many graded items were answered correctly.
func (s *Session) CorrectCount() int {
	n := 0
	for _, it := range s.items {
		if it.Correct {
			n++
		}
	}
	return n
}

// item returns a copy of the item at index i.
func (s *Session) item(i int) (Item, bool) {
	if i < 0 || i >= len(s.items) {
		return Item{}, false
	}
	return s.items[i], true
}

// CurrentPrompt returns the word waiting for an answer.
func (s *Session) CurrentPrompt() (domain.Word, error) {
	if s.state != StateActive || s.Exhausted() {
		return domain.Word{}, fmt.Errorf("%w: state %s, position %d of %d",
			ErrNoActivePrompt, s.state, s.cursor, len(s.items))
	}
	return s.items[s.cursor].Word, nil
}

// SubmitAnswer grades the active item and advances the cursor.
func (s *Session) SubmitAnswer(answer string) (GradingOutcome, error) {
	return s.GradeAt(s.cursor, answer)
}

// GradeAt grades the item at position, which must be the active item.
// Callers that track positions use it to reject a repeated submission
// with ErrAlreadyAnswered instead of grading the next word by accident.
//
// Grading is a literal comparison with the word's translation: case
// matters and surrounding whitespace is not trimmed. A correct answer
// increments the in-session progress by exactly one.
func (s *Session) GradeAt(position int, answer string) (GradingOutcome, error) {
	if s.state.IsTerminal() {
		return GradingOutcome{}, fmt.Errorf("%w: cannot grade a %s session", ErrInvalidSessionState, s.state)
	}
	if position < 0 || position >= len(s.items) {
		return GradingOutcome{}, fmt.Errorf("%w: position %d out of range", ErrNoActivePrompt, position)
	}
	if position < s.cursor || s.items[position].Answered {
		return GradingOutcome{}, fmt.Errorf("%w: position %d", ErrAlreadyAnswered, position)
	}
	if position > s.cursor {
		return GradingOutcome{}, fmt.Errorf("%w: position %d is ahead of %d", ErrNoActivePrompt, position, s.cursor)
	}

	item := &s.items[position]
	item.Answer = answer
	item.Answered = true
	if answer == item.Word.Translated {
		item.Correct = true
		item.Word.Progress++
	}
	s.cursor++

	return GradingOutcome{
		Position:  position,
		Word:      item.Word,
		Answer:    answer,
		Correct:   item.Correct,
		Exhausted: s.Exhausted(),
	}, nil
}

// Finish completes the session and returns the final progress of every word,
// in session order. If an item is still waiting for an answer, answer is
// graded against it first; once the session is exhausted answer is ignored.
// Items never reached keep their original progress.
func (s *Session) Finish(answer string) ([]ProgressUpdate, error) {
	if s.state != StateActive {
		return nil, fmt.Errorf("%w: cannot finish a %s session", ErrInvalidSessionState, s.state)
	}

	if !s.Exhausted() {
		if _, err := s.SubmitAnswer(answer); err != nil {
			return nil, err
		}
	}

	s.state = StateCompleted
	return s.ProgressUpdates()
}

// ProgressUpdates returns the progress updates of a completed session.
// It can be called again to retry persisting without grading anything.
func (s *Session) ProgressUpdates() ([]ProgressUpdate, error) {
	if s.state != StateCompleted {
		return nil, fmt.Errorf("%w: session is %s", ErrInvalidSessionState, s.state)
	}

	updates := make([]ProgressUpdate, len(s.items))
	for i, it := range s.items {
		updates[i] = ProgressUpdate{Word: it.Word, PreviousProgress: it.baseline}
	}
	return updates, nil
}

// Quit abandons the session. Nothing is produced for persistence. Quitting a
// session that is already completed or aborted does nothing.
func (s *Session) Quit() {
	if s.state.IsTerminal() {
		return
	}
	s.state = StateAborted
}

// Summary returns one row per item, in session order, for review after the
// session has completed.
func (s *Session) Summary() ([]SummaryRow, error) {
	if s.state != StateCompleted {
		return nil, fmt.Errorf("%w: summary requires a completed session, got %s", ErrInvalidSessionState, s.state)
	}

	rows := make([]SummaryRow, len(s.items))
	for i, it := range s.items {
		rows[i] = SummaryRow{
			Word:     it.Word,
			Answer:   it.Answer,
			Answered: it.Answered,
			Correct:  it.Correct,
		}
	}
	return rows, nil
}
