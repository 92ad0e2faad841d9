package quiz

import "errors"

// ErrEmptyWordSet is returned by Start when there is nothing to practice.
// It is the only engine error meant to be shown to the user.
var ErrEmptyWordSet = errors.New("no words to practice")

// Protocol errors. They mean the caller drove the session out of order and
// must not be ignored.
var (
	// ErrNoActivePrompt is returned when there is no item waiting for an answer.
	ErrNoActivePrompt = errors.New("quiz session has no active prompt")

	// ErrAlreadyAnswered is returned when an item that was already graded is graded again.
	ErrAlreadyAnswered = errors.New("quiz item has already been answered")

	// ErrInvalidSessionState is returned when an operation is not allowed in the current state.
	ErrInvalidSessionState = errors.New("invalid quiz session state")
)
