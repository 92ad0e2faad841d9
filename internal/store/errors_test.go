package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expected: true},
		{name: "wrapped ErrWordNotFound", err: fmt.Errorf("lookup: %w", ErrWordNotFound), expected: true},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: true},
		{name: "ErrEmailExists", err: ErrEmailExists, expected: true},
		{name: "wrapped ErrEmailExists", err: fmt.Errorf("create: %w", ErrEmailExists), expected: true},
		{name: "ErrWordNotFound", err: ErrWordNotFound, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		err := NewStoreError("word", "save", "failed to update word", ErrWordNotFound)

		assert.Equal(t, "save operation on word failed: failed to update word: entity not found: word", err.Error())
		assert.ErrorIs(t, err, ErrWordNotFound)
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("user", "create", "no email", nil)

		assert.Equal(t, "create operation on user failed: no email", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})
}
