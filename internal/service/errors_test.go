package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceError(t *testing.T) {
	cause := errors.New("connection refused")

	err := NewServiceError("word", "add_word", "failed to save word", cause)
	assert.Equal(t, "word service add_word failed: failed to save word: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	var svcErr *ServiceError
	assert.True(t, errors.As(error(err), &svcErr))
	assert.Equal(t, "add_word", svcErr.Operation)

	bare := NewServiceError("quiz", "start_quiz", "no words", nil)
	assert.Equal(t, "quiz service start_quiz failed: no words", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
