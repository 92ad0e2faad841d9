package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lexiquiz/lexiquiz-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashLines(t *testing.T) {
	verifier := auth.NewBcryptVerifier(4)
	in := strings.NewReader("correct-horse-battery\n\nshort\nanother-long-password\n")

	var out bytes.Buffer
	require.NoError(t, hashLines(in, &out, verifier))

	hashes := strings.Fields(out.String())
	require.Len(t, hashes, 2)
	assert.NoError(t, verifier.Compare(hashes[0], "correct-horse-battery"))
	assert.NoError(t, verifier.Compare(hashes[1], "another-long-password"))
}
