package main

import (
	"bufio"
	"strings"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRun(t *testing.T) {
	t.Parallel()

	hash, err := run(bufio.NewReader(strings.NewReader("correct horse battery\n")), bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse battery")))

	_, err = run(bufio.NewReader(strings.NewReader("short\n")), bcrypt.MinCost)
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)

	_, err = run(bufio.NewReader(strings.NewReader("")), bcrypt.MinCost)
	assert.Error(t, err)
}
