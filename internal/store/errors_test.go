package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityErrorsWrapGenericOnes(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(ErrTaskNotFound))
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrTaskNotFound)))
	assert.False(t, IsNotFoundError(ErrUsernameExists))

	assert.True(t, IsDuplicateError(ErrUsernameExists))
	assert.False(t, IsDuplicateError(ErrTaskNotFound))

	assert.False(t, errors.Is(ErrTaskNotFound, ErrUserNotFound))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewStoreError("task", "count", "failed to count tasks", cause)

	assert.Equal(t, "count operation on task failed: failed to count tasks: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	var storeErr *StoreError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &storeErr))
	assert.Equal(t, "task", storeErr.Entity)

	bare := NewStoreError("user", "create", "username taken", nil)
	assert.Equal(t, "create operation on user failed: username taken", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestIsSortableColumn(t *testing.T) {
	t.Parallel()

	for _, col := range []string{ColumnID, ColumnTitle, ColumnDueDate, ColumnCreatedAt, ColumnUpdatedAt, ColumnStatus} {
		assert.True(t, IsSortableColumn(col), col)
	}
	for _, col := range []string{"", "dueDate", "created_at; DROP TABLE tasks", "password_hash"} {
		assert.False(t, IsSortableColumn(col), col)
	}
}
