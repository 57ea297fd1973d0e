package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedTask() Task {
	creator := int64(1)
	due := NewDate(2024, 1, 10)
	return Task{
		ID:          42,
		Title:       "Plan sprint",
		Description: strPtr("backlog grooming"),
		DueDate:     &due,
		Category:    strPtr("work"),
		Status:      StatusPending,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy:   &creator,
		UpdatedBy:   &creator,
	}
}

func decodePatch(t *testing.T, body string) TaskPatch {
	t.Helper()
	var p TaskPatch
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestTaskPatch_Mode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want UpdateMode
	}{
		{"status only", `{"status":"true"}`, UpdateModeStatusOnly},
		{"status and today flag", `{"status":"true","isTodayTask":true}`, UpdateModeStatusOnly},
		{"status with title", `{"status":"true","title":"x"}`, UpdateModeFull},
		{"status with null description", `{"status":"true","description":null}`, UpdateModeFull},
		{"title only", `{"title":"x"}`, UpdateModeFull},
		{"empty", `{}`, UpdateModeFull},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, decodePatch(t, tc.body).Mode())
		})
	}
}

func TestTaskPatch_ApplyStatusOnly(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	task := storedTask()
	before := storedTask()

	mode, err := decodePatch(t, `{"status":"true"}`).Apply(&task, 9, now)
	require.NoError(t, err)
	assert.Equal(t, UpdateModeStatusOnly, mode)

	assert.Equal(t, StatusCompleted, task.Status)
	assert.Equal(t, before.Title, task.Title)
	assert.Equal(t, before.Description, task.Description)
	assert.Equal(t, before.Category, task.Category)
	assert.Equal(t, before.DueDate, task.DueDate)
	assert.Equal(t, before.CreatedBy, task.CreatedBy)
	assert.Equal(t, before.CreatedAt, task.CreatedAt)
	assert.Equal(t, int64(9), *task.UpdatedBy)
	assert.Equal(t, now, task.UpdatedAt)
}

func TestTaskPatch_ApplyStatusOnlyRejectsBadStatus(t *testing.T) {
	t.Parallel()
	for _, body := range []string{`{"status":"done"}`, `{"status":null}`} {
		task := storedTask()
		_, err := decodePatch(t, body).Apply(&task, 9, time.Now())
		assert.ErrorIs(t, err, ErrInvalidStatus, body)
		assert.Equal(t, storedTask(), task, "task must be untouched on error")
	}
}

func TestTaskPatch_ApplyFull(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("title and status is a full replace", func(t *testing.T) {
		t.Parallel()
		task := storedTask()
		mode, err := decodePatch(t, `{"title":"  Ship it ","status":"true","category":null}`).Apply(&task, 3, now)
		require.NoError(t, err)
		assert.Equal(t, UpdateModeFull, mode)
		assert.Equal(t, "Ship it", task.Title)
		assert.Equal(t, StatusCompleted, task.Status)
		assert.Nil(t, task.Category, "explicit null clears")
		require.NotNil(t, task.Description, "omitted keeps stored value")
		assert.Equal(t, "backlog grooming", *task.Description)
		assert.Equal(t, "2024-01-10", task.DueDate.String())
	})

	t.Run("due date overwrite and clear", func(t *testing.T) {
		t.Parallel()
		task := storedTask()
		_, err := decodePatch(t, `{"title":"x","dueDate":"2024-05-06"}`).Apply(&task, 3, now)
		require.NoError(t, err)
		assert.Equal(t, "2024-05-06", task.DueDate.String())

		_, err = decodePatch(t, `{"title":"x","dueDate":null}`).Apply(&task, 3, now)
		require.NoError(t, err)
		assert.Nil(t, task.DueDate)
	})

	t.Run("missing title fails", func(t *testing.T) {
		t.Parallel()
		for _, body := range []string{`{"category":"home"}`, `{"title":"   "}`, `{"title":null}`, `{}`} {
			task := storedTask()
			_, err := decodePatch(t, body).Apply(&task, 3, now)
			require.Error(t, err, body)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "title", verr.Field)
			assert.Equal(t, storedTask(), task)
		}
	})

	t.Run("null status fails", func(t *testing.T) {
		t.Parallel()
		task := storedTask()
		_, err := decodePatch(t, `{"title":"x","status":null}`).Apply(&task, 3, now)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("today flag", func(t *testing.T) {
		t.Parallel()
		task := storedTask()
		_, err := decodePatch(t, `{"title":"x","isTodayTask":true}`).Apply(&task, 3, now)
		require.NoError(t, err)
		assert.True(t, task.IsTodayTask)
	})
}

func TestOptional_UnmarshalJSON(t *testing.T) {
	t.Parallel()
	var p struct {
		A Optional[string] `json:"a"`
		B Optional[string] `json:"b"`
		C Optional[string] `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x","b":null}`), &p))

	v, ok := p.A.Get()
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	assert.True(t, p.B.Set)
	assert.True(t, p.B.Null)
	_, ok = p.B.Get()
	assert.False(t, ok)

	assert.False(t, p.C.Set)
}

func TestStatus_UnmarshalJSON(t *testing.T) {
	t.Parallel()
	var p TaskPatch
	require.NoError(t, json.Unmarshal([]byte(`{"status":true}`), &p))
	assert.Equal(t, StatusCompleted, p.Status.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"status":"false"}`), &p))
	assert.Equal(t, StatusPending, p.Status.Value)

	require.Error(t, json.Unmarshal([]byte(`{"status":1}`), &p))
}
