package domain

import (
	"strings"
	"time"
)

// Task is a single unit of work tracked by the application.
// ID, CreatedBy and CreatedAt never change once the task is stored.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     *Date     `json:"dueDate"`
	Category    *string   `json:"category"`
	Status      Status    `json:"status"`
	IsTodayTask bool      `json:"isTodayTask"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedBy   *int64    `json:"createdBy"`
	UpdatedBy   *int64    `json:"updatedBy"`
}

// TaskDraft holds the caller-supplied fields of a task that does not exist yet.
type TaskDraft struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *Date   `json:"dueDate"`
	Category    *string `json:"category"`
	Status      *Status `json:"status"`
	IsTodayTask bool    `json:"isTodayTask"`
}

// NewTask normalizes and validates a draft and returns a task ready to be
// inserted. The status defaults to pending; creator and updater are the actor.
func NewTask(draft TaskDraft, actorID int64, now time.Time) (*Task, error) {
	task := &Task{
		Title:       strings.TrimSpace(draft.Title),
		Description: TrimToNil(draft.Description),
		DueDate:     nonZeroDate(draft.DueDate),
		Category:    TrimToNil(draft.Category),
		Status:      StatusPending,
		IsTodayTask: draft.IsTodayTask,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if draft.Status != nil && *draft.Status != "" {
		task.Status = *draft.Status
	}
	task.stamp(actorID, now)
	task.CreatedBy = task.UpdatedBy

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the invariants every stored task must satisfy.
func (t *Task) Validate() error {
	if t.Title == "" {
		return NewValidationError("title", "title is required", nil)
	}
	if !t.Status.Valid() {
		return NewValidationError("status", `status must be "true" or "false"`, ErrInvalidStatus)
	}
	return nil
}

// Touch records a mutation by actorID at now.
func (t *Task) Touch(actorID int64, now time.Time) {
	t.stamp(actorID, now)
}

func (t *Task) stamp(actorID int64, now time.Time) {
	t.UpdatedAt = now
	if actorID > 0 {
		id := actorID
		t.UpdatedBy = &id
	}
}

// TrimToNil trims s and returns nil when nothing is left.
func TrimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func nonZeroDate(d *Date) *Date {
	if d == nil || d.IsZero() {
		return nil
	}
	out := *d
	return &out
}
