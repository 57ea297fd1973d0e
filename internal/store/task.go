package store

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// Sortable task columns. Stores only ever interpolate these names into
// ORDER BY clauses; filters carrying anything else are rejected.
const (
	ColumnID          = "id"
	ColumnTitle       = "title"
	ColumnCategory    = "category"
	ColumnStatus      = "status"
	ColumnDueDate     = "due_date"
	ColumnCreatedAt   = "created_at"
	ColumnUpdatedAt   = "updated_at"
	ColumnIsTodayTask = "is_today_task"
)

var sortableColumns = map[string]struct{}{
	ColumnID:          {},
	ColumnTitle:       {},
	ColumnCategory:    {},
	ColumnStatus:      {},
	ColumnDueDate:     {},
	ColumnCreatedAt:   {},
	ColumnUpdatedAt:   {},
	ColumnIsTodayTask: {},
}

// IsSortableColumn reports whether column may appear in an ORDER BY clause.
func IsSortableColumn(column string) bool {
	_, ok := sortableColumns[column]
	return ok
}

// OrderBy is one term of a sort.
type OrderBy struct {
	Column string
	Desc   bool
}

// TaskFilter holds already-normalized predicates. Nil or empty fields
// do not constrain the result.
type TaskFilter struct {
	// TitlePattern is a LIKE pattern with '\' as the escape character,
	// matched case-insensitively against the title.
	TitlePattern string
	Category     *string
	Status       *domain.Status
	// DueFrom and DueTo bound the due date inclusively.
	DueFrom *domain.Date
	DueTo   *domain.Date
	// OrderBy is applied in order. Stores fall back to DefaultOrder when empty.
	OrderBy []OrderBy
}

// DefaultOrder is the listing order when a filter specifies none.
var DefaultOrder = []OrderBy{
	{Column: ColumnCreatedAt, Desc: true},
	{Column: ColumnID, Desc: true},
}

// Window selects a slice of an ordered result.
type Window struct {
	Offset int
	Limit  int
}

// Completion statistics labels returned by TaskStore.AggregateCompletion.
const (
	StatCompleted = "completed"
	StatPending   = "pending"
	StatTotal     = "total"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Count returns how many tasks match filter.
	Count(ctx context.Context, filter TaskFilter) (int64, error)

	// List returns the tasks matching filter, ordered and windowed.
	List(ctx context.Context, filter TaskFilter, window Window) ([]*domain.Task, error)

	// CountToday is Count restricted to tasks flagged for today.
	CountToday(ctx context.Context, filter TaskFilter) (int64, error)

	// ListToday is List restricted to tasks flagged for today.
	ListToday(ctx context.Context, filter TaskFilter, window Window) ([]*domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Insert stores a new task and returns its assigned ID.
	Insert(ctx context.Context, task *domain.Task) (int64, error)

	// Update overwrites every mutable column of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// DeleteByIDs removes the given tasks and returns how many rows were deleted.
	// IDs that do not exist are ignored.
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)

	// DeleteCompleted atomically removes every completed task and returns
	// the number removed.
	DeleteCompleted(ctx context.Context) (int64, error)

	// AggregateCompletion returns task counts keyed by StatCompleted,
	// StatPending and StatTotal.
	AggregateCompletion(ctx context.Context) (map[string]int64, error)
}
