package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskStore implements store.TaskStore on gorm.
type TaskStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewTaskStore creates a TaskStore. It panics on a nil db.
func NewTaskStore(db *gorm.DB, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

func (s *TaskStore) filtered(ctx context.Context, filter store.TaskFilter, todayOnly bool) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&taskRecord{})
	if filter.TitlePattern != "" {
		q = q.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, filter.TitlePattern)
	}
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", filter.Status.String())
	}
	if filter.DueFrom != nil {
		q = q.Where("due_date >= ?", filter.DueFrom.String())
	}
	if filter.DueTo != nil {
		q = q.Where("due_date <= ?", filter.DueTo.String())
	}
	if todayOnly {
		q = q.Where("is_today_task = ?", true)
	}
	return q
}

// Count implements store.TaskStore.
func (s *TaskStore) Count(ctx context.Context, filter store.TaskFilter) (int64, error) {
	return s.count(ctx, filter, false)
}

// CountToday implements store.TaskStore.
func (s *TaskStore) CountToday(ctx context.Context, filter store.TaskFilter) (int64, error) {
	return s.count(ctx, filter, true)
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter, window store.Window) ([]*domain.Task, error) {
	return s.list(ctx, filter, window, false)
}

// ListToday implements store.TaskStore.
func (s *TaskStore) ListToday(ctx context.Context, filter store.TaskFilter, window store.Window) ([]*domain.Task, error) {
	return s.list(ctx, filter, window, true)
}

func (s *TaskStore) count(ctx context.Context, filter store.TaskFilter, todayOnly bool) (int64, error) {
	var total int64
	if err := s.filtered(ctx, filter, todayOnly).Count(&total).Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count tasks",
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return total, nil
}

func (s *TaskStore) list(
	ctx context.Context,
	filter store.TaskFilter,
	window store.Window,
	todayOnly bool,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	order := filter.OrderBy
	if len(order) == 0 {
		order = store.DefaultOrder
	}

	q := s.filtered(ctx, filter, todayOnly)
	for _, o := range order {
		if !store.IsSortableColumn(o.Column) {
			return nil, fmt.Errorf("%w: %q", store.ErrInvalidSort, o.Column)
		}
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}

	var records []taskRecord
	if err := q.Offset(window.Offset).Limit(window.Limit).Find(&records).Error; err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(records))
	for i := range records {
		t, err := records[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode task %d: %w", records[i].ID, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var rec taskRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, fmt.Errorf("get task: %w", err)
	}
	return rec.toDomain()
}

// Insert implements store.TaskStore.
func (s *TaskStore) Insert(ctx context.Context, task *domain.Task) (int64, error) {
	if err := task.Validate(); err != nil {
		return 0, err
	}

	rec := newTaskRecord(task)
	rec.ID = 0
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to insert task",
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("insert task: %w", err)
	}

	task.ID = rec.ID
	return rec.ID, nil
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	rec := newTaskRecord(task)
	result := s.db.WithContext(ctx).Model(&taskRecord{}).Where("id = ?", task.ID).Updates(map[string]any{
		"title":         rec.Title,
		"description":   rec.Description,
		"due_date":      rec.DueDate,
		"category":      rec.Category,
		"status":        rec.Status,
		"is_today_task": rec.IsTodayTask,
		"updated_at":    rec.UpdatedAt,
		"updated_by":    rec.UpdatedBy,
	})
	if err := result.Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return fmt.Errorf("update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// DeleteByIDs implements store.TaskStore.
func (s *TaskStore) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&taskRecord{})
	if err := result.Error; err != nil {
		return 0, fmt.Errorf("delete tasks: %w", err)
	}
	return result.RowsAffected, nil
}

// DeleteCompleted implements store.TaskStore. The delete runs in its own
// transaction.
func (s *TaskStore) DeleteCompleted(ctx context.Context) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("status = ?", domain.StatusCompleted.String()).Delete(&taskRecord{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete completed tasks",
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("%w: delete completed: %v", store.ErrTransactionFailed, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("completed tasks deleted", slog.Int64("deleted", deleted))
	return deleted, nil
}

// AggregateCompletion implements store.TaskStore.
func (s *TaskStore) AggregateCompletion(ctx context.Context) (map[string]int64, error) {
	var row struct {
		Completed int64
		Pending   int64
	}
	err := s.db.WithContext(ctx).Model(&taskRecord{}).
		Select(
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending",
			domain.StatusCompleted.String(), domain.StatusPending.String(),
		).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate completion: %w", err)
	}

	return map[string]int64{
		store.StatCompleted: row.Completed,
		store.StatPending:   row.Pending,
		store.StatTotal:     row.Completed + row.Pending,
	}, nil
}
