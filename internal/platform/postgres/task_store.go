package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const taskColumns = `id, title, description, due_date, category, status, is_today_task,
	created_at, updated_at, created_by, updated_by`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx returns a store that runs every statement on tx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) *PostgresTaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

// Count implements store.TaskStore.Count
func (s *PostgresTaskStore) Count(ctx context.Context, filter store.TaskFilter) (int64, error) {
	return s.count(ctx, filter, false)
}

// CountToday implements store.TaskStore.CountToday
func (s *PostgresTaskStore) CountToday(ctx context.Context, filter store.TaskFilter) (int64, error) {
	return s.count(ctx, filter, true)
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context, filter store.TaskFilter, window store.Window) ([]*domain.Task, error) {
	return s.list(ctx, filter, window, false)
}

// ListToday implements store.TaskStore.ListToday
func (s *PostgresTaskStore) ListToday(ctx context.Context, filter store.TaskFilter, window store.Window) ([]*domain.Task, error) {
	return s.list(ctx, filter, window, true)
}

func (s *PostgresTaskStore) count(ctx context.Context, filter store.TaskFilter, todayOnly bool) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	b := buildTaskFilter(filter, todayOnly)
	query := "SELECT COUNT(*) FROM tasks" + b.whereClause()

	var total int64
	if err := s.db.QueryRowContext(ctx, query, b.args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()),
			slog.Bool("today_only", todayOnly))
		return 0, MapError(err)
	}
	return total, nil
}

func (s *PostgresTaskStore) list(
	ctx context.Context,
	filter store.TaskFilter,
	window store.Window,
	todayOnly bool,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	order, err := orderClause(filter.OrderBy)
	if err != nil {
		log.Warn("rejected sort", slog.String("error", err.Error()))
		return nil, err
	}

	b := buildTaskFilter(filter, todayOnly)
	query := "SELECT " + taskColumns + " FROM tasks" + b.whereClause() + order
	query += " LIMIT " + b.arg(window.Limit) + " OFFSET " + b.arg(window.Offset)

	rows, err := s.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.Bool("today_only", todayOnly))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0, window.Limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("listed tasks",
		slog.Int("count", len(tasks)),
		slog.Int("offset", window.Offset),
		slog.Int("limit", window.Limit))
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT " + taskColumns + " FROM tasks WHERE id = $1"
	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}
	return t, nil
}

// Insert implements store.TaskStore.Insert
func (s *PostgresTaskStore) Insert(ctx context.Context, task *domain.Task) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during insert", slog.String("error", err.Error()))
		return 0, err
	}

	query := `
		INSERT INTO tasks (title, description, due_date, category, status, is_today_task,
			created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		nullableString(task.Description),
		nullableDate(task.DueDate),
		nullableString(task.Category),
		task.Status.String(),
		task.IsTodayTask,
		task.CreatedAt,
		task.UpdatedAt,
		nullableInt64(task.CreatedBy),
		nullableInt64(task.UpdatedBy),
	).Scan(&id)
	if err != nil {
		log.Error("failed to insert task", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	task.ID = id
	log.Info("task created", slog.Int64("task_id", id))
	return id, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, category = $4, status = $5,
			is_today_task = $6, updated_at = $7, updated_by = $8
		WHERE id = $9
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		nullableString(task.Description),
		nullableDate(task.DueDate),
		nullableString(task.Category),
		task.Status.String(),
		task.IsTodayTask,
		task.UpdatedAt,
		nullableInt64(task.UpdatedBy),
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task update touched no rows", slog.Int64("task_id", task.ID))
		return err
	}

	log.Debug("task updated", slog.Int64("task_id", task.ID))
	return nil
}

// DeleteByIDs implements store.TaskStore.DeleteByIDs
func (s *PostgresTaskStore) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	b := &sqlBuilder{}
	query := "DELETE FROM tasks WHERE id IN (" + b.placeholders(ids) + ")"
	result, err := s.db.ExecContext(ctx, query, b.args...)
	if err != nil {
		log.Error("failed to delete tasks",
			slog.String("error", err.Error()),
			slog.Int("requested", len(ids)))
		return 0, MapError(err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	log.Info("tasks deleted",
		slog.Int("requested", len(ids)),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

// DeleteCompleted implements store.TaskStore.DeleteCompleted. On a *sql.DB
// it opens its own transaction; on a transaction it joins the caller's.
func (s *PostgresTaskStore) DeleteCompleted(ctx context.Context) (int64, error) {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return s.deleteCompleted(ctx)
	}

	var deleted int64
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		deleted, err = s.WithTx(tx).deleteCompleted(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *PostgresTaskStore) deleteCompleted(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, "DELETE FROM tasks WHERE status = $1 RETURNING id",
		domain.StatusCompleted.String())
	if err != nil {
		log.Error("failed to delete completed tasks", slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var deleted int64
	for rows.Next() {
		deleted++
	}
	if err := rows.Err(); err != nil {
		log.Error("error reading deleted task ids", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	log.Info("completed tasks deleted", slog.Int64("deleted", deleted))
	return deleted, nil
}

// AggregateCompletion implements store.TaskStore.AggregateCompletion
func (s *PostgresTaskStore) AggregateCompletion(ctx context.Context) (map[string]int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2)
		FROM tasks
	`
	var completed, pending int64
	err := s.db.QueryRowContext(ctx, query,
		domain.StatusCompleted.String(),
		domain.StatusPending.String(),
	).Scan(&completed, &pending)
	if err != nil {
		log.Error("failed to aggregate task completion", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return map[string]int64{
		store.StatCompleted: completed,
		store.StatPending:   pending,
		store.StatTotal:     completed + pending,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t      domain.Task
		status string
	)
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Category,
		&status,
		&t.IsTodayTask,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.CreatedBy,
		&t.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	t.Status = domain.Status(status)
	return &t, nil
}
