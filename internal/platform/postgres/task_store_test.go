package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskRowColumns = []string{
	"id", "title", "description", "due_date", "category", "status", "is_today_task",
	"created_at", "updated_at", "created_by", "updated_by",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func strPtr(s string) *string { return &s }

func TestNewPostgresTaskStore(t *testing.T) {
	assert.Panics(t, func() { NewPostgresTaskStore(nil, nil) })

	db, _ := newMockDB(t)
	s := NewPostgresTaskStore(db, nil)
	require.NotNil(t, s)
	assert.NotNil(t, s.logger)
}

func TestPostgresTaskStore_Count(t *testing.T) {
	t.Run("all predicates", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		status := domain.StatusCompleted
		from := domain.NewDate(2024, time.March, 1)
		to := domain.NewDate(2024, time.March, 31)

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT COUNT(*) FROM tasks WHERE title ILIKE $1 ESCAPE '\' AND category = $2 AND status = $3 AND due_date >= $4 AND due_date <= $5`,
		)).
			WithArgs("%report%", "work", "true", "2024-03-01", "2024-03-31").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		total, err := s.Count(context.Background(), store.TaskFilter{
			TitlePattern: "%report%",
			Category:     strPtr("work"),
			Status:       &status,
			DueFrom:      &from,
			DueTo:        &to,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("today without predicates", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM tasks WHERE is_today_task = TRUE`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		total, err := s.CountToday(context.Background(), store.TaskFilter{})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		dbErr := errors.New("connection reset")
		mock.ExpectQuery(`SELECT COUNT`).WillReturnError(dbErr)

		_, err := s.Count(context.Background(), store.TaskFilter{})
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestPostgresTaskStore_List(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresTaskStore(db, nil)

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		`FROM tasks WHERE category = $1 ORDER BY due_date DESC, id DESC LIMIT $2 OFFSET $3`,
	)).
		WithArgs("work", 5, 10).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(int64(11), "Weekly Report", nil, due, "work", "false", true, created, created, int64(7), nil).
			AddRow(int64(12), "Budget", "Q2", nil, "work", "true", false, created, created, nil, int64(8)))

	tasks, err := s.List(context.Background(), store.TaskFilter{
		Category: strPtr("work"),
		OrderBy: []store.OrderBy{
			{Column: store.ColumnDueDate, Desc: true},
			{Column: store.ColumnID, Desc: true},
		},
	}, store.Window{Offset: 10, Limit: 5})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	first := tasks[0]
	assert.Equal(t, int64(11), first.ID)
	assert.Nil(t, first.Description)
	require.NotNil(t, first.DueDate)
	assert.Equal(t, "2024-03-10", first.DueDate.String())
	assert.Equal(t, domain.StatusPending, first.Status)
	assert.True(t, first.IsTodayTask)
	require.NotNil(t, first.CreatedBy)
	assert.Equal(t, int64(7), *first.CreatedBy)
	assert.Nil(t, first.UpdatedBy)

	second := tasks[1]
	require.NotNil(t, second.Description)
	assert.Equal(t, "Q2", *second.Description)
	assert.Nil(t, second.DueDate)
	assert.Equal(t, domain.StatusCompleted, second.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_ListDefaultOrderAndToday(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresTaskStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta(
		`FROM tasks WHERE is_today_task = TRUE ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
	)).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(taskRowColumns))

	tasks, err := s.ListToday(context.Background(), store.TaskFilter{}, store.Window{Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_ListRejectsUnknownColumn(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresTaskStore(db, nil)

	_, err := s.List(context.Background(), store.TaskFilter{
		OrderBy: []store.OrderBy{{Column: "password_hash"}},
	}, store.Window{Limit: 10})
	assert.ErrorIs(t, err, store.ErrInvalidSort)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM tasks WHERE id = $1`)).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(int64(5), "Call bank", nil, "2024-06-01", nil, "false", false, now, now, nil, nil))

		task, err := s.GetByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "Call bank", task.Title)
		assert.Equal(t, "2024-06-01", task.DueDate.String())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectQuery(`FROM tasks WHERE id`).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(taskRowColumns))

		_, err := s.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestPostgresTaskStore_Insert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		due := domain.NewDate(2024, time.May, 1)
		task, err := domain.NewTask(domain.TaskDraft{Title: " Write report ", DueDate: &due}, 7, time.Now())
		require.NoError(t, err)

		mock.ExpectQuery(`INSERT INTO tasks`).
			WithArgs("Write report", nil, "2024-05-01", nil, "false", false,
				sqlmock.AnyArg(), sqlmock.AnyArg(), int64(7), int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		id, err := s.Insert(context.Background(), task)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		assert.Equal(t, int64(42), task.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid task never reaches the database", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		_, err := s.Insert(context.Background(), &domain.Task{Title: "", Status: domain.StatusPending})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresTaskStore_Update(t *testing.T) {
	task := &domain.Task{ID: 9, Title: "Plan sprint", Status: domain.StatusCompleted, UpdatedAt: time.Now()}

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectExec(`UPDATE tasks`).
			WithArgs("Plan sprint", nil, nil, nil, "true", false, sqlmock.AnyArg(), nil, int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Update(context.Background(), task))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectExec(`UPDATE tasks`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Update(context.Background(), task)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_DeleteByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresTaskStore(db, nil)

	n, err := s.DeleteByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE id IN ($1, $2, $3)`)).
		WithArgs(int64(1), int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err = s.DeleteByIDs(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_DeleteCompleted(t *testing.T) {
	t.Run("commits and counts removed rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM tasks WHERE status = $1 RETURNING id`)).
			WithArgs("true").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)).AddRow(int64(3)))
		mock.ExpectCommit()

		n, err := s.DeleteCompleted(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectBegin()
		mock.ExpectQuery(`DELETE FROM tasks`).WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		_, err := s.DeleteCompleted(context.Background())
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresTaskStore_AggregateCompletion(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresTaskStore(db, nil)

	mock.ExpectQuery(`COUNT\(\*\) FILTER`).
		WithArgs("true", "false").
		WillReturnRows(sqlmock.NewRows([]string{"completed", "pending"}).AddRow(int64(2), int64(1)))

	stats, err := s.AggregateCompletion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		store.StatCompleted: 2,
		store.StatPending:   1,
		store.StatTotal:     3,
	}, stats)
}
