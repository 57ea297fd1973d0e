package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockTaskStore is a mock of store.TaskStore for use with testify/mock
type TestifyMockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TestifyMockTaskStore)(nil)

// Count is a mock implementation of store.TaskStore.Count
func (m *TestifyMockTaskStore) Count(ctx context.Context, filter store.TaskFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// List is a mock implementation of store.TaskStore.List
func (m *TestifyMockTaskStore) List(
	ctx context.Context,
	filter store.TaskFilter,
	window store.Window,
) ([]*domain.Task, error) {
	args := m.Called(ctx, filter, window)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// CountToday is a mock implementation of store.TaskStore.CountToday
func (m *TestifyMockTaskStore) CountToday(ctx context.Context, filter store.TaskFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// ListToday is a mock implementation of store.TaskStore.ListToday
func (m *TestifyMockTaskStore) ListToday(
	ctx context.Context,
	filter store.TaskFilter,
	window store.Window,
) ([]*domain.Task, error) {
	args := m.Called(ctx, filter, window)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByID is a mock implementation of store.TaskStore.GetByID
func (m *TestifyMockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// Insert is a mock implementation of store.TaskStore.Insert
func (m *TestifyMockTaskStore) Insert(ctx context.Context, task *domain.Task) (int64, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(int64), args.Error(1)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *TestifyMockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// DeleteByIDs is a mock implementation of store.TaskStore.DeleteByIDs
func (m *TestifyMockTaskStore) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// DeleteCompleted is a mock implementation of store.TaskStore.DeleteCompleted
func (m *TestifyMockTaskStore) DeleteCompleted(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// AggregateCompletion is a mock implementation of store.TaskStore.AggregateCompletion
func (m *TestifyMockTaskStore) AggregateCompletion(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(map[string]int64); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}
