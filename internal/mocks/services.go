package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/query"
	"github.com/phrazzld/tasks-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	ListFn            func(ctx context.Context, q query.TaskQuery) (query.Page[service.TaskView], error)
	ListTodayFn       func(ctx context.Context, q query.TaskQuery) (query.Page[service.TaskView], error)
	GetFn             func(ctx context.Context, id int64) (*service.TaskView, error)
	CreateFn          func(ctx context.Context, actorID int64, draft domain.TaskDraft) (int64, error)
	UpdateFn          func(ctx context.Context, actorID, id int64, patch domain.TaskPatch) (int64, error)
	DeleteTasksFn     func(ctx context.Context, ids []int64) (int64, error)
	SetTodayTaskFn    func(ctx context.Context, actorID, id int64, today bool) (int64, error)
	DeleteCompletedFn func(ctx context.Context) (int64, error)
	CompletionStatsFn func(ctx context.Context) (map[string]int64, error)

	// DefaultError is returned by methods without a Fn.
	DefaultError error
}

var _ service.TaskService = (*MockTaskService)(nil)

// List implements service.TaskService
func (m *MockTaskService) List(ctx context.Context, q query.TaskQuery) (query.Page[service.TaskView], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return query.EmptyPage[service.TaskView](1, query.DefaultPageSize), m.DefaultError
}

// ListToday implements service.TaskService
func (m *MockTaskService) ListToday(ctx context.Context, q query.TaskQuery) (query.Page[service.TaskView], error) {
	if m.ListTodayFn != nil {
		return m.ListTodayFn(ctx, q)
	}
	return query.EmptyPage[service.TaskView](1, query.DefaultPageSize), m.DefaultError
}

// Get implements service.TaskService
func (m *MockTaskService) Get(ctx context.Context, id int64) (*service.TaskView, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.DefaultError
}

// Create implements service.TaskService
func (m *MockTaskService) Create(ctx context.Context, actorID int64, draft domain.TaskDraft) (int64, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, actorID, draft)
	}
	return 0, m.DefaultError
}

// Update implements service.TaskService
func (m *MockTaskService) Update(ctx context.Context, actorID, id int64, patch domain.TaskPatch) (int64, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, actorID, id, patch)
	}
	return id, m.DefaultError
}

// DeleteTasks implements service.TaskService
func (m *MockTaskService) DeleteTasks(ctx context.Context, ids []int64) (int64, error) {
	if m.DeleteTasksFn != nil {
		return m.DeleteTasksFn(ctx, ids)
	}
	return 0, m.DefaultError
}

// SetTodayTask implements service.TaskService
func (m *MockTaskService) SetTodayTask(ctx context.Context, actorID, id int64, today bool) (int64, error) {
	if m.SetTodayTaskFn != nil {
		return m.SetTodayTaskFn(ctx, actorID, id, today)
	}
	return id, m.DefaultError
}

// DeleteCompleted implements service.TaskService
func (m *MockTaskService) DeleteCompleted(ctx context.Context) (int64, error) {
	if m.DeleteCompletedFn != nil {
		return m.DeleteCompletedFn(ctx)
	}
	return 0, m.DefaultError
}

// CompletionStats implements service.TaskService
func (m *MockTaskService) CompletionStats(ctx context.Context) (map[string]int64, error) {
	if m.CompletionStatsFn != nil {
		return m.CompletionStatsFn(ctx)
	}
	return nil, m.DefaultError
}

// MockUserService implements service.UserService for testing
type MockUserService struct {
	RegisterFn func(ctx context.Context, username, displayName, password string) (*domain.User, error)
	LoginFn    func(ctx context.Context, username, password string) (*service.Session, error)
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements service.UserService
func (m *MockUserService) Register(ctx context.Context, username, displayName, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, displayName, password)
	}
	return &domain.User{ID: 1, Username: username, DisplayName: displayName}, nil
}

// Login implements service.UserService
func (m *MockUserService) Login(ctx context.Context, username, password string) (*service.Session, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, username, password)
	}
	return nil, service.ErrInvalidCredentials
}

// MockSuggestionService implements service.SuggestionService for testing
type MockSuggestionService struct {
	SuggestFn func(ctx context.Context, actorID int64, prompt string) (string, error)
}

var _ service.SuggestionService = (*MockSuggestionService)(nil)

// Suggest implements service.SuggestionService
func (m *MockSuggestionService) Suggest(ctx context.Context, actorID int64, prompt string) (string, error) {
	if m.SuggestFn != nil {
		return m.SuggestFn(ctx, actorID, prompt)
	}
	return "", service.ErrSuggestionUnavailable
}
