package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/query"
	"github.com/phrazzld/tasks-api/internal/store"
)

// IdentityResolver maps actor ids to display names. Unknown ids are
// omitted from the result. store.UserStore satisfies it.
type IdentityResolver interface {
	ResolveNames(ctx context.Context, ids []int64) (map[int64]string, error)
}

// TaskView is a task as shown to clients: the stored record plus the
// display names of its creator and last updater.
type TaskView struct {
	domain.Task
	CreatedByDesc string `json:"createdByDesc"`
	UpdatedByDesc string `json:"updatedByDesc"`
}

// TaskService provides task-related operations.
type TaskService interface {
	// List returns one page of tasks matching q.
	List(ctx context.Context, q query.TaskQuery) (query.Page[TaskView], error)

	// ListToday is List restricted to tasks flagged for today.
	ListToday(ctx context.Context, q query.TaskQuery) (query.Page[TaskView], error)

	// Get returns a single task.
	Get(ctx context.Context, id int64) (*TaskView, error)

	// Create stores a new task created by actorID and returns its id.
	Create(ctx context.Context, actorID int64, draft domain.TaskDraft) (int64, error)

	// Update applies patch to task id on behalf of actorID and returns the id.
	Update(ctx context.Context, actorID, id int64, patch domain.TaskPatch) (int64, error)

	// DeleteTasks removes the given tasks and returns how many were removed.
	DeleteTasks(ctx context.Context, ids []int64) (int64, error)

	// SetTodayTask sets the today flag of task id and returns the id.
	SetTodayTask(ctx context.Context, actorID, id int64, today bool) (int64, error)

	// DeleteCompleted removes every completed task and returns the count.
	DeleteCompleted(ctx context.Context) (int64, error)

	// CompletionStats returns task counts keyed by completed, pending and total.
	CompletionStats(ctx context.Context) (map[string]int64, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks      store.TaskStore
	identities IdentityResolver
	compiler   *query.Compiler
	now        func() time.Time
	logger     *slog.Logger
}

var _ TaskService = (*taskServiceImpl)(nil)

// TaskServiceOption customizes the task service.
type TaskServiceOption func(*taskServiceImpl)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) TaskServiceOption {
	return func(s *taskServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	tasks store.TaskStore,
	identities IdentityResolver,
	compiler *query.Compiler,
	logger *slog.Logger,
	opts ...TaskServiceOption,
) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "task store cannot be nil"}
	}
	if identities == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "identity resolver cannot be nil"}
	}
	if compiler == nil {
		compiler = query.NewCompiler()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &taskServiceImpl{
		tasks:      tasks,
		identities: identities,
		compiler:   compiler,
		now:        time.Now,
		logger:     logger.With(slog.String("component", "task_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// List implements TaskService.
func (s *taskServiceImpl) List(ctx context.Context, q query.TaskQuery) (query.Page[TaskView], error) {
	return s.listPage(ctx, "list", q, s.tasks.Count, s.tasks.List)
}

// ListToday implements TaskService.
func (s *taskServiceImpl) ListToday(ctx context.Context, q query.TaskQuery) (query.Page[TaskView], error) {
	return s.listPage(ctx, "list_today", q, s.tasks.CountToday, s.tasks.ListToday)
}

type (
	countFunc func(context.Context, store.TaskFilter) (int64, error)
	listFunc  func(context.Context, store.TaskFilter, store.Window) ([]*domain.Task, error)
)

// listPage counts first and fetches the window second. The two reads are
// not isolated: a concurrent write may make the total disagree with the list.
func (s *taskServiceImpl) listPage(
	ctx context.Context,
	operation string,
	q query.TaskQuery,
	count countFunc,
	list listFunc,
) (query.Page[TaskView], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	compiled, err := s.compiler.Compile(q)
	if err != nil {
		log.Debug("rejected task query", "operation", operation, "error", err)
		return query.Page[TaskView]{}, err
	}

	total, err := count(ctx, compiled.Filter)
	if err != nil {
		log.Error("failed to count tasks", "operation", operation, "error", err)
		return query.Page[TaskView]{}, NewTaskServiceError(operation, "failed to count tasks", err)
	}

	page := query.Paginate(compiled.Page, compiled.PageSize, total)
	if page.Empty() {
		log.Debug("no tasks match query", "operation", operation)
		return query.EmptyPage[TaskView](compiled.Page, compiled.PageSize), nil
	}

	tasks, err := list(ctx, compiled.Filter, page.Window())
	if err != nil {
		log.Error("failed to list tasks",
			"operation", operation,
			"offset", page.Offset(),
			"limit", compiled.PageSize,
			"error", err)
		return query.Page[TaskView]{}, NewTaskServiceError(operation, "failed to list tasks", err)
	}

	views, err := s.project(ctx, tasks)
	if err != nil {
		log.Error("failed to resolve actor names", "operation", operation, "error", err)
		return query.Page[TaskView]{}, NewTaskServiceError(operation, "failed to resolve actor names", err)
	}

	log.Debug("listed tasks",
		"operation", operation,
		"total", total,
		"page", compiled.Page,
		"returned", len(views))
	return query.NewPage(page, views), nil
}

// project resolves every distinct creator and updater in one call and
// builds the display records.
func (s *taskServiceImpl) project(ctx context.Context, tasks []*domain.Task) ([]TaskView, error) {
	names := map[int64]string{}
	if ids := actorIDs(tasks); len(ids) > 0 {
		resolved, err := s.identities.ResolveNames(ctx, ids)
		if err != nil {
			return nil, err
		}
		names = resolved
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := TaskView{Task: *t}
		if t.CreatedBy != nil {
			view.CreatedByDesc = names[*t.CreatedBy]
		}
		if t.UpdatedBy != nil {
			view.UpdatedByDesc = names[*t.UpdatedBy]
		}
		views = append(views, view)
	}
	return views, nil
}

func actorIDs(tasks []*domain.Task) []int64 {
	seen := make(map[int64]struct{})
	for _, t := range tasks {
		for _, id := range []*int64{t.CreatedBy, t.UpdatedBy} {
			if id != nil {
				seen[*id] = struct{}{}
			}
		}
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Get implements TaskService.
func (s *taskServiceImpl) Get(ctx context.Context, id int64) (*TaskView, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("get", "failed to retrieve task", err)
	}
	views, err := s.project(ctx, []*domain.Task{task})
	if err != nil {
		return nil, NewTaskServiceError("get", "failed to resolve actor names", err)
	}
	return &views[0], nil
}

// Create implements TaskService.
func (s *taskServiceImpl) Create(ctx context.Context, actorID int64, draft domain.TaskDraft) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(draft, actorID, s.now().UTC())
	if err != nil {
		log.Debug("invalid task draft", "actor_id", actorID, "error", err)
		return 0, err
	}

	id, err := s.tasks.Insert(ctx, task)
	if err != nil {
		log.Error("failed to insert task", "actor_id", actorID, "error", err)
		return 0, NewTaskServiceError("create", "failed to save task", err)
	}

	log.Info("task created", "task_id", id, "actor_id", actorID)
	return id, nil
}

// Update implements TaskService.
func (s *taskServiceImpl) Update(ctx context.Context, actorID, id int64, patch domain.TaskPatch) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if err := validateID(id); err != nil {
		return 0, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return 0, NewTaskServiceError("update", "failed to retrieve task", err)
	}

	mode, err := patch.Apply(task, actorID, s.now().UTC())
	if err != nil {
		log.Debug("invalid task patch", "task_id", id, "mode", mode.String(), "error", err)
		return 0, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		log.Error("failed to update task", "task_id", id, "mode", mode.String(), "error", err)
		return 0, NewTaskServiceError("update", "failed to save task", err)
	}

	log.Info("task updated", "task_id", id, "mode", mode.String(), "actor_id", actorID)
	return id, nil
}

// DeleteTasks implements TaskService.
func (s *taskServiceImpl) DeleteTasks(ctx context.Context, ids []int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if len(ids) == 0 {
		return 0, domain.NewValidationError("ids", "at least one task id is required", nil)
	}
	for _, id := range ids {
		if err := validateID(id); err != nil {
			return 0, err
		}
	}

	deleted, err := s.tasks.DeleteByIDs(ctx, ids)
	if err != nil {
		log.Error("failed to delete tasks", "count", len(ids), "error", err)
		return 0, NewTaskServiceError("delete", "failed to delete tasks", err)
	}

	log.Info("tasks deleted", "requested", len(ids), "deleted", deleted)
	return deleted, nil
}

// SetTodayTask implements TaskService.
func (s *taskServiceImpl) SetTodayTask(ctx context.Context, actorID, id int64, today bool) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if err := validateID(id); err != nil {
		return 0, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return 0, NewTaskServiceError("set_today", "failed to retrieve task", err)
	}

	task.IsTodayTask = today
	task.Touch(actorID, s.now().UTC())

	if err := s.tasks.Update(ctx, task); err != nil {
		log.Error("failed to update today flag", "task_id", id, "error", err)
		return 0, NewTaskServiceError("set_today", "failed to save task", err)
	}

	log.Info("today flag updated", "task_id", id, "today", today, "actor_id", actorID)
	return id, nil
}

// DeleteCompleted implements TaskService.
func (s *taskServiceImpl) DeleteCompleted(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deleted, err := s.tasks.DeleteCompleted(ctx)
	if err != nil {
		log.Error("failed to delete completed tasks", "error", err)
		return 0, NewTaskServiceError("delete_completed", "failed to delete completed tasks", err)
	}

	log.Info("completed tasks deleted", "deleted", deleted)
	return deleted, nil
}

// CompletionStats implements TaskService.
func (s *taskServiceImpl) CompletionStats(ctx context.Context) (map[string]int64, error) {
	stats, err := s.tasks.AggregateCompletion(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to aggregate completion", "error", err)
		return nil, NewTaskServiceError("completion_stats", "failed to aggregate tasks", err)
	}
	return stats, nil
}

func validateID(id int64) error {
	if id <= 0 {
		return domain.NewValidationError("id", fmt.Sprintf("task id must be positive, got %d", id), domain.ErrInvalidID)
	}
	return nil
}
