package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/query"
	"github.com/phrazzld/tasks-api/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// Routes registers the task endpoints on r. Static segments are matched
// before {id}, so "today", "completed" and "stats" never reach GetTask.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Get("/", h.ListTasks)
	r.Post("/", h.CreateTask)
	r.Post("/query", h.QueryTasks)
	r.Get("/today", h.ListTodayTasks)
	r.Post("/today/query", h.QueryTodayTasks)
	r.Post("/delete", h.DeleteTasks)
	r.Delete("/completed", h.DeleteCompleted)
	r.Get("/stats/completion", h.CompletionStats)
	r.Get("/{id}", h.GetTask)
	r.Patch("/{id}", h.UpdateTask)
	r.Put("/{id}/today", h.SetTodayTask)
}

type listFunc func(*http.Request, query.TaskQuery) (query.Page[service.TaskView], error)

func (h *TaskHandler) listFromURL(list listFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := taskQueryFromURL(r.URL.Query())
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		h.respondPage(w, r, q, list)
	}
}

func (h *TaskHandler) listFromBody(list listFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q query.TaskQuery
		if !decodeAndValidate(w, r, &q) {
			return
		}
		h.respondPage(w, r, q, list)
	}
}

func (h *TaskHandler) respondPage(w http.ResponseWriter, r *http.Request, q query.TaskQuery, list listFunc) {
	page, err := list(r, q)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

func (h *TaskHandler) list(r *http.Request, q query.TaskQuery) (query.Page[service.TaskView], error) {
	return h.tasks.List(r.Context(), q)
}

func (h *TaskHandler) listToday(r *http.Request, q query.TaskQuery) (query.Page[service.TaskView], error) {
	return h.tasks.ListToday(r.Context(), q)
}

// ListTasks handles GET /api/tasks with the query in URL parameters.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	h.listFromURL(h.list)(w, r)
}

// QueryTasks handles POST /api/tasks/query with the query as a JSON body.
func (h *TaskHandler) QueryTasks(w http.ResponseWriter, r *http.Request) {
	h.listFromBody(h.list)(w, r)
}

// ListTodayTasks handles GET /api/tasks/today.
func (h *TaskHandler) ListTodayTasks(w http.ResponseWriter, r *http.Request) {
	h.listFromURL(h.listToday)(w, r)
}

// QueryTodayTasks handles POST /api/tasks/today/query.
func (h *TaskHandler) QueryTodayTasks(w http.ResponseWriter, r *http.Request) {
	h.listFromBody(h.listToday)(w, r)
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	view, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	var draft domain.TaskDraft
	if !decodeAndValidate(w, r, &draft) {
		return
	}

	id, err := h.tasks.Create(r.Context(), actor, draft)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, IDResponse{ID: id})
}

// UpdateTask handles PATCH /api/tasks/{id}. Omitted fields keep their
// value; a body with only "status" changes nothing else.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var patch domain.TaskPatch
	if !decodeAndValidate(w, r, &patch) {
		return
	}

	updated, err := h.tasks.Update(r.Context(), actor, id, patch)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("task patched",
		"task_id", id,
		"mode", patch.Mode().String())
	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: updated})
}

// DeleteTasks handles POST /api/tasks/delete.
func (h *TaskHandler) DeleteTasks(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorID(w, r); !ok {
		return
	}
	var req DeleteTasksRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deleted, err := h.tasks.DeleteTasks(r.Context(), req.IDs)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DeletedResponse{Deleted: deleted})
}

// SetTodayTask handles PUT /api/tasks/{id}/today.
func (h *TaskHandler) SetTodayTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req SetTodayRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.tasks.SetTodayTask(r.Context(), actor, id, *req.IsTodayTask)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: updated})
}

// DeleteCompleted handles DELETE /api/tasks/completed.
func (h *TaskHandler) DeleteCompleted(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorID(w, r); !ok {
		return
	}
	deleted, err := h.tasks.DeleteCompleted(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DeletedResponse{Deleted: deleted})
}

// CompletionStats handles GET /api/tasks/stats/completion.
func (h *TaskHandler) CompletionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tasks.CompletionStats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
