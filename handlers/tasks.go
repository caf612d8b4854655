package handlers

import (
	"context"
	"net/http"

	"users-tasks-service/apperr"
	"users-tasks-service/database"
	"users-tasks-service/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// TaskHandler handles task operations, including the task/user aggregation.
type TaskHandler struct {
	store *database.Store
	cache *ListCache
}

func NewTaskHandler(store *database.Store, lists *ListCache) *TaskHandler {
	return &TaskHandler{
		store: store,
		cache: lists,
	}
}

// GetTasks handles GET /tasks - list tasks, filtered by title when q is non-empty
func (h *TaskHandler) GetTasks(ctx context.Context, r *http.Request) (Response, error) {
	if q := r.URL.Query().Get("q"); q != "" {
		logRequest(ctx, "info", "Searching tasks", zap.String("q", q))

		tasks := []models.Task{}
		if err := h.store.SelectWhereLike(ctx, database.Tasks, "title", q, &tasks); err != nil {
			return Response{}, apperr.Store(err)
		}

		logRequest(ctx, "info", "Tasks retrieved successfully", zap.Int("count", len(tasks)))
		return JSON(http.StatusOK, tasks), nil
	}

	logRequest(ctx, "info", "Listing tasks")

	body, err := h.cache.load(ctx, tasksListKey, func() (any, error) {
		tasks := []models.Task{}
		if err := h.store.SelectAll(ctx, database.Tasks, &tasks); err != nil {
			return nil, apperr.Store(err)
		}
		logRequest(ctx, "info", "Tasks retrieved successfully", zap.Int("count", len(tasks)))
		return tasks, nil
	})
	if err != nil {
		return Response{}, err
	}
	return JSON(http.StatusOK, body), nil
}

// CreateTask handles POST /tasks. The duplicate id check runs before the type
// check, so a taken id is reported even when other fields are malformed.
func (h *TaskHandler) CreateTask(ctx context.Context, r *http.Request) (Response, error) {
	var req models.CreateTaskRequest
	if err := decodeBody(r, &req); err != nil {
		return Response{}, err
	}

	if id, ok := req.CandidateID(); ok {
		existing, err := findTask(ctx, h.store, id)
		if err != nil {
			return Response{}, err
		}
		if existing != nil {
			return Response{}, apperr.Conflict(`"id" already registered`)
		}
	}

	task, err := req.Validate()
	if err != nil {
		return Response{}, err
	}

	logRequest(ctx, "info", "Creating task", zap.String("task_id", task.ID))

	row := database.Row{
		"id":          task.ID,
		"title":       task.Title,
		"description": task.Description,
	}
	if err := h.store.Insert(ctx, database.Tasks, row); err != nil {
		return Response{}, apperr.Store(err)
	}

	h.cache.invalidate(ctx)

	logRequest(ctx, "info", "Task created successfully", zap.String("task_id", task.ID))
	return Text(http.StatusOK, "Task created successfully!"), nil
}

// UpdateTask handles PUT /tasks/{id} - partial update of id, title and description
func (h *TaskHandler) UpdateTask(ctx context.Context, r *http.Request) (Response, error) {
	id := mux.Vars(r)["id"]

	var req models.UpdateTaskRequest
	if err := decodeBody(r, &req); err != nil {
		return Response{}, err
	}

	current, err := findTask(ctx, h.store, id)
	if err != nil {
		return Response{}, err
	}
	if current == nil {
		return Response{}, apperr.NotFound("Task not found, check the id")
	}

	edited, err := req.Apply(*current)
	if err != nil {
		return Response{}, err
	}

	logRequest(ctx, "info", "Updating task", zap.String("task_id", id), zap.String("new_id", edited.ID))

	row := database.Row{
		"id":          edited.ID,
		"title":       edited.Title,
		"description": edited.Description,
	}
	if _, err := h.store.Update(ctx, database.Tasks, row, "id", id); err != nil {
		return Response{}, apperr.Store(err)
	}

	h.cache.invalidate(ctx)

	logRequest(ctx, "info", "Task updated successfully", zap.String("task_id", edited.ID))
	return Text(http.StatusOK, "Task updated successfully!"), nil
}

// DeleteTask handles DELETE /tasks/{id} - delete a task and its assignments
func (h *TaskHandler) DeleteTask(ctx context.Context, r *http.Request) (Response, error) {
	id := mux.Vars(r)["id"]

	logRequest(ctx, "info", "Deleting task", zap.String("task_id", id))

	task, err := findTask(ctx, h.store, id)
	if err != nil {
		return Response{}, err
	}
	if task == nil {
		return Response{}, apperr.NotFound(`Task not found, check the "id".`)
	}

	removed, err := h.store.DeleteWhere(ctx, database.UsersTasks, "task_id", id)
	if err != nil {
		return Response{}, apperr.Store(err)
	}
	if _, err := h.store.DeleteWhere(ctx, database.Tasks, "id", id); err != nil {
		return Response{}, apperr.Store(err)
	}

	h.cache.invalidate(ctx)

	logRequest(ctx, "info", "Task deleted successfully", zap.String("task_id", id), zap.Int64("assignments_removed", removed))
	return Text(http.StatusOK, "Task deleted successfully!"), nil
}
