package handlers

import (
	"context"
	"net/http"

	"users-tasks-service/apperr"
	"users-tasks-service/database"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// AssignmentHandler manages rows of the users_tasks join table.
type AssignmentHandler struct {
	store *database.Store
	cache *ListCache
}

func NewAssignmentHandler(store *database.Store, lists *ListCache) *AssignmentHandler {
	return &AssignmentHandler{
		store: store,
		cache: lists,
	}
}

// AssignUser handles POST /tasks/{taskId}/users/{userId}. The pair is
// inserted even if it already exists.
func (h *AssignmentHandler) AssignUser(ctx context.Context, r *http.Request) (Response, error) {
	vars := mux.Vars(r)
	taskID, userID := vars["taskId"], vars["userId"]

	logRequest(ctx, "info", "Assigning user to task", zap.String("task_id", taskID), zap.String("user_id", userID))

	task, err := findTask(ctx, h.store, taskID)
	if err != nil {
		return Response{}, err
	}
	user, err := findUser(ctx, h.store, userID)
	if err != nil {
		return Response{}, err
	}
	if task == nil || user == nil {
		return Response{}, apperr.Validation(`"userId" or "taskId" not found, check the data`)
	}

	row := database.Row{
		"user_id": userID,
		"task_id": taskID,
	}
	if err := h.store.Insert(ctx, database.UsersTasks, row); err != nil {
		return Response{}, apperr.Store(err)
	}

	h.cache.invalidate(ctx)

	logRequest(ctx, "info", "User assigned to task", zap.String("task_id", taskID), zap.String("user_id", userID))
	return Text(http.StatusCreated, "User assigned to task"), nil
}

// UnassignUser handles DELETE /tasks/{taskId}/users/{userId}. A missing task
// or user is reported as a 500.
func (h *AssignmentHandler) UnassignUser(ctx context.Context, r *http.Request) (Response, error) {
	vars := mux.Vars(r)
	taskID, userID := vars["taskId"], vars["userId"]

	logRequest(ctx, "info", "Removing user from task", zap.String("task_id", taskID), zap.String("user_id", userID))

	user, err := findUser(ctx, h.store, userID)
	if err != nil {
		return Response{}, err
	}
	task, err := findTask(ctx, h.store, taskID)
	if err != nil {
		return Response{}, err
	}
	if user == nil || task == nil {
		return Response{}, apperr.Internal("User or task not found")
	}

	removed, err := h.store.DeleteWhereBoth(ctx, database.UsersTasks, "task_id", taskID, "user_id", userID)
	if err != nil {
		return Response{}, apperr.Store(err)
	}

	h.cache.invalidate(ctx)

	logRequest(ctx, "info", "User removed from task", zap.String("task_id", taskID), zap.String("user_id", userID), zap.Int64("removed", removed))
	return Text(http.StatusCreated, "User removed from task"), nil
}
