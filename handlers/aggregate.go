package handlers

import (
	"context"
	"net/http"

	"users-tasks-service/apperr"
	"users-tasks-service/database"
	"users-tasks-service/models"

	"go.uber.org/zap"
)

// GetTasksWithUsers handles GET /tasks/users - every task with the users
// assigned to it under "responsibles".
func (h *TaskHandler) GetTasksWithUsers(ctx context.Context, r *http.Request) (Response, error) {
	logRequest(ctx, "info", "Listing tasks with users")

	body, err := h.cache.load(ctx, tasksWithUsersKey, func() (any, error) {
		return h.tasksWithUsers(ctx)
	})
	if err != nil {
		return Response{}, err
	}
	return JSON(http.StatusOK, body), nil
}

// tasksWithUsers fetches tasks, then each task's assignments, then each
// assigned user, one query at a time. Tasks keep the store's order and
// responsibles keep the order assignments were returned in. Duplicate
// assignments repeat the user; assignments to missing users are skipped.
func (h *TaskHandler) tasksWithUsers(ctx context.Context) ([]models.TaskWithUsers, error) {
	var tasks []models.Task
	if err := h.store.SelectAll(ctx, database.Tasks, &tasks); err != nil {
		return nil, apperr.Store(err)
	}

	result := make([]models.TaskWithUsers, 0, len(tasks))
	for _, task := range tasks {
		var assignments []models.Assignment
		if err := h.store.SelectWhereEquals(ctx, database.UsersTasks, "task_id", task.ID, &assignments); err != nil {
			return nil, apperr.Store(err)
		}

		responsibles := make([]models.User, 0, len(assignments))
		for _, a := range assignments {
			user, err := findUser(ctx, h.store, a.UserID)
			if err != nil {
				return nil, err
			}
			if user == nil {
				logRequest(ctx, "debug", "Skipping orphaned assignment", zap.String("task_id", task.ID), zap.String("user_id", a.UserID))
				continue
			}
			responsibles = append(responsibles, *user)
		}

		result = append(result, models.TaskWithUsers{
			Task:         task,
			Responsibles: responsibles,
		})
	}

	logRequest(ctx, "info", "Tasks with users retrieved successfully", zap.Int("count", len(result)))
	return result, nil
}
