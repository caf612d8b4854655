package handlers

import (
	"context"
	"net/http"
)

// Route is one entry of the service's route table.
type Route struct {
	Name   string
	Method string
	Path   string
	Handle Func
}

// Ping handles GET /ping
func Ping(ctx context.Context, r *http.Request) (Response, error) {
	return Text(http.StatusOK, "pong!"), nil
}

// Routes lists every route of the service. /tasks/users is a GET only, so it
// does not clash with the PUT and DELETE routes on /tasks/{id}.
func Routes(users *UserHandler, tasks *TaskHandler, assignments *AssignmentHandler) []Route {
	return []Route{
		{Name: "Ping", Method: http.MethodGet, Path: "/ping", Handle: Ping},

		{Name: "ListUsers", Method: http.MethodGet, Path: "/users", Handle: users.GetUsers},
		{Name: "CreateUser", Method: http.MethodPost, Path: "/users", Handle: users.CreateUser},
		{Name: "DeleteUser", Method: http.MethodDelete, Path: "/users/{id}", Handle: users.DeleteUser},

		{Name: "ListTasksWithUsers", Method: http.MethodGet, Path: "/tasks/users", Handle: tasks.GetTasksWithUsers},
		{Name: "ListTasks", Method: http.MethodGet, Path: "/tasks", Handle: tasks.GetTasks},
		{Name: "CreateTask", Method: http.MethodPost, Path: "/tasks", Handle: tasks.CreateTask},
		{Name: "UpdateTask", Method: http.MethodPut, Path: "/tasks/{id}", Handle: tasks.UpdateTask},
		{Name: "DeleteTask", Method: http.MethodDelete, Path: "/tasks/{id}", Handle: tasks.DeleteTask},

		{Name: "AssignUser", Method: http.MethodPost, Path: "/tasks/{taskId}/users/{userId}", Handle: assignments.AssignUser},
		{Name: "UnassignUser", Method: http.MethodDelete, Path: "/tasks/{taskId}/users/{userId}", Handle: assignments.UnassignUser},
	}
}

// Paths returns each distinct route path once, in table order.
func Paths(routes []Route) []string {
	seen := make(map[string]bool, len(routes))
	var paths []string
	for _, rt := range routes {
		if seen[rt.Path] {
			continue
		}
		seen[rt.Path] = true
		paths = append(paths, rt.Path)
	}
	return paths
}
