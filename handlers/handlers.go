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

// UserHandler handles user-related operations
type UserHandler struct {
	store *database.Store
	cache *ListCache
}

// NewUserHandler creates a new user handler. lists may be nil.
func NewUserHandler(store *database.Store, lists *ListCache) *UserHandler {
	return &UserHandler{
		store: store,
		cache: lists,
	}
}

// GetUsers handles GET /users - list users, optionally filtered by name
func (h *UserHandler) GetUsers(ctx context.Context, r *http.Request) (Response, error) {
	query := r.URL.Query()

	if query.Has("q") {
		q := query.Get("q")
		logRequest(ctx, "info", "Searching users", zap.String("q", q))

		users := []models.User{}
		if err := h.store.SelectWhereLike(ctx, database.Users, "name", q, &users); err != nil {
			return Response{}, apperr.Store(err)
		}

		logRequest(ctx, "info", "Users retrieved successfully", zap.Int("count", len(users)))
		return JSON(http.StatusOK, users), nil
	}

	logRequest(ctx, "info", "Listing users")

	body, err := h.cache.load(ctx, usersListKey, func() (any, error) {
		users := []models.User{}
		if err := h.store.SelectAll(ctx, database.Users, &users); err != nil {
			return nil, apperr.Store(err)
		}
		logRequest(ctx, "info", "Users retrieved successfully", zap.Int("count", len(users)))
		return users, nil
	})
	if err != nil {
		return Response{}, err
	}
	return JSON(http.StatusOK, body), nil
}

// CreateUser handles POST /users - create a new user
func (h *UserHandler) CreateUser(ctx context.Context, r *http.Request) (Response, error) {
	var req models.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		return Response{}, err
	}

	user, err := req.Validate()
	if err != nil {
		return Response{}, err
	}

	logRequest(ctx, "info", "Creating user", zap.String("user_id", user.ID), zap.String("email", user.Email))

	var sameID, sameEmail []models.User
	if err := h.store.SelectWhereEquals(ctx, database.Users, "id", user.ID, &sameID); err != nil {
		return Response{}, apperr.Store(err)
	}
	if err := h.store.SelectWhereEquals(ctx, database.Users, "email", user.Email, &sameEmail); err != nil {
		return Response{}, apperr.Store(err)
	}
	if len(sameID) > 0 || len(sameEmail) > 0 {
		return Response{}, apperr.Conflict("Id or email already exists, try again with different data.")
	}

	row := database.Row{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"password": user.Password,
	}
	if err := h.store.Insert(ctx, database.Users, row); err != nil {
		return Response{}, apperr.Store(err)
	}

	h.cache.invalidate(ctx)

	logRequest(ctx, "info", "User created successfully", zap.String("user_id", user.ID))
	return Text(http.StatusOK, "User created successfully!"), nil
}

// DeleteUser handles DELETE /users/{id} - delete a user and its assignments
func (h *UserHandler) DeleteUser(ctx context.Context, r *http.Request) (Response, error) {
	id := mux.Vars(r)["id"]

	logRequest(ctx, "info", "Deleting user", zap.String("user_id", id))

	user, err := findUser(ctx, h.store, id)
	if err != nil {
		return Response{}, err
	}
	if user == nil {
		return Response{}, apperr.NotFound(`User not found, check the "id"`)
	}

	// Assignments go first so the user row is never referenced when deleted.
	removed, err := h.store.DeleteWhere(ctx, database.UsersTasks, "user_id", id)
	if err != nil {
		return Response{}, apperr.Store(err)
	}
	if _, err := h.store.DeleteWhere(ctx, database.Users, "id", id); err != nil {
		return Response{}, apperr.Store(err)
	}

	h.cache.invalidate(ctx)

	logRequest(ctx, "info", "User deleted successfully", zap.String("user_id", id), zap.Int64("assignments_removed", removed))
	return Text(http.StatusOK, "User deleted successfully"), nil
}
