package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"users-tasks-service/apperr"
	"users-tasks-service/database"
	"users-tasks-service/models"

	"github.com/umakantv/go-utils/httpserver"
	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// logRequest logs with the route details httpserver put on ctx and the
// request id set by Serve.
func logRequest(ctx context.Context, level string, message string, fields ...zap.Field) {
	routeName := httpserver.GetRouteName(ctx)
	method := httpserver.GetRouteMethod(ctx)
	path := httpserver.GetRoutePath(ctx)

	logMsg := time.Now().Format("2006-01-02 15:04:05") + " - " + routeName + " - " + method + " - " + path
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("route", routeName),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestIDFrom(ctx)),
	}, fields...)

	switch level {
	case "info":
		logger.Info(logMsg, allFields...)
	case "error":
		logger.Error(logMsg, allFields...)
	case "debug":
		logger.Debug(logMsg, allFields...)
	}
}

// decodeBody decodes a JSON body into dst. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Validation("invalid JSON body")
	}
	return nil
}

// findUser returns nil when no user has the id.
func findUser(ctx context.Context, store *database.Store, id string) (*models.User, error) {
	var users []models.User
	if err := store.SelectWhereEquals(ctx, database.Users, "id", id, &users); err != nil {
		return nil, apperr.Store(err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// findTask returns nil when no task has the id.
func findTask(ctx context.Context, store *database.Store, id string) (*models.Task, error) {
	var tasks []models.Task
	if err := store.SelectWhereEquals(ctx, database.Tasks, "id", id, &tasks); err != nil {
		return nil, apperr.Store(err)
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}
