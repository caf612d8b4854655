package server

import (
	"net/http"
	"os"

	cachepackage "users-tasks-service/cache"
	"users-tasks-service/config"
	"users-tasks-service/database"
	"users-tasks-service/handlers"

	"github.com/umakantv/go-utils/httpserver"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// checkAuth lets every request through; the service has no authentication.
func checkAuth(r *http.Request) (bool, httpserver.RequestAuth) {
	return true, httpserver.RequestAuth{Type: "none"}
}

func StartServer(cfg config.Config) {
	logger.Info("Starting users-tasks service...")

	// Initialize database
	store := database.InitializeDatabase(cfg.Database)
	defer store.Close()

	// Initialize cache
	cache := cachepackage.InitializeCache(cfg.Cache)
	if cache != nil {
		defer cache.Close()
	}

	// Initialize handlers
	lists := handlers.NewListCache(cache, cfg.Cache.TTL)
	userHandler := handlers.NewUserHandler(store, lists)
	taskHandler := handlers.NewTaskHandler(store, lists)
	assignmentHandler := handlers.NewAssignmentHandler(store, lists)

	server := httpserver.New(cfg.HTTP.Port, checkAuth)

	routes := handlers.Routes(userHandler, taskHandler, assignmentHandler)
	for _, rt := range routes {
		server.Register(httpserver.Route{
			Name:     rt.Name,
			Method:   rt.Method,
			Path:     rt.Path,
			AuthType: "none",
		}, handlers.Serve(rt.Handle))
	}

	// CORS preflight for every path
	for _, path := range handlers.Paths(routes) {
		server.Register(httpserver.Route{
			Name:     "Preflight " + path,
			Method:   http.MethodOptions,
			Path:     path,
			AuthType: "none",
		}, handlers.Preflight())
	}

	logger.Info("Users-tasks service started", zap.String("port", cfg.HTTP.Port), zap.Int("routes", len(routes)))

	if err := server.Start(); err != nil {
		logger.Error("Server failed to start", zap.Error(err))
		os.Exit(1)
	}
}
