package cache

import (
	"os"

	"users-tasks-service/config"

	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeCache returns nil when no cache type is configured.
func InitializeCache(cfg config.CacheConfig) cache.Cache {
	if cfg.Type == "" {
		logger.Info("Response cache disabled")
		return nil
	}

	c, err := cache.New(cache.Config{
		Type:          cfg.Type,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("Failed to initialize cache:", zap.String("type", cfg.Type), zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Response cache initialized", zap.String("type", cfg.Type), zap.Duration("ttl", cfg.TTL))
	return c
}
