package handlers

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/umakantv/go-utils/cache"
	"go.uber.org/zap"
)

// Keys of the cached unfiltered list responses. Any write drops all of them.
const (
	usersListKey      = "users:list"
	tasksListKey      = "tasks:list"
	tasksWithUsersKey = "tasks:users"
)

// ListCache caches encoded list bodies for every handler. A nil *ListCache
// disables caching.
type ListCache struct {
	backend cache.Cache
	ttl     time.Duration

	// generation is bumped by every invalidation. A fetch that overlaps
	// one is served but not stored.
	generation atomic.Uint64
}

func NewListCache(backend cache.Cache, ttl time.Duration) *ListCache {
	if backend == nil {
		return nil
	}
	return &ListCache{backend: backend, ttl: ttl}
}

// load returns the cached body for key, or calls fetch and caches its result.
func (lc *ListCache) load(ctx context.Context, key string, fetch func() (any, error)) (any, error) {
	if lc == nil {
		return fetch()
	}

	// Bodies are stored as JSON text. The redis backend JSON-encodes values
	// itself, so a string round-trips on both backends.
	if cached, err := lc.backend.Get(key); err == nil {
		if text, ok := cached.(string); ok && json.Valid([]byte(text)) {
			logRequest(ctx, "debug", "Serving from cache", zap.String("key", key))
			return json.RawMessage(text), nil
		}
	}

	gen := lc.generation.Load()
	body, err := fetch()
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return body, nil
	}
	if lc.generation.Load() != gen {
		logRequest(ctx, "debug", "Skipping cache store after concurrent write", zap.String("key", key))
		return json.RawMessage(encoded), nil
	}
	if err := lc.backend.Set(key, string(encoded), lc.ttl); err != nil {
		logRequest(ctx, "error", "Failed to store in cache", zap.String("key", key), zap.Error(err))
	}
	return json.RawMessage(encoded), nil
}

func (lc *ListCache) invalidate(ctx context.Context) {
	if lc == nil {
		return
	}
	lc.generation.Add(1)
	for _, key := range []string{usersListKey, tasksListKey, tasksWithUsersKey} {
		if err := lc.backend.Delete(key); err != nil {
			logRequest(ctx, "error", "Failed to invalidate cache", zap.String("key", key), zap.Error(err))
		}
	}
}
