package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"garage-be/internal/cache"
)

const generationKey = "cache:generation"

// ResponseCache stores serialized read results. Every write bumps a global
// generation number that prefixes all keys, so nested projections never go
// stale after a mutation. A nil cache disables it.
type ResponseCache struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewResponseCache(c cache.Cache, ttl time.Duration, logger *zap.SugaredLogger) *ResponseCache {
	return &ResponseCache{cache: c, ttl: ttl, logger: logger}
}

func (rc *ResponseCache) enabled() bool {
	return rc != nil && rc.cache != nil
}

func (rc *ResponseCache) key(ctx context.Context, name string) (string, error) {
	gen, err := rc.cache.Get(ctx, generationKey)
	if errors.Is(err, cache.ErrMiss) {
		gen = "0"
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("v%s:%s", gen, name), nil
}

// Invalidate drops every cached response
func (rc *ResponseCache) Invalidate(ctx context.Context) {
	if !rc.enabled() {
		return
	}
	if _, err := rc.cache.Incr(ctx, generationKey); err != nil {
		rc.logger.Warnw("failed to bump cache generation", "error", err)
	}
}

// cached returns the value stored under name, or calls load and stores its result
func cached[T any](ctx context.Context, rc *ResponseCache, name string, load func() (T, error)) (T, error) {
	if !rc.enabled() {
		return load()
	}

	key, err := rc.key(ctx, name)
	if err != nil {
		rc.logger.Warnw("cache unavailable", "error", err)
		return load()
	}

	var hit T
	if err := rc.cache.GetJSON(ctx, key, &hit); err == nil {
		return hit, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		rc.logger.Warnw("failed to read cache", "key", key, "error", err)
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if err := rc.cache.SetJSON(ctx, key, value, rc.ttl); err != nil {
		rc.logger.Warnw("failed to write cache", "key", key, "error", err)
	}
	return value, nil
}
