package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheHelper provides common caching operations under one key prefix
type CacheHelper struct {
	client *redis.Client
	prefix string
}

// NewCacheHelper creates a new cache helper instance
func NewCacheHelper(client *redis.Client, prefix string) *CacheHelper {
	return &CacheHelper{
		client: client,
		prefix: prefix,
	}
}

// CacheConfig defines cache configuration for different data types
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

// RoleCacheConfig covers the per-email role flag lookups
var RoleCacheConfig = CacheConfig{
	TTL:    5 * time.Minute,
	Prefix: "roles:",
}

// Cache errors
var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache not found")

	errStaleFetch = errors.New("key invalidated during fetch")
)

// versionTTL bounds the lifetime of invalidation counters. It only needs to
// outlast a single fetch.
const versionTTL = time.Hour

// GetCacheKey generates a cache key with prefix
func (c *CacheHelper) GetCacheKey(key string) string {
	return c.prefix + key
}

// Enabled reports whether a redis client backs this helper
func (c *CacheHelper) Enabled() bool {
	return c.client != nil
}

// Get retrieves and unmarshals data from cache
func (c *CacheHelper) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := c.client.Get(ctx, c.GetCacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

// Invalidate drops key and bumps its version so that fetches started before
// the call do not write their result back
func (c *CacheHelper) Invalidate(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}

	verKey := c.versionKey(key)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.GetCacheKey(key))
		pipe.Incr(ctx, verKey)
		pipe.Expire(ctx, verKey, versionTTL)
		return nil
	})
	return err
}

// CacheOrExecute implements the cache-aside pattern. Cache failures never
// fail the call; they fall through to fetchFunc. A result is only written back
// when no Invalidate ran on key while fetchFunc was in flight.
func (c *CacheHelper) CacheOrExecute(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetchFunc func() (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheNotFound) && !errors.Is(err, ErrCacheNotAvailable) {
		slog.WarnContext(ctx, "Cache get error, proceeding to fetch", "error", err, "key", key)
	}

	version, cacheable := c.version(ctx, key)

	value, err := fetchFunc()
	if err != nil {
		return fmt.Errorf("fetch function error: %w", err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal result error: %w", err)
	}

	if cacheable {
		err := c.setIfUnchanged(ctx, key, version, data, ttl)
		switch {
		case errors.Is(err, errStaleFetch) || errors.Is(err, redis.TxFailedErr):
			slog.DebugContext(ctx, "Key invalidated during fetch, result not cached", "key", key)
		case err != nil:
			slog.WarnContext(ctx, "Cache set error", "error", err, "key", key)
		}
	}

	return json.Unmarshal(data, dest)
}

func (c *CacheHelper) versionKey(key string) string {
	return c.GetCacheKey(key) + ":v"
}

// version reads the invalidation counter of key. The second result is false
// when the result of a fetch must not be cached.
func (c *CacheHelper) version(ctx context.Context, key string) (string, bool) {
	if c.client == nil {
		return "", false
	}
	v, err := c.client.Get(ctx, c.versionKey(key)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "Cache version read error", "error", err, "key", key)
		return "", false
	}
	return v, true
}

// setIfUnchanged writes data under key inside a WATCH on the version key, so
// an Invalidate landing between the check and the write aborts the write too.
func (c *CacheHelper) setIfUnchanged(ctx context.Context, key, version string, data []byte, ttl time.Duration) error {
	verKey := c.versionKey(key)
	return c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleFetch
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.GetCacheKey(key), data, ttl)
			return nil
		})
		return err
	}, verKey)
}

// CacheManager manages the cache helpers used by the services
type CacheManager struct {
	Roles *CacheHelper
	ttl   time.Duration
}

// NewCacheManager creates the cache manager. A nil client disables caching.
func NewCacheManager(client *redis.Client, roleTTL time.Duration) *CacheManager {
	if roleTTL <= 0 {
		roleTTL = RoleCacheConfig.TTL
	}
	if client == nil {
		return &CacheManager{Roles: NewCacheHelper(nil, ""), ttl: roleTTL}
	}
	return &CacheManager{
		Roles: NewCacheHelper(client, RoleCacheConfig.Prefix),
		ttl:   roleTTL,
	}
}

// RoleTTL is how long role flags stay cached
func (cm *CacheManager) RoleTTL() time.Duration {
	return cm.ttl
}

// HealthCheck verifies cache connectivity
func (cm *CacheManager) HealthCheck(ctx context.Context) error {
	if cm.Roles.client == nil {
		return ErrCacheNotAvailable
	}
	if err := cm.Roles.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache health check failed: %w", err)
	}
	return nil
}
