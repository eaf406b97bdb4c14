// Package cache is a thin Redis-backed read cache for the catalog
// endpoints. When Redis is unreachable every operation degrades to a no-op
// and reads fall through to the document store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/skirmish/config"
)

// client holds the active Redis client, or nil when the cache is disabled.
// Swapped atomically so a failed Connect can disable it without racing
// in-flight readers.
var client atomic.Pointer[redis.Client]

var ctx = context.Background()

// Connect dials Redis using the configured address and enables the cache on
// a successful ping. On failure the cache stays disabled and the error is
// returned for logging.
func Connect() error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		client.Store(nil)
		return fmt.Errorf("cache: redis ping: %w", err)
	}

	client.Store(rdb)
	return nil
}

// Enabled reports whether a Redis connection is active.
func Enabled() bool { return client.Load() != nil }

// Get unmarshals the cached value under key into dest. Returns true only on
// a clean hit; misses, disabled cache, and decode failures all return false.
func Get(key string, dest interface{}) bool {
	rdb := client.Load()
	if rdb == nil {
		return false
	}

	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores value under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	rdb := client.Load()
	if rdb == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, raw, ttl).Err()
}

// Del removes keys. Used by catalog writes to invalidate stale reads.
func Del(keys ...string) error {
	rdb := client.Load()
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
