package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache key not found")
)

// CacheConfig defines TTL and key prefix per data type.
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

var (
	// Categories are seed data and practically never change.
	CategoryCacheConfig = CacheConfig{
		TTL:    30 * time.Minute,
		Prefix: "category:",
	}

	// Comments are written once per order.
	CommentCacheConfig = CacheConfig{
		TTL:    10 * time.Minute,
		Prefix: "comment:",
	}
)

// CacheHelper provides common caching operations for repositories.
// All operations degrade gracefully when no Redis client is configured.
type CacheHelper struct {
	client *redis.Client
	prefix string
}

func NewCacheHelper(client *redis.Client, prefix string) *CacheHelper {
	return &CacheHelper{client: client, prefix: prefix}
}

func (c *CacheHelper) key(key string) string {
	return fmt.Sprintf("%s%s", c.prefix, key)
}

// Get retrieves and unmarshals data from cache.
func (c *CacheHelper) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

// Set marshals and stores data in cache.
func (c *CacheHelper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	return c.client.Set(ctx, c.key(key), data, ttl).Err()
}

// Delete removes keys from cache.
func (c *CacheHelper) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.key(k)
	}
	return c.client.Del(ctx, prefixed...).Err()
}

// CacheOrExecute returns the cached value for key, or executes fn,
// caches its result and unmarshals it into dest. Cache failures fall
// through to fn; a broken cache never breaks a read.
func (c *CacheHelper) CacheOrExecute(ctx context.Context, key string, dest interface{}, ttl time.Duration, fn func() (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}

	value, err := fn()
	if err != nil {
		return err
	}

	_ = c.Set(ctx, key, value, ttl)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// CacheManager groups the per-entity cache helpers.
type CacheManager struct {
	Category *CacheHelper
	Comment  *CacheHelper
}

func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		Category: NewCacheHelper(client, CategoryCacheConfig.Prefix),
		Comment:  NewCacheHelper(client, CommentCacheConfig.Prefix),
	}
}

// HealthCheck pings Redis when configured.
func (cm *CacheManager) HealthCheck(ctx context.Context) error {
	if cm.Category.client == nil {
		return nil
	}
	return cm.Category.client.Ping(ctx).Err()
}
