package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLCalendar = 2 * time.Minute // calendar projections (recomputed on read)
	TTLTrainers = 10 * time.Minute
	TTLDefault  = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixCalendar = "calendar:"
	PrefixTrainers = "trainers:"
)

// Service is a Redis-backed JSON cache. A nil client degrades to a
// no-op so the API keeps working without Redis.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Calendar cache
	GetCalendar(ctx context.Context, key string, dest interface{}) error
	SetCalendar(ctx context.Context, key string, data interface{}) error
	InvalidateTrainerCalendar(ctx context.Context, trainerID uint) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service over the given client (may be nil).
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis client is wired.
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping checks the Redis connection.
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads a JSON value from the cache.
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set writes a JSON value to the cache.
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys from the cache.
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// CalendarKey builds the cache key for one trainer's calendar window.
func CalendarKey(trainerID uint, start, end, view string) string {
	return fmt.Sprintf("%s%d:%s:%s:%s", PrefixCalendar, trainerID, start, end, view)
}

// GetCalendar reads a cached calendar projection.
func (c *redisCache) GetCalendar(ctx context.Context, key string, dest interface{}) error {
	return c.Get(ctx, key, dest)
}

// SetCalendar caches a calendar projection.
func (c *redisCache) SetCalendar(ctx context.Context, key string, data interface{}) error {
	return c.Set(ctx, key, data, TTLCalendar)
}

// InvalidateTrainerCalendar drops every cached calendar window for the
// trainer. Keys are discovered with SCAN; blockout mutations are rare
// enough that the scan cost does not matter.
func (c *redisCache) InvalidateTrainerCalendar(ctx context.Context, trainerID uint) error {
	if c.client == nil {
		return nil
	}

	pattern := fmt.Sprintf("%s%d:*", PrefixCalendar, trainerID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
