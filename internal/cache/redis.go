// Package cache keeps the latest derived artifact snapshot in Redis so
// readers can fetch a rebuild result without touching Postgres.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// DerivedLatestKey holds the most recent derived snapshot as JSON.
const DerivedLatestKey = "derived:latest"

// RedisCache wraps a Redis connection for snapshot storage.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client.
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify the connection.
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// SetDerivedSnapshot stores the derived artifact set as JSON. A zero TTL
// keeps the snapshot until the next rebuild overwrites it.
func (rc *RedisCache) SetDerivedSnapshot(ctx context.Context, artifacts interface{}, ttl time.Duration) error {
	data, err := json.Marshal(artifacts)
	if err != nil {
		return err
	}
	return rc.client.Set(ctx, DerivedLatestKey, data, ttl).Err()
}

// GetDerivedSnapshot returns the cached snapshot JSON, or redis.Nil if no
// rebuild has published one yet.
func (rc *RedisCache) GetDerivedSnapshot(ctx context.Context) (string, error) {
	return rc.client.Get(ctx, DerivedLatestKey).Result()
}

// Delete removes keys.
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}
