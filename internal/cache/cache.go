// Package cache provides the read-through cache used for single-record lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON encoded values by key.
type Cache interface {
	// Get decodes the value at key into dst. It reports false on a miss.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key string, value any) error
	// Add stores value only when key holds nothing.
	Add(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// Key builds the cache key of one record.
func Key(kind, id string) string {
	return fmt.Sprintf("catalog:%s:%s", kind, id)
}

// Noop is a Cache that never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any) error         { return nil }
func (Noop) Add(context.Context, string, any) error         { return nil }
func (Noop) Delete(context.Context, ...string) error        { return nil }
func (Noop) Ping(context.Context) error                     { return nil }

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache is a Cache backed by Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache. Addr may carry a redis:// or rediss:// scheme.
func NewRedisCache(cfg Config) *RedisCache {
	addr := strings.TrimPrefix(strings.TrimPrefix(cfg.Addr, "redis://"), "rediss://")
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 2 * time.Second,
	})
	return &RedisCache{client: client, ttl: cfg.TTL}
}

// Addr returns the address the client dials.
func (r *RedisCache) Addr() string {
	return r.client.Options().Addr
}

func (r *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Add(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := r.client.SetNX(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache add %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client's connections.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
