package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pmsadmin/console/internal/ports"
	"github.com/redis/go-redis/v9"
)

var _ ports.KeyValueStore = (*RedisKVRepo)(nil)

// RedisKVRepo implements ports.KeyValueStore on Redis strings.
type RedisKVRepo struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisKVOptions configures a RedisKVRepo.
type RedisKVOptions struct {
	// Prefix is prepended to every key (e.g. "pms:").
	Prefix string
	// TTL expires idle keys; 0 keeps them until logout.
	TTL time.Duration
}

// NewRedisKVRepo creates a new RedisKVRepo with the given Redis client.
func NewRedisKVRepo(client redis.UniversalClient, opts RedisKVOptions) *RedisKVRepo {
	ttl := opts.TTL
	if ttl < 0 {
		ttl = 0
	}
	return &RedisKVRepo{client: client, prefix: opts.Prefix, ttl: ttl}
}

// Set stores a value in Redis, refreshing the configured TTL.
func (r *RedisKVRepo) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get retrieves a value from Redis by key.
func (r *RedisKVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	result, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}

	return result, true, nil
}

// Delete removes keys from Redis in one round trip.
func (r *RedisKVRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, r.prefix+k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Health checks the health of the Redis connection.
func (r *RedisKVRepo) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
