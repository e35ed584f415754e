package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// Redis is a Cache backed by a Redis instance, for deployments that share a
// read cache across site replicas. Redis failures are logged and treated as
// cache misses; the site keeps working against the backend directly.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis-backed cache
func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client: client,
		prefix: "pageant:cache:",
	}
}

// Get returns the cached value for key if present and unexpired
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache read failed")
		return nil, false
	}
	return value, true
}

// Set stores value under key for ttl
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache write failed")
	}
}

// Delete removes key
func (r *Redis) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache delete failed")
	}
}

// Clear removes all entries under the cache prefix
func (r *Redis) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Str("key", iter.Val()).Msg("Redis cache delete failed")
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("Redis cache scan failed")
	}
}
