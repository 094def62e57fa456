package localstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	dnderr "github.com/KirkDiggler/party-share/internal/errors"
)

const (
	// Key prefix keeps party state apart from anything else in the database
	defaultKeyPrefix = "party:"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client    redis.UniversalClient
	KeyPrefix string
	// TTL expires stored state; zero keeps it forever
	TTL time.Duration
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewRedisRepository creates a new Redis-backed store
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &redisRepository{
		client:    cfg.Client,
		keyPrefix: prefix,
		ttl:       cfg.TTL,
	}
}

// Get returns the value stored under key and refreshes its TTL
func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", dnderr.InvalidArgument("key is required")
	}

	redisKey := r.keyPrefix + key
	value, err := r.client.Get(ctx, redisKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", dnderr.NotFoundf("no value stored under '%s'", key).
				WithMeta("key", key)
		}
		return "", dnderr.StorageUnavailable(err, "failed to get party state from Redis")
	}

	if r.ttl > 0 {
		r.client.Expire(ctx, redisKey, r.ttl)
	}

	return value, nil
}

// Set stores value under key
func (r *redisRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return dnderr.InvalidArgument("key is required")
	}

	if err := r.client.Set(ctx, r.keyPrefix+key, value, r.ttl).Err(); err != nil {
		return dnderr.StorageUnavailable(err, "failed to set party state in Redis")
	}

	return nil
}
