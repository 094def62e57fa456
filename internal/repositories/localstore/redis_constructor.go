package localstore

import (
	"github.com/redis/go-redis/v9"
)

// NewRedis creates a Redis-backed store with the default key prefix and no expiry
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client:    client,
		KeyPrefix: defaultKeyPrefix,
	})
}
