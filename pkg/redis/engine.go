package redis

import (
	"github.com/redis/go-redis/v9"

	"github.com/Debian1107/Reviewed/internal/config"
)

// NewClient builds a redis client from configuration.
func NewClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.C.RedisAddress,
		Password: config.C.RedisPassword,
		DB:       0,
		Protocol: 2,
	})
}
