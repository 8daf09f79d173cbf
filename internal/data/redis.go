package data

import (
	"github.com/go-redis/redis/v8"
	"github.com/roguepikachu/pastebin/internal/config"
)

// NewRedisClient creates and returns a new Redis client for c.RedisAddr.
func NewRedisClient(c config.Config) *redis.Client {
	addr := c.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}
