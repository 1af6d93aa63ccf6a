// Package cache stores computed reports in Redis.
package cache

import (
	"fmt"
	"time"

	"posreport/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a client from the redis settings.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}
