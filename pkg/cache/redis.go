// Package cache builds the Redis client used for read-through caches.
package cache

import (
	"context"
	"time"

	"pilgrimage-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis. It returns nil when no address is
// configured or the server does not answer a ping; callers then run
// without caching.
func NewRedisClient(config utils.RedisConfig, log *zap.Logger) *redis.Client {
	if config.Addr == "" {
		log.Info("Redis not configured, caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, caching disabled", zap.String("addr", config.Addr), zap.Error(err))
		_ = client.Close()
		return nil
	}

	return client
}
