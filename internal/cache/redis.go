package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/config"
)

// NewRedisClient connects to Redis using the given config. The client is
// optional infrastructure: when the ping fails the function returns nil and
// callers fall back to uncached reads.
func NewRedisClient(conf *config.RedisConfig) *redis.Client {
	if conf == nil || conf.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis unreachable, caching disabled", zap.Error(err))
		return nil
	}

	return client
}
