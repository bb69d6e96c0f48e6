package database

import (
	"context"
	"fmt"
	"time"

	"github.com/abisalde/inventory-service/internal/configs"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisCache struct {
	client *redis.Client
}

func InitRedis(ctx context.Context, cfg *configs.Config, logger *zap.Logger) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	return &RedisCache{client: rdb}, nil
}

// Incr bumps the counter at key and starts its window on first use. The
// returned ttl is how long until the window resets.
func (r *RedisCache) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := r.client.TxPipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttlCmd := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("redis incr %s: %w", key, err)
	}

	ttl := ttlCmd.Val()
	if ttl < 0 {
		ttl = window
	}
	return incrCmd.Val(), ttl, nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
