package di

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"stockchart/internal/platform/config"
	infraredis "stockchart/internal/platform/redis"
)

// NewOptionalRedis connects to Redis when it is configured.
// It returns nil when Redis is not configured or unreachable; callers then
// fall back to in-process rate limiting.
func NewOptionalRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}
	rdb, err := infraredis.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Str("address", cfg.Addr()).Msg("Redis unavailable. Falling back to in-process rate limiting.")
		return nil
	}
	return rdb
}
