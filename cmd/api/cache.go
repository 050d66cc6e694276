package main

import (
	"context"
	"fmt"

	"nutricalc/internal/config"
	"nutricalc/internal/nutrient"
	"nutricalc/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// newNutrientCache builds the cache selected by cfg.Backend. Durable backends
// get an in-process LRU tier in front when cfg.MemorySize is positive. The
// returned func releases backend resources.
func newNutrientCache(ctx context.Context, cfg config.CacheConfig, pool *pgxpool.Pool, logger zerolog.Logger) (nutrient.Cache, func(), error) {
	noop := func() {}

	var (
		durable nutrient.Cache
		closeFn = noop
	)

	switch cfg.Backend {
	case config.CacheBackendMemory:
		memory, err := nutrient.NewMemoryCache(cfg.MemorySize)
		if err != nil {
			return nil, noop, err
		}
		logger.Info().Int("size", cfg.MemorySize).Msg("using in-memory nutrient cache")
		return memory, noop, nil

	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		durable = nutrient.NewRedisCache(client, cfg.RedisPrefix)
		closeFn = func() {
			if err := client.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close redis client")
			}
		}
		logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis nutrient cache")

	default:
		durable = repository.NewFoodCacheRepository(pool, logger)
		logger.Info().Msg("using postgres nutrient cache")
	}

	if cfg.MemorySize == 0 {
		return durable, closeFn, nil
	}

	front, err := nutrient.NewMemoryCache(cfg.MemorySize)
	if err != nil {
		closeFn()
		return nil, noop, err
	}

	return nutrient.NewTieredCache(front, durable, logger), closeFn, nil
}
