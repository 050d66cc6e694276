package nutrient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"nutricalc/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores food records as JSON strings in Redis. Entries have no
// expiry; a SET replaces the whole value atomically.
type RedisCache struct {
	client redis.Cmdable
	prefix string
}

// NewRedisCache creates a Redis-backed cache. Keys are prefix + food id.
func NewRedisCache(client redis.Cmdable, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

func (c *RedisCache) key(foodID string) string {
	return c.prefix + foodID
}

func (c *RedisCache) Get(ctx context.Context, foodID string) (model.NutrientProfile, bool, error) {
	data, err := c.client.Get(ctx, c.key(foodID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NutrientProfile{}, false, nil
	}
	if err != nil {
		return model.NutrientProfile{}, false, model.NewCacheError("Failed to read nutrient cache", err)
	}

	var record model.FoodRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.NutrientProfile{}, false, model.NewCacheError(
			"Failed to read nutrient cache",
			fmt.Errorf("corrupt entry for %s: %w", foodID, err),
		)
	}

	return record.Nutrients, true, nil
}

func (c *RedisCache) Put(ctx context.Context, record model.FoodRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return model.NewCacheError("Failed to write nutrient cache", err)
	}

	if err := c.client.Set(ctx, c.key(record.ID), data, 0).Err(); err != nil {
		return model.NewCacheError("Failed to write nutrient cache", err)
	}

	return nil
}
