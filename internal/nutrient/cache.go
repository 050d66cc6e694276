package nutrient

import (
	"context"
	"fmt"

	"nutricalc/internal/model"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// Cache memoises resolved foods by their external identifier.
//
// Put is an upsert: the last write for an identifier wins. Implementations
// must be safe for concurrent use and must never expose a partially written
// record.
type Cache interface {
	// Get returns the cached profile for foodID and whether it was present.
	Get(ctx context.Context, foodID string) (model.NutrientProfile, bool, error)

	// Put stores record under record.ID, replacing any previous entry.
	Put(ctx context.Context, record model.FoodRecord) error
}

// MemoryCache is an in-process LRU cache. Records are stored by value so a
// reader always sees a complete record.
type MemoryCache struct {
	entries *lru.Cache[string, model.FoodRecord]
}

// NewMemoryCache creates an LRU cache holding at most size records.
func NewMemoryCache(size int) (*MemoryCache, error) {
	entries, err := lru.New[string, model.FoodRecord](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return &MemoryCache{entries: entries}, nil
}

func (c *MemoryCache) Get(_ context.Context, foodID string) (model.NutrientProfile, bool, error) {
	record, ok := c.entries.Get(foodID)
	if !ok {
		return model.NutrientProfile{}, false, nil
	}
	return record.Nutrients, true, nil
}

func (c *MemoryCache) Put(_ context.Context, record model.FoodRecord) error {
	c.entries.Add(record.ID, record)
	return nil
}

// Len returns the number of cached records.
func (c *MemoryCache) Len() int {
	return c.entries.Len()
}

// TieredCache puts a small, fast cache in front of a durable one. Reads that
// miss the front but hit the back repopulate the front. Writes go to the back
// first so the durable copy is never older than the fast one.
type TieredCache struct {
	front  Cache
	back   Cache
	logger zerolog.Logger
}

// NewTieredCache composes front and back into a single Cache.
func NewTieredCache(front, back Cache, logger zerolog.Logger) *TieredCache {
	return &TieredCache{
		front:  front,
		back:   back,
		logger: logger.With().Str("component", "tiered-cache").Logger(),
	}
}

func (c *TieredCache) Get(ctx context.Context, foodID string) (model.NutrientProfile, bool, error) {
	if profile, ok, err := c.front.Get(ctx, foodID); err == nil && ok {
		return profile, true, nil
	} else if err != nil {
		c.logger.Warn().Err(err).Str("food_id", foodID).Msg("front cache read failed")
	}

	profile, ok, err := c.back.Get(ctx, foodID)
	if err != nil || !ok {
		return model.NutrientProfile{}, false, err
	}

	// The description is not needed to answer reads, so the front copy
	// carries only the identifier and nutrients.
	if err := c.front.Put(ctx, model.FoodRecord{ID: foodID, Nutrients: profile}); err != nil {
		c.logger.Warn().Err(err).Str("food_id", foodID).Msg("front cache fill failed")
	}

	return profile, true, nil
}

func (c *TieredCache) Put(ctx context.Context, record model.FoodRecord) error {
	backErr := c.back.Put(ctx, record)
	if err := c.front.Put(ctx, record); err != nil {
		c.logger.Warn().Err(err).Str("food_id", record.ID).Msg("front cache write failed")
	}
	return backErr
}
