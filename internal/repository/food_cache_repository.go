package repository

import (
	"context"
	"errors"

	"nutricalc/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// foodCacheRepository implements the FoodCacheRepository interface using PostgreSQL.
type foodCacheRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFoodCacheRepository creates a new PostgreSQL-backed food cache.
func NewFoodCacheRepository(pool *pgxpool.Pool, logger zerolog.Logger) FoodCacheRepository {
	return &foodCacheRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "food_cache").Logger(),
	}
}

// Get returns the cached profile for foodID.
func (r *foodCacheRepository) Get(ctx context.Context, foodID string) (model.NutrientProfile, bool, error) {
	query := `
		SELECT nutrients
		FROM food_cache
		WHERE fdc_id = $1
	`

	var profile model.NutrientProfile
	err := r.pool.QueryRow(ctx, query, foodID).Scan(&profile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NutrientProfile{}, false, nil
		}
		r.logger.Error().Err(err).Str("food_id", foodID).Msg("failed to query cached food")
		return model.NutrientProfile{}, false, model.NewCacheError("Failed to read nutrient cache", err)
	}

	return profile, true, nil
}

// Put upserts record. The row is replaced in a single statement, so readers
// never observe a partial record.
func (r *foodCacheRepository) Put(ctx context.Context, record model.FoodRecord) error {
	query := `
		INSERT INTO food_cache (fdc_id, description, nutrients, cached_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (fdc_id) DO UPDATE
		SET description = EXCLUDED.description,
			nutrients = EXCLUDED.nutrients,
			cached_at = EXCLUDED.cached_at
	`

	_, err := r.pool.Exec(ctx, query, record.ID, record.Description, record.Nutrients)
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", record.ID).Msg("failed to cache food")
		return model.NewCacheError("Failed to write nutrient cache", err)
	}

	r.logger.Debug().Str("food_id", record.ID).Msg("food cached successfully")

	return nil
}

// Count returns the number of cached foods.
func (r *foodCacheRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM food_cache`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count cached foods")
		return 0, model.NewCacheError("Failed to read nutrient cache", err)
	}
	return count, nil
}
