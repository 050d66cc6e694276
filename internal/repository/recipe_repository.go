package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nutricalc/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// recipeRepository implements the RecipeRepository interface using PostgreSQL.
type recipeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRecipeRepository creates a new PostgreSQL-backed recipe repository.
func NewRecipeRepository(pool *pgxpool.Pool, logger zerolog.Logger) RecipeRepository {
	return &recipeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "recipe").Logger(),
	}
}

// Save stores a new recipe and returns its id.
func (r *recipeRepository) Save(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	lines []model.IngredientLine,
	totals model.NutrientTotals,
) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, model.NewValidationError("Recipe name is required")
	}
	if len(lines) == 0 {
		return uuid.Nil, model.NewValidationError("Recipe must contain at least one ingredient")
	}

	query := `
		INSERT INTO recipes (id, user_id, name, ingredients, nutrition, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	id := uuid.New()
	_, err := r.pool.Exec(ctx, query, id, userID, name, lines, totals, time.Now().UTC())
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("recipe_name", name).
			Msg("failed to save recipe")
		return uuid.Nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	r.logger.Debug().
		Str("recipe_id", id.String()).
		Str("user_id", userID.String()).
		Int("ingredient_count", len(lines)).
		Msg("recipe saved successfully")

	return id, nil
}

// ListByUser returns the user's recipes, newest first.
func (r *recipeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	query := `
		SELECT id, user_id, name, ingredients, nutrition, created_at
		FROM recipes
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query recipes")
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []model.Recipe{}
	for rows.Next() {
		var recipe model.Recipe
		err := rows.Scan(
			&recipe.ID,
			&recipe.UserID,
			&recipe.Name,
			&recipe.Ingredients,
			&recipe.Nutrition,
			&recipe.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan recipe row")
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating recipe rows")
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	return recipes, nil
}
