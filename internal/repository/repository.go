package repository

import (
	"context"

	"nutricalc/internal/model"

	"github.com/google/uuid"
)

// FoodCacheRepository persists resolved foods keyed by their FoodData Central
// id. It satisfies nutrient.Cache so it can back the resolver directly.
type FoodCacheRepository interface {
	// Get returns the cached profile for foodID and whether it was present.
	Get(ctx context.Context, foodID string) (model.NutrientProfile, bool, error)

	// Put upserts record; the last write for an id wins.
	Put(ctx context.Context, record model.FoodRecord) error

	// Count returns the number of cached foods.
	Count(ctx context.Context) (int, error)
}

// RecipeRepository defines the interface for recipe data access operations.
type RecipeRepository interface {
	// Save stores a new recipe owned by userID and returns its id.
	// An empty name or ingredient list is a validation error and stores nothing.
	Save(ctx context.Context, userID uuid.UUID, name string, lines []model.IngredientLine, totals model.NutrientTotals) (uuid.UUID, error)

	// ListByUser returns the user's recipes, newest first. A user without
	// recipes gets an empty slice.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user. A duplicate email yields model.ErrEmailTaken.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email. Returns nil, nil when none exists.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
