package service

import (
	"context"

	"nutricalc/internal/model"

	"github.com/google/uuid"
)

// NutritionService defines ingredient search and nutrition calculation.
type NutritionService interface {
	// Search returns ingredient matches for a free-text query. A blank query
	// returns an empty list without contacting the food database.
	Search(ctx context.Context, query string) ([]model.FoodSummary, error)

	// Calculate returns the nutrient totals of the given ingredient lines.
	Calculate(ctx context.Context, lines []model.IngredientLine) (model.NutrientTotals, error)
}

// RecipeService defines operations for recipe management.
type RecipeService interface {
	// Save computes the recipe's nutrition and stores it for the user.
	Save(ctx context.Context, userID uuid.UUID, req *model.SaveRecipeRequest) (*model.SaveRecipeResponse, error)

	// List returns the user's recipes, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error)
}

// AuthService defines user registration and login.
type AuthService interface {
	// Register creates a user account.
	Register(ctx context.Context, creds model.Credentials) (*model.User, error)

	// Login verifies credentials and returns a signed access token.
	Login(ctx context.Context, creds model.Credentials) (string, error)
}

// FoodSearcher searches the external food database.
type FoodSearcher interface {
	Search(ctx context.Context, query string) ([]model.FoodSummary, error)
}

// NutritionAggregator sums nutrient profiles across ingredient lines.
type NutritionAggregator interface {
	Aggregate(ctx context.Context, lines []model.IngredientLine) (model.NutrientTotals, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}
