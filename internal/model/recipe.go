package model

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is a user-authored ingredient list with the nutrition computed at save time.
type Recipe struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	UserID      uuid.UUID        `json:"-" db:"user_id"`
	Name        string           `json:"name" db:"name"`
	Ingredients []IngredientLine `json:"ingredients" db:"ingredients"`
	Nutrition   NutrientTotals   `json:"nutrition" db:"nutrition"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}

// SaveRecipeRequest carries the fields needed to persist a recipe.
type SaveRecipeRequest struct {
	Name        string           `json:"name"`
	Ingredients []IngredientLine `json:"ingredients"`
}

// SaveRecipeResponse is returned after a recipe has been stored.
type SaveRecipeResponse struct {
	Message   string         `json:"message"`
	RecipeID  uuid.UUID      `json:"recipeId"`
	Nutrition NutrientTotals `json:"nutrition"`
}
