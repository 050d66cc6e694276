package service

import (
	"context"
	"fmt"
	"strings"

	"nutricalc/internal/model"
	"nutricalc/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// recipeService implements RecipeService.
type recipeService struct {
	recipeRepo repository.RecipeRepository
	aggregator NutritionAggregator
	logger     zerolog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(recipeRepo repository.RecipeRepository, aggregator NutritionAggregator, logger zerolog.Logger) RecipeService {
	return &recipeService{
		recipeRepo: recipeRepo,
		aggregator: aggregator,
		logger:     logger.With().Str("service", "recipe").Logger(),
	}
}

// Save recomputes the recipe's nutrition from its ingredients and stores the
// recipe with that snapshot. Client-supplied totals are never trusted.
func (s *recipeService) Save(ctx context.Context, userID uuid.UUID, req *model.SaveRecipeRequest) (*model.SaveRecipeResponse, error) {
	if req == nil {
		return nil, model.NewValidationError("Recipe is required")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.NewValidationError("Recipe name is required")
	}
	if len(req.Ingredients) == 0 {
		return nil, model.NewValidationError("Recipe must contain at least one ingredient")
	}

	totals, err := s.aggregator.Aggregate(ctx, req.Ingredients)
	if err != nil {
		s.logger.Warn().Err(err).Str("recipe_name", name).Msg("failed to compute recipe nutrition")
		return nil, err
	}

	recipeID, err := s.recipeRepo.Save(ctx, userID, name, req.Ingredients, totals)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to save recipe")
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	s.logger.Info().
		Str("recipe_id", recipeID.String()).
		Str("user_id", userID.String()).
		Int("ingredient_count", len(req.Ingredients)).
		Msg("recipe saved")

	return &model.SaveRecipeResponse{
		Message:   "Recipe saved successfully",
		RecipeID:  recipeID,
		Nutrition: totals,
	}, nil
}

// List returns the user's recipes, newest first.
func (s *recipeService) List(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	recipes, err := s.recipeRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list recipes")
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	if recipes == nil {
		recipes = []model.Recipe{}
	}

	return recipes, nil
}
