package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"nutricalc/internal/model"

	"github.com/rs/zerolog"
)

// maxQueryLength bounds search queries forwarded to the food database.
const maxQueryLength = 200

// nutritionService implements NutritionService.
type nutritionService struct {
	searcher   FoodSearcher
	aggregator NutritionAggregator
	logger     zerolog.Logger
}

// NewNutritionService creates a new nutrition service.
func NewNutritionService(searcher FoodSearcher, aggregator NutritionAggregator, logger zerolog.Logger) NutritionService {
	return &nutritionService{
		searcher:   searcher,
		aggregator: aggregator,
		logger:     logger.With().Str("service", "nutrition").Logger(),
	}
}

// Search returns ingredient matches for query.
func (s *nutritionService) Search(ctx context.Context, query string) ([]model.FoodSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.FoodSummary{}, nil
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		return nil, model.NewValidationError("Search query is too long")
	}

	foods, err := s.searcher.Search(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("ingredient search failed")
		return nil, err
	}

	if foods == nil {
		foods = []model.FoodSummary{}
	}

	s.logger.Debug().
		Str("query", query).
		Int("count", len(foods)).
		Msg("ingredient search completed")

	return foods, nil
}

// Calculate returns the nutrient totals of lines.
func (s *nutritionService) Calculate(ctx context.Context, lines []model.IngredientLine) (model.NutrientTotals, error) {
	totals, err := s.aggregator.Aggregate(ctx, lines)
	if err != nil {
		return model.NutrientTotals{}, err
	}

	s.logger.Debug().
		Int("line_count", len(lines)).
		Float64("calories", totals.Calories).
		Msg("nutrition calculated")

	return totals, nil
}
