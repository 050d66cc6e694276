package nutrient

import (
	"context"
	"fmt"
	"math"
	"strings"

	"nutricalc/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Aggregator sums scaled nutrient profiles across ingredient lines.
type Aggregator struct {
	resolver    ProfileResolver
	concurrency int
	logger      zerolog.Logger
}

// NewAggregator creates an aggregator that resolves at most concurrency
// lines at a time. A concurrency below 1 resolves lines one by one.
func NewAggregator(resolver ProfileResolver, concurrency int, logger zerolog.Logger) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{
		resolver:    resolver,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "nutrition-aggregator").Logger(),
	}
}

// Aggregate returns Σ profile × quantity/100 over lines.
//
// All lines are validated before any lookup. Lines are resolved concurrently;
// the first failure cancels the remaining lookups and is returned, and no
// partial totals are produced. Totals are summed in input order.
func (a *Aggregator) Aggregate(ctx context.Context, lines []model.IngredientLine) (model.NutrientTotals, error) {
	if err := ValidateLines(lines); err != nil {
		return model.NutrientTotals{}, err
	}

	profiles := make([]model.NutrientProfile, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, line := range lines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return model.NewRemoteUnavailableError("Nutrition calculation was cancelled", err)
			}
			profile, err := a.resolver.Resolve(gctx, line.FoodID)
			if err != nil {
				return fmt.Errorf("ingredient %d (%s): %w", i+1, strings.TrimSpace(line.FoodID), err)
			}
			profiles[i] = profile
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Warn().Err(err).Int("line_count", len(lines)).Msg("aggregation failed")
		return model.NutrientTotals{}, err
	}

	var totals model.NutrientTotals
	for i, line := range lines {
		totals.Add(profiles[i], line.Quantity)
	}
	if !totals.Finite() {
		a.logger.Warn().Int("line_count", len(lines)).Msg("aggregation overflowed")
		return model.NutrientTotals{}, model.NewValidationError("Ingredient quantities are too large")
	}

	a.logger.Debug().
		Int("line_count", len(lines)).
		Float64("calories", totals.Calories).
		Msg("aggregation completed")

	return totals, nil
}

// ValidateLines rejects an empty list, a missing or malformed food identifier
// and a quantity that is not a positive finite number.
func ValidateLines(lines []model.IngredientLine) error {
	if len(lines) == 0 {
		return model.NewValidationError("No ingredients provided")
	}

	for i, line := range lines {
		id := strings.TrimSpace(line.FoodID)
		if id == "" {
			return model.NewValidationError(fmt.Sprintf("Ingredient %d: food identifier is required", i+1))
		}
		if err := validateFoodID(id); err != nil {
			return model.NewLookupError(fmt.Sprintf("Ingredient %d: %s", i+1, model.PublicMessage(err)))
		}
		if !(line.Quantity > 0) || math.IsInf(line.Quantity, 0) {
			return model.NewValidationError(fmt.Sprintf("Ingredient %d: quantity must be greater than zero", i+1))
		}
	}

	return nil
}
