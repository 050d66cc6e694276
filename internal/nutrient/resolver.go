package nutrient

import (
	"context"
	"errors"
	"strings"

	"nutricalc/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// maxFoodIDLength bounds identifiers accepted for lookup.
const maxFoodIDLength = 64

// FoodLookup fetches a food from the external composition database.
type FoodLookup interface {
	Food(ctx context.Context, foodID string) (*model.FoodRecord, error)
}

// ProfileResolver turns a food identifier into a nutrient profile.
type ProfileResolver interface {
	Resolve(ctx context.Context, foodID string) (model.NutrientProfile, error)
}

// Resolver resolves profiles cache-first, falling back to the remote lookup
// on a miss and caching what it fetched. Concurrent misses for the same
// identifier share one remote call.
type Resolver struct {
	cache  Cache
	remote FoodLookup
	group  singleflight.Group
	logger zerolog.Logger
}

// NewResolver creates a resolver over cache and remote.
func NewResolver(cache Cache, remote FoodLookup, logger zerolog.Logger) *Resolver {
	return &Resolver{
		cache:  cache,
		remote: remote,
		logger: logger.With().Str("component", "nutrient-resolver").Logger(),
	}
}

// Resolve returns the per-100g profile for foodID.
//
// An empty or malformed identifier yields a lookup error without any I/O. A
// cache read failure is treated as a miss and a cache write failure is logged;
// neither fails the call. When the cache misses and the remote lookup fails
// the error is a remote-unavailable error and nothing is cached.
func (r *Resolver) Resolve(ctx context.Context, foodID string) (model.NutrientProfile, error) {
	foodID = strings.TrimSpace(foodID)
	if err := validateFoodID(foodID); err != nil {
		return model.NutrientProfile{}, err
	}

	profile, ok, err := r.cache.Get(ctx, foodID)
	if err != nil {
		r.logger.Warn().Err(err).Str("food_id", foodID).Msg("cache read failed, treating as miss")
	} else if ok {
		r.logger.Debug().Str("food_id", foodID).Msg("cache hit")
		return profile, nil
	}

	r.logger.Debug().Str("food_id", foodID).Msg("cache miss")

	// The shared call must not die with whichever caller started it; the
	// remote client applies its own timeout.
	ch := r.group.DoChan(foodID, func() (any, error) {
		return r.fetchAndStore(context.WithoutCancel(ctx), foodID)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return model.NutrientProfile{}, res.Err
		}
		return res.Val.(model.NutrientProfile), nil
	case <-ctx.Done():
		return model.NutrientProfile{}, model.NewRemoteUnavailableError("Food lookup was cancelled", ctx.Err())
	}
}

func (r *Resolver) fetchAndStore(ctx context.Context, foodID string) (model.NutrientProfile, error) {
	record, err := r.remote.Food(ctx, foodID)
	if err != nil {
		var de *model.DomainError
		if !errors.As(err, &de) {
			err = model.NewRemoteUnavailableError("Failed to fetch food "+foodID, err)
		}
		return model.NutrientProfile{}, err
	}
	if record == nil {
		return model.NutrientProfile{}, model.NewRemoteUnavailableError(
			"Failed to fetch food "+foodID,
			errors.New("empty response from food database"),
		)
	}

	stored := *record
	stored.ID = foodID

	if err := r.cache.Put(ctx, stored); err != nil {
		r.logger.Warn().Err(err).Str("food_id", foodID).Msg("cache write failed, continuing")
	} else {
		r.logger.Debug().Str("food_id", foodID).Msg("cached food")
	}

	return stored.Nutrients, nil
}

// ValidFoodID reports whether foodID is an identifier Resolve will look up.
func ValidFoodID(foodID string) bool {
	return validateFoodID(foodID) == nil
}

func validateFoodID(foodID string) error {
	if foodID == "" {
		return model.NewLookupError("Food identifier is required")
	}
	if len(foodID) > maxFoodIDLength {
		return model.NewLookupError("Food identifier is too long")
	}
	for _, r := range foodID {
		if !isIDRune(r) {
			return model.NewLookupError("Food identifier contains invalid characters")
		}
	}
	return nil
}

func isIDRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r == '-', r == '_':
		return true
	}
	return false
}
