package seed

import (
	"context"
	"fmt"
	"sync"

	"nutricalc/internal/model"
	"nutricalc/internal/nutrient"

	"github.com/rs/zerolog"
)

// Result summarises a warm-up run.
type Result struct {
	Files   int
	Records int
}

// Warm loads every file concurrently and, once all have loaded, puts each
// record into cache. A file that fails to load aborts the warm-up before any
// record is written; a record that fails to store aborts it as well.
func Warm(ctx context.Context, files []string, loader Loader, cache nutrient.Cache, logger zerolog.Logger) (Result, error) {
	logger = logger.With().Str("component", "cache-warmer").Logger()

	logger.Info().Int("file_count", len(files)).Msg("warming nutrient cache")

	type loadResult struct {
		index   int
		records []model.FoodRecord
		err     error
	}

	resultChan := make(chan loadResult, len(files))
	var wg sync.WaitGroup

	for i, path := range files {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			records, err := loader.Load(ctx, path)
			resultChan <- loadResult{index: index, records: records, err: err}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	// Collect in file order so later files override earlier ones.
	results := make([]loadResult, len(files))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().Err(result.err).Str("file", files[i]).Msg("failed to load seed file")
			return Result{}, fmt.Errorf("failed to load seed file %s: %w", files[i], result.err)
		}
	}

	stored := 0
	for i, result := range results {
		for _, record := range result.records {
			if err := ctx.Err(); err != nil {
				return Result{Files: len(files), Records: stored}, err
			}
			if err := cache.Put(ctx, record); err != nil {
				logger.Error().Err(err).Str("file", files[i]).Str("food_id", record.ID).Msg("failed to store seed record")
				return Result{Files: len(files), Records: stored}, fmt.Errorf("failed to store seed record %s: %w", record.ID, err)
			}
			stored++
		}
	}

	logger.Info().
		Int("file_count", len(files)).
		Int("records_stored", stored).
		Msg("nutrient cache warmed successfully")

	return Result{Files: len(files), Records: stored}, nil
}
