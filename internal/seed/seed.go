// Package seed warms the nutrient cache from gzipped JSON-lines files of
// food records, read from the local file system or AWS S3.
package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"nutricalc/internal/model"
	"nutricalc/internal/nutrient"
)

// Loader defines the interface for loading seed files.
type Loader interface {
	// Load reads a gzipped seed file and returns its food records.
	Load(ctx context.Context, path string) ([]model.FoodRecord, error)
}

// seedRecord is one line of a seed file.
type seedRecord struct {
	ID          model.ExternalID      `json:"fdcId"`
	Description string                `json:"description"`
	Nutrients   model.NutrientProfile `json:"nutrients"`
}

// maxLineSize bounds a single JSON record.
const maxLineSize = 1024 * 1024

// decodeRecords reads one JSON food record per line from a gzip stream.
// Blank lines and records without an id are skipped; it reports how many
// records were skipped.
func decodeRecords(ctx context.Context, r io.Reader) ([]model.FoodRecord, int, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var (
		records []model.FoodRecord
		skipped int
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		if lineNo%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw seedRecord
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, 0, fmt.Errorf("invalid record on line %d: %w", lineNo, err)
		}

		// Records under ids Resolve rejects could never be read back.
		if !nutrient.ValidFoodID(string(raw.ID)) {
			skipped++
			continue
		}
		records = append(records, sanitise(model.FoodRecord{
			ID:          string(raw.ID),
			Description: raw.Description,
			Nutrients:   raw.Nutrients,
		}))
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read records: %w", err)
	}

	return records, skipped, nil
}

// sanitise clamps negative or non-finite amounts to zero.
func sanitise(record model.FoodRecord) model.FoodRecord {
	var clean model.NutrientProfile
	for _, name := range model.NutrientNames {
		clean.Set(name, record.Nutrients.Get(name))
	}
	record.Nutrients = clean
	return record
}
