//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"nutricalc/internal/model"
)

// generateSampleFoods writes gzipped JSON-lines seed files for cache warm-up.
// Values are per 100 g, taken from FoodData Central SR Legacy entries.
//
// Run with: go run scripts/generate_sample_foods.go
func main() {
	dataDir := "data/seeds"

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	files := map[string][]model.FoodRecord{
		"baking.jsonl.gz": {
			{ID: "168936", Description: "Wheat flour, white, all-purpose, enriched, bleached", Nutrients: model.NutrientProfile{Calories: 364, Protein: 10.33, Fat: 0.98, Carbohydrates: 76.31, Fiber: 2.7}},
			{ID: "169655", Description: "Sugars, granulated", Nutrients: model.NutrientProfile{Calories: 387, Carbohydrates: 99.98}},
			{ID: "173410", Description: "Butter, salted", Nutrients: model.NutrientProfile{Calories: 717, Protein: 0.85, Fat: 81.11, Carbohydrates: 0.06}},
			{ID: "171287", Description: "Egg, whole, raw, fresh", Nutrients: model.NutrientProfile{Calories: 143, Protein: 12.56, Fat: 9.51, Carbohydrates: 0.72}},
		},
		"produce.jsonl.gz": {
			{ID: "171688", Description: "Apples, raw, with skin", Nutrients: model.NutrientProfile{Calories: 52, Protein: 0.26, Fat: 0.17, Carbohydrates: 13.81, Fiber: 2.4}},
			{ID: "173944", Description: "Bananas, raw", Nutrients: model.NutrientProfile{Calories: 89, Protein: 1.09, Fat: 0.33, Carbohydrates: 22.84, Fiber: 2.6}},
			{ID: "170393", Description: "Carrots, raw", Nutrients: model.NutrientProfile{Calories: 41, Protein: 0.93, Fat: 0.24, Carbohydrates: 9.58, Fiber: 2.8}},
		},
	}

	for filename, records := range files {
		filePath := filepath.Join(dataDir, filename)
		if err := writeSeedFile(filePath, records); err != nil {
			log.Fatalf("Failed to write %s: %v", filePath, err)
		}
		fmt.Printf("Created %s with %d foods\n", filePath, len(records))
	}

	fmt.Println("\nSet SEED_ENABLED=true and SEED_FILES to a comma-separated list of these files to warm the cache.")
}

func writeSeedFile(path string, records []model.FoodRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	encoder := json.NewEncoder(gzipWriter)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return err
		}
	}

	return gzipWriter.Close()
}
