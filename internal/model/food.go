package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FoodRecord is a food resolved from the external composition database.
// Records are treated as immutable once cached.
type FoodRecord struct {
	ID          string          `json:"fdcId"`
	Description string          `json:"description"`
	Nutrients   NutrientProfile `json:"nutrients"`
}

// FoodSummary is a single ingredient search result.
type FoodSummary struct {
	ID          string `json:"fdcId"`
	Description string `json:"description"`
	DataType    string `json:"dataType,omitempty"`
	BrandOwner  string `json:"brandOwner,omitempty"`
}

// IngredientLine is a food identifier plus a quantity in grams.
type IngredientLine struct {
	FoodID   string  `json:"foodId"`
	Quantity float64 `json:"quantity"`
}

// ExternalID is a food identifier that decodes from either a JSON string or
// a JSON number, since FoodData Central and its clients send both.
type ExternalID string

func (id *ExternalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ExternalID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("fdcId must be a number or string: %w", err)
	}
	*id = ExternalID(n.String())
	return nil
}
