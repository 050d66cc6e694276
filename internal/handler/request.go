package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"nutricalc/internal/model"
)

// ingredientInput is one ingredient line as sent by clients. The food id may
// arrive as fdcId or foodId, as a number or a string, and the quantity as a
// number or a numeric string.
type ingredientInput struct {
	FdcID    model.ExternalID `json:"fdcId"`
	FoodID   model.ExternalID `json:"foodId"`
	Quantity quantity         `json:"quantity"`
}

// quantity decodes a gram amount from a JSON number or numeric string. An
// unparseable string decodes to NaN so validation can reject the line.
type quantity float64

func (q *quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			v = math.NaN()
		}
		*q = quantity(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("quantity must be a number: %w", err)
	}
	*q = quantity(v)
	return nil
}

func (in ingredientInput) line() model.IngredientLine {
	id := in.FdcID
	if id == "" {
		id = in.FoodID
	}
	return model.IngredientLine{FoodID: string(id), Quantity: float64(in.Quantity)}
}

func toLines(inputs []ingredientInput) []model.IngredientLine {
	lines := make([]model.IngredientLine, len(inputs))
	for i, in := range inputs {
		lines[i] = in.line()
	}
	return lines
}

// calculateRequest is the POST /calculate_nutrition body.
type calculateRequest struct {
	Ingredients []ingredientInput `json:"ingredients"`
}

// saveRecipeRequest is the POST /save_recipe body. Any nutrition sent by the
// client is ignored.
type saveRecipeRequest struct {
	Name        string            `json:"name"`
	Ingredients []ingredientInput `json:"ingredients"`
}
