package fdc

import (
	"nutricalc/internal/model"
)

// foodDetail is the subset of the /food/{id} response the calculator reads.
type foodDetail struct {
	FdcID         model.ExternalID `json:"fdcId"`
	Description   string           `json:"description"`
	DataType      string           `json:"dataType"`
	FoodNutrients []foodNutrient   `json:"foodNutrients"`
}

// searchResponse is the subset of the /foods/search response the calculator reads.
type searchResponse struct {
	TotalHits int            `json:"totalHits"`
	Foods     []searchResult `json:"foods"`
}

type searchResult struct {
	FdcID         model.ExternalID `json:"fdcId"`
	Description   string           `json:"description"`
	DataType      string           `json:"dataType"`
	BrandOwner    string           `json:"brandOwner"`
	FoodNutrients []foodNutrient   `json:"foodNutrients"`
}

// foodNutrient covers the three nutrient shapes FDC returns: the full detail
// format (nested nutrient + amount), the abridged format (number/name/amount)
// and the search format (nutrientId/nutrientName/value).
type foodNutrient struct {
	Nutrient *struct {
		ID       int    `json:"id"`
		Number   string `json:"number"`
		Name     string `json:"name"`
		UnitName string `json:"unitName"`
	} `json:"nutrient"`
	Amount *float64 `json:"amount"`

	Number string `json:"number"`
	Name   string `json:"name"`

	NutrientID     int      `json:"nutrientId"`
	NutrientName   string   `json:"nutrientName"`
	NutrientNumber string   `json:"nutrientNumber"`
	UnitName       string   `json:"unitName"`
	Value          *float64 `json:"value"`
}

// Nutrient is one reported nutrient amount, flattened from any payload shape.
type Nutrient struct {
	ID     int
	Number string
	Name   string
	Unit   string
	Amount float64
}

func (n foodNutrient) flatten() Nutrient {
	out := Nutrient{
		ID:     n.NutrientID,
		Number: firstNonEmpty(n.NutrientNumber, n.Number),
		Name:   firstNonEmpty(n.NutrientName, n.Name),
		Unit:   n.UnitName,
	}
	if n.Nutrient != nil {
		out.ID = n.Nutrient.ID
		out.Number = firstNonEmpty(n.Nutrient.Number, out.Number)
		out.Name = firstNonEmpty(n.Nutrient.Name, out.Name)
		out.Unit = firstNonEmpty(n.Nutrient.UnitName, out.Unit)
	}
	switch {
	case n.Amount != nil:
		out.Amount = *n.Amount
	case n.Value != nil:
		out.Amount = *n.Value
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
