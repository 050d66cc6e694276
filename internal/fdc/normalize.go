package fdc

import (
	"strings"

	"nutricalc/internal/model"
)

// nutrientMatcher identifies one tracked nutrient in an FDC payload.
type nutrientMatcher struct {
	name   string
	id     int
	number string
	label  string
	unit   string // required unit for name matches, empty means any
}

var matchers = []nutrientMatcher{
	{name: model.NutrientCalories, id: 1008, number: "208", label: "energy", unit: "kcal"},
	{name: model.NutrientProtein, id: 1003, number: "203", label: "protein"},
	{name: model.NutrientFat, id: 1004, number: "204", label: "total lipid (fat)"},
	{name: model.NutrientCarbohydrates, id: 1005, number: "205", label: "carbohydrate, by difference"},
	{name: model.NutrientFiber, id: 1079, number: "291", label: "fiber, total dietary"},
}

// Atwater energy values, used for calories only when id 1008 is absent.
var atwaterEnergyIDs = []int{2047, 2048}

// Normalize maps reported nutrients onto the fixed five-nutrient profile.
// Matching is by nutrient id, then nutrient number, then name. Nutrients that
// are not reported are 0.
func Normalize(nutrients []Nutrient) model.NutrientProfile {
	var profile model.NutrientProfile

	for _, m := range matchers {
		if amount, ok := find(nutrients, m); ok {
			profile.Set(m.name, amount)
		}
	}

	if profile.Calories == 0 && !hasID(nutrients, 1008) {
		for _, id := range atwaterEnergyIDs {
			if n, ok := byID(nutrients, id); ok {
				profile.Set(model.NutrientCalories, n.Amount)
				break
			}
		}
	}

	return profile
}

func find(nutrients []Nutrient, m nutrientMatcher) (float64, bool) {
	if n, ok := byID(nutrients, m.id); ok {
		return n.Amount, true
	}
	for _, n := range nutrients {
		if n.ID == 0 && n.Number == m.number {
			return n.Amount, true
		}
	}
	for _, n := range nutrients {
		if n.ID != 0 || n.Number != "" {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(n.Name), m.label) {
			continue
		}
		if m.unit != "" && !strings.EqualFold(n.Unit, m.unit) {
			continue
		}
		return n.Amount, true
	}
	return 0, false
}

func byID(nutrients []Nutrient, id int) (Nutrient, bool) {
	for _, n := range nutrients {
		if n.ID == id {
			return n, true
		}
	}
	return Nutrient{}, false
}

func hasID(nutrients []Nutrient, id int) bool {
	_, ok := byID(nutrients, id)
	return ok
}

func flattenAll(in []foodNutrient) []Nutrient {
	out := make([]Nutrient, 0, len(in))
	for _, n := range in {
		out = append(out, n.flatten())
	}
	return out
}
