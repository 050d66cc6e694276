package model

import "math"

// Nutrient names recognised by the calculator.
const (
	NutrientCalories      = "calories"
	NutrientProtein       = "protein"
	NutrientFat           = "fat"
	NutrientCarbohydrates = "carbohydrates"
	NutrientFiber         = "fiber"
)

// NutrientNames lists the recognised nutrients in their canonical order.
var NutrientNames = []string{
	NutrientCalories,
	NutrientProtein,
	NutrientFat,
	NutrientCarbohydrates,
	NutrientFiber,
}

// NutrientProfile holds the five tracked nutrients of a food, per 100 grams.
// A nutrient the source did not report is stored as 0.
type NutrientProfile struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fiber         float64 `json:"fiber"`
}

// Get returns the amount for a nutrient name, or 0 for an unknown name.
func (p NutrientProfile) Get(name string) float64 {
	switch name {
	case NutrientCalories:
		return p.Calories
	case NutrientProtein:
		return p.Protein
	case NutrientFat:
		return p.Fat
	case NutrientCarbohydrates:
		return p.Carbohydrates
	case NutrientFiber:
		return p.Fiber
	}
	return 0
}

// Set stores an amount for a nutrient name. Negative and non-finite amounts are
// stored as 0. It reports whether the name is recognised.
func (p *NutrientProfile) Set(name string, amount float64) bool {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	switch name {
	case NutrientCalories:
		p.Calories = amount
	case NutrientProtein:
		p.Protein = amount
	case NutrientFat:
		p.Fat = amount
	case NutrientCarbohydrates:
		p.Carbohydrates = amount
	case NutrientFiber:
		p.Fiber = amount
	default:
		return false
	}
	return true
}

// NutrientTotals is the sum of scaled profiles across the lines of a recipe.
type NutrientTotals struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fiber         float64 `json:"fiber"`
}

// Get returns the total for a nutrient name, or 0 for an unknown name.
func (t NutrientTotals) Get(name string) float64 {
	switch name {
	case NutrientCalories:
		return t.Calories
	case NutrientProtein:
		return t.Protein
	case NutrientFat:
		return t.Fat
	case NutrientCarbohydrates:
		return t.Carbohydrates
	case NutrientFiber:
		return t.Fiber
	}
	return 0
}

// Finite reports whether every total is a finite number.
func (t NutrientTotals) Finite() bool {
	for _, v := range []float64{t.Calories, t.Protein, t.Fat, t.Carbohydrates, t.Fiber} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Add accumulates profile scaled by quantity/100.
func (t *NutrientTotals) Add(profile NutrientProfile, quantity float64) {
	scale := quantity / 100
	t.Calories += profile.Calories * scale
	t.Protein += profile.Protein * scale
	t.Fat += profile.Fat * scale
	t.Carbohydrates += profile.Carbohydrates * scale
	t.Fiber += profile.Fiber * scale
}
