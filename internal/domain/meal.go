package domain

import (
	"math"
	"time"
)

// MealType classifies when during the day a meal was eaten
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Valid reports whether t is one of the supported meal types
func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// MacroTotals holds summed calories and macronutrients, rounded to 1 decimal
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"` // grams
	Carbs    float64 `json:"carbs"`   // grams
	Fat      float64 `json:"fat"`     // grams
}

// MealEntry is one logged meal with the foods it contained
type MealEntry struct {
	ID       string               `json:"id"`
	UserID   string               `json:"user_id,omitempty"`
	MealType MealType             `json:"meal_type"`
	AteAt    time.Time            `json:"ate_at"`
	Foods    []RecognizedFoodItem `json:"foods"`
	Totals   MacroTotals          `json:"totals"`
}

// DailySummary aggregates all meals a user logged on one calendar day
type DailySummary struct {
	Date      string      `json:"date"` // YYYY-MM-DD
	MealCount int         `json:"meal_count"`
	Totals    MacroTotals `json:"totals"`
}

// Round1 rounds to one decimal place, halves away from zero
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SumFoodMacros folds per-item estimates into meal-level totals
func SumFoodMacros(foods []RecognizedFoodItem) MacroTotals {
	var t MacroTotals
	for _, f := range foods {
		t.Calories += float64(f.Calories)
		t.Protein += f.Protein
		t.Carbs += f.Carbs
		t.Fat += f.Fat
	}
	return t.rounded()
}

// Add combines two totals, keeping the 1-decimal contract
func (t MacroTotals) Add(other MacroTotals) MacroTotals {
	t.Calories += other.Calories
	t.Protein += other.Protein
	t.Carbs += other.Carbs
	t.Fat += other.Fat
	return t.rounded()
}

func (t MacroTotals) rounded() MacroTotals {
	t.Calories = Round1(t.Calories)
	t.Protein = Round1(t.Protein)
	t.Carbs = Round1(t.Carbs)
	t.Fat = Round1(t.Fat)
	return t
}
