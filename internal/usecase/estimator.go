package usecase

import (
	"math"

	"github.com/mealsnap/backend/internal/domain"
	"github.com/mealsnap/backend/internal/portion"
	"github.com/mealsnap/backend/internal/reference"
)

// Fixed estimate applied to foods missing from the reference table
const (
	UnknownPortionSize  = "1 portion"
	UnknownPortionGrams = 100.0
	UnknownCalories     = 200
	UnknownProtein      = 10.0
	UnknownCarbs        = 30.0
	UnknownFat          = 5.0
	UnknownConfidence   = 0.5
)

// Estimator turns detection groups into portion-aware nutrition estimates
type Estimator struct {
	table    *reference.Table
	portions *portion.Model
}

// NewEstimator creates an estimator. A nil table or portion model falls back
// to the built-in defaults.
func NewEstimator(table *reference.Table, portions *portion.Model) *Estimator {
	if table == nil {
		table = reference.Default()
	}
	if portions == nil {
		portions = portion.NewModel(nil)
	}
	return &Estimator{table: table, portions: portions}
}

// Estimate builds the nutrition estimate for one detection group.
// Known foods scale their per-100g reference values by the estimated portion
// weight. Calories round to the nearest whole number, macros to one decimal.
// Foods missing from the table get the fixed default estimate, reported under
// the label the detector produced.
func (e *Estimator) Estimate(group domain.DetectionGroup) domain.RecognizedFoodItem {
	profile, found := e.table.Lookup(group.FoodKey)
	if !found {
		return domain.RecognizedFoodItem{
			Name:         group.Label,
			PortionSize:  UnknownPortionSize,
			PortionGrams: UnknownPortionGrams,
			Calories:     UnknownCalories,
			Protein:      UnknownProtein,
			Carbs:        UnknownCarbs,
			Fat:          UnknownFat,
			Confidence:   UnknownConfidence,
		}
	}

	grams, description := e.portions.Estimate(profile.Portion, group.Count, group.MaxAreaRatio)
	multiplier := grams / 100

	return domain.RecognizedFoodItem{
		Name:         profile.DisplayName,
		PortionSize:  description,
		PortionGrams: grams,
		Calories:     int(math.Round(profile.CaloriesPer100g * multiplier)),
		Protein:      domain.Round1(profile.ProteinPer100g * multiplier),
		Carbs:        domain.Round1(profile.CarbsPer100g * multiplier),
		Fat:          domain.Round1(profile.FatPer100g * multiplier),
		Confidence:   group.AvgConfidence,
		GIValue:      profile.GIValue,
		GICategory:   profile.GICategory(),
	}
}
