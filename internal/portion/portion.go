package portion

import "fmt"

// Kind discriminates how a food's portion weight is estimated
type Kind int

const (
	// KindAreaBased derives weight from the food's share of the image area
	KindAreaBased Kind = iota
	// KindCountable derives weight from a fixed per-piece weight times piece count
	KindCountable
)

// Class describes how portions of one food are measured.
// UnitWeightG is only meaningful for countable foods.
type Class struct {
	Kind        Kind
	UnitWeightG float64
}

// Countable builds a class for foods eaten in discrete pieces (idli, vada, ...)
func Countable(unitWeightG float64) Class {
	return Class{Kind: KindCountable, UnitWeightG: unitWeightG}
}

// AreaBased builds a class for foods served as a continuous portion (rice, sambar, ...)
func AreaBased() Class {
	return Class{Kind: KindAreaBased}
}

// Size labels an area-based portion bucket
type Size string

const (
	SizeSmall     Size = "Small"
	SizeMedium    Size = "Medium"
	SizeLarge     Size = "Large"
	SizeVeryLarge Size = "Very Large"
)

// Area ratio thresholds separating the portion buckets.
// A ratio exactly on a boundary falls into the larger bucket.
const (
	smallMax  = 0.10
	mediumMax = 0.25
	largeMax  = 0.50
)

// SizeForArea buckets a detector area ratio into a portion size.
// Ratios at or above 0.50 are Very Large; negative or zero ratios are Small.
func SizeForArea(areaRatio float64) Size {
	switch {
	case areaRatio < smallMax:
		return SizeSmall
	case areaRatio < mediumMax:
		return SizeMedium
	case areaRatio < largeMax:
		return SizeLarge
	default:
		return SizeVeryLarge
	}
}

// Model converts detector geometry into portion weights
type Model struct {
	bucketGrams map[Size]float64
}

// DefaultBucketGrams returns the standard weight assigned to each portion bucket
func DefaultBucketGrams() map[Size]float64 {
	return map[Size]float64{
		SizeSmall:     75,
		SizeMedium:    100,
		SizeLarge:     150,
		SizeVeryLarge: 200,
	}
}

// NewModel builds a portion model. Passing nil uses the default bucket weights.
// The map is copied so later caller mutations cannot change the model.
func NewModel(bucketGrams map[Size]float64) *Model {
	if bucketGrams == nil {
		bucketGrams = DefaultBucketGrams()
	}
	grams := make(map[Size]float64, len(bucketGrams))
	for size, g := range bucketGrams {
		grams[size] = g
	}
	return &Model{bucketGrams: grams}
}

// Estimate returns the portion weight in grams and the display description
// for a food of the given class. Countable foods use count (minimum 1);
// area-based foods use the largest area ratio seen for the food.
func (m *Model) Estimate(class Class, count int, maxAreaRatio float64) (float64, string) {
	if class.Kind == KindCountable {
		if count < 1 {
			count = 1
		}
		grams := float64(count) * class.UnitWeightG
		return grams, fmt.Sprintf("%d pieces", count)
	}

	size := SizeForArea(maxAreaRatio)
	return m.bucketGrams[size], string(size) + " portion"
}
