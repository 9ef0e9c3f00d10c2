package reference

import (
	"github.com/mealsnap/backend/internal/portion"
)

// NutritionProfile holds per-100g nutrition facts and portion behavior for one food
type NutritionProfile struct {
	Key             string  // normalized lookup key, e.g. "white_rice"
	DisplayName     string  // name shown to users, e.g. "White Rice"
	CaloriesPer100g float64
	ProteinPer100g  float64 // grams
	CarbsPer100g    float64 // grams
	FatPer100g      float64 // grams
	GIValue         int     // glycemic index, 0 when unknown
	Portion         portion.Class
}

// Glycemic index category boundaries
const (
	giLowMax    = 55 // below this is Low
	giMediumMax = 70 // below this is Medium, at or above is High
)

// GICategory derives the glycemic index category from the profile's GI value
func (p NutritionProfile) GICategory() string {
	return CategoryForGI(p.GIValue)
}

// CategoryForGI maps a glycemic index value to its category label.
// A non-positive value means the GI is unknown and maps to the empty string.
func CategoryForGI(gi int) string {
	switch {
	case gi <= 0:
		return ""
	case gi < giLowMax:
		return "Low"
	case gi < giMediumMax:
		return "Medium"
	default:
		return "High"
	}
}

// Table is an immutable lookup of nutrition profiles keyed by normalized label
type Table struct {
	profiles map[string]NutritionProfile
}

// NewTable builds a table from a profile list. The entries are copied, so the
// caller's slice can be reused or mutated without affecting the table.
// Duplicate keys keep the last entry.
func NewTable(profiles []NutritionProfile) *Table {
	m := make(map[string]NutritionProfile, len(profiles))
	for _, p := range profiles {
		m[p.Key] = p
	}
	return &Table{profiles: m}
}

// Default returns a table preloaded with the built-in South Indian food set
func Default() *Table {
	return NewTable(defaultProfiles())
}

// Lookup returns the profile for a normalized food key
func (t *Table) Lookup(key string) (NutritionProfile, bool) {
	p, ok := t.profiles[key]
	return p, ok
}

// Len reports how many foods the table knows
func (t *Table) Len() int {
	return len(t.profiles)
}

// Keys returns every known food key, in no particular order
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.profiles))
	for k := range t.profiles {
		keys = append(keys, k)
	}
	return keys
}
