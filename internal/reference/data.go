package reference

import (
	"github.com/mealsnap/backend/internal/portion"
)

// Per-piece weights in grams for countable foods
const (
	idliWeight      = 40
	vadaWeight      = 70
	dosaWeight      = 120
	chapathiWeight  = 45
	samosaWeight    = 100
	bhaturaWeight   = 100
	jalebiWeight    = 60
	idiyappamWeight = 50
	uttampamWeight  = 100
)

// defaultProfiles is the built-in per-100g nutrition dataset.
// Values cover the common South Indian foods the detector models are
// trained on; foods eaten in discrete pieces carry a per-piece weight.
func defaultProfiles() []NutritionProfile {
	return []NutritionProfile{
		// Countable foods
		{Key: "idli", DisplayName: "Idli", CaloriesPer100g: 132, ProteinPer100g: 4.4, CarbsPer100g: 27.9, FatPer100g: 0.4, GIValue: 69, Portion: portion.Countable(idliWeight)},
		{Key: "vada", DisplayName: "Vada", CaloriesPer100g: 245, ProteinPer100g: 7.0, CarbsPer100g: 25.0, FatPer100g: 13.0, GIValue: 65, Portion: portion.Countable(vadaWeight)},
		{Key: "dosa", DisplayName: "Dosa", CaloriesPer100g: 168, ProteinPer100g: 3.9, CarbsPer100g: 29.0, FatPer100g: 3.7, GIValue: 66, Portion: portion.Countable(dosaWeight)},
		{Key: "chapathi", DisplayName: "Chapathi", CaloriesPer100g: 264, ProteinPer100g: 9.0, CarbsPer100g: 46.0, FatPer100g: 4.2, GIValue: 52, Portion: portion.Countable(chapathiWeight)},
		{Key: "samosa", DisplayName: "Samosa", CaloriesPer100g: 308, ProteinPer100g: 5.0, CarbsPer100g: 32.0, FatPer100g: 17.0, GIValue: 62, Portion: portion.Countable(samosaWeight)},
		{Key: "bhatura", DisplayName: "Bhatura", CaloriesPer100g: 330, ProteinPer100g: 8.0, CarbsPer100g: 45.0, FatPer100g: 13.0, GIValue: 70, Portion: portion.Countable(bhaturaWeight)},
		{Key: "jalebi", DisplayName: "Jalebi", CaloriesPer100g: 356, ProteinPer100g: 3.0, CarbsPer100g: 56.0, FatPer100g: 14.0, GIValue: 85, Portion: portion.Countable(jalebiWeight)},
		{Key: "idiyappam", DisplayName: "Idiyappam", CaloriesPer100g: 130, ProteinPer100g: 2.5, CarbsPer100g: 28.0, FatPer100g: 0.5, GIValue: 68, Portion: portion.Countable(idiyappamWeight)},
		{Key: "uttampam", DisplayName: "Uttampam", CaloriesPer100g: 145, ProteinPer100g: 4.5, CarbsPer100g: 25.0, FatPer100g: 3.0, GIValue: 65, Portion: portion.Countable(uttampamWeight)},

		// Area-based foods
		{Key: "sambar", DisplayName: "Sambar", CaloriesPer100g: 65, ProteinPer100g: 3.5, CarbsPer100g: 9.5, FatPer100g: 1.8, GIValue: 30, Portion: portion.AreaBased()},
		{Key: "dal", DisplayName: "Dal", CaloriesPer100g: 116, ProteinPer100g: 9.0, CarbsPer100g: 20.0, FatPer100g: 1.0, GIValue: 29, Portion: portion.AreaBased()},
		{Key: "rasam", DisplayName: "Rasam", CaloriesPer100g: 35, ProteinPer100g: 1.5, CarbsPer100g: 6.0, FatPer100g: 0.5, GIValue: 30, Portion: portion.AreaBased()},
		{Key: "white_rice", DisplayName: "White Rice", CaloriesPer100g: 130, ProteinPer100g: 2.7, CarbsPer100g: 28.0, FatPer100g: 0.3, GIValue: 73, Portion: portion.AreaBased()},
		{Key: "rice", DisplayName: "Rice", CaloriesPer100g: 130, ProteinPer100g: 2.7, CarbsPer100g: 28.0, FatPer100g: 0.3, GIValue: 73, Portion: portion.AreaBased()},
		{Key: "curd", DisplayName: "Curd", CaloriesPer100g: 60, ProteinPer100g: 3.1, CarbsPer100g: 4.7, FatPer100g: 3.3, GIValue: 28, Portion: portion.AreaBased()},
		{Key: "coconut_chutney", DisplayName: "Coconut Chutney", CaloriesPer100g: 190, ProteinPer100g: 2.5, CarbsPer100g: 7.0, FatPer100g: 17.0, GIValue: 42, Portion: portion.AreaBased()},
		{Key: "chutney", DisplayName: "Chutney", CaloriesPer100g: 190, ProteinPer100g: 2.5, CarbsPer100g: 7.0, FatPer100g: 17.0, GIValue: 42, Portion: portion.AreaBased()},
		{Key: "upma", DisplayName: "Upma", CaloriesPer100g: 155, ProteinPer100g: 3.7, CarbsPer100g: 24.0, FatPer100g: 5.2, GIValue: 67, Portion: portion.AreaBased()},
		{Key: "pongal", DisplayName: "Pongal", CaloriesPer100g: 150, ProteinPer100g: 5.0, CarbsPer100g: 24.0, FatPer100g: 4.0, GIValue: 60, Portion: portion.AreaBased()},
		{Key: "biryani", DisplayName: "Biryani", CaloriesPer100g: 180, ProteinPer100g: 6.5, CarbsPer100g: 24.0, FatPer100g: 6.5, GIValue: 58, Portion: portion.AreaBased()},
		{Key: "paneer", DisplayName: "Paneer", CaloriesPer100g: 265, ProteinPer100g: 18.0, CarbsPer100g: 3.5, FatPer100g: 20.0, GIValue: 27, Portion: portion.AreaBased()},
		{Key: "poori", DisplayName: "Poori", CaloriesPer100g: 300, ProteinPer100g: 6.0, CarbsPer100g: 40.0, FatPer100g: 13.0, GIValue: 72, Portion: portion.AreaBased()},
		{Key: "curry", DisplayName: "Curry", CaloriesPer100g: 120, ProteinPer100g: 3.0, CarbsPer100g: 10.0, FatPer100g: 7.5, GIValue: 45, Portion: portion.AreaBased()},
	}
}
