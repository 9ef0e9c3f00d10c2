package domain

// Detection is a single raw observation reported by a detector backend
type Detection struct {
	FoodLabel  string  `json:"food_label"`
	Confidence float64 `json:"confidence"` // 0-1
	AreaRatio  float64 `json:"area_ratio"` // fraction of image area, 0-1
}

// DetectionGroup aggregates every detection of one food within a single image.
// Label keeps the raw label of the first detection so unknown foods can be
// reported under the name the detector actually produced.
type DetectionGroup struct {
	FoodKey       string  `json:"food_key"` // normalized lookup key, e.g. "white_rice"
	Label         string  `json:"label"`
	Count         int     `json:"count"`
	AvgConfidence float64 `json:"avg_confidence"`
	MaxAreaRatio  float64 `json:"max_area_ratio"`
}

// RecognizedFoodItem is the portion-aware nutrition estimate for one food
type RecognizedFoodItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PortionSize  string  `json:"portion_size"`  // e.g. "2 pieces", "Large portion"
	PortionGrams float64 `json:"portion_grams"`
	Calories     int     `json:"calories"`
	Protein      float64 `json:"protein"` // grams
	Carbs        float64 `json:"carbs"`   // grams
	Fat          float64 `json:"fat"`     // grams
	Confidence   float64 `json:"confidence"`
	GIValue      int     `json:"gi_value,omitempty"`
	GICategory   string  `json:"gi_category,omitempty"` // "Low", "Medium" or "High"
}

// RecognitionResult is the complete outcome of analyzing one meal photo
type RecognitionResult struct {
	Success bool                 `json:"success"`
	Foods   []RecognizedFoodItem `json:"foods"`
	Error   string               `json:"error,omitempty"`
}
