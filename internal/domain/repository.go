package domain

import (
	"context"
	"time"
)

// Detector produces raw detections for a base64-encoded meal photo.
// Implementations never fail: when a backend is unreachable or returns
// malformed data they substitute a fixed fallback detection list, so the
// pipeline always has something to estimate.
type Detector interface {
	Detect(ctx context.Context, imageB64 string) []Detection
}

// MealRepository defines the interface for meal log persistence
type MealRepository interface {
	SaveMeal(ctx context.Context, entry *MealEntry) error
	MealsByDate(ctx context.Context, userID string, day time.Time) ([]MealEntry, error)
	DailySummary(ctx context.Context, userID string, day time.Time) (*DailySummary, error)
}
