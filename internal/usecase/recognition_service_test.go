package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/mealsnap/backend/internal/domain"
)

// MockDetector is a test double for domain.Detector
type MockDetector struct {
	detections []domain.Detection
	calls      int
	lastImage  string
	panics     bool
}

func (m *MockDetector) Detect(ctx context.Context, imageB64 string) []domain.Detection {
	m.calls++
	m.lastImage = imageB64
	if m.panics {
		panic("detector blew up")
	}
	return m.detections
}

func TestRecognize(t *testing.T) {
	ctx := context.Background()

	t.Run("full pipeline over a three-detection photo", func(t *testing.T) {
		detector := &MockDetector{
			detections: []domain.Detection{
				{FoodLabel: "Idli", Confidence: 0.92, AreaRatio: 0.12},
				{FoodLabel: "Idli", Confidence: 0.88, AreaRatio: 0.20},
				{FoodLabel: "Sambar", Confidence: 0.87, AreaRatio: 0.35},
			},
		}
		svc := NewRecognitionService(detector, nil)

		result := svc.Recognize(ctx, "aGVsbG8=")
		if !result.Success {
			t.Fatalf("Success = false, error = %q", result.Error)
		}
		if detector.calls != 1 {
			t.Errorf("detector calls = %d, want 1", detector.calls)
		}
		if detector.lastImage != "aGVsbG8=" {
			t.Errorf("image passed to detector = %q", detector.lastImage)
		}
		if len(result.Foods) != 2 {
			t.Fatalf("len(Foods) = %d, want 2", len(result.Foods))
		}

		idli := result.Foods[0]
		if idli.Name != "Idli" {
			t.Errorf("Foods[0].Name = %q, want Idli", idli.Name)
		}
		if idli.PortionSize != "2 pieces" {
			t.Errorf("Foods[0].PortionSize = %q, want %q", idli.PortionSize, "2 pieces")
		}
		if idli.PortionGrams != 80 {
			t.Errorf("Foods[0].PortionGrams = %v, want 80", idli.PortionGrams)
		}
		if idli.Calories != 106 {
			t.Errorf("Foods[0].Calories = %d, want 106", idli.Calories)
		}
		if idli.Confidence != 0.9 {
			t.Errorf("Foods[0].Confidence = %v, want 0.9", idli.Confidence)
		}

		sambar := result.Foods[1]
		if sambar.Name != "Sambar" {
			t.Errorf("Foods[1].Name = %q, want Sambar", sambar.Name)
		}
		if sambar.PortionSize != "Large portion" {
			t.Errorf("Foods[1].PortionSize = %q, want %q", sambar.PortionSize, "Large portion")
		}
		if sambar.PortionGrams != 150 {
			t.Errorf("Foods[1].PortionGrams = %v, want 150", sambar.PortionGrams)
		}
		if sambar.Calories != 98 {
			t.Errorf("Foods[1].Calories = %d, want 98", sambar.Calories)
		}
	})

	t.Run("items get unique well-formed ids", func(t *testing.T) {
		detector := &MockDetector{
			detections: []domain.Detection{
				{FoodLabel: "Idli", Confidence: 0.9, AreaRatio: 0.1},
				{FoodLabel: "Vada", Confidence: 0.8, AreaRatio: 0.1},
			},
		}
		svc := NewRecognitionService(detector, nil)

		result := svc.Recognize(ctx, "aW1n")
		if len(result.Foods) != 2 {
			t.Fatalf("len(Foods) = %d, want 2", len(result.Foods))
		}

		seen := make(map[string]bool)
		for i, food := range result.Foods {
			if food.ID == "" {
				t.Fatalf("Foods[%d].ID is empty", i)
			}
			if _, err := uuid.Parse(food.ID); err != nil {
				t.Errorf("Foods[%d].ID = %q is not a valid uuid: %v", i, food.ID, err)
			}
			if seen[food.ID] {
				t.Errorf("duplicate id %q", food.ID)
			}
			seen[food.ID] = true
		}
	})

	t.Run("unknown foods come back under their raw label", func(t *testing.T) {
		detector := &MockDetector{
			detections: []domain.Detection{
				{FoodLabel: "Pho", Confidence: 0.93, AreaRatio: 0.4},
			},
		}
		svc := NewRecognitionService(detector, nil)

		result := svc.Recognize(ctx, "aW1n")
		if !result.Success {
			t.Fatalf("Success = false, error = %q", result.Error)
		}
		if len(result.Foods) != 1 {
			t.Fatalf("len(Foods) = %d, want 1", len(result.Foods))
		}
		if result.Foods[0].Name != "Pho" {
			t.Errorf("Name = %q, want Pho", result.Foods[0].Name)
		}
		if result.Foods[0].Calories != UnknownCalories {
			t.Errorf("Calories = %d, want %d", result.Foods[0].Calories, UnknownCalories)
		}
	})

	t.Run("no detections yields empty food list", func(t *testing.T) {
		svc := NewRecognitionService(&MockDetector{}, nil)

		result := svc.Recognize(ctx, "aW1n")
		if !result.Success {
			t.Fatalf("Success = false, error = %q", result.Error)
		}
		if len(result.Foods) != 0 {
			t.Errorf("len(Foods) = %d, want 0", len(result.Foods))
		}
	})

	t.Run("panic inside the pipeline becomes a failed result", func(t *testing.T) {
		svc := NewRecognitionService(&MockDetector{panics: true}, nil)

		result := svc.Recognize(ctx, "aW1n")
		if result == nil {
			t.Fatal("result is nil")
		}
		if result.Success {
			t.Error("Success = true, want false")
		}
		if result.Error == "" {
			t.Error("Error is empty, want a message")
		}
		if len(result.Foods) != 0 {
			t.Errorf("len(Foods) = %d, want 0", len(result.Foods))
		}
	})
}
