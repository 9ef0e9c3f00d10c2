package usecase

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/mealsnap/backend/internal/domain"
)

// RecognitionService runs the full photo-to-foods pipeline:
// detect -> group duplicates -> estimate portions and nutrition.
type RecognitionService struct {
	detector  domain.Detector
	estimator *Estimator
}

// NewRecognitionService creates the pipeline service with its dependencies
func NewRecognitionService(detector domain.Detector, estimator *Estimator) *RecognitionService {
	if estimator == nil {
		estimator = NewEstimator(nil, nil)
	}
	return &RecognitionService{
		detector:  detector,
		estimator: estimator,
	}
}

// Recognize analyzes one base64-encoded meal photo and returns a nutrition
// estimate per distinct food. Each item gets a fresh id. The pipeline never
// panics through to the caller: unexpected failures come back as a result
// with Success=false and the error message set.
func (s *RecognitionService) Recognize(ctx context.Context, imageB64 string) (result *domain.RecognitionResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[RECOGNIZE] panic during recognition: %v", r)
			result = &domain.RecognitionResult{
				Success: false,
				Error:   "internal error during food recognition",
			}
		}
	}()

	detections := s.detector.Detect(ctx, imageB64)
	groups := GroupDetections(detections)

	foods := make([]domain.RecognizedFoodItem, 0, len(groups))
	for _, group := range groups {
		item := s.estimator.Estimate(group)
		item.ID = uuid.New().String()
		foods = append(foods, item)
	}

	return &domain.RecognitionResult{
		Success: true,
		Foods:   foods,
	}
}
