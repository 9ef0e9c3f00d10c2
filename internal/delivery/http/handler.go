package http

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealsnap/backend/internal/domain"
)

const dateLayout = "2006-01-02"

// Recognizer runs the photo-to-nutrition pipeline
type Recognizer interface {
	Recognize(ctx context.Context, imageB64 string) *domain.RecognitionResult
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recognizer Recognizer
	meals      domain.MealRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(recognizer Recognizer, meals domain.MealRepository) *Handler {
	return &Handler{
		recognizer: recognizer,
		meals:      meals,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "mealsnap-backend",
		"version": "1.0.0",
	})
}

// RecognizeRequest is the payload for the food recognition endpoint
type RecognizeRequest struct {
	Image string `json:"image" binding:"required"`
}

// RecognizeFood runs detection and nutrition estimation on a meal photo
func (h *Handler) RecognizeFood(c *gin.Context) {
	if h.recognizer == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "food recognition not configured",
		})
		return
	}

	var req RecognizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Image) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "image is required",
		})
		return
	}

	result := h.recognizer.Recognize(c.Request.Context(), req.Image)
	if !result.Success {
		c.JSON(http.StatusInternalServerError, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LogMealRequest is the payload for recording a meal
type LogMealRequest struct {
	MealType string                      `json:"meal_type"`
	AteAt    *time.Time                  `json:"ate_at"`
	Foods    []domain.RecognizedFoodItem `json:"foods"`
}

// LogMeal records a meal with its recognized foods for the requesting user.
// Totals are always recomputed server-side from the submitted foods.
func (h *Handler) LogMeal(c *gin.Context) {
	if h.meals == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "meal logging not configured",
		})
		return
	}

	var req LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	mealType := domain.MealType(strings.ToLower(strings.TrimSpace(req.MealType)))
	if !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidMealType.Error()})
		return
	}

	if len(req.Foods) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrEmptyMeal.Error()})
		return
	}

	ateAt := time.Now()
	if req.AteAt != nil && !req.AteAt.IsZero() {
		ateAt = *req.AteAt
	}

	entry := &domain.MealEntry{
		ID:       uuid.New().String(),
		UserID:   c.GetString(ContextUserKey),
		MealType: mealType,
		AteAt:    ateAt,
		Foods:    req.Foods,
		Totals:   domain.SumFoodMacros(req.Foods),
	}

	if err := h.meals.SaveMeal(c.Request.Context(), entry); err != nil {
		log.Printf("[MEALS] failed to save meal for user %s: %v", entry.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save meal"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListMeals returns the requesting user's meals for a single day,
// defaulting to today when no date is given
func (h *Handler) ListMeals(c *gin.Context) {
	if h.meals == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "meal logging not configured",
		})
		return
	}

	day, err := parseDay(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	userID := c.GetString(ContextUserKey)
	meals, err := h.meals.MealsByDate(c.Request.Context(), userID, day)
	if err != nil {
		log.Printf("[MEALS] failed to list meals for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meals"})
		return
	}
	if meals == nil {
		meals = []domain.MealEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  day.Format(dateLayout),
		"meals": meals,
	})
}

// DailySummary returns aggregate nutrition totals for a single day,
// defaulting to today when no date is given
func (h *Handler) DailySummary(c *gin.Context) {
	if h.meals == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "meal logging not configured",
		})
		return
	}

	day, err := parseDay(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	userID := c.GetString(ContextUserKey)
	summary, err := h.meals.DailySummary(c.Request.Context(), userID, day)
	if err != nil {
		log.Printf("[MEALS] failed to summarize meals for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load daily summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// parseDay interprets an optional YYYY-MM-DD query value, defaulting to now.
// Explicit dates resolve to midnight in server local time so they name the
// same calendar day as the default.
func parseDay(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation(dateLayout, value, time.Local)
}
