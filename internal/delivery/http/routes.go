package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mealsnap/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, identity IdentityProvider) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		// Recognition endpoints
		food := v1.Group("/food")
		{
			food.POST("/recognize", handler.RecognizeFood)
		}

		// Meal log endpoints, all scoped to the requesting user
		meals := v1.Group("/meals")
		meals.Use(IdentityMiddleware(identity))
		{
			meals.POST("", handler.LogMeal)
			meals.GET("", handler.ListMeals)
			meals.GET("/summary", handler.DailySummary)
		}
	}

	return router
}
