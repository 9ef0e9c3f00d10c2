package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mealsnap/backend/config"
	httpDelivery "github.com/mealsnap/backend/internal/delivery/http"
	"github.com/mealsnap/backend/internal/domain"
	"github.com/mealsnap/backend/internal/infrastructure/detector"
	"github.com/mealsnap/backend/internal/infrastructure/storage"
	"github.com/mealsnap/backend/internal/usecase"
)

func main() {
	// Load .env before viper reads the environment
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting MealSnap Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Detector backend: %s", cfg.Detector.Backend)
	log.Printf("Storage type: %s", cfg.Storage.Type)

	// Initialize infrastructure dependencies
	foodDetector, err := buildDetector(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize food detector: %v", err)
	}

	mealStore, closeStore, err := buildMealStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize meal storage: %v", err)
	}
	defer closeStore()

	// Initialize usecase layer
	estimator := usecase.NewEstimator(nil, nil)
	recognitionService := usecase.NewRecognitionService(foodDetector, estimator)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recognitionService, mealStore)
	identity := httpDelivery.NewHeaderIdentity(cfg.Server.UserIDHeader)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, identity)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildDetector picks the detection backend from configuration
func buildDetector(cfg *config.Config) (domain.Detector, error) {
	switch cfg.Detector.Backend {
	case "rekognition":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		rek, err := detector.NewRekognition(ctx, cfg.Detector.MinConfidence, cfg.Detector.MaxLabels)
		if err != nil {
			return nil, err
		}
		log.Printf("Rekognition detector ready (min confidence %.0f%%)", cfg.Detector.MinConfidence)
		return rek, nil
	default:
		client := detector.NewClient(cfg.Detector.BaseURL, cfg.Detector.Timeout, cfg.RateLimit.Detector)
		log.Printf("HTTP detector configured: %s", cfg.Detector.BaseURL)
		return client, nil
	}
}

// buildMealStore picks the meal repository from configuration. The returned
// func releases whatever the store holds open.
func buildMealStore(cfg *config.Config) (domain.MealRepository, func(), error) {
	switch cfg.Storage.Type {
	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("SQLite meal store: %s", cfg.Storage.Path)
		closer := func() {
			if err := store.Close(); err != nil {
				log.Printf("Failed to close meal store: %v", err)
			}
		}
		return store, closer, nil
	default:
		log.Printf("In-memory meal store (entries are lost on restart)")
		return storage.NewMemoryStore(), func() {}, nil
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
