package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Detector  DetectorConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	UserIDHeader   string   `mapstructure:"user_id_header"`
}

// DetectorConfig holds detector backend configuration
type DetectorConfig struct {
	Backend       string        `mapstructure:"backend"` // "http" or "rekognition"
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MinConfidence float64       `mapstructure:"min_confidence"` // Rekognition scale, 0-100
	MaxLabels     int           `mapstructure:"max_labels"`
}

// StorageConfig holds meal store configuration
type StorageConfig struct {
	Type string `mapstructure:"type"` // "memory" or "sqlite"
	Path string `mapstructure:"path"`
}

// RateLimitConfig holds rate limiting configuration, in requests per minute
type RateLimitConfig struct {
	PerIP    int `mapstructure:"per_ip"`
	Detector int `mapstructure:"detector"`
}

// LoadEnv loads a local .env file if present. Existing environment variables
// are never overridden.
func LoadEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Printf("[CONFIG] skipping .env: %v", err)
	}
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/mealsnap/")

	// Environment variable settings
	v.SetEnvPrefix("MEALSNAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.user_id_header", "X-User-ID")

	// Detector defaults
	v.SetDefault("detector.backend", "http")
	v.SetDefault("detector.base_url", "http://localhost:8000")
	v.SetDefault("detector.timeout", "10s")
	v.SetDefault("detector.min_confidence", 75.0)
	v.SetDefault("detector.max_labels", 10)

	// Storage defaults
	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.path", "./data/mealsnap.db")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.detector", 120)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Detector.Backend {
	case "http":
		if config.Detector.BaseURL == "" {
			return fmt.Errorf("detector base URL is required (set MEALSNAP_DETECTOR_BASE_URL)")
		}
	case "rekognition":
		// Region and credentials come from the AWS environment
	default:
		return fmt.Errorf("detector backend must be 'http' or 'rekognition', got: %s", config.Detector.Backend)
	}

	if config.Storage.Type != "memory" && config.Storage.Type != "sqlite" {
		return fmt.Errorf("storage type must be 'memory' or 'sqlite', got: %s", config.Storage.Type)
	}
	if config.Storage.Type == "sqlite" && config.Storage.Path == "" {
		return fmt.Errorf("storage path is required when storage type is 'sqlite'")
	}

	return nil
}
