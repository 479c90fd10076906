package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the portal configuration
type Config struct {
	// HTTP server
	Addr string

	// Storage
	DBPath    string
	UploadDir string

	// ML service
	MLBaseURL      string
	HealthTimeout  time.Duration
	RequestTimeout time.Duration
	TrainTimeout   time.Duration
}

// Load reads configuration from the environment, with an optional .env
// file for local development. Missing values fall back to defaults.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Addr:           getEnv("PORTAL_ADDR", ":8080"),
		DBPath:         getEnv("PORTAL_DB_PATH", "portal.db"),
		UploadDir:      getEnv("PORTAL_UPLOAD_DIR", "upload"),
		MLBaseURL:      getEnv("ML_BASE_URL", "http://localhost:5000"),
		HealthTimeout:  time.Duration(getEnvAsInt("ML_HEALTH_TIMEOUT_SEC", 10)) * time.Second,
		RequestTimeout: time.Duration(getEnvAsInt("ML_REQUEST_TIMEOUT_SEC", 30)) * time.Second,
		TrainTimeout:   time.Duration(getEnvAsInt("ML_TRAIN_TIMEOUT_SEC", 600)) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and sane
func (c *Config) Validate() error {
	if c.MLBaseURL == "" {
		return errors.New("ML service base URL is required")
	}
	if c.UploadDir == "" {
		return errors.New("upload directory is required")
	}
	if c.HealthTimeout <= 0 || c.RequestTimeout <= 0 || c.TrainTimeout <= 0 {
		return errors.New("ML timeouts must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
