// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// remote API
	APIBaseURL    string
	APITimeoutSec int
	APIRateRPS    float64
	APIRateBurst  int

	// session persistence
	SessionFile string

	// dev web server
	HTTPPort  int
	StaticDir string

	// logging
	LogLevel string
	LogFile  string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:    getEnv("COMPASS_API_URL", "http://localhost:8080/api"),
		APITimeoutSec: getEnvInt("COMPASS_API_TIMEOUT_SECONDS", 30),
		APIRateRPS:    getEnvFloat("COMPASS_API_RATE_RPS", 5.0),
		APIRateBurst:  getEnvInt("COMPASS_API_RATE_BURST", 10),
		SessionFile:   getEnv("COMPASS_SESSION_FILE", defaultSessionFile()),
		HTTPPort:      getEnvInt("COMPASS_HTTP_PORT", 3000),
		StaticDir:     getEnv("COMPASS_STATIC_DIR", "./dist"),
		LogLevel:      getEnv("COMPASS_LOG_LEVEL", "info"),
		LogFile:       getEnv("COMPASS_LOG_FILE", ""),
	}

	return cfg, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".careercompass/session.yaml"
	}
	return filepath.Join(home, ".careercompass", "session.yaml")
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
