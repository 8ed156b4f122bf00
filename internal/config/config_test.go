package config

import (
	"os"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	os.Unsetenv("COMPASS_API_URL")
	os.Unsetenv("COMPASS_HTTP_PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.HTTPPort != 3000 {
		t.Errorf("HTTPPort = %d, want 3000", cfg.HTTPPort)
	}
	if cfg.APIRateRPS != 5.0 {
		t.Errorf("APIRateRPS = %v, want 5.0", cfg.APIRateRPS)
	}
	if cfg.SessionFile == "" {
		t.Error("SessionFile should have a default")
	}
}

func TestConfig_FromEnv(t *testing.T) {
	os.Setenv("COMPASS_API_URL", "https://compass.example.com/api")
	os.Setenv("COMPASS_HTTP_PORT", "8081")
	os.Setenv("COMPASS_API_RATE_RPS", "2.5")
	defer func() {
		os.Unsetenv("COMPASS_API_URL")
		os.Unsetenv("COMPASS_HTTP_PORT")
		os.Unsetenv("COMPASS_API_RATE_RPS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIBaseURL != "https://compass.example.com/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.HTTPPort != 8081 {
		t.Errorf("HTTPPort = %d, want 8081", cfg.HTTPPort)
	}
	if cfg.APIRateRPS != 2.5 {
		t.Errorf("APIRateRPS = %v, want 2.5", cfg.APIRateRPS)
	}
}

func TestConfig_BadIntFallsBack(t *testing.T) {
	os.Setenv("COMPASS_HTTP_PORT", "not-a-number")
	defer os.Unsetenv("COMPASS_HTTP_PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTPPort != 3000 {
		t.Errorf("HTTPPort = %d, want default 3000", cfg.HTTPPort)
	}
}
