package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.ScreenerConfigPath != "config/screener.yaml" {
		t.Errorf("Expected ScreenerConfigPath to be config/screener.yaml, got %s", cfg.ScreenerConfigPath)
	}

	if cfg.OutputDir != "outputs" {
		t.Errorf("Expected OutputDir to be outputs, got %s", cfg.OutputDir)
	}

	if cfg.HistoryDays != 30 {
		t.Errorf("Expected HistoryDays to be 30, got %d", cfg.HistoryDays)
	}

	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("Expected HTTPTimeout to be 30s, got %v", cfg.HTTPTimeout)
	}

	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("Expected CacheTTL to be 5m, got %v", cfg.CacheTTL)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SCREENER_OUTPUT_DIR", "/tmp/reports")
	t.Setenv("SCREENER_HISTORY_DAYS", "90")
	t.Setenv("TWELVE_DATA_API_KEY", "secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("QUOTE_CACHE_TTL", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.OutputDir != "/tmp/reports" {
		t.Errorf("Expected OutputDir to be /tmp/reports, got %s", cfg.OutputDir)
	}

	if cfg.HistoryDays != 90 {
		t.Errorf("Expected HistoryDays to be 90, got %d", cfg.HistoryDays)
	}

	if cfg.TwelveData.APIKey != "secret" {
		t.Errorf("Expected API key override, got %q", cfg.TwelveData.APIKey)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}

	if cfg.CacheTTL != 0 {
		t.Errorf("Expected CacheTTL 0 to disable the cache, got %v", cfg.CacheTTL)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "qa")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown ENV")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "5m")
	defer os.Unsetenv("TEST_DURATION")

	if got := getEnvAsDuration("TEST_DURATION", "1s"); got != 5*time.Minute {
		t.Errorf("Expected 5m, got %v", got)
	}

	os.Setenv("TEST_DURATION", "invalid")
	if got := getEnvAsDuration("TEST_DURATION", "1s"); got != time.Second {
		t.Errorf("Expected fallback 1s, got %v", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	os.Setenv("TEST_INT", "42")
	defer os.Unsetenv("TEST_INT")

	if got := getEnvAsInt("TEST_INT", 7); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}

	os.Setenv("TEST_INT", "abc")
	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("Expected fallback 7, got %d", got)
	}
}
