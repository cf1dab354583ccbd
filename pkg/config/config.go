package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process-level configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production, test

	// Screening
	ScreenerConfigPath string // YAML thresholds file
	InputCSV           string // local filter input
	OutputDir          string
	HistoryDays        int // time series lookback for the history command

	// External APIs
	TwelveData TwelveDataConfig

	// HTTP
	HTTPTimeout time.Duration
	CacheTTL    time.Duration // quote/fundamentals cache, 0 disables

	// Logging
	LogLevel  string
	LogFormat string
}

// TwelveDataConfig holds Twelve Data API overrides.
// Empty values fall back to the YAML screener config.
type TwelveDataConfig struct {
	APIKey  string
	BaseURL string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		ScreenerConfigPath: getEnv("SCREENER_CONFIG", "config/screener.yaml"),
		InputCSV:           getEnv("SCREENER_INPUT_CSV", "data/raw_stocks.csv"),
		OutputDir:          getEnv("SCREENER_OUTPUT_DIR", "outputs"),
		HistoryDays:        getEnvAsInt("SCREENER_HISTORY_DAYS", 30),

		TwelveData: TwelveDataConfig{
			APIKey:  getEnv("TWELVE_DATA_API_KEY", ""),
			BaseURL: getEnv("TWELVE_DATA_BASE_URL", ""),
		},

		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", "30s"),
		CacheTTL:    getEnvAsDuration("QUOTE_CACHE_TTL", "5m"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	switch c.Env {
	case "development", "staging", "production", "test":
	default:
		return fmt.Errorf("ENV must be one of: development, staging, production, test")
	}

	if c.ScreenerConfigPath == "" {
		return fmt.Errorf("SCREENER_CONFIG is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("SCREENER_OUTPUT_DIR is required")
	}

	if c.HistoryDays <= 0 {
		return fmt.Errorf("SCREENER_HISTORY_DAYS must be positive")
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}

	if c.CacheTTL < 0 {
		return fmt.Errorf("QUOTE_CACHE_TTL must not be negative")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
