package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// Auth
	JWTSecret         string
	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string

	// EDGAR
	EdgarBaseURL     string
	EdgarArchivesURL string
	EdgarTickersURL  string
	EdgarUserAgent   string
	RequestDelay     time.Duration

	// Filing window around an event's execution date, and the fallback
	// lookback when the execution date is unknown.
	WindowDaysBefore   int
	WindowDaysAfter    int
	FallbackWindowDays int
	MaxFilingsPerEvent int

	// Pipeline
	PipelineSchedule string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		EdgarBaseURL:     getEnv("EDGAR_BASE_URL", "https://data.sec.gov"),
		EdgarArchivesURL: getEnv("EDGAR_ARCHIVES_URL", "https://www.sec.gov/Archives/edgar/data"),
		EdgarTickersURL:  getEnv("EDGAR_TICKERS_URL", "https://www.sec.gov/files/company_tickers.json"),
		EdgarUserAgent:   getEnv("EDGAR_USER_AGENT", "SplitResearch admin@splitresearch.example"),
		RequestDelay:     time.Duration(getEnvAsInt("EDGAR_REQUEST_DELAY_MS", 200)) * time.Millisecond,

		WindowDaysBefore:   getEnvAsInt("FILING_WINDOW_DAYS_BEFORE", 180),
		WindowDaysAfter:    getEnvAsInt("FILING_WINDOW_DAYS_AFTER", 15),
		FallbackWindowDays: getEnvAsInt("FALLBACK_WINDOW_DAYS", 365),
		MaxFilingsPerEvent: getEnvAsInt("MAX_FILINGS_PER_EVENT", 10),

		PipelineSchedule: getEnv("PIPELINE_SCHEDULE", "0 2 * * *"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
