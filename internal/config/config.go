package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Quotes    QuoteConfig
	Rates     RateConfig
	SecretKey string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// QuoteConfig holds the market-data cache and refresh settings.
type QuoteConfig struct {
	TTL         time.Duration
	RefreshSpec string // cron expression for the background refresh job
}

// RateConfig holds the market reference rates used by fixed-income
// projections when the caller does not supply one.
type RateConfig struct {
	CDIAnnualPercent  float64
	IPCAAnnualPercent float64
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	ttlMinutes, err := getEnvInt("QUOTE_TTL_MINUTES", 15)
	if err != nil {
		return nil, err
	}

	cdi, err := getEnvFloat("CDI_ANNUAL_PERCENT", 13.75)
	if err != nil {
		return nil, err
	}

	ipca, err := getEnvFloat("IPCA_ANNUAL_PERCENT", 4.5)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Quotes: QuoteConfig{
			TTL: time.Duration(ttlMinutes) * time.Minute,
			// Every 15 minutes during B3 trading hours.
			RefreshSpec: getEnv("QUOTE_REFRESH_CRON", "*/15 10-18 * * 1-5"),
		},
		Rates: RateConfig{
			CDIAnnualPercent:  cdi,
			IPCAAnnualPercent: ipca,
		},
		SecretKey: getEnv("SECRET_KEY", ""),
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
