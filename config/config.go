package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration. All settings come from
// STOCKALERT_-prefixed environment variables, read once at process start.
type Config struct {
	APIPort int

	// Market-data provider endpoint
	MarketDataURL string

	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		APIPort:       getEnvInt("STOCKALERT_API_PORT", 8000),
		MarketDataURL: getEnvOrDefault("STOCKALERT_MARKET_URL", "https://query1.finance.yahoo.com"),

		DatabaseHost:     getEnvOrDefault("STOCKALERT_DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("STOCKALERT_DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("STOCKALERT_DB_NAME", "stockalert"),
		DatabaseUser:     getEnvOrDefault("STOCKALERT_DB_USER", "stockalert"),
		DatabasePassword: getEnvOrDefault("STOCKALERT_DB_PASSWORD", ""),
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
