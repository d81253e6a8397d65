package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Config holds all configuration for the application
type Config struct {
	TelegramToken          string
	MongoURI               string
	DBName                 string
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	MaxPoolSize            uint64
	MinPoolSize            uint64
	LogLevel               string
	Port                   string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DBName:   getEnvOrDefault("DB_NAME", "shopping_list"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		Port:     getEnvOrDefault("PORT", "8080"),
	}

	// Required environment variables
	if cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN"); cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN environment variable is required")
	}
	if cfg.MongoURI = os.Getenv("MONGODB_URI"); cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI environment variable is required")
	}

	connectMS, err := getEnvIntOrDefault("CONNECT_TIMEOUT_MS", 10000)
	if err != nil {
		return nil, err
	}
	selectionMS, err := getEnvIntOrDefault("SERVER_SELECTION_TIMEOUT_MS", 5000)
	if err != nil {
		return nil, err
	}
	cfg.ConnectTimeout = time.Duration(connectMS) * time.Millisecond
	cfg.ServerSelectionTimeout = time.Duration(selectionMS) * time.Millisecond

	// Reject negatives before the uint64 conversion wraps them around.
	maxPool, err := getEnvIntOrDefault("MAX_POOL_SIZE", 50)
	if err != nil {
		return nil, err
	}
	if maxPool < 0 {
		return nil, fmt.Errorf("MAX_POOL_SIZE must not be negative, got %d", maxPool)
	}
	minPool, err := getEnvIntOrDefault("MIN_POOL_SIZE", 10)
	if err != nil {
		return nil, err
	}
	if minPool < 0 {
		return nil, fmt.Errorf("MIN_POOL_SIZE must not be negative, got %d", minPool)
	}
	cfg.MaxPoolSize = uint64(maxPool)
	cfg.MinPoolSize = uint64(minPool)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the loaded configuration is usable. All problems are
// reported at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if !strings.HasPrefix(c.MongoURI, "mongodb://") && !strings.HasPrefix(c.MongoURI, "mongodb+srv://") {
		result = multierror.Append(result, fmt.Errorf("invalid MongoDB URI: must start with mongodb:// or mongodb+srv://"))
	}
	if c.ConnectTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("connection timeout must be positive"))
	}
	if c.ServerSelectionTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("server selection timeout must be positive"))
	}
	if c.MaxPoolSize < c.MinPoolSize {
		result = multierror.Append(result, fmt.Errorf("max pool size (%d) must be greater than or equal to min pool size (%d)", c.MaxPoolSize, c.MinPoolSize))
	}

	return result.ErrorOrNil()
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return n, nil
}
