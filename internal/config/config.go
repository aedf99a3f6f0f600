package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel  slog.Level
	LogFormat string
	DBPath    string
	APIPort   string

	// Global drop-to-link switch. Workspaces can only narrow it.
	DropEnabled bool
	// Separator used between snippet entries when a request does not set one.
	// Nil means the built-in single space.
	DropSeparator *string

	SnapshotCacheSize int
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or one of its parents, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		DBPath:    getEnv("DB_PATH", "./data/mddrop.db"),
		APIPort:   getEnv("API_PORT", "9000"),
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	dropEnabled, err := strconv.ParseBool(getEnv("DROP_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("DROP_ENABLED must be a boolean: %w", err)
	}
	cfg.DropEnabled = dropEnabled

	// An empty DROP_SEPARATOR is meaningful (entries are joined directly).
	if sep, ok := os.LookupEnv("DROP_SEPARATOR"); ok {
		cfg.DropSeparator = &sep
	}

	cacheSize, err := strconv.Atoi(getEnv("SNAPSHOT_CACHE_SIZE", "256"))
	if err != nil {
		return nil, fmt.Errorf("SNAPSHOT_CACHE_SIZE must be a valid integer: %w", err)
	}
	if cacheSize <= 0 {
		return nil, fmt.Errorf("SNAPSHOT_CACHE_SIZE must be greater than 0")
	}
	cfg.SnapshotCacheSize = cacheSize

	// Create ./data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
