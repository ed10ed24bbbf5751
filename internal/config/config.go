// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath  string
	KeyPath string
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is applied first when present;
// BUDGETVAULT_ENV_FILE points it elsewhere, and then it must exist.
// Variables with defaults: BUDGETVAULT_DB_PATH (budgetvault.db),
// BUDGETVAULT_KEY_PATH (budgetvault.key).
func Load() (*Config, error) {
	if envFile, ok := os.LookupEnv("BUDGETVAULT_ENV_FILE"); ok && envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		// Best-effort: running without a .env file is the normal case.
		_ = godotenv.Load()
	}

	dbPath := "budgetvault.db"
	if v, ok := os.LookupEnv("BUDGETVAULT_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	keyPath := "budgetvault.key"
	if v, ok := os.LookupEnv("BUDGETVAULT_KEY_PATH"); ok && v != "" {
		keyPath = v
	}

	return &Config{
		DBPath:  dbPath,
		KeyPath: keyPath,
	}, nil
}
