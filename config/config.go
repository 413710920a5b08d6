package config

import (
	"os"
	"strconv"
)

// GetEnv reads an environment variable with a fallback default. Process
// env covers deployment concerns only (DB, SMTP, port); business toggles
// live in the settings table.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvAsInt reads an environment variable as an integer with a fallback.
func GetEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
