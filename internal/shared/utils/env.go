package utils

import (
	"os"
	"strconv"
)

// GetEnv returns the value of an environment variable or the fallback when unset
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// GetEnvInt parses an integer environment variable, falling back on parse errors
func GetEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return value
}
