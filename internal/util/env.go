package util

import (
	"os"
	"strings"
)

// Getenv returns the trimmed value of the environment variable, or the fallback when it is unset or blank
func Getenv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		if val = strings.TrimSpace(val); val != "" {
			return val
		}
	}

	return fallback
}

// GetenvChoice returns the lower-cased value of the environment variable if it is one of the choices.
// Any other value yields the fallback.
func GetenvChoice(key, fallback string, choices ...string) string {
	val := strings.ToLower(Getenv(key, fallback))
	for _, choice := range choices {
		if val == choice {
			return val
		}
	}

	return fallback
}
