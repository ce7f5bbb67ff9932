package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads the first .env file found walking up from the working
// directory. Variables already set in the environment are kept. It returns
// the path that was loaded, or "" when there is no .env file.
func LoadDotEnv() (string, error) {
	path := findUpwards(".env")
	if path == "" {
		return "", nil
	}
	if err := godotenv.Load(path); err != nil {
		return path, fmt.Errorf("loading %s: %w", path, err)
	}
	return path, nil
}

// MaskAPIKey returns a masked version of the key for display.
func MaskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}

	if len(key) <= 15 {
		return "***"
	}

	return key[:7] + "..." + key[len(key)-4:]
}
