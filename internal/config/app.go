package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultPort       = ":8080"
	defaultSessionTTL = time.Hour
)

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return defaultPort
	}
	return port
}

// LogFile is the path of the rotating log file used by the terminal
// front ends. Empty means no file.
func LogFile() string {
	return os.Getenv("LOG_FILE")
}

// SessionTTL is how long an untouched game session is kept in memory.
func SessionTTL() (time.Duration, error) {
	ttlStr, ok := os.LookupEnv("SESSION_TTL")
	if !ok {
		return defaultSessionTTL, nil
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return 0, fmt.Errorf("unable to parse SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}
	return ttl, nil
}
