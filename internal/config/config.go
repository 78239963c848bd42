// Package config handles environment configuration and the static network
// file. The network file is YAML validated with struct tags; everything else
// comes from the environment.
package config

import (
	"os"
	"strconv"
)

// Config holds the environment-driven settings.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	RedisPass   string
	NetworkFile string
	LogLevel    string
	Env         string

	// DefaultSeed regenerates the same dashboard until a client asks for a
	// different one.
	DefaultSeed int64

	// Action-rule thresholds, overridable per request.
	StaleSeconds  int
	ManualMinutes int
	DeviationPct  float64
}

// Load builds the configuration from the environment.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPass:     getEnv("REDIS_PASSWORD", ""),
		NetworkFile:   getEnv("NETWORK_FILE", "network.yml"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Env:           getEnv("GO_ENV", "development"),
		DefaultSeed:   getEnvInt64("DEFAULT_SEED", 10),
		StaleSeconds:  int(getEnvInt64("STALE_THRESHOLD_S", 600)),
		ManualMinutes: int(getEnvInt64("MANUAL_THRESHOLD_MIN", 120)),
		DeviationPct:  getEnvFloat("DEVIATION_THRESHOLD_PCT", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
