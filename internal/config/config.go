// Package config loads and validates application configuration from
// environment variables, with optional .env file support for local
// development.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RedisAddr is the host:port of the Redis instance that holds the
	// snapshot blobs and session records. Defaults to "localhost:6379".
	RedisAddr string

	// RedisPassword is the Redis AUTH password. Empty means no auth.
	RedisPassword string

	// JWTSecret signs session tokens. Required.
	JWTSecret string

	// SessionTTL is how long a session (and its bearer token) stays valid.
	// Defaults to 24h. Set SESSION_TTL to any time.ParseDuration string.
	SessionTTL time.Duration

	// AdminEmail and AdminPassword seed the administrator account on first
	// boot, when the user directory blob is empty. Seeding is skipped when
	// AdminPassword is empty.
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment and returns a Config.
// A .env file in the working directory is loaded first if present, so local
// development does not need exported variables.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// Missing .env is the normal case in production; ignore the error.
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@lux-rentals.example"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	var missing []string

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	ttl := getEnv("SESSION_TTL", "24h")
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
	}
	cfg.SessionTTL = d

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
