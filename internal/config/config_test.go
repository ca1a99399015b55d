package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mgirard/lux-rentals/api/internal/config"
)

// TestLoad_defaults verifies that optional env vars fall back to their defaults
// when only the required JWT_SECRET is provided.
func TestLoad_defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, "test-secret", cfg.JWTSecret)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, "admin@lux-rentals.example", cfg.AdminEmail)
	require.Empty(t, cfg.AdminPassword)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "another-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	t.Setenv("ADMIN_PASSWORD", "changeme")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, "redis:6380", cfg.RedisAddr)
	require.Equal(t, "hunter2", cfg.RedisPassword)
	require.Equal(t, 45*time.Minute, cfg.SessionTTL)
	require.Equal(t, "root@example.com", cfg.AdminEmail)
	require.Equal(t, "changeme", cfg.AdminPassword)
}

// TestLoad_missingRequired verifies that an error is returned when JWT_SECRET
// is not set, and that the error message names the missing variable.
func TestLoad_missingRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "JWT_SECRET")
}

// TestLoad_invalidSessionTTL verifies that a malformed SESSION_TTL is rejected
// rather than silently defaulted.
func TestLoad_invalidSessionTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SESSION_TTL", "not-a-duration")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "SESSION_TTL")
}
