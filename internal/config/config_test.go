package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "tutor-board")
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{"DB_HOST", "DB_PORT", "DB_SSL_MODE", "REDIS_HOST", "REDIS_PORT", "REDIS_TTL", "DEMAND_SOURCE_URL", "DEMAND_FETCH_TIMEOUT", "DEMAND_TIMEZONE", "MIGRATIONS_DIR"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, "migrations", cfg.App.MigrationsDir)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, "5432", cfg.Database.DBPort)
	assert.Equal(t, "disable", cfg.Database.DBSSLMode)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.Feed.SourceURL)
	assert.Equal(t, 5*time.Second, cfg.Feed.FetchTimeout)
	assert.Equal(t, time.Local, cfg.Feed.TimeZone)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_POOL_MAX_CONNS", "8")
	t.Setenv("REDIS_TTL", "30")
	t.Setenv("DEMAND_SOURCE_URL", "https://feed.example.com")
	t.Setenv("DEMAND_FETCH_TIMEOUT", "2")
	t.Setenv("INTERNAL_TOKEN", " secret ")
	t.Setenv("DEMAND_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, int32(8), cfg.Database.PoolMaxConns)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "https://feed.example.com", cfg.Feed.SourceURL)
	assert.Equal(t, 2*time.Second, cfg.Feed.FetchTimeout)
	assert.Equal(t, "secret", cfg.App.InternalToken)
	assert.Equal(t, "UTC", cfg.Feed.TimeZone.String())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("DEMAND_FETCH_TIMEOUT", "soon")

	_, err := Load()
	require.ErrorIs(t, err, errInvalidEnv)
	assert.Contains(t, err.Error(), "DEMAND_FETCH_TIMEOUT")
}

func TestLoad_InvalidTimeZone(t *testing.T) {
	setRequired(t)
	t.Setenv("DEMAND_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	require.ErrorIs(t, err, errInvalidEnv)
	assert.Contains(t, err.Error(), "DEMAND_TIMEZONE")
}
