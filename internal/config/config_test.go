package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key-must-be-at-least-32-characters-long"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "library.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Minute, cfg.JWT.Expiry)
	assert.Equal(t, 24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, 10, cfg.RateLimit.LoginPerMinute)
	assert.Empty(t, cfg.Redis.URL)
}

func TestLoad_OracleRequiresConnectionFields(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DB_DRIVER", "ORACLE")

	_, err := Load("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestValidate_ShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := Load("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestValidate_UnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DB_DRIVER", "mongodb")

	_, err := Load("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{App: AppConfig{Env: "prod"}}).IsProduction())
	assert.True(t, (&Config{App: AppConfig{Env: "production"}}).IsProduction())
	assert.False(t, (&Config{App: AppConfig{Env: "local"}}).IsProduction())
	assert.True(t, (&Config{App: AppConfig{Env: "dev"}}).IsDevelopment())
}
