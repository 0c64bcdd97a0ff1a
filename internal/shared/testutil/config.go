package testutil

import (
	"time"

	"github.com/marcellhenrique/LibrarySystem/internal/config"
)

const TestJWTSecret = "test-jwt-secret-key-must-be-at-least-32-characters-long"

// NewTestConfig creates a test configuration without environment variables
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "library-system-api-test",
			Env:  "test",
			Port: 8080,
		},
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			Path:            ":memory:",
			MaxIdleConns:    1,
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
			IsAutoMigrate:   true,
		},
		JWT: config.JWTConfig{
			Secret:        TestJWTSecret,
			Expiry:        5 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
		},
		RateLimit: config.RateLimitConfig{
			LoginPerMinute: 1000,
			LoginBurst:     1000,
		},
	}
}
