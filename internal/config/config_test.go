package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validRateLimit = RateLimitConfig{RequestsPerSecond: 10, Burst: 20, AuthPerMinute: 10, UploadsPerMinute: 10}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("API_PORT", "")
	t.Setenv("OTEL_EXPORTER", "")
	t.Setenv("EVENTS_API_TIMEOUT_MS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 3000, cfg.Events.TimeoutMS)
	assert.Equal(t, "none", cfg.Telemetry.Exporter)
}

func TestLoadHonoursAPIPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("API_PORT", "6100")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("OTEL_EXPORTER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "6100", cfg.Server.Port)
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		Database:    DatabaseConfig{Driver: "postgres", Password: "pw"},
		JWT:         JWTConfig{SecretKey: defaultJWTSecret},
		Telemetry:   TelemetryConfig{Exporter: "none"},
		RateLimit:   validRateLimit,
	}
	assert.Error(t, cfg.Validate())

	cfg.JWT.SecretKey = "a-real-secret"
	assert.NoError(t, cfg.Validate())

	cfg.Database.Password = ""
	assert.Error(t, cfg.Validate())

	cfg.Database.URL = "postgres://u:p@db/karya"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{
		Database:  DatabaseConfig{Driver: "sqlite"},
		Telemetry: TelemetryConfig{Exporter: "none"},
	}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveRateLimits(t *testing.T) {
	base := Config{
		Database:  DatabaseConfig{Driver: "memory"},
		Telemetry: TelemetryConfig{Exporter: "none"},
		RateLimit: validRateLimit,
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*RateLimitConfig)
	}{
		{"zero rps", func(r *RateLimitConfig) { r.RequestsPerSecond = 0 }},
		{"negative rps", func(r *RateLimitConfig) { r.RequestsPerSecond = -1 }},
		{"zero burst", func(r *RateLimitConfig) { r.Burst = 0 }},
		{"zero auth per minute", func(r *RateLimitConfig) { r.AuthPerMinute = 0 }},
		{"zero uploads per minute", func(r *RateLimitConfig) { r.UploadsPerMinute = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg.RateLimit)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRejectsZeroRPS(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("OTEL_EXPORTER", "")
	t.Setenv("RATE_LIMIT_RPS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Database: "karya", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=karya sslmode=disable", d.DSN())

	d.URL = "postgres://x"
	assert.Equal(t, "postgres://x", d.DSN())
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,,")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil))
}
