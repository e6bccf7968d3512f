package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVICE_NAME", "ENV", "LOG_LEVEL", "ESCHER_BASE_URL", "ESCHER_HTTP_TIMEOUT",
		"ESCHER_RATE_LIMIT_RPS", "ESCHER_RATE_LIMIT_BURST", "AWS_REGION",
		"CACHE_TTL", "CACHE_CLEANUP_FREQ",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "escher-client", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://api.escher.example", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Equal(t, 1, cfg.RateLimitBurst)
	assert.Equal(t, "us-east-2", cfg.AWSRegion)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 10*time.Minute, cfg.CleanupFreq)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("ESCHER_BASE_URL", "https://escher.internal")
	t.Setenv("ESCHER_HTTP_TIMEOUT", "5s")
	t.Setenv("ESCHER_RATE_LIMIT_RPS", "2.5")
	t.Setenv("ESCHER_RATE_LIMIT_BURST", "4")

	cfg := Load()

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "https://escher.internal", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 1e-9)
	assert.Equal(t, 4, cfg.RateLimitBurst)
}

func TestGetEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_FLOAT", "1.2.3")
	t.Setenv("X_DUR", "soon")

	assert.Equal(t, 7, GetEnvInt("X_INT", 7))
	assert.InDelta(t, 0.5, GetEnvFloat("X_FLOAT", 0.5), 1e-9)
	assert.Equal(t, time.Minute, GetEnvDuration("X_DUR", time.Minute))
}
