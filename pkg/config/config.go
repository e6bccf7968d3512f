package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for an Escher client.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	BaseURL     string
	HTTPTimeout time.Duration

	// Zero disables client-side rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	// Credential lookup (AWS Secrets Manager, secret name {env}/{account}/escher).
	AWSRegion   string
	CacheTTL    time.Duration
	CleanupFreq time.Duration
}

// Load loads configuration from environment variables and optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName:    GetEnv("SERVICE_NAME", "escher-client"),
		Env:            GetEnv("ENV", "dev"),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		BaseURL:        GetEnv("ESCHER_BASE_URL", "https://api.escher.example"),
		HTTPTimeout:    GetEnvDuration("ESCHER_HTTP_TIMEOUT", 30*time.Second),
		RateLimitRPS:   GetEnvFloat("ESCHER_RATE_LIMIT_RPS", 0),
		RateLimitBurst: GetEnvInt("ESCHER_RATE_LIMIT_BURST", 1),
		AWSRegion:      GetEnv("AWS_REGION", "us-east-2"),
		CacheTTL:       GetEnvDuration("CACHE_TTL", 24*time.Hour),
		CleanupFreq:    GetEnvDuration("CACHE_CLEANUP_FREQ", 10*time.Minute),
	}
}
