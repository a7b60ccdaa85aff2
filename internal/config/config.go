package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	RedisURL   string
	JWTSecret  string
	JWTExpiry  time.Duration
	// LoginDelay is the simulated backend round-trip applied to every
	// login attempt. It models network latency for the SPA and is set
	// to zero in tests.
	LoginDelay time.Duration
	// SessionSlot is the Redis key of the single persisted session
	// record. The portal never holds more than one identity at a time.
	SessionSlot string
	SessionTTL  time.Duration
	// LoginRatePerMinute caps login attempts per client IP.
	LoginRatePerMinute int
	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "pretty"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:          getEnv("JWT_SECRET", "change-this-to-a-secure-random-string"),
		JWTExpiry:          time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		LoginDelay:         time.Duration(getEnvInt("LOGIN_DELAY_MS", 1000)) * time.Millisecond,
		SessionSlot:        getEnv("SESSION_SLOT", "svu_user"),
		SessionTTL:         time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 30),
		AllowedOrigins:     parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
