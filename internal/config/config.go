package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port               string
	Environment        string
	LogLevel           slog.Level
	RedisURL           string
	TickInterval       time.Duration
	SessionIdleTimeout time.Duration

	// SessionTTL is how long a saved session survives in Redis without a
	// write. Idle eviction only frees the in-memory session; the save must
	// outlive it so players can resume.
	SessionTTL time.Duration
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:           getEnv("REDIS_URL", "localhost:6379"),
		TickInterval:       getDuration("TICK_INTERVAL", time.Second),
		SessionIdleTimeout: getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		SessionTTL:         getDuration("SESSION_TTL", 30*24*time.Hour),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
