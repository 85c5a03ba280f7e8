package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret     string
	JWTExpiration time.Duration

	// CORS
	CORSAllowedOrigins []string

	// Uploads (evenement posters)
	StoragePath string

	// Live match tuning. The windows are historical values carried over
	// from the old site, kept configurable rather than re-derived.
	GraceWindow          time.Duration // starts later than kickoff+grace are back-dated
	LiveVisibilityWindow time.Duration // "bezig" fallback after an untracked kickoff
	StartWindow          time.Duration // how far before kickoff a start is offered
	TickInterval         time.Duration // live snapshot broadcast period
}

func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:            getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiration:        parseDuration(getEnv("JWT_EXPIRATION", "24h"), 24*time.Hour),
		CORSAllowedOrigins:   splitEnv(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		StoragePath:          getEnv("STORAGE_PATH", "./storage"),
		GraceWindow:          parseDuration(getEnv("LATE_START_GRACE", "10m"), 10*time.Minute),
		LiveVisibilityWindow: parseDuration(getEnv("LIVE_VISIBILITY_WINDOW", "150m"), 150*time.Minute),
		StartWindow:          parseDuration(getEnv("START_WINDOW", "30m"), 30*time.Minute),
		TickInterval:         parseDuration(getEnv("TICK_INTERVAL", "1s"), time.Second),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func splitEnv(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
