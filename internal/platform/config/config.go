package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config captures everything main needs to wire the gateway. Endpoint URL,
// transport security, and timeouts are deployment configuration, not core
// logic.
type Config struct {
	Addr          string
	JWTSigningKey string

	// Reservation backend.
	BackendURL     string
	BackendTimeout time.Duration

	DatabaseURL string
	RedisURL    string

	// Cache TTLs. Sector listings and sales reports are the read-heavy
	// idempotent upstream calls worth caching.
	SectorCacheTTL time.Duration
	ReportCacheTTL time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
// A local .env file is honored when present.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Addr:           getenv("AIRLINES_API_ADDR", ":8080"),
		JWTSigningKey:  getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		BackendURL:     getenv("BACKEND_URL", "http://localhost:8090/booking"),
		BackendTimeout: getduration("BACKEND_TIMEOUT", 30*time.Second),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		SectorCacheTTL: getduration("SECTOR_CACHE_TTL", 15*time.Minute),
		ReportCacheTTL: getduration("REPORT_CACHE_TTL", 15*time.Minute),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
