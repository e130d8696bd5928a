package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the single source of runtime settings. The original deployment
// kept separate local and hosted database configs; here one loader builds
// either from LOCAL_DEV.
type Config struct {
	Addr        string
	DSN         string
	AutoMigrate bool
	JWTSecret   string

	LogLevel  string
	LogFormat string

	SessionBackend string // "memory" or "redis"
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	GeocodeBaseURL string
	GeocodeTimeout time.Duration

	AdminPassword string
}

func loadConfig() Config {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := Config{
		Addr:           envOr("ADDR", ":8081"),
		AutoMigrate:    envBool("DB_AUTO_MIGRATE", true),
		JWTSecret:      envOr("JWT_SECRET", "dev-insecure-secret-change"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "console"),
		SessionBackend: envOr("SESSION_BACKEND", "memory"),
		SessionTTL:     envDuration("SESSION_TTL", 12*time.Hour),
		RedisAddr:      envOr("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		GeocodeBaseURL: envOr("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeTimeout: envDuration("GEOCODE_TIMEOUT", 10*time.Second),
		AdminPassword:  envOr("ADMIN_PASSWORD", "admin123"),
	}
	cfg.DSN = buildDSN()
	return cfg
}

// buildDSN prefers an explicit DB_DSN; otherwise it assembles one from the
// per-part variables, using the LOCAL_* set when LOCAL_DEV=1 (local postgres,
// ssl off) and the hosted set otherwise (ssl required).
func buildDSN() string {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		return dsn
	}
	prefix, sslmode := "DB", "require"
	if envBool("LOCAL_DEV", false) {
		prefix, sslmode = "LOCAL_DB", "disable"
	}
	host := envOr(prefix+"_HOST", "127.0.0.1")
	port := envOr(prefix+"_PORT", "5432")
	user := envOr(prefix+"_USER", "postgres")
	pass := os.Getenv(prefix + "_PASSWORD")
	name := envOr(prefix+"_NAME", "agri_census")
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, sslmode)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
