package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds the runtime settings of the service, read from the environment.
type Config struct {
	Port string

	// DBPath is the SQLite file backing the user data cache.
	DBPath     string
	DBLogLevel string
	// QuotaBytes bounds the total size of cached records. Zero disables the quota.
	QuotaBytes int64
	// MaxBodyBytes caps a cache write request body.
	MaxBodyBytes int64

	APIURL string
	KeyTTL time.Duration

	JWTSecret         string
	JWTIssuer         string
	JWTAudience       string
	AdminPasswordHash string
}

const defaultMaxBodyBytes = 1 << 20

// BodyLimit is the largest cache write body accepted. A body larger than the
// whole quota can never be stored, so the quota tightens the limit.
func (c Config) BodyLimit() int64 {
	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	if c.QuotaBytes > 0 && c.QuotaBytes < limit {
		limit = c.QuotaBytes
	}
	return limit
}

// Load reads the configuration, falling back to development defaults.
func Load() Config {
	return Config{
		Port:              getEnv("PORT", ":8008"),
		DBPath:            getEnv("KITSUSTATS_DB_PATH", "kitsustats.db"),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		QuotaBytes:        getEnvInt64("KITSUSTATS_QUOTA_BYTES", 0),
		MaxBodyBytes:      getEnvInt64("KITSUSTATS_MAX_BODY_BYTES", defaultMaxBodyBytes),
		APIURL:            getEnv("API_URL", "http://localhost:8080"),
		KeyTTL:            getEnvDuration("ALGOLIA_KEY_TTL", 0),
		JWTSecret:         getEnv("JWT_SECRET", "development-insecure-secret-change-me"),
		JWTIssuer:         getEnv("JWT_ISSUER", "kitsustats-api"),
		JWTAudience:       getEnv("JWT_AUDIENCE", "kitsustats-clients"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		log.Printf("ignoring invalid %s=%q", key, v)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("ignoring invalid %s=%q", key, v)
		return fallback
	}
	return d
}
