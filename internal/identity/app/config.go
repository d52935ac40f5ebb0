package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/gatehouselabs/gatehouse/pkg/jwtx"
)

type Config struct {
	SigningKey []byte // Required: HS256 signing key, at least 32 bytes
	Issuer     string // Issuer claim for tokens (default: gatehouse)
	Audience   string // Audience claim for tokens (default: gatehouse-api)

	AccessTTL  time.Duration // Access token lifetime, whole minutes in the environment (default: 60m)
	RefreshTTL time.Duration // Refresh token lifetime, whole days in the environment (default: 7d)

	DatabaseFile         string        // Path to SQLite database file (default: ./identity.db)
	PepperFile           string        // Path to pepper file for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired token sweep interval (default: 1h)
}

// LoadConfig reads the configuration from the environment. Validate catches
// the fatal cases; a missing signing key must stop startup rather than fall
// back to anything.
func LoadConfig() Config {
	return Config{
		SigningKey: []byte(os.Getenv("IDENTITY_SIGNING_KEY")),
		Issuer:     getEnvOrDefault("IDENTITY_ISSUER", "gatehouse"),
		Audience:   getEnvOrDefault("IDENTITY_AUDIENCE", "gatehouse-api"),

		AccessTTL: time.Duration(getEnvIntOrDefault("IDENTITY_ACCESS_TTL_MIN",
			int(jwtx.DefaultAccessTokenTTL/time.Minute))) * time.Minute,
		RefreshTTL: time.Duration(getEnvIntOrDefault("IDENTITY_REFRESH_TTL_DAYS",
			int(jwtx.DefaultRefreshTokenTTL/(24*time.Hour)))) * 24 * time.Hour,

		DatabaseFile:         getEnvOrDefault("IDENTITY_DATABASE_FILE", "identity.db"),
		PepperFile:           getEnvOrDefault("IDENTITY_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate rejects configurations the service must not start with.
func (cfg Config) Validate() error {
	if len(cfg.SigningKey) < jwtx.MinKeyBytes {
		return errors.New("IDENTITY_SIGNING_KEY must be set and at least 32 bytes")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
