// Package config loads runtime configuration from the environment, with an
// optional .env file for local development. Command-line flags on the binary
// take precedence over environment values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when neither flags nor environment provide a value.
const (
	DefaultAddr     = ":8080"
	DefaultDBPath   = "logitrack.sqlite3"
	DefaultCacheTTL = 30 * time.Second
)

// Config holds all runtime settings.
type Config struct {
	Addr      string
	DBPath    string
	AdminUser string

	// JWTSecret overrides the secret persisted in the settings table.
	// Leave empty to use (or generate) the stored one.
	JWTSecret string

	LogLevel    string
	LogEncoding string

	CacheTTL time.Duration

	// RequireAuthForWrites gates adding inventory and creating orders behind
	// an authenticated user instead of allowing anonymous callers.
	RequireAuthForWrites bool

	// StrictStock rejects orders that would drive a quantity negative.
	StrictStock bool
}

// Load reads configuration from a .env file (if present) and LOGITRACK_*
// environment variables. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	cfg := &Config{
		Addr:        envOr("LOGITRACK_ADDR", DefaultAddr),
		DBPath:      envOr("LOGITRACK_DB_PATH", DefaultDBPath),
		AdminUser:   envOr("LOGITRACK_ADMIN_USER", "Admin"),
		JWTSecret:   os.Getenv("LOGITRACK_JWT_SECRET"),
		LogLevel:    envOr("LOGITRACK_LOG_LEVEL", "info"),
		LogEncoding: envOr("LOGITRACK_LOG_ENCODING", "console"),
		CacheTTL:    DefaultCacheTTL,
	}

	if v := os.Getenv("LOGITRACK_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing LOGITRACK_CACHE_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("LOGITRACK_CACHE_TTL must be positive, got %s", ttl)
		}
		cfg.CacheTTL = ttl
	}

	var err error
	if cfg.RequireAuthForWrites, err = envBool("LOGITRACK_REQUIRE_AUTH_WRITES"); err != nil {
		return nil, err
	}
	if cfg.StrictStock, err = envBool("LOGITRACK_STRICT_STOCK"); err != nil {
		return nil, err
	}

	if cfg.LogEncoding != "console" && cfg.LogEncoding != "json" {
		return nil, fmt.Errorf("LOGITRACK_LOG_ENCODING must be console or json, got %q", cfg.LogEncoding)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", key, err)
	}
	return b, nil
}
