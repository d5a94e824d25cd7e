// Package config loads server settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Storage drivers accepted in DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// MinJWTKeyLength is the shortest accepted HS256 signing key, in bytes.
const MinJWTKeyLength = 32

type Config struct {
	// HTTP server
	HTTPAddr        string
	ShutdownTimeout time.Duration
	// CookieSecure marks the page session cookie Secure; set it behind TLS.
	CookieSecure bool

	// Storage
	DBDriver    string
	DBPath      string
	DatabaseURL string

	// Auth
	JWTKey     string
	JWTIssuer  string
	JWTTTL     time.Duration
	BcryptCost int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and the process environment. Values already
// set in the environment win over .env.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	return &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CookieSecure:    getEnvBool("COOKIE_SECURE", false),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBPath:      getEnv("DB_PATH", "./data/qash.db"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTKey:     getEnv("JWT_KEY", ""),
		JWTIssuer:  getEnv("JWT_ISSUER", "qash"),
		JWTTTL:     getEnvDuration("JWT_TTL", 24*time.Hour),
		BcryptCost: getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.HTTPAddr == "" {
		problems = append(problems, "HTTP_ADDR cannot be empty")
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid SHUTDOWN_TIMEOUT %s: must be positive", c.ShutdownTimeout))
	}

	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			problems = append(problems, "DB_PATH cannot be empty when using the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when using the postgres driver")
		}
	case DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid DB_DRIVER '%s': must be one of %v", c.DBDriver,
			[]string{DriverSQLite, DriverPostgres, DriverMemory}))
	}

	if len(c.JWTKey) < MinJWTKeyLength {
		problems = append(problems, fmt.Sprintf("JWT_KEY must be at least %d bytes", MinJWTKeyLength))
	}
	if strings.TrimSpace(c.JWTIssuer) == "" {
		problems = append(problems, "JWT_ISSUER cannot be empty")
	}
	if c.JWTTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid JWT_TTL %s: must be positive", c.JWTTTL))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		problems = append(problems, fmt.Sprintf("invalid BCRYPT_COST %d: must be between %d and %d",
			c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT '%s': must be text or json", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("Ignoring invalid integer setting", "key", key, "value", value)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Ignoring invalid duration setting", "key", key, "value", value)
		return fallback
	}
	return d
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("Ignoring invalid boolean setting", "key", key, "value", value)
		return fallback
	}
	return b
}
