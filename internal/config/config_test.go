package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		HTTPAddr:        ":8080",
		ShutdownTimeout: 10 * time.Second,
		DBDriver:        DriverSQLite,
		DBPath:          "./data/qash.db",
		JWTKey:          "0123456789abcdef0123456789abcdef",
		JWTIssuer:       "qash",
		JWTTTL:          24 * time.Hour,
		BcryptCost:      10,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errorString string
	}{
		{name: "valid sqlite config", mutate: func(*Config) {}},
		{name: "valid memory config", mutate: func(c *Config) { c.DBDriver = DriverMemory; c.DBPath = "" }},
		{
			name:   "valid postgres config",
			mutate: func(c *Config) { c.DBDriver = DriverPostgres; c.DatabaseURL = "postgres://qash@localhost/qash" },
		},
		{
			name:        "postgres without url",
			mutate:      func(c *Config) { c.DBDriver = DriverPostgres },
			errorString: "DATABASE_URL is required when using the postgres driver",
		},
		{
			name:        "unknown driver",
			mutate:      func(c *Config) { c.DBDriver = "mysql" },
			errorString: "invalid DB_DRIVER 'mysql'",
		},
		{
			name:        "short jwt key",
			mutate:      func(c *Config) { c.JWTKey = "short" },
			errorString: "JWT_KEY must be at least 32 bytes",
		},
		{
			name:        "bcrypt cost out of range",
			mutate:      func(c *Config) { c.BcryptCost = 99 },
			errorString: "invalid BCRYPT_COST 99",
		},
		{
			name:        "non-positive ttl",
			mutate:      func(c *Config) { c.JWTTTL = 0 },
			errorString: "invalid JWT_TTL 0s: must be positive",
		},
		{
			name:        "unknown log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			errorString: "invalid LOG_FORMAT 'xml'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_ValidateReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.JWTKey = ""
	cfg.JWTIssuer = " "
	cfg.HTTPAddr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_ADDR cannot be empty")
	assert.Contains(t, err.Error(), "JWT_KEY must be at least")
	assert.Contains(t, err.Error(), "JWT_ISSUER cannot be empty")
}

func TestLoad(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("JWT_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "qash", cfg.JWTIssuer)
	assert.True(t, cfg.CookieSecure)
	assert.NoError(t, cfg.Validate())
}
