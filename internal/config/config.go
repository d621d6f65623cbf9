package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
	RefreshCookieName      = "refreshToken"
	RefreshCookiePath      = "/api/v1/auth/refresh"
)

// Config holds application-level settings loaded from the environment.
// Database and broker connection settings are read by their own packages.
type Config struct {
	Environment     string
	Port            string
	AccessSecret    []byte
	RefreshSecret   []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Load reads configuration from the environment. JWT secrets are required
// outside development.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:     GetEnv("APP_ENV", "development"),
		Port:            GetEnv("PORT", "8081"),
		AccessSecret:    []byte(os.Getenv("JWT_ACCESS_SECRET")),
		RefreshSecret:   []byte(os.Getenv("JWT_REFRESH_SECRET")),
		AccessTokenTTL:  GetEnvAsDuration("ACCESS_TOKEN_TTL", DefaultAccessTokenTTL),
		RefreshTokenTTL: GetEnvAsDuration("REFRESH_TOKEN_TTL", DefaultRefreshTokenTTL),
	}

	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		if cfg.Environment == "production" {
			return nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required in production")
		}
		if len(cfg.AccessSecret) == 0 {
			cfg.AccessSecret = []byte("dev-access-secret-change-me")
		}
		if len(cfg.RefreshSecret) == 0 {
			cfg.RefreshSecret = []byte("dev-refresh-secret-change-me")
		}
	}

	return cfg, nil
}

// IsProduction reports whether the app runs in production mode. Controls the
// Secure attribute on the refresh cookie among other things.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as int or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvAsDuration gets an environment variable as a duration or returns a
// default value. Accepts Go duration syntax plus a trailing "d" for days
// ("30d", "12h", "15m").
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := ParseTTL(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// ParseTTL parses a duration string, additionally accepting a day suffix
// which time.ParseDuration does not support.
func ParseTTL(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q: %w", s, err)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
