package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTTL(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"30d", 30 * 24 * time.Hour},
		{"1d", 24 * time.Hour},
		{"15m", 15 * time.Minute},
		{"12h", 12 * time.Hour},
		{"90s", 90 * time.Second},
	}

	for _, tt := range tests {
		got, err := ParseTTL(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseTTLInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "xd", "1w"} {
		_, err := ParseTTL(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestLoadDevDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction())
	assert.NotEmpty(t, cfg.AccessSecret)
	assert.NotEmpty(t, cfg.RefreshSecret)
	assert.Equal(t, DefaultAccessTokenTTL, cfg.AccessTokenTTL)
	assert.Equal(t, DefaultRefreshTokenTTL, cfg.RefreshTokenTTL)
}

func TestLoadProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_TTL", "7d")
	assert.Equal(t, 7*24*time.Hour, GetEnvAsDuration("TEST_TTL", time.Minute))

	t.Setenv("TEST_TTL", "nonsense")
	assert.Equal(t, time.Minute, GetEnvAsDuration("TEST_TTL", time.Minute))

	assert.Equal(t, time.Minute, GetEnvAsDuration("TEST_TTL_UNSET", time.Minute))
}
