package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, devSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 15*time.Minute, cfg.Auth.LoginWindow())
	assert.Equal(t, 5, cfg.Auth.LoginMaxAttempts)
	assert.True(t, cfg.App.IsDevelopment())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("AUTH_JWT_SECRET", "from-env")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "2")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, "127.0.0.1:9000", cfg.App.Addr())
	assert.Equal(t, time.Duration(0), cfg.App.RequestTimeout())
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_RequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_DB")
}

func TestGetEnvAsInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))

	t.Setenv("SOME_BOOL", "maybe")
	assert.True(t, getEnvAsBool("SOME_BOOL", true))
}
