package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8007, cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 720, cfg.GuestWishlistTTL)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.BackendBaseURL)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("WISHLIST_HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidGuestTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GUEST_WISHLIST_TTL_HOURS", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid guest wishlist TTL")
}

func TestLoad_InvalidBackendURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("WISHLIST_BACKEND_URL", "localhost:8080")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid wishlist backend URL")
}

func TestLoad_InvalidBreakerRatio(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BREAKER_FAILURE_RATIO", "1.5")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "BREAKER_FAILURE_RATIO")
}

func TestLoad_CustomRedisAddr(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_ADDR", "redis.prod:6380")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "redis.prod:6380", cfg.RedisAddr)
}

func TestLoad_KafkaBrokerList(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
}
