package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, "appointments.events", cfg.KafkaTopic)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_EnvAliases(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "s3cret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("APP_JWT_TTL", "2h")
	t.Setenv("ADMIN_EMAIL", "  Boss@Example.com ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "boss@example.com", cfg.AdminEmail)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "s3cret")
	t.Setenv("APP_CACHE_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.ttl")
}
