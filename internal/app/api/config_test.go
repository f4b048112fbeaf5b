package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "GRAPHQL_PORT", "GRPC_PORT", "POSTGRES_DSN", "REDIS_URL",
	"ADOPTION_LOCK_TTL_SECONDS", "ADOPTION_REVERSE_ON_REMOVAL", "EVENTS_BROKER",
	"KAFKA_BROKERS", "KAFKA_TOPIC", "RABBITMQ_URL", "RABBITMQ_QUEUE",
	"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED", "CORS_ALLOWED_ORIGINS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.Equal(t, "4000", cfg.GraphQLPort)
	assert.Equal(t, "5000", cfg.GRPCPort)
	assert.Equal(t, 10*time.Second, cfg.AdoptionLockTTL)
	assert.False(t, cfg.AdoptionReverseOnRemoval)
	assert.Equal(t, BrokerNone, cfg.EventsBroker)
	assert.Equal(t, "adoption-events", cfg.KafkaTopic)
	assert.Equal(t, "adoption-events", cfg.RabbitMQQueue)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.TemporalDisabled)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("ADOPTION_LOCK_TTL_SECONDS", "30")
	t.Setenv("ADOPTION_REVERSE_ON_REMOVAL", "true")
	t.Setenv("EVENTS_BROKER", "Kafka")
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	t.Setenv("TEMPORAL_DISABLED", "1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.AdoptionLockTTL)
	assert.True(t, cfg.AdoptionReverseOnRemoval)
	assert.Equal(t, BrokerKafka, cfg.EventsBroker)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"non numeric port":      {"GRPC_PORT": "grpc"},
		"out of range port":     {"HTTP_PORT": "70000"},
		"non numeric lock ttl":  {"ADOPTION_LOCK_TTL_SECONDS": "ten"},
		"zero lock ttl":         {"ADOPTION_LOCK_TTL_SECONDS": "0"},
		"unknown broker":        {"EVENTS_BROKER": "nats"},
		"kafka without brokers": {"EVENTS_BROKER": "kafka"},
		"rabbit without url":    {"EVENTS_BROKER": "rabbitmq"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
