package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

// Event broker selections for EVENTS_BROKER.
const (
	BrokerNone     = "none"
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
)

// Config carries environment-driven settings for the API, worker and reconciler processes.
type Config struct {
	HTTPPort    string
	GraphQLPort string
	GRPCPort    string

	PostgresDSN string
	RedisURL    string

	AdoptionLockTTL          time.Duration
	AdoptionReverseOnRemoval bool

	EventsBroker  string
	KafkaBrokers  string
	KafkaTopic    string
	RabbitMQURL   string
	RabbitMQQueue string

	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool

	CORSAllowedOrigins []string
}

// LoadConfig loads an optional .env file, reads environment variables, applies defaults,
// and validates basic constraints.
func LoadConfig() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:                 envDefault("HTTP_PORT", "3000"),
		GraphQLPort:              envDefault("GRAPHQL_PORT", "4000"),
		GRPCPort:                 envDefault("GRPC_PORT", "5000"),
		PostgresDSN:              strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisURL:                 strings.TrimSpace(os.Getenv("REDIS_URL")),
		AdoptionLockTTL:          10 * time.Second,
		AdoptionReverseOnRemoval: isTruthy(os.Getenv("ADOPTION_REVERSE_ON_REMOVAL")),
		EventsBroker:             strings.ToLower(envDefault("EVENTS_BROKER", BrokerNone)),
		KafkaBrokers:             strings.TrimSpace(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:               envDefault("KAFKA_TOPIC", "adoption-events"),
		RabbitMQURL:              strings.TrimSpace(os.Getenv("RABBITMQ_URL")),
		RabbitMQQueue:            envDefault("RABBITMQ_QUEUE", "adoption-events"),
		TemporalAddress:          envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:        envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:         isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		CORSAllowedOrigins:       splitList(envDefault("CORS_ALLOWED_ORIGINS", "*")),
	}
	for key, port := range map[string]string{"HTTP_PORT": cfg.HTTPPort, "GRAPHQL_PORT": cfg.GraphQLPort, "GRPC_PORT": cfg.GRPCPort} {
		if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
			return Config{}, fmt.Errorf("%s must be a valid port number, got %q", key, port)
		}
	}
	if raw := strings.TrimSpace(os.Getenv("ADOPTION_LOCK_TTL_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("ADOPTION_LOCK_TTL_SECONDS must be a positive integer, got %q", raw)
		}
		cfg.AdoptionLockTTL = time.Duration(seconds) * time.Second
	}
	switch cfg.EventsBroker {
	case BrokerNone:
	case BrokerKafka:
		if cfg.KafkaBrokers == "" {
			return Config{}, fmt.Errorf("KAFKA_BROKERS is required when EVENTS_BROKER=kafka")
		}
	case BrokerRabbitMQ:
		if cfg.RabbitMQURL == "" {
			return Config{}, fmt.Errorf("RABBITMQ_URL is required when EVENTS_BROKER=rabbitmq")
		}
	default:
		return Config{}, fmt.Errorf("EVENTS_BROKER must be one of none, kafka, rabbitmq, got %q", cfg.EventsBroker)
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
