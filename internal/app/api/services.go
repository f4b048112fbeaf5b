package api

import (
	"context"
	"errors"
	"log/slog"

	adoptionsevents "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/events"
	adoptionsmemory "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/memory"
	adoptionsobs "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/observability"
	adoptionsredis "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/redis"
	adoptionsworkflows "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/workflows"
	adoptionsapp "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adoptionports "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petsobs "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/observability"
	petsapp "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application"
	petports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
	usersobs "github.com/Apurer/go-gin-adoption-api/internal/domains/users/adapters/observability"
	usersapp "github.com/Apurer/go-gin-adoption-api/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/kafka"
	platformobservability "github.com/Apurer/go-gin-adoption-api/internal/platform/observability"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/rabbitmq"
	platformredis "github.com/Apurer/go-gin-adoption-api/internal/platform/redis"
	platformtemporal "github.com/Apurer/go-gin-adoption-api/internal/platform/temporal"
)

// Services are the decorated application services every transport calls.
type Services struct {
	Pets      petports.Service
	Users     userports.Service
	Adoptions adoptionports.Service
}

type closers []func()

func (c *closers) add(fn func()) { *c = append(*c, fn) }

func (c closers) closeAll() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// BuildServices wires the three bounded contexts on top of stores. Optional infrastructure
// that is not configured or unreachable is replaced by its in-process counterpart.
func BuildServices(ctx context.Context, cfg Config, stores Stores, instruments *platformobservability.Instruments) (Services, func()) {
	logger := instruments.Logger
	var cleanup closers

	petService := petsobs.New(
		petsapp.NewService(stores.Pets),
		petsobs.WithLogger(instruments.ScopedLogger(platformobservability.ScopePets)),
		petsobs.WithTracer(instruments.Tracer(platformobservability.ScopePets)),
		petsobs.WithMeter(instruments.Meter(platformobservability.ScopePets)),
	)
	userService := usersobs.New(
		usersapp.NewService(stores.Users, stores.Pets),
		usersobs.WithLogger(instruments.ScopedLogger(platformobservability.ScopeUsers)),
		usersobs.WithTracer(instruments.Tracer(platformobservability.ScopeUsers)),
		usersobs.WithMeter(instruments.Meter(platformobservability.ScopeUsers)),
	)

	sagaOpts := []adoptionsapp.SagaOption{}
	if stores.UnitOfWork != nil {
		sagaOpts = append(sagaOpts, adoptionsapp.WithUnitOfWork(stores.UnitOfWork))
	}
	saga := adoptionsapp.NewSaga(stores.Adoption(), sagaOpts...)

	opts := []adoptionsapp.Option{
		adoptionsapp.WithLogger(logger),
		adoptionsapp.WithLocker(buildLocker(ctx, cfg, logger, &cleanup)),
		adoptionsapp.WithPublisher(buildPublisher(ctx, cfg, logger, &cleanup)),
		adoptionsapp.WithReversalOnRemoval(cfg.AdoptionReverseOnRemoval),
	}
	if orchestrator := buildOrchestrator(cfg, stores, instruments, &cleanup); orchestrator != nil {
		opts = append(opts, adoptionsapp.WithOrchestrator(orchestrator))
	}
	adoptionService := adoptionsobs.New(
		adoptionsapp.NewService(saga, opts...),
		adoptionsobs.WithLogger(instruments.ScopedLogger(platformobservability.ScopeAdoptions)),
		adoptionsobs.WithTracer(instruments.Tracer(platformobservability.ScopeAdoptions)),
		adoptionsobs.WithMeter(instruments.Meter(platformobservability.ScopeAdoptions)),
	)

	return Services{Pets: petService, Users: userService, Adoptions: adoptionService}, cleanup.closeAll
}

// OpenLocker returns the per-pet adoption lock for processes outside the API, such as the
// reconciler. Without Redis the lock only covers the calling process.
func OpenLocker(ctx context.Context, cfg Config, logger *slog.Logger) (adoptionports.Locker, func()) {
	var cleanup closers
	locker := buildLocker(ctx, cfg, logger, &cleanup)
	return locker, cleanup.closeAll
}

func buildLocker(ctx context.Context, cfg Config, logger *slog.Logger, cleanup *closers) adoptionports.Locker {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, serialising adoptions in process")
		return adoptionsmemory.NewLocker()
	}
	client, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, serialising adoptions in process", slog.String("error", err.Error()))
		return adoptionsmemory.NewLocker()
	}
	cleanup.add(func() { _ = client.Close() })
	logger.Info("adoption lock configured with redis", slog.Duration("ttl", cfg.AdoptionLockTTL))
	return adoptionsredis.NewLocker(client.Client, cfg.AdoptionLockTTL)
}

func buildPublisher(ctx context.Context, cfg Config, logger *slog.Logger, cleanup *closers) adoptionports.EventPublisher {
	switch cfg.EventsBroker {
	case BrokerKafka:
		producer, err := kafka.New(kafka.Config{Brokers: cfg.KafkaBrokers, Acks: "all"}, logger)
		if err != nil {
			logger.Warn("kafka unavailable, logging adoption events only", slog.String("error", err.Error()))
			break
		}
		if err := producer.Ping(ctx); err != nil {
			_ = producer.Close()
			logger.Warn("kafka unreachable, logging adoption events only", slog.String("error", err.Error()))
			break
		}
		cleanup.add(func() { _ = producer.Close() })
		logger.Info("adoption events published to kafka", slog.String("topic", cfg.KafkaTopic))
		return adoptionsevents.NewKafkaPublisher(producer, cfg.KafkaTopic)
	case BrokerRabbitMQ:
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			logger.Warn("rabbitmq unavailable, logging adoption events only", slog.String("error", err.Error()))
			break
		}
		cleanup.add(func() { _ = publisher.Close() })
		logger.Info("adoption events published to rabbitmq", slog.String("queue", publisher.Queue()))
		return adoptionsevents.NewRabbitPublisher(publisher)
	}
	return adoptionsevents.NewLogPublisher(logger)
}

// buildOrchestrator returns nil when adoptions must run inline. The worker only sees shared
// stores, so the durable workflow is never used with in-memory repositories.
func buildOrchestrator(cfg Config, stores Stores, instruments *platformobservability.Instruments, cleanup *closers) adoptionports.WorkflowOrchestrator {
	logger := instruments.Logger
	var reason error
	switch {
	case cfg.TemporalDisabled:
		reason = errors.New("temporal disabled via TEMPORAL_DISABLED env")
	case !stores.Durable:
		reason = errors.New("durable workflows require postgres")
	}
	if reason != nil {
		logger.Warn("Temporal workflows unavailable, running adoptions inline", slog.String("error", reason.Error()))
		return nil
	}
	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
		Tracer:    instruments.Tracer(platformobservability.ScopeWorkflowClient),
	})
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running adoptions inline", slog.String("error", err.Error()))
		return nil
	}
	cleanup.add(temporalClient.Close)
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return adoptionsworkflows.NewTemporalAdoptionWorkflows(temporalClient)
}
