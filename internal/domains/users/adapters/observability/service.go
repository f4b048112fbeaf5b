package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	usertypes "github.com/Apurer/go-gin-adoption-api/internal/domains/users/application/types"
	userports "github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
)

const tracerName = "github.com/Apurer/go-gin-adoption-api/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) CreateUser(ctx context.Context, input usertypes.CreateUserInput) (*usertypes.UserProjection, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.CreateUser")
	defer span.End()
	result, err := s.inner.CreateUser(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create user")
	}
	span.SetAttributes(attribute.String("user.id", result.Entity.ID))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "user created", slog.String("user.id", result.Entity.ID))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, input usertypes.UserIdentifier) (*usertypes.UserProjection, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetByID", trace.WithAttributes(attribute.String("user.id", input.ID)))
	defer span.End()
	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load user", slog.String("user.id", input.ID))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*usertypes.UserProjection, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.List")
	defer span.End()
	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("user.result.count", len(result)))
	return result, nil
}

func (s *Service) Rename(ctx context.Context, input usertypes.RenameUserInput) (*usertypes.UserProjection, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Rename", trace.WithAttributes(attribute.String("user.id", input.ID)))
	defer span.End()
	result, err := s.inner.Rename(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to rename user", slog.String("user.id", input.ID))
	}
	s.metrics.recordUpdated(ctx)
	s.logInfo(ctx, "user renamed", slog.String("user.id", input.ID))
	return result, nil
}

func (s *Service) Verify(ctx context.Context, input usertypes.VerifyUserInput) (*usertypes.UserProjection, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Verify", trace.WithAttributes(attribute.String("user.id", input.ID)))
	defer span.End()
	result, err := s.inner.Verify(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to verify user", slog.String("user.id", input.ID))
	}
	s.metrics.recordVerified(ctx, result.Entity.CanAdopt)
	s.logInfo(ctx, "user verification changed",
		slog.String("user.id", input.ID),
		slog.Bool("user.can_adopt", result.Entity.CanAdopt),
	)
	return result, nil
}

func (s *Service) Delete(ctx context.Context, input usertypes.UserIdentifier) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Delete", trace.WithAttributes(attribute.String("user.id", input.ID)))
	defer span.End()
	if err := s.inner.Delete(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete user", slog.String("user.id", input.ID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "user deleted", slog.String("user.id", input.ID))
	return nil
}

func (s *Service) ListPets(ctx context.Context, input usertypes.UserIdentifier) ([]*usertypes.PetProjection, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.ListPets", trace.WithAttributes(attribute.String("user.id", input.ID)))
	defer span.End()
	result, err := s.inner.ListPets(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list user pets", slog.String("user.id", input.ID))
	}
	span.SetAttributes(attribute.Int("user.pets.count", len(result)))
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	usersCreated  metric.Int64Counter
	usersUpdated  metric.Int64Counter
	usersDeleted  metric.Int64Counter
	usersVerified metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("users.service.created", metric.WithDescription("Number of users created"))
	updated, _ := m.Int64Counter("users.service.updated", metric.WithDescription("Number of users updated"))
	deleted, _ := m.Int64Counter("users.service.deleted", metric.WithDescription("Number of users deleted"))
	verified, _ := m.Int64Counter("users.service.verified", metric.WithDescription("Number of adoption right changes"))
	return serviceMetrics{usersCreated: created, usersUpdated: updated, usersDeleted: deleted, usersVerified: verified}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.usersCreated != nil {
		m.usersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	if m.usersUpdated != nil {
		m.usersUpdated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.usersDeleted != nil {
		m.usersDeleted.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (m serviceMetrics) recordVerified(ctx context.Context, canAdopt bool) {
	if m.usersVerified != nil {
		m.usersVerified.Add(ctx, 1, metric.WithAttributes(attribute.Bool("user.can_adopt", canAdopt)))
	}
}

var _ userports.Service = (*Service)(nil)
