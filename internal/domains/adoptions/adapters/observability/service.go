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

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
)

const tracerName = "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/observability/service"

// Service decorates the adoption engine with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
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

// New wraps the adoption service.
func New(inner ports.Service, opts ...Option) ports.Service {
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

func (s *Service) RequestAdoption(ctx context.Context, input adoptiontypes.RequestAdoptionInput) (*adoptiontypes.AdoptionProjection, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.RequestAdoption", trace.WithAttributes(
		attribute.String("user.id", input.UserID),
		attribute.String("pet.id", input.PetID),
	))
	defer span.End()

	result, err := s.inner.RequestAdoption(ctx, input)
	if err != nil {
		reason := application.ReasonOf(err)
		s.metrics.recordRejected(ctx, failure.CategoryOf(err), reason)
		if reason != "" {
			span.SetAttributes(attribute.String("adoption.rejection_reason", reason))
		}
		return nil, s.handleError(ctx, span, err, "adoption request rejected",
			slog.String("user.id", input.UserID),
			slog.String("pet.id", input.PetID),
			slog.String("reason", reason),
		)
	}
	span.SetAttributes(attribute.String("adoption.id", result.Entity.ID))
	s.metrics.recordRequested(ctx)
	s.logInfo(ctx, "adoption completed",
		slog.String("adoption.id", result.Entity.ID),
		slog.String("user.id", input.UserID),
		slog.String("pet.id", input.PetID),
	)
	return result, nil
}

func (s *Service) RemoveAdoption(ctx context.Context, input adoptiontypes.AdoptionIdentifier) error {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.RemoveAdoption", trace.WithAttributes(attribute.String("adoption.id", input.ID)))
	defer span.End()
	if err := s.inner.RemoveAdoption(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to remove adoption", slog.String("adoption.id", input.ID))
	}
	s.metrics.recordRemoved(ctx)
	s.logInfo(ctx, "adoption removed", slog.String("adoption.id", input.ID))
	return nil
}

func (s *Service) GetAdoption(ctx context.Context, input adoptiontypes.AdoptionIdentifier) (*adoptiontypes.AdoptionProjection, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.GetAdoption", trace.WithAttributes(attribute.String("adoption.id", input.ID)))
	defer span.End()
	result, err := s.inner.GetAdoption(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load adoption", slog.String("adoption.id", input.ID))
	}
	return result, nil
}

func (s *Service) ListAdoptions(ctx context.Context) ([]*adoptiontypes.AdoptionProjection, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.ListAdoptions")
	defer span.End()
	result, err := s.inner.ListAdoptions(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list adoptions")
	}
	span.SetAttributes(attribute.Int("adoption.result.count", len(result)))
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	level := slog.LevelError
	if failure.CategoryOf(err) != failure.ErrInternal {
		level = slog.LevelWarn
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, level, msg, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

type serviceMetrics struct {
	requested metric.Int64Counter
	rejected  metric.Int64Counter
	removed   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	requested, _ := m.Int64Counter("adoptions.service.requested", metric.WithDescription("Number of completed adoptions"))
	rejected, _ := m.Int64Counter("adoptions.service.rejected", metric.WithDescription("Number of rejected adoption requests"))
	removed, _ := m.Int64Counter("adoptions.service.removed", metric.WithDescription("Number of removed adoptions"))
	return serviceMetrics{requested: requested, rejected: rejected, removed: removed}
}

func (m serviceMetrics) recordRequested(ctx context.Context) {
	if m.requested != nil {
		m.requested.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, category error, reason string) {
	if m.rejected == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("failure.category", category.Error()),
		attribute.String("adoption.reason", reason),
	))
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	if m.removed != nil {
		m.removed.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ ports.Service = (*Service)(nil)
