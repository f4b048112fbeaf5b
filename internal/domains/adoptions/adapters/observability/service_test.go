package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

type stubService struct {
	err error
}

func (s stubService) RequestAdoption(_ context.Context, input adoptiontypes.RequestAdoptionInput) (*adoptiontypes.AdoptionProjection, error) {
	if s.err != nil {
		return nil, s.err
	}
	adoption := &domain.Adoption{ID: "A1", UserID: input.UserID, PetID: input.PetID}
	return projection.New(adoption, adoption.DateTime, adoption.DateTime), nil
}

func (s stubService) RemoveAdoption(context.Context, adoptiontypes.AdoptionIdentifier) error {
	return s.err
}

func (s stubService) GetAdoption(context.Context, adoptiontypes.AdoptionIdentifier) (*adoptiontypes.AdoptionProjection, error) {
	return nil, s.err
}

func (s stubService) ListAdoptions(context.Context) ([]*adoptiontypes.AdoptionProjection, error) {
	return nil, s.err
}

func TestRequestAdoptionSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	svc := New(stubService{}, WithTracer(tp.Tracer("test")))

	result, err := svc.RequestAdoption(context.Background(), adoptiontypes.RequestAdoptionInput{UserID: "U1", PetID: "P1"})
	require.NoError(t, err)
	assert.Equal(t, "A1", result.Entity.ID)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "AdoptionService.RequestAdoption", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestRequestAdoptionRejectionMarksSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	rejection := failure.Forbidden(domain.ErrUserCannotAdopt)
	svc := New(stubService{err: rejection}, WithTracer(tp.Tracer("test")))

	_, err := svc.RequestAdoption(context.Background(), adoptiontypes.RequestAdoptionInput{UserID: "U2", PetID: "P2"})
	require.ErrorIs(t, err, failure.ErrForbidden)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	var reason string
	for _, attr := range spans[0].Attributes() {
		if attr.Key == "adoption.rejection_reason" {
			reason = attr.Value.AsString()
		}
	}
	assert.Equal(t, "USER_CANNOT_ADOPT", reason)
}

func TestRemoveAdoptionPassesErrorThrough(t *testing.T) {
	boom := errors.New("boom")
	svc := New(stubService{err: boom})
	assert.ErrorIs(t, svc.RemoveAdoption(context.Background(), adoptiontypes.AdoptionIdentifier{ID: "A1"}), boom)
}
