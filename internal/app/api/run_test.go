package api

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-adoption-api/internal/platform/metrics"
	platformobservability "github.com/Apurer/go-gin-adoption-api/internal/platform/observability"
)

func newInMemoryServices(t *testing.T) (Config, Services) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	clearEnv(t)
	t.Setenv("TEMPORAL_DISABLED", "true")
	cfg, err := LoadConfig()
	require.NoError(t, err)

	instruments := &platformobservability.Instruments{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	stores, closeStores, err := OpenStores(context.Background(), "", instruments.Logger)
	require.NoError(t, err)
	t.Cleanup(closeStores)
	assert.False(t, stores.Durable)
	assert.Nil(t, stores.UnitOfWork)

	services, closeServices := BuildServices(context.Background(), cfg, stores, instruments)
	t.Cleanup(closeServices)
	return cfg, services
}

func TestRESTRouterServesAdoptionFlow(t *testing.T) {
	cfg, services := newInMemoryServices(t)
	router := NewRESTRouter(cfg, services, metrics.NewHTTP("petadoption_test"))

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := send(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PetAdoptionApp", rec.Header().Get("X-Powered-By"))

	rec = send(http.MethodPost, "/adoptions", `{"petId":"P1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(http.MethodGet, "/adoptions", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = send(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "petadoption_test_")
}

func TestGraphQLRouterServesSchema(t *testing.T) {
	_, services := newInMemoryServices(t)
	router, err := NewGraphQLRouter(services)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(`{"query":"{ adoptions { id } }"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"adoptions":[]}}`, rec.Body.String())
}
