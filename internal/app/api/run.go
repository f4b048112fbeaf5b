package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	petadoptionserver "github.com/Apurer/go-gin-adoption-api/go"
	"github.com/Apurer/go-gin-adoption-api/internal/gqlapi"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/metrics"
	platformobservability "github.com/Apurer/go-gin-adoption-api/internal/platform/observability"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/validation"
	"github.com/Apurer/go-gin-adoption-api/internal/rpc"
)

const (
	serviceName     = "pet-adoption-api"
	shutdownTimeout = 5 * time.Second
)

// Run boots the REST, GraphQL and gRPC servers over one set of services and blocks until
// ctx is cancelled or a server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	validation.Init()

	stores, closeStores, err := OpenStores(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return err
	}
	defer closeStores()
	services, closeServices := BuildServices(ctx, cfg, stores, instruments)
	defer closeServices()

	gqlRouter, err := NewGraphQLRouter(services)
	if err != nil {
		return fmt.Errorf("failed to build GraphQL schema: %w", err)
	}
	restServer := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: NewRESTRouter(cfg, services, metrics.NewHTTP("petadoption"))}
	gqlServer := &http.Server{Addr: ":" + cfg.GraphQLPort, Handler: gqlRouter}
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(rpc.LoggingInterceptor(logger)))
	rpc.RegisterPetAdoptionServer(grpcServer, rpc.NewServer(services.Pets, services.Adoptions))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return serveHTTP(gctx, logger, "REST API", restServer) })
	g.Go(func() error { return serveHTTP(gctx, logger, "GraphQL API", gqlServer) })
	g.Go(func() error { return serveGRPC(gctx, logger, ":"+cfg.GRPCPort, grpcServer) })
	return g.Wait()
}

// NewRESTRouter builds the REST engine with its middleware, health and metrics endpoints.
func NewRESTRouter(cfg Config, services Services, httpMetrics *metrics.HTTP) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		httpMetrics.Middleware(),
		petadoptionserver.CORS(cfg.CORSAllowedOrigins),
		petadoptionserver.PoweredBy(),
	)
	router.GET("/healthz", petadoptionserver.Healthz)
	router.GET("/metrics", gin.WrapH(httpMetrics.Handler()))
	return petadoptionserver.NewRouterWithGinEngine(router, petadoptionserver.ApiHandleFunctions{
		PetAPI:      petadoptionserver.NewPetAPI(services.Pets),
		UserAPI:     petadoptionserver.NewUserAPI(services.Users),
		AdoptionAPI: petadoptionserver.NewAdoptionAPI(services.Adoptions),
	})
}

// NewGraphQLRouter serves the GraphQL schema at /graphql.
func NewGraphQLRouter(services Services) (*gin.Engine, error) {
	schema, err := gqlapi.NewSchema(gqlapi.Services{
		Pets:      services.Pets,
		Users:     services.Users,
		Adoptions: services.Adoptions,
	})
	if err != nil {
		return nil, err
	}
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName+"-graphql"), petadoptionserver.PoweredBy())
	router.GET("/healthz", petadoptionserver.Healthz)
	return gqlapi.NewRouterWithGinEngine(router, schema), nil
}

func serveHTTP(ctx context.Context, logger *slog.Logger, name string, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info(name+" listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error(name+" server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func serveGRPC(ctx context.Context, logger *slog.Logger, addr string, srv *grpc.Server) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("gRPC API listening", slog.String("addr", addr))
		errCh <- srv.Serve(lis)
	}()
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("gRPC server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		}
		return err
	case <-ctx.Done():
		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(shutdownTimeout):
			srv.Stop()
		}
		return nil
	}
}
