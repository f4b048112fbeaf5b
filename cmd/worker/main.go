package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-adoption-api/internal/app/api"
	adoptionsapp "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	platformobservability "github.com/Apurer/go-gin-adoption-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-adoption-api/internal/platform/temporal"
	adoptionactivities "github.com/Apurer/go-gin-adoption-api/internal/platform/temporal/activities/adoptions"
	adoptionworkflows "github.com/Apurer/go-gin-adoption-api/internal/platform/temporal/workflows/adoptions"
)

func main() {
	ctx := context.Background()
	const serviceName = "pet-adoption-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, closeStores, err := api.OpenStores(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		logger.Error("failed to open stores", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStores()
	if !stores.Durable {
		logger.Warn("worker running on in-memory stores, adoptions will not be visible to the API")
	}
	activities := adoptionactivities.NewActivities(adoptionsapp.NewSaga(stores.Adoption()))

	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
		Tracer:    instruments.Tracer(platformobservability.ScopeWorkflowWorker),
	})
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, adoptionworkflows.AdoptionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(adoptionworkflows.AdoptionWorkflow, workflow.RegisterOptions{Name: adoptionworkflows.AdoptionWorkflowName})
	for name, fn := range map[string]interface{}{
		adoptionactivities.EvaluateAdoptionActivityName: activities.Evaluate,
		adoptionactivities.RecordAdoptionActivityName:   activities.Record,
		adoptionactivities.MarkPetAdoptedActivityName:   activities.MarkPetAdopted,
		adoptionactivities.AttachPetActivityName:        activities.AttachPet,
		adoptionactivities.ReleasePetActivityName:       activities.ReleasePet,
		adoptionactivities.DiscardAdoptionActivityName:  activities.Discard,
	} {
		w.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
	}

	logger.Info("worker listening", slog.String("taskQueue", adoptionworkflows.AdoptionTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
