package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Apurer/go-gin-adoption-api/internal/app/api"
	adoptionsapp "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/observability"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: observability.ParseLevel(os.Getenv("LOG_LEVEL"))}))
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	stores, cleanup, err := api.OpenStores(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		log.Fatalf("failed to open stores: %v", err)
	}
	defer cleanup()
	if !stores.Durable {
		log.Fatal("POSTGRES_DSN not set or connection failed; nothing to reconcile")
	}

	locker, closeLocker := api.OpenLocker(ctx, cfg, logger)
	defer closeLocker()

	apply := strings.EqualFold(strings.TrimSpace(os.Getenv("RECONCILE_APPLY")), "true")
	reconciler := adoptionsapp.NewReconciler(stores.Adoptions, stores.Pets, stores.Users, logger,
		adoptionsapp.WithRepairLocker(locker))
	report, err := reconciler.Run(ctx, apply)
	if err != nil {
		log.Fatalf("reconciliation failed: %v", err)
	}
	logger.Info("reconciliation completed",
		slog.Bool("apply", apply),
		slog.Bool("clean", report.Clean()),
		slog.Int("orphaned_pet_flags", len(report.OrphanedPetFlags)),
		slog.Int("orphaned_user_pets", len(report.OrphanedUserPets)),
		slog.Int("dangling_adoptions", len(report.DanglingAdoptions)),
		slog.Int("incomplete_adoptions", len(report.IncompleteAdoptions)),
		slog.Int("repaired", report.Repaired),
	)
}
