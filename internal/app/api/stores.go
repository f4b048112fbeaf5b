package api

import (
	"context"
	"fmt"
	"log/slog"

	adoptionsmemory "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/memory"
	adoptionspostgres "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/persistence/postgres"
	adoptionports "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petsmemory "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/memory"
	petspostgres "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/persistence/postgres"
	petports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
	usersmemory "github.com/Apurer/go-gin-adoption-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/Apurer/go-gin-adoption-api/internal/domains/users/adapters/persistence/postgres"
	userports "github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-adoption-api/internal/platform/postgres"
)

// Stores holds the repositories shared by the API, the worker and the reconciler.
type Stores struct {
	Pets      petports.Repository
	Users     userports.Repository
	Adoptions adoptionports.Repository
	// UnitOfWork is nil for in-memory stores.
	UnitOfWork adoptionports.UnitOfWork
	// Durable reports whether the stores are shared with other processes.
	Durable bool
}

// Adoption bundles the stores written by one adoption.
func (s Stores) Adoption() adoptionports.Stores {
	return adoptionports.Stores{Adoptions: s.Adoptions, Pets: s.Pets, Users: s.Users}
}

// OpenStores connects PostgreSQL and applies migrations when dsn is set, falling back to
// in-memory repositories otherwise.
func OpenStores(ctx context.Context, dsn string, logger *slog.Logger) (Stores, func(), error) {
	db, cleanup := platformpostgres.ConnectOptional(ctx, dsn, logger)
	if db == nil {
		return Stores{
			Pets:      petsmemory.NewRepository(),
			Users:     usersmemory.NewRepository(),
			Adoptions: adoptionsmemory.NewRepository(),
		}, cleanup, nil
	}
	if err := migrations.Run(db); err != nil {
		cleanup()
		return Stores{}, func() {}, fmt.Errorf("failed to migrate postgres schema: %w", err)
	}
	logger.Info("repositories configured with postgres")
	return Stores{
		Pets:       petspostgres.NewRepository(db),
		Users:      userspostgres.NewRepository(db),
		Adoptions:  adoptionspostgres.NewRepository(db),
		UnitOfWork: adoptionspostgres.NewUnitOfWork(db),
		Durable:    true,
	}, cleanup, nil
}
