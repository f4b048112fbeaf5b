package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petspostgres "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/persistence/postgres"
	userspostgres "github.com/Apurer/go-gin-adoption-api/internal/domains/users/adapters/persistence/postgres"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork binds the adoption, pet and user repositories to one GORM transaction.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do commits when fn returns nil and rolls back otherwise.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, stores ports.Stores) error) error {
	if u == nil || u.db == nil {
		return errors.New("postgres unit of work not configured")
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, ports.Stores{
			Adoptions: NewRepository(tx),
			Pets:      petspostgres.NewRepository(tx),
			Users:     userspostgres.NewRepository(tx),
		})
	})
}
