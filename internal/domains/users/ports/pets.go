package ports

import (
	"context"

	petdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

// PetDirectory resolves the pets referenced by a user.
type PetDirectory interface {
	FindByIDs(ctx context.Context, ids []string) ([]*projection.Projection[*petdomain.Pet], error)
}
