package ports

import (
	"context"

	petdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	userdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

// PetCatalog lists pets and resets their adoption flag during reconciliation.
type PetCatalog interface {
	Find(ctx context.Context, query petdomain.Query) ([]*projection.Projection[*petdomain.Pet], error)
	SetAdopted(ctx context.Context, id string, adopted bool) error
}

// UserDirectory lists users and drops stale pet references during reconciliation.
type UserDirectory interface {
	List(ctx context.Context) ([]*projection.Projection[*userdomain.User], error)
	DetachPet(ctx context.Context, userID, petID string) error
}
