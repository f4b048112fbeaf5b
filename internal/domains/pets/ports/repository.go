package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

var (
	ErrNotFound      = errors.New("pet not found")
	ErrDuplicateName = errors.New("pet already exists")
	// ErrStaleAdoptionState is returned by SetAdopted when the stored flag already holds the target value.
	ErrStaleAdoptionState = errors.New("pet adoption state changed concurrently")
)

// Repository is the pets document store (outbound/driven port).
type Repository interface {
	// Create inserts a new pet; a name clash yields ErrDuplicateName.
	Create(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error)
	// Update persists name, race and age. The adoption flag is only changed through SetAdopted.
	Update(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Pet], error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, query domain.Query) ([]*projection.Projection[*domain.Pet], error)
	// FindByIDs returns the pets that still exist, in the order of ids.
	FindByIDs(ctx context.Context, ids []string) ([]*projection.Projection[*domain.Pet], error)
	// SetAdopted is a compare-and-set: it only writes when the stored flag equals !adopted.
	SetAdopted(ctx context.Context, id string, adopted bool) error
}
