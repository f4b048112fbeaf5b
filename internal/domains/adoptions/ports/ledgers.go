package ports

import (
	"context"

	petdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	userdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

// PetLedger is the slice of the pets store the adoption workflow reads and flips.
type PetLedger interface {
	GetByID(ctx context.Context, id string) (*projection.Projection[*petdomain.Pet], error)
	SetAdopted(ctx context.Context, id string, adopted bool) error
}

// UserLedger is the slice of the users store the adoption workflow reads and links.
type UserLedger interface {
	GetByID(ctx context.Context, id string) (*projection.Projection[*userdomain.User], error)
	AttachPet(ctx context.Context, userID, petID string) error
	DetachPet(ctx context.Context, userID, petID string) error
}

// Stores bundles the collaborators written by one adoption.
type Stores struct {
	Adoptions Repository
	Pets      PetLedger
	Users     UserLedger
}

// UnitOfWork runs fn against stores bound to a single transaction.
// A non-nil error from fn rolls every write back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
