package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrPetAlreadyAttached is returned by AttachPet when the reference is already present.
	ErrPetAlreadyAttached = errors.New("pet already attached to user")
	// ErrPetNotAttached is returned by DetachPet when the reference is absent.
	ErrPetNotAttached = errors.New("pet not attached to user")
)

// Repository is the users document store (outbound/driven port).
type Repository interface {
	Create(ctx context.Context, user *domain.User) (*projection.Projection[*domain.User], error)
	// Save persists name and canAdopt. Pet references only change through AttachPet and DetachPet.
	Save(ctx context.Context, user *domain.User) (*projection.Projection[*domain.User], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.User], error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*projection.Projection[*domain.User], error)
	// AttachPet appends petID unless it is already present.
	AttachPet(ctx context.Context, userID, petID string) error
	DetachPet(ctx context.Context, userID, petID string) error
}
