package ports

import (
	"context"

	usertypes "github.com/Apurer/go-gin-adoption-api/internal/domains/users/application/types"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	CreateUser(ctx context.Context, input usertypes.CreateUserInput) (*usertypes.UserProjection, error)
	GetByID(ctx context.Context, input usertypes.UserIdentifier) (*usertypes.UserProjection, error)
	List(ctx context.Context) ([]*usertypes.UserProjection, error)
	Rename(ctx context.Context, input usertypes.RenameUserInput) (*usertypes.UserProjection, error)
	Verify(ctx context.Context, input usertypes.VerifyUserInput) (*usertypes.UserProjection, error)
	Delete(ctx context.Context, input usertypes.UserIdentifier) error
	ListPets(ctx context.Context, input usertypes.UserIdentifier) ([]*usertypes.PetProjection, error)
}
