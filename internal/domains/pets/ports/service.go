package ports

import (
	"context"

	pettypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
)

// Service defines the pets use cases exposed to adapters (inbound/driving port).
type Service interface {
	RegisterPet(ctx context.Context, input pettypes.RegisterPetInput) (*pettypes.PetProjection, error)
	UpdatePet(ctx context.Context, input pettypes.UpdatePetInput) (*pettypes.PetProjection, error)
	GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
	Delete(ctx context.Context, input pettypes.PetIdentifier) error
	List(ctx context.Context, input pettypes.ListPetsInput) ([]*pettypes.PetProjection, error)
}
