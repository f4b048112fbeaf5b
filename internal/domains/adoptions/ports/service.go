package ports

import (
	"context"

	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
)

// Service is the transport-agnostic adoption workflow engine (inbound/driving port).
type Service interface {
	RequestAdoption(ctx context.Context, input adoptiontypes.RequestAdoptionInput) (*adoptiontypes.AdoptionProjection, error)
	RemoveAdoption(ctx context.Context, input adoptiontypes.AdoptionIdentifier) error
	GetAdoption(ctx context.Context, input adoptiontypes.AdoptionIdentifier) (*adoptiontypes.AdoptionProjection, error)
	ListAdoptions(ctx context.Context) ([]*adoptiontypes.AdoptionProjection, error)
}
