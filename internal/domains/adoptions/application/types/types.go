package types

import (
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

// AdoptionProjection transports an adoption record together with its persistence metadata.
type AdoptionProjection = projection.Projection[*domain.Adoption]

// RequestAdoptionInput names the adopter and the pet.
type RequestAdoptionInput struct {
	UserID string
	PetID  string
}

// AdoptionIdentifier addresses a single adoption record.
type AdoptionIdentifier struct {
	ID string
}
