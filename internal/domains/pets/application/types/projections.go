package types

import (
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

// PetProjection transports a pet aggregate together with its persistence metadata.
type PetProjection = projection.Projection[*domain.Pet]
