package types

import (
	petdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

// UserProjection transports a user aggregate together with its persistence metadata.
type UserProjection = projection.Projection[*domain.User]

// PetProjection is a pet owned by a user.
type PetProjection = projection.Projection[*petdomain.Pet]
