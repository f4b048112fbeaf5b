package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

var (
	ErrNotFound = errors.New("adoption not found")
	// ErrIDTaken means the id is already stored for a different user or pet.
	ErrIDTaken = errors.New("adoption id already taken")
)

// Repository stores adoption records (outbound/driven port).
type Repository interface {
	// Insert stores the adoption. Inserting the same id for the same user and pet again
	// returns the stored record.
	Insert(ctx context.Context, adoption *domain.Adoption) (*projection.Projection[*domain.Adoption], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Adoption], error)
	Delete(ctx context.Context, id string) error
	// List returns adoptions ordered by date.
	List(ctx context.Context) ([]*projection.Projection[*domain.Adoption], error)
	ListByPet(ctx context.Context, petID string) ([]*projection.Projection[*domain.Adoption], error)
}
