package application

import (
	"context"

	"github.com/google/uuid"

	pettypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo  ports.Repository
	newID func() string
}

// Option customises the service.
type Option func(*Service)

// WithIDGenerator overrides how new pet ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// RegisterPet admits a new, unadopted pet into the catalog.
func (s *Service) RegisterPet(ctx context.Context, input pettypes.RegisterPetInput) (*pettypes.PetProjection, error) {
	if input.Name == nil || input.Age == nil {
		return nil, mapError(ErrMissingFields)
	}
	race := ""
	if input.Race != nil {
		race = *input.Race
	}
	pet, err := domain.NewPet(s.newID(), *input.Name, race, *input.Age)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdatePet applies a partial edit of name, race or age.
func (s *Service) UpdatePet(ctx context.Context, input pettypes.UpdatePetInput) (*pettypes.PetProjection, error) {
	current, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	pet := current.Entity
	if input.Name != nil {
		if err := pet.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Race != nil {
		pet.ChangeRace(*input.Race)
	}
	if input.Age != nil {
		if err := pet.ChangeAge(*input.Age); err != nil {
			return nil, mapError(err)
		}
	}
	saved, err := s.repo.Update(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single pet aggregate.
func (s *Service) GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return projection, nil
}

// Delete removes a pet. Adoption records and owner references are left untouched.
func (s *Service) Delete(ctx context.Context, input pettypes.PetIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

// List returns the catalog filtered, sorted and paged.
func (s *Service) List(ctx context.Context, input pettypes.ListPetsInput) ([]*pettypes.PetProjection, error) {
	keys, err := domain.ParseSort(input.Sort)
	if err != nil {
		return nil, mapError(err)
	}
	query := domain.Query{
		Filter: input.Filter,
		Sort:   keys,
		Page:   domain.Page{Limit: input.Limit, Offset: input.Offset},
	}
	if err := query.Validate(); err != nil {
		return nil, mapError(err)
	}
	result, err := s.repo.Find(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

var _ ports.Service = (*Service)(nil)
