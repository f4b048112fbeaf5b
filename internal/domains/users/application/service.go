package application

import (
	"context"

	"github.com/google/uuid"

	usertypes "github.com/Apurer/go-gin-adoption-api/internal/domains/users/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo  ports.Repository
	pets  ports.PetDirectory
	newID func() string
}

// Option customises the service.
type Option func(*Service)

// WithIDGenerator overrides how new user ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewService(repo ports.Repository, pets ports.PetDirectory, opts ...Option) *Service {
	s := &Service{repo: repo, pets: pets, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) CreateUser(ctx context.Context, input usertypes.CreateUserInput) (*usertypes.UserProjection, error) {
	if input.Name == nil {
		return nil, mapError(ErrMissingName)
	}
	user, err := domain.NewUser(s.newID(), *input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) GetByID(ctx context.Context, input usertypes.UserIdentifier) (*usertypes.UserProjection, error) {
	found, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return found, nil
}

func (s *Service) List(ctx context.Context) ([]*usertypes.UserProjection, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

func (s *Service) Rename(ctx context.Context, input usertypes.RenameUserInput) (*usertypes.UserProjection, error) {
	if input.Name == nil {
		return nil, mapError(ErrMissingName)
	}
	return s.mutate(ctx, input.ID, func(u *domain.User) error {
		return u.Rename(*input.Name)
	})
}

// Verify grants or revokes the right to adopt. Pets already adopted stay attached.
func (s *Service) Verify(ctx context.Context, input usertypes.VerifyUserInput) (*usertypes.UserProjection, error) {
	if input.CanAdopt == nil {
		return nil, mapError(ErrMissingCanAdopt)
	}
	return s.mutate(ctx, input.ID, func(u *domain.User) error {
		u.Verify(*input.CanAdopt)
		return nil
	})
}

// Delete removes a user. Adoption records and pet flags are left untouched.
func (s *Service) Delete(ctx context.Context, input usertypes.UserIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

// ListPets resolves the user's pet references, skipping pets deleted since adoption.
func (s *Service) ListPets(ctx context.Context, input usertypes.UserIdentifier) ([]*usertypes.PetProjection, error) {
	found, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if len(found.Entity.Pets) == 0 || s.pets == nil {
		return []*usertypes.PetProjection{}, nil
	}
	pets, err := s.pets.FindByIDs(ctx, found.Entity.Pets)
	if err != nil {
		return nil, mapError(err)
	}
	return pets, nil
}

func (s *Service) mutate(ctx context.Context, id string, apply func(*domain.User) error) (*usertypes.UserProjection, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := apply(current.Entity); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, current.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)
