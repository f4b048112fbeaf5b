// Package rpc exposes the pet catalog and the adoption engine over gRPC.
//
// Messages are JSON encoded, not protobuf. Clients must send the content subtype
// application/grpc+json (grpc.CallContentSubtype(CodecName)); Dial sets it by default.
// Stock protobuf clients of petadoption.PetAdoptionService are not supported.
package rpc

import (
	"context"

	"google.golang.org/grpc/codes"

	adoptionmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/http/mapper"
	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	adoptionports "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/http/mapper"
	pettypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
	petports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
)

// Server implements PetAdoptionServer on top of the application services.
type Server struct {
	pets      petports.Service
	adoptions adoptionports.Service
}

func NewServer(pets petports.Service, adoptions adoptionports.Service) *Server {
	return &Server{pets: pets, adoptions: adoptions}
}

func (s *Server) GetPets(ctx context.Context, req *GetPetsRequest) (*GetPetsResponse, error) {
	result, err := s.pets.List(ctx, req.toInput())
	if err != nil {
		return nil, toStatus(err, codes.AlreadyExists)
	}
	pets := petmapper.FromProjections(result)
	if pets == nil {
		pets = []petmapper.Pet{}
	}
	return &GetPetsResponse{Pets: pets}, nil
}

func (s *Server) GetPet(ctx context.Context, req *GetPetRequest) (*PetResponse, error) {
	result, err := s.pets.GetByID(ctx, pettypes.PetIdentifier{ID: req.ID})
	if err != nil {
		return nil, toStatus(err, codes.AlreadyExists)
	}
	return &PetResponse{Pet: petmapper.FromProjection(result)}, nil
}

func (s *Server) CreatePet(ctx context.Context, req *CreatePetRequest) (*PetResponse, error) {
	result, err := s.pets.RegisterPet(ctx, pettypes.RegisterPetInput{Name: req.Name, Race: req.Race, Age: req.Age})
	if err != nil {
		return nil, toStatus(err, codes.AlreadyExists)
	}
	return &PetResponse{Pet: petmapper.FromProjection(result)}, nil
}

func (s *Server) UpdatePet(ctx context.Context, req *UpdatePetRequest) (*PetResponse, error) {
	result, err := s.pets.UpdatePet(ctx, pettypes.UpdatePetInput{ID: req.ID, Name: req.Name, Race: req.Race, Age: req.Age})
	if err != nil {
		return nil, toStatus(err, codes.AlreadyExists)
	}
	return &PetResponse{Pet: petmapper.FromProjection(result)}, nil
}

func (s *Server) DeletePet(ctx context.Context, req *DeletePetRequest) (*DeletePetResponse, error) {
	if err := s.pets.Delete(ctx, pettypes.PetIdentifier{ID: req.ID}); err != nil {
		return nil, toStatus(err, codes.AlreadyExists)
	}
	return &DeletePetResponse{Message: petmapper.DeletedMessage(req.ID).Message}, nil
}

func (s *Server) RequestAdoption(ctx context.Context, req *RequestAdoptionRequest) (*AdoptionResponse, error) {
	result, err := s.adoptions.RequestAdoption(ctx, adoptiontypes.RequestAdoptionInput{UserID: req.UserID, PetID: req.PetID})
	if err != nil {
		return nil, toStatus(err, codes.FailedPrecondition)
	}
	return &AdoptionResponse{Adoption: adoptionmapper.FromProjection(result)}, nil
}

func (s *Server) RemoveAdoption(ctx context.Context, req *AdoptionRequest) (*RemoveAdoptionResponse, error) {
	if err := s.adoptions.RemoveAdoption(ctx, adoptiontypes.AdoptionIdentifier{ID: req.ID}); err != nil {
		return nil, toStatus(err, codes.FailedPrecondition)
	}
	return &RemoveAdoptionResponse{}, nil
}

func (s *Server) GetAdoption(ctx context.Context, req *AdoptionRequest) (*AdoptionResponse, error) {
	result, err := s.adoptions.GetAdoption(ctx, adoptiontypes.AdoptionIdentifier{ID: req.ID})
	if err != nil {
		return nil, toStatus(err, codes.FailedPrecondition)
	}
	return &AdoptionResponse{Adoption: adoptionmapper.FromProjection(result)}, nil
}

func (s *Server) ListAdoptions(ctx context.Context, _ *ListAdoptionsRequest) (*ListAdoptionsResponse, error) {
	result, err := s.adoptions.ListAdoptions(ctx)
	if err != nil {
		return nil, toStatus(err, codes.FailedPrecondition)
	}
	adoptions := adoptionmapper.FromProjections(result)
	if adoptions == nil {
		adoptions = []adoptionmapper.Adoption{}
	}
	return &ListAdoptionsResponse{Adoptions: adoptions}, nil
}

var _ PetAdoptionServer = (*Server)(nil)
