package rpc

import (
	adoptionmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/http/mapper"
	petmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/http/mapper"
	pettypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
)

type StringFilter struct {
	Eq          *string `json:"eq,omitempty"`
	Ne          *string `json:"ne,omitempty"`
	Contains    *string `json:"contains,omitempty"`
	NotContains *string `json:"notContains,omitempty"`
}

type IntFilter struct {
	Eq  *int `json:"eq,omitempty"`
	Ne  *int `json:"ne,omitempty"`
	Gt  *int `json:"gt,omitempty"`
	Gte *int `json:"gte,omitempty"`
	Lt  *int `json:"lt,omitempty"`
	Lte *int `json:"lte,omitempty"`
}

type PetFilter struct {
	Name    *StringFilter `json:"name,omitempty"`
	Race    *StringFilter `json:"race,omitempty"`
	Age     *IntFilter    `json:"age,omitempty"`
	Adopted *bool         `json:"adopted,omitempty"`
}

type GetPetsRequest struct {
	Filter PetFilter `json:"filter"`
	Sort   string    `json:"sort,omitempty"`
	Limit  int       `json:"limit,omitempty"`
	Offset int       `json:"offset,omitempty"`
}

type GetPetsResponse struct {
	Pets []petmapper.Pet `json:"pets"`
}

type GetPetRequest struct {
	ID string `json:"id"`
}

type CreatePetRequest struct {
	Name *string `json:"name,omitempty"`
	Race *string `json:"race,omitempty"`
	Age  *int    `json:"age,omitempty"`
}

type UpdatePetRequest struct {
	ID   string  `json:"id"`
	Name *string `json:"name,omitempty"`
	Race *string `json:"race,omitempty"`
	Age  *int    `json:"age,omitempty"`
}

type PetResponse struct {
	Pet petmapper.Pet `json:"pet"`
}

type DeletePetRequest struct {
	ID string `json:"id"`
}

type DeletePetResponse struct {
	Message string `json:"message"`
}

type RequestAdoptionRequest struct {
	UserID string `json:"userId"`
	PetID  string `json:"petId"`
}

type AdoptionRequest struct {
	ID string `json:"id"`
}

type AdoptionResponse struct {
	Adoption adoptionmapper.Adoption `json:"adoption"`
}

type RemoveAdoptionResponse struct{}

type ListAdoptionsRequest struct{}

type ListAdoptionsResponse struct {
	Adoptions []adoptionmapper.Adoption `json:"adoptions"`
}

func (r *GetPetsRequest) toInput() pettypes.ListPetsInput {
	f := r.Filter
	filter := domain.Filter{Adopted: f.Adopted}
	if f.Name != nil {
		filter.Name = (*domain.StringFilter)(f.Name)
	}
	if f.Race != nil {
		filter.Race = (*domain.StringFilter)(f.Race)
	}
	if f.Age != nil {
		filter.Age = (*domain.IntFilter)(f.Age)
	}
	return pettypes.ListPetsInput{Filter: filter, Sort: r.Sort, Limit: r.Limit, Offset: r.Offset}
}
