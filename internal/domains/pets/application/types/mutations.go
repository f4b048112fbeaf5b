package types

import "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"

// PetIdentifier addresses a single pet.
type PetIdentifier struct {
	ID string
}

// RegisterPetInput carries the intake payload. Name and Age are required.
type RegisterPetInput struct {
	Name *string
	Race *string
	Age  *int
}

// UpdatePetInput applies the non-nil fields to an existing pet.
type UpdatePetInput struct {
	ID   string
	Name *string
	Race *string
	Age  *int
}

// ListPetsInput narrows and pages the catalog.
type ListPetsInput struct {
	Filter domain.Filter
	Sort   string
	Limit  int
	Offset int
}
