package mapper

import (
	"time"

	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	petmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/http/mapper"
	usermapper "github.com/Apurer/go-gin-adoption-api/internal/domains/users/adapters/http/mapper"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

// Links points at the adoption and the two records it connects.
type Links struct {
	Self string `json:"self"`
	User string `json:"user"`
	Pet  string `json:"pet"`
}

// Adoption is the transport representation of an adoption record.
type Adoption struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	PetID    string    `json:"petId"`
	DateTime time.Time `json:"dateTime"`
	Links    Links     `json:"links"`
}

// CreateAdoption is the request payload. Presence of both ids is checked by the engine.
type CreateAdoption struct {
	UserID string `json:"userId"`
	PetID  string `json:"petId"`
}

func AdoptionLink(id string) string {
	return "/adoptions/adoption/" + id
}

func FromProjection(src *adoptiontypes.AdoptionProjection) Adoption {
	if src == nil || src.Entity == nil {
		return Adoption{}
	}
	a := src.Entity
	return Adoption{
		ID:       a.ID,
		UserID:   a.UserID,
		PetID:    a.PetID,
		DateTime: a.DateTime,
		Links: Links{
			Self: AdoptionLink(a.ID),
			User: usermapper.UserLink(a.UserID),
			Pet:  petmapper.PetLink(a.PetID),
		},
	}
}

func FromProjections(src []*adoptiontypes.AdoptionProjection) []Adoption {
	return projection.Map(src, FromProjection)
}

func (c CreateAdoption) ToInput() adoptiontypes.RequestAdoptionInput {
	return adoptiontypes.RequestAdoptionInput{UserID: c.UserID, PetID: c.PetID}
}
