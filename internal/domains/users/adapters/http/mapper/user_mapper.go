package mapper

import (
	"fmt"
	"time"

	petmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/http/mapper"
	usertypes "github.com/Apurer/go-gin-adoption-api/internal/domains/users/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

// Links carries the hypermedia references of a user.
type Links struct {
	Self   string `json:"self"`
	Pets   string `json:"pets"`
	Verify string `json:"verify"`
}

// User represents the transport-level user payload.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CanAdopt  bool      `json:"canAdopt"`
	Pets      []string  `json:"pets"`
	Links     Links     `json:"links"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUser is the registration payload.
type CreateUser struct {
	Name *string `json:"name"`
}

// RenameUser replaces the display name.
type RenameUser struct {
	Name *string `json:"name"`
}

// VerifyUser toggles adoption rights. A pointer keeps a missing flag distinguishable from false.
type VerifyUser struct {
	CanAdopt *bool `json:"canAdopt"`
}

// UserPets wraps the pets owned by a user.
type UserPets struct {
	Pets []petmapper.Pet `json:"pets"`
}

// DeleteResult acknowledges a removal.
type DeleteResult struct {
	Message string `json:"message"`
}

// UserLink builds the canonical resource path of a user.
func UserLink(id string) string {
	return "/users/user/" + id
}

// FromProjection converts a user projection into a transport representation.
func FromProjection(src *usertypes.UserProjection) User {
	if src == nil || src.Entity == nil {
		return User{}
	}
	u := src.Entity
	pets := append([]string{}, u.Pets...)
	return User{
		ID:       u.ID,
		Name:     u.Name,
		CanAdopt: u.CanAdopt,
		Pets:     pets,
		Links: Links{
			Self:   UserLink(u.ID),
			Pets:   UserLink(u.ID) + "/pets",
			Verify: "/users/user/verify/" + u.ID,
		},
		CreatedAt: src.Metadata.CreatedAt,
		UpdatedAt: src.Metadata.UpdatedAt,
	}
}

// FromProjections converts a slice of user projections.
func FromProjections(src []*usertypes.UserProjection) []User {
	return projection.Map(src, FromProjection)
}

// FromPets renders a user's pets.
func FromPets(src []*usertypes.PetProjection) UserPets {
	pets := petmapper.FromProjections(src)
	if pets == nil {
		pets = []petmapper.Pet{}
	}
	return UserPets{Pets: pets}
}

// DeletedMessage renders the acknowledgement returned after deleting a user.
func DeletedMessage(id string) DeleteResult {
	return DeleteResult{Message: fmt.Sprintf("User with id: %s deleted successfully", id)}
}

func (p CreateUser) ToInput() usertypes.CreateUserInput {
	return usertypes.CreateUserInput{Name: p.Name}
}

func (p RenameUser) ToInput(id string) usertypes.RenameUserInput {
	return usertypes.RenameUserInput{ID: id, Name: p.Name}
}

func (p VerifyUser) ToInput(id string) usertypes.VerifyUserInput {
	return usertypes.VerifyUserInput{ID: id, CanAdopt: p.CanAdopt}
}
