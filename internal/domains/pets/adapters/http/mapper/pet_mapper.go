package mapper

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	petstypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

var (
	// ErrAgeNotNumber mirrors the intake rule that age must be a JSON number.
	ErrAgeNotNumber = errors.New("age must be a number")
	// ErrAgeNotInteger rejects fractional or negative ages.
	ErrAgeNotInteger = errors.New("age must be a non-negative integer")
	// ErrInvalidQueryParam flags an unparsable list filter.
	ErrInvalidQueryParam = errors.New("invalid query parameter")
)

// Links carries the hypermedia references of a pet.
type Links struct {
	Self string `json:"self"`
}

// Pet is the HTTP representation used for mapping between transport and domain responses.
type Pet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Race      string    `json:"race"`
	Age       int       `json:"age"`
	Adopted   bool      `json:"adopted"`
	Links     Links     `json:"links"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePet is the intake payload. Age stays untyped so a string age can be reported instead of failing decoding.
type CreatePet struct {
	Name *string `json:"name"`
	Race *string `json:"race"`
	Age  any     `json:"age"`
}

// UpdatePet captures a partial edit while preserving field presence.
type UpdatePet struct {
	Name *string `json:"name"`
	Race *string `json:"race"`
	Age  any     `json:"age"`
}

// DeleteResult acknowledges a removal.
type DeleteResult struct {
	Message string `json:"message"`
}

// PetLink builds the canonical resource path of a pet.
func PetLink(id string) string {
	return "/pets/pet/" + id
}

// FromProjection maps a projection into the transport representation.
func FromProjection(src *petstypes.PetProjection) Pet {
	if src == nil || src.Entity == nil {
		return Pet{}
	}
	return FromDomain(src.Entity, src.Metadata)
}

// FromDomain maps a pet aggregate and its metadata.
func FromDomain(pet *domain.Pet, meta projection.Metadata) Pet {
	return Pet{
		ID:        pet.ID,
		Name:      pet.Name,
		Race:      pet.Race,
		Age:       pet.Age,
		Adopted:   pet.Adopted,
		Links:     Links{Self: PetLink(pet.ID)},
		CreatedAt: meta.CreatedAt,
		UpdatedAt: meta.UpdatedAt,
	}
}

// FromProjections maps a projection list.
func FromProjections(src []*petstypes.PetProjection) []Pet {
	return projection.Map(src, FromProjection)
}

// DeletedMessage renders the acknowledgement returned after deleting a pet.
func DeletedMessage(id string) DeleteResult {
	return DeleteResult{Message: fmt.Sprintf("Pet with id: %s deleted successfully", id)}
}

// ToRegisterInput validates the payload shape and builds the application command.
func (p CreatePet) ToRegisterInput() (petstypes.RegisterPetInput, error) {
	age, err := parseAge(p.Age)
	if err != nil {
		return petstypes.RegisterPetInput{}, err
	}
	return petstypes.RegisterPetInput{Name: p.Name, Race: p.Race, Age: age}, nil
}

// ToUpdateInput builds the partial update command for the given pet.
func (p UpdatePet) ToUpdateInput(id string) (petstypes.UpdatePetInput, error) {
	age, err := parseAge(p.Age)
	if err != nil {
		return petstypes.UpdatePetInput{}, err
	}
	return petstypes.UpdatePetInput{ID: id, Name: p.Name, Race: p.Race, Age: age}, nil
}

func parseAge(raw any) (*int, error) {
	if raw == nil {
		return nil, nil
	}
	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	default:
		return nil, ErrAgeNotNumber
	}
	if value < 0 || value != math.Trunc(value) || value > math.MaxInt32 {
		return nil, ErrAgeNotInteger
	}
	age := int(value)
	return &age, nil
}

// ParseListQuery reads filter, sort and pagination query parameters, e.g.
// ?race=dog&age_gte=2&name_contains=bo&adopted=false&sort=-age&limit=10&offset=0.
func ParseListQuery(values url.Values) (petstypes.ListPetsInput, error) {
	input := petstypes.ListPetsInput{Sort: values.Get("sort")}

	var err error
	if input.Filter.Name, err = stringFilter(values, "name"); err != nil {
		return input, err
	}
	if input.Filter.Race, err = stringFilter(values, "race"); err != nil {
		return input, err
	}
	if input.Filter.Age, err = intFilter(values, "age"); err != nil {
		return input, err
	}
	if raw := values.Get("adopted"); raw != "" {
		adopted, err := strconv.ParseBool(raw)
		if err != nil {
			return input, fmt.Errorf("%w: adopted", ErrInvalidQueryParam)
		}
		input.Filter.Adopted = &adopted
	}
	if input.Limit, err = intParam(values, "limit"); err != nil {
		return input, err
	}
	if input.Offset, err = intParam(values, "offset"); err != nil {
		return input, err
	}
	return input, nil
}

func stringFilter(values url.Values, field string) (*domain.StringFilter, error) {
	filter := &domain.StringFilter{
		Eq:          optionalString(values, field),
		Ne:          optionalString(values, field+"_ne"),
		Contains:    optionalString(values, field+"_contains"),
		NotContains: optionalString(values, field+"_not_contains"),
	}
	if filter.Eq == nil && filter.Ne == nil && filter.Contains == nil && filter.NotContains == nil {
		return nil, nil
	}
	return filter, nil
}

func intFilter(values url.Values, field string) (*domain.IntFilter, error) {
	filter := &domain.IntFilter{}
	targets := []struct {
		suffix string
		dst    **int
	}{
		{"", &filter.Eq},
		{"_ne", &filter.Ne},
		{"_gt", &filter.Gt},
		{"_gte", &filter.Gte},
		{"_lt", &filter.Lt},
		{"_lte", &filter.Lte},
	}
	set := false
	for _, target := range targets {
		raw := values.Get(field + target.suffix)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s%s", ErrInvalidQueryParam, field, target.suffix)
		}
		*target.dst = &v
		set = true
	}
	if !set {
		return nil, nil
	}
	return filter, nil
}

func intParam(values url.Values, name string) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidQueryParam, name)
	}
	return v, nil
}

func optionalString(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}
	v := values.Get(key)
	return &v
}
