package gqlapi

import (
	"github.com/graphql-go/graphql"

	adoptionmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/http/mapper"
	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	petmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/http/mapper"
	pettypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	usermapper "github.com/Apurer/go-gin-adoption-api/internal/domains/users/adapters/http/mapper"
	usertypes "github.com/Apurer/go-gin-adoption-api/internal/domains/users/application/types"
)

// resolvers render results through the REST mappers so both transports share field names.
type resolvers struct {
	svc Services
}

func (r *resolvers) pets(p graphql.ResolveParams) (interface{}, error) {
	input := pettypes.ListPetsInput{}
	if raw, ok := p.Args["filter"].(map[string]interface{}); ok {
		input.Filter = petFilterFrom(raw)
	}
	if sort, ok := p.Args["sort"].(string); ok {
		input.Sort = sort
	}
	if raw, ok := p.Args["pagination"].(map[string]interface{}); ok {
		if v := optInt(raw, "limit"); v != nil {
			input.Limit = *v
		}
		if v := optInt(raw, "offset"); v != nil {
			input.Offset = *v
		}
	}
	result, err := r.svc.Pets.List(p.Context, input)
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return emptyIfNil(petmapper.FromProjections(result)), nil
}

func (r *resolvers) pet(p graphql.ResolveParams) (interface{}, error) {
	result, err := r.svc.Pets.GetByID(p.Context, pettypes.PetIdentifier{ID: idArg(p)})
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return petmapper.FromProjection(result), nil
}

func (r *resolvers) createPet(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p)
	result, err := r.svc.Pets.RegisterPet(p.Context, pettypes.RegisterPetInput{
		Name: optString(in, "name"),
		Race: optString(in, "race"),
		Age:  optInt(in, "age"),
	})
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return petmapper.FromProjection(result), nil
}

func (r *resolvers) updatePet(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p)
	result, err := r.svc.Pets.UpdatePet(p.Context, pettypes.UpdatePetInput{
		ID:   idArg(p),
		Name: optString(in, "name"),
		Race: optString(in, "race"),
		Age:  optInt(in, "age"),
	})
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return petmapper.FromProjection(result), nil
}

func (r *resolvers) deletePet(p graphql.ResolveParams) (interface{}, error) {
	id := idArg(p)
	if err := r.svc.Pets.Delete(p.Context, pettypes.PetIdentifier{ID: id}); err != nil {
		return nil, toGraphQLError(err)
	}
	return petmapper.DeletedMessage(id).Message, nil
}

func (r *resolvers) users(p graphql.ResolveParams) (interface{}, error) {
	result, err := r.svc.Users.List(p.Context)
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return emptyIfNil(usermapper.FromProjections(result)), nil
}

func (r *resolvers) user(p graphql.ResolveParams) (interface{}, error) {
	return r.loadUser(p, idArg(p))
}

func (r *resolvers) loadUser(p graphql.ResolveParams, id string) (interface{}, error) {
	result, err := r.svc.Users.GetByID(p.Context, usertypes.UserIdentifier{ID: id})
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return usermapper.FromProjection(result), nil
}

func (r *resolvers) userPets(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(usermapper.User)
	if !ok {
		return nil, nil
	}
	result, err := r.svc.Users.ListPets(p.Context, usertypes.UserIdentifier{ID: user.ID})
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return emptyIfNil(petmapper.FromProjections(result)), nil
}

func (r *resolvers) createUser(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p)
	result, err := r.svc.Users.CreateUser(p.Context, usertypes.CreateUserInput{Name: optString(in, "name")})
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return usermapper.FromProjection(result), nil
}

func (r *resolvers) verifyUser(p graphql.ResolveParams) (interface{}, error) {
	result, err := r.svc.Users.Verify(p.Context, usertypes.VerifyUserInput{
		ID:       idArg(p),
		CanAdopt: optBool(p.Args, "canAdopt"),
	})
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return usermapper.FromProjection(result), nil
}

func (r *resolvers) adoptions(p graphql.ResolveParams) (interface{}, error) {
	result, err := r.svc.Adoptions.ListAdoptions(p.Context)
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return emptyIfNil(adoptionmapper.FromProjections(result)), nil
}

func (r *resolvers) adoption(p graphql.ResolveParams) (interface{}, error) {
	result, err := r.svc.Adoptions.GetAdoption(p.Context, adoptiontypes.AdoptionIdentifier{ID: idArg(p)})
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return adoptionmapper.FromProjection(result), nil
}

func (r *resolvers) adoptionUser(p graphql.ResolveParams) (interface{}, error) {
	adoption, ok := p.Source.(adoptionmapper.Adoption)
	if !ok {
		return nil, nil
	}
	return r.loadUser(p, adoption.UserID)
}

func (r *resolvers) adoptionPet(p graphql.ResolveParams) (interface{}, error) {
	adoption, ok := p.Source.(adoptionmapper.Adoption)
	if !ok {
		return nil, nil
	}
	result, err := r.svc.Pets.GetByID(p.Context, pettypes.PetIdentifier{ID: adoption.PetID})
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return petmapper.FromProjection(result), nil
}

func (r *resolvers) createAdoption(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p)
	input := adoptiontypes.RequestAdoptionInput{}
	if v := optString(in, "userId"); v != nil {
		input.UserID = *v
	}
	if v := optString(in, "petId"); v != nil {
		input.PetID = *v
	}
	result, err := r.svc.Adoptions.RequestAdoption(p.Context, input)
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return adoptionmapper.FromProjection(result), nil
}

func (r *resolvers) removeAdoption(p graphql.ResolveParams) (interface{}, error) {
	if err := r.svc.Adoptions.RemoveAdoption(p.Context, adoptiontypes.AdoptionIdentifier{ID: idArg(p)}); err != nil {
		return nil, toGraphQLError(err)
	}
	return true, nil
}

func petFilterFrom(raw map[string]interface{}) domain.Filter {
	filter := domain.Filter{Adopted: optBool(raw, "adopted")}
	if m, ok := raw["name"].(map[string]interface{}); ok {
		filter.Name = stringFilterFrom(m)
	}
	if m, ok := raw["race"].(map[string]interface{}); ok {
		filter.Race = stringFilterFrom(m)
	}
	if m, ok := raw["age"].(map[string]interface{}); ok {
		filter.Age = &domain.IntFilter{
			Eq:  optInt(m, "eq"),
			Ne:  optInt(m, "ne"),
			Gt:  optInt(m, "gt"),
			Gte: optInt(m, "gte"),
			Lt:  optInt(m, "lt"),
			Lte: optInt(m, "lte"),
		}
	}
	return filter
}

func stringFilterFrom(m map[string]interface{}) *domain.StringFilter {
	return &domain.StringFilter{
		Eq:          optString(m, "eq"),
		Ne:          optString(m, "ne"),
		Contains:    optString(m, "contains"),
		NotContains: optString(m, "notContains"),
	}
}

func idArg(p graphql.ResolveParams) string {
	id, _ := p.Args["id"].(string)
	return id
}

func inputArg(p graphql.ResolveParams) map[string]interface{} {
	in, _ := p.Args["input"].(map[string]interface{})
	return in
}

func optString(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func optInt(m map[string]interface{}, key string) *int {
	if v, ok := m[key].(int); ok {
		return &v
	}
	return nil
}

func optBool(m map[string]interface{}, key string) *bool {
	if v, ok := m[key].(bool); ok {
		return &v
	}
	return nil
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
