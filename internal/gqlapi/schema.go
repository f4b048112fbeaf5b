// Package gqlapi serves the pets, users and adoptions resources over GraphQL.
package gqlapi

import (
	"github.com/graphql-go/graphql"

	adoptionports "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
	userports "github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
)

// Services are the application ports the resolvers call.
type Services struct {
	Pets      petports.Service
	Users     userports.Service
	Adoptions adoptionports.Service
}

// NewSchema builds the executable schema.
func NewSchema(svc Services) (graphql.Schema, error) {
	r := &resolvers{svc: svc}

	petLinks := graphql.NewObject(graphql.ObjectConfig{
		Name: "PetLinks",
		Fields: graphql.Fields{
			"self": &graphql.Field{Type: graphql.String},
		},
	})
	petType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Pet",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"race":    &graphql.Field{Type: graphql.String},
			"age":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"adopted": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"links":   &graphql.Field{Type: petLinks},
		},
	})

	userLinks := graphql.NewObject(graphql.ObjectConfig{
		Name: "UserLinks",
		Fields: graphql.Fields{
			"self":   &graphql.Field{Type: graphql.String},
			"pets":   &graphql.Field{Type: graphql.String},
			"verify": &graphql.Field{Type: graphql.String},
		},
	})
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"canAdopt": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"pets":     &graphql.Field{Type: graphql.NewList(petType), Resolve: r.userPets},
			"links":    &graphql.Field{Type: userLinks},
		},
	})

	adoptionLinks := graphql.NewObject(graphql.ObjectConfig{
		Name: "AdoptionLinks",
		Fields: graphql.Fields{
			"self": &graphql.Field{Type: graphql.String},
			"user": &graphql.Field{Type: graphql.String},
			"pet":  &graphql.Field{Type: graphql.String},
		},
	})
	adoptionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Adoption",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"userId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"petId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"dateTime": &graphql.Field{Type: graphql.DateTime},
			"user":     &graphql.Field{Type: userType, Resolve: r.adoptionUser},
			"pet":      &graphql.Field{Type: petType, Resolve: r.adoptionPet},
			"links":    &graphql.Field{Type: adoptionLinks},
		},
	})

	stringFilter := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "StringFilter",
		Fields: graphql.InputObjectConfigFieldMap{
			"eq":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"ne":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"contains":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"notContains": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	intFilter := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "IntFilter",
		Fields: graphql.InputObjectConfigFieldMap{
			"eq":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"ne":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"gt":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"gte": &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"lt":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"lte": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})
	petFilter := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PetFilter",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":    &graphql.InputObjectFieldConfig{Type: stringFilter},
			"race":    &graphql.InputObjectFieldConfig{Type: stringFilter},
			"age":     &graphql.InputObjectFieldConfig{Type: intFilter},
			"adopted": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})
	pagination := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PaginationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"limit":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"offset": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})
	// Required fields stay nullable so the services report missing values with their own messages.
	petInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PetInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"race": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"age":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})
	userInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	adoptionInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AdoptionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"userId": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"petId":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	idArg := graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"pets": &graphql.Field{
				Type: graphql.NewList(petType),
				Args: graphql.FieldConfigArgument{
					"filter":     &graphql.ArgumentConfig{Type: petFilter},
					"sort":       &graphql.ArgumentConfig{Type: graphql.String},
					"pagination": &graphql.ArgumentConfig{Type: pagination},
				},
				Resolve: r.pets,
			},
			"pet":       &graphql.Field{Type: petType, Args: idArg, Resolve: r.pet},
			"users":     &graphql.Field{Type: graphql.NewList(userType), Resolve: r.users},
			"user":      &graphql.Field{Type: userType, Args: idArg, Resolve: r.user},
			"adoptions": &graphql.Field{Type: graphql.NewList(adoptionType), Resolve: r.adoptions},
			"adoption":  &graphql.Field{Type: adoptionType, Args: idArg, Resolve: r.adoption},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createPet": &graphql.Field{
				Type:    petType,
				Args:    graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(petInput)}},
				Resolve: r.createPet,
			},
			"updatePet": &graphql.Field{
				Type: petType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(petInput)},
				},
				Resolve: r.updatePet,
			},
			"deletePet": &graphql.Field{Type: graphql.String, Args: idArg, Resolve: r.deletePet},
			"createUser": &graphql.Field{
				Type:    userType,
				Args:    graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInput)}},
				Resolve: r.createUser,
			},
			"verifyUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"canAdopt": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
				},
				Resolve: r.verifyUser,
			},
			"createAdoption": &graphql.Field{
				Type:    adoptionType,
				Args:    graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(adoptionInput)}},
				Resolve: r.createAdoption,
			},
			"removeAdoption": &graphql.Field{Type: graphql.Boolean, Args: idArg, Resolve: r.removeAdoption},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
