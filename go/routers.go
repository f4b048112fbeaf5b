package petadoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes without a wired handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers of every resource.
type ApiHandleFunctions struct {
	// Routes for the PetAPI part of the API
	PetAPI PetAPI
	// Routes for the UserAPI part of the API
	UserAPI UserAPI
	// Routes for the AdoptionAPI part of the API
	AdoptionAPI AdoptionAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListPets", http.MethodGet, "/pets", handleFunctions.PetAPI.ListPets},
		{"GetPet", http.MethodGet, "/pets/pet/:petId", handleFunctions.PetAPI.GetPet},
		{"CreatePet", http.MethodPost, "/pets", handleFunctions.PetAPI.CreatePet},
		{"UpdatePet", http.MethodPut, "/pets/pet/:petId", handleFunctions.PetAPI.UpdatePet},
		{"DeletePet", http.MethodDelete, "/pets/pet/:petId", handleFunctions.PetAPI.DeletePet},

		{"ListUsers", http.MethodGet, "/users", handleFunctions.UserAPI.ListUsers},
		{"GetUser", http.MethodGet, "/users/user/:userId", handleFunctions.UserAPI.GetUser},
		{"ListUserPets", http.MethodGet, "/users/user/:userId/pets", handleFunctions.UserAPI.ListUserPets},
		{"CreateUser", http.MethodPost, "/users", handleFunctions.UserAPI.CreateUser},
		{"RenameUser", http.MethodPut, "/users/user/data/:userId", handleFunctions.UserAPI.RenameUser},
		{"VerifyUser", http.MethodPut, "/users/user/verify/:userId", handleFunctions.UserAPI.VerifyUser},
		{"DeleteUser", http.MethodDelete, "/users/user/:userId", handleFunctions.UserAPI.DeleteUser},

		{"ListAdoptions", http.MethodGet, "/adoptions", handleFunctions.AdoptionAPI.ListAdoptions},
		{"GetAdoption", http.MethodGet, "/adoptions/adoption/:adoptionId", handleFunctions.AdoptionAPI.GetAdoption},
		{"CreateAdoption", http.MethodPost, "/adoptions", handleFunctions.AdoptionAPI.CreateAdoption},
		{"DeleteAdoption", http.MethodDelete, "/adoptions/adoption/:adoptionId", handleFunctions.AdoptionAPI.DeleteAdoption},
	}
}
