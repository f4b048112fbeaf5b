package petadoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	petmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/http/mapper"
	pettypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
	petports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
)

// PetAPI wires HTTP transport with the pets bounded context service.
type PetAPI struct {
	service petports.Service
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petports.Service) PetAPI {
	return PetAPI{service: service}
}

// Get /pets
// Lists pets matching the query filters
func (api *PetAPI) ListPets(c *gin.Context) {
	input, err := petmapper.ParseListQuery(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := api.service.List(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(result) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjections(result))
}

// Get /pets/pet/:petId
// Find pet by ID
func (api *PetAPI) GetPet(c *gin.Context) {
	pet, err := api.service.GetByID(c.Request.Context(), pettypes.PetIdentifier{ID: c.Param("petId")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjection(pet))
}

// Post /pets
// Registers a new pet
func (api *PetAPI) CreatePet(c *gin.Context) {
	var payload petmapper.CreatePet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	input, err := payload.ToRegisterInput()
	if err != nil {
		respondError(c, err)
		return
	}
	saved, err := api.service.RegisterPet(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, petmapper.FromProjection(saved))
}

// Put /pets/pet/:petId
// Updates name, race or age of an existing pet
func (api *PetAPI) UpdatePet(c *gin.Context) {
	var payload petmapper.UpdatePet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	input, err := payload.ToUpdateInput(c.Param("petId"))
	if err != nil {
		respondError(c, err)
		return
	}
	updated, err := api.service.UpdatePet(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjection(updated))
}

// Delete /pets/pet/:petId
// Deletes a pet
func (api *PetAPI) DeletePet(c *gin.Context) {
	id := c.Param("petId")
	if err := api.service.Delete(c.Request.Context(), pettypes.PetIdentifier{ID: id}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.DeletedMessage(id))
}
