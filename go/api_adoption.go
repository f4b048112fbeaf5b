package petadoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adoptionmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/http/mapper"
	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	adoptionports "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
)

// AdoptionAPI exposes the adoption workflow engine over HTTP.
type AdoptionAPI struct {
	service adoptionports.Service
}

func NewAdoptionAPI(service adoptionports.Service) AdoptionAPI {
	return AdoptionAPI{service: service}
}

// Get /adoptions
func (api *AdoptionAPI) ListAdoptions(c *gin.Context) {
	result, err := api.service.ListAdoptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(result) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromProjections(result))
}

// Get /adoptions/adoption/:adoptionId
func (api *AdoptionAPI) GetAdoption(c *gin.Context) {
	adoption, err := api.service.GetAdoption(c.Request.Context(), adoptiontypes.AdoptionIdentifier{ID: c.Param("adoptionId")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromProjection(adoption))
}

// Post /adoptions
// Links an eligible user to an available pet
func (api *AdoptionAPI) CreateAdoption(c *gin.Context) {
	var payload adoptionmapper.CreateAdoption
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	saved, err := api.service.RequestAdoption(c.Request.Context(), payload.ToInput())
	if err != nil {
		adoptionResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, adoptionmapper.FromProjection(saved))
}

// Delete /adoptions/adoption/:adoptionId
// Removes the adoption record only; the pet flag and the user's pets are kept unless
// reversal on removal is enabled.
func (api *AdoptionAPI) DeleteAdoption(c *gin.Context) {
	if err := api.service.RemoveAdoption(c.Request.Context(), adoptiontypes.AdoptionIdentifier{ID: c.Param("adoptionId")}); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
