package petadoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/Apurer/go-gin-adoption-api/internal/domains/users/adapters/http/mapper"
	usertypes "github.com/Apurer/go-gin-adoption-api/internal/domains/users/application/types"
	userports "github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
)

// UserAPI wires HTTP transport with the users bounded context service.
type UserAPI struct {
	service userports.Service
}

// NewUserAPI wires dependencies.
func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// Get /users
// Lists every user
func (api *UserAPI) ListUsers(c *gin.Context) {
	result, err := api.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(result) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromProjections(result))
}

// Get /users/user/:userId
// Get user by id
func (api *UserAPI) GetUser(c *gin.Context) {
	user, err := api.service.GetByID(c.Request.Context(), usertypes.UserIdentifier{ID: c.Param("userId")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromProjection(user))
}

// Get /users/user/:userId/pets
// Lists the pets adopted by a user
func (api *UserAPI) ListUserPets(c *gin.Context) {
	pets, err := api.service.ListPets(c.Request.Context(), usertypes.UserIdentifier{ID: c.Param("userId")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromPets(pets))
}

// Post /users
// Create user
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload usermapper.CreateUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	saved, err := api.service.CreateUser(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usermapper.FromProjection(saved))
}

// Put /users/user/data/:userId
// Renames a user
func (api *UserAPI) RenameUser(c *gin.Context) {
	var payload usermapper.RenameUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	updated, err := api.service.Rename(c.Request.Context(), payload.ToInput(c.Param("userId")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromProjection(updated))
}

// Put /users/user/verify/:userId
// Grants or revokes adoption rights
func (api *UserAPI) VerifyUser(c *gin.Context) {
	var payload usermapper.VerifyUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	updated, err := api.service.Verify(c.Request.Context(), payload.ToInput(c.Param("userId")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromProjection(updated))
}

// Delete /users/user/:userId
// Delete user
func (api *UserAPI) DeleteUser(c *gin.Context) {
	id := c.Param("userId")
	if err := api.service.Delete(c.Request.Context(), usertypes.UserIdentifier{ID: id}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.DeletedMessage(id))
}
