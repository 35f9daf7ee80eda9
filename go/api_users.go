package posserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/retail-pos/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/retail-pos/internal/domains/users/ports"
	apierrors "github.com/Apurer/retail-pos/internal/shared/errors"
)

// UserAPI manages till accounts. Every route requires the ADMIN role.
type UserAPI struct {
	service userports.Service
}

func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /api/v1/users
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload userhttpmapper.UserPayload
	if !bindPayload(c, &payload) {
		return
	}
	user, err := userhttpmapper.ToDomainUser(payload)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	saved, err := api.service.CreateUser(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.FromDomainUser(saved))
}

// Get /api/v1/users
func (api *UserAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUsers(users))
}

// Get /api/v1/users/:username
func (api *UserAPI) GetUserByName(c *gin.Context) {
	user, err := api.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

// Put /api/v1/users/:username
// An empty password keeps the current one; deactivating revokes the user's sessions
func (api *UserAPI) UpdateUser(c *gin.Context) {
	var payload userhttpmapper.UserPayload
	if !bindPayload(c, &payload) {
		return
	}
	user, err := userhttpmapper.ToDomainUserUpdate(payload)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	updated, err := api.service.Update(c.Request.Context(), c.Param("username"), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(updated))
}

// Delete /api/v1/users/:username
func (api *UserAPI) DeleteUser(c *gin.Context) {
	username := c.Param("username")
	if current, ok := CurrentUser(c); ok && current.Username == username {
		respondProblem(c, apierrors.ErrConflict.WithDetail("cannot delete the signed-in account"))
		return
	}
	if err := api.service.Delete(c.Request.Context(), username); err != nil {
		respondServiceError(c, err)
		return
	}
	noContent(c)
}
