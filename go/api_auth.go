package posserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/retail-pos/internal/domains/users/adapters/http/mapper"
	userdomain "github.com/Apurer/retail-pos/internal/domains/users/domain"
	userports "github.com/Apurer/retail-pos/internal/domains/users/ports"
	apierrors "github.com/Apurer/retail-pos/internal/shared/errors"
)

const (
	currentUserKey = "pos.currentUser"
	// tokenQueryParam lets EventSource clients, which cannot set headers, authenticate.
	tokenQueryParam = "access_token"
)

// AuthAPI issues and checks session tokens.
type AuthAPI struct {
	service userports.Service
}

func NewAuthAPI(service userports.Service) AuthAPI {
	return AuthAPI{service: service}
}

func (api *AuthAPI) enabled() bool {
	return api.service != nil
}

// Post /api/v1/auth/login
// Exchange username and password for a bearer token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload userhttpmapper.LoginPayload
	if !bindPayload(c, &payload) {
		return
	}
	session, user, err := api.service.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainSession(session, user))
}

// Post /api/v1/auth/logout
func (api *AuthAPI) Logout(c *gin.Context) {
	if err := api.service.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	noContent(c)
}

// Get /api/v1/auth/me
func (api *AuthAPI) CurrentUser(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail(userports.ErrUnauthenticated.Error()))
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

// RequireSession aborts with 401 unless the request carries a live session token.
func (api *AuthAPI) RequireSession(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("bearer token is required"))
		c.Abort()
		return
	}
	user, err := api.service.ResolveSession(c.Request.Context(), token)
	if err != nil {
		respondServiceError(c, err)
		c.Abort()
		return
	}
	c.Set(currentUserKey, user)
	c.Next()
}

// RequireAdmin must run after RequireSession.
func (api *AuthAPI) RequireAdmin(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok || !user.IsAdmin() {
		respondProblem(c, apierrors.ErrForbidden.WithDetail("administrator role required"))
		c.Abort()
		return
	}
	c.Next()
}

// CurrentUser returns the user resolved by RequireSession.
func CurrentUser(c *gin.Context) (*userdomain.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*userdomain.User)
	return user, ok && user != nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if scheme, token, found := strings.Cut(header, " "); found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return strings.TrimSpace(c.Query(tokenQueryParam))
}
