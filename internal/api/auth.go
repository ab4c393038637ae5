package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipes-service/internal/service"
	"github.com/pageza/recipes-service/internal/types"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/auth/token", h.Token)
}

// Token exchanges credentials for a bearer token. Basic credentials take precedence over a
// JSON body.
func (h *AuthHandler) Token(c *gin.Context) {
	var req types.TokenRequest
	if user, pass, ok := c.Request.BasicAuth(); ok {
		req = types.TokenRequest{Username: user, Password: pass}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, token)
}
