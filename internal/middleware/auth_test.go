package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipes-service/internal/mocks"
	"github.com/pageza/recipes-service/internal/service"
	"github.com/pageza/recipes-service/internal/types"
)

func newAuthRouter(auth Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(auth))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUsernameKey))
	})
	return r
}

func TestAuthMiddlewareBasic(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("Authenticate", "user", "userpass").Return(nil)
	auth.On("Authenticate", "user", "wrong").Return(service.ErrInvalidCredentials)
	r := newAuthRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.SetBasicAuth("user", "userpass")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user", w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.SetBasicAuth("user", "wrong")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))

	auth.AssertExpectations(t)
}

func TestAuthMiddlewareBearer(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("ValidateToken", "good").Return(&types.TokenClaims{Username: "user"}, nil)
	auth.On("ValidateToken", "bad").Return(nil, service.ErrInvalidToken)
	r := newAuthRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user", w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bad")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsMissingOrUnknownScheme(t *testing.T) {
	r := newAuthRouter(new(mocks.MockAuthService))

	for _, header := range []string{"", "Token abc", "Basic !!!not-base64"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}
