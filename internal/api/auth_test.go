package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipes-service/internal/middleware"
	"github.com/pageza/recipes-service/internal/mocks"
	"github.com/pageza/recipes-service/internal/service"
	"github.com/pageza/recipes-service/internal/types"
)

func setupAuthRouter(auth *mocks.MockAuthService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler(zap.NewNop()))
	NewAuthHandler(auth).RegisterRoutes(r)
	return r
}

func TestTokenWithBasicAuth(t *testing.T) {
	expires := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	auth := new(mocks.MockAuthService)
	auth.On("Login", "user", "userpass").Return(&types.TokenResponse{Token: "signed", ExpiresAt: expires}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
	req.SetBasicAuth("user", "userpass")
	w := httptest.NewRecorder()
	setupAuthRouter(auth).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"signed","expiresAt":"2024-01-02T00:00:00Z"}`, w.Body.String())
	auth.AssertExpectations(t)
}

func TestTokenWithJSONBody(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("Login", "user", "userpass").Return(&types.TokenResponse{Token: "signed"}, nil)

	w := perform(setupAuthRouter(auth), http.MethodPost, "/auth/token", `{"username":"user","password":"userpass"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	auth.AssertExpectations(t)
}

func TestTokenInvalidCredentials(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("Login", "user", "wrong").Return(nil, service.ErrInvalidCredentials)

	w := perform(setupAuthRouter(auth), http.MethodPost, "/auth/token", `{"username":"user","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.MessageUnauthorized, decodeError(t, w).Message)
}

func TestTokenMissingCredentials(t *testing.T) {
	auth := new(mocks.MockAuthService)

	w := perform(setupAuthRouter(auth), http.MethodPost, "/auth/token", `{"username":"user"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.HasPrefix(decodeError(t, w).DetailedMessage, "Validation failed for: Field 'password'"))
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}
