package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name string
		ping Pinger
		code int
		body string
	}{
		{
			name: "healthy",
			ping: func(context.Context) error { return nil },
			code: http.StatusOK,
			body: `{"status":"healthy","database":"ok"}`,
		},
		{
			name: "database down",
			ping: func(context.Context) error { return errors.New("dial tcp: refused") },
			code: http.StatusServiceUnavailable,
			body: `{"status":"unhealthy","database":"unreachable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", HealthCheck(tt.ping, zap.NewNop()))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestRegisterValidatorsIsIdempotent(t *testing.T) {
	assert.NoError(t, RegisterValidators())
	assert.NoError(t, RegisterValidators())
}
