package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipes-service/internal/types"
)

// ContextUsernameKey holds the authenticated username in the gin context.
const ContextUsernameKey = "username"

// Authenticator checks basic credentials and bearer tokens.
type Authenticator interface {
	Authenticate(username, password string) error
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware accepts either HTTP Basic credentials or a Bearer token.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, credentials, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok {
			unauthorized(c, "missing or malformed authorization header")
			return
		}

		var username string
		switch {
		case strings.EqualFold(scheme, "Bearer"):
			claims, err := auth.ValidateToken(strings.TrimSpace(credentials))
			if err != nil {
				unauthorized(c, err.Error())
				return
			}
			username = claims.Username
		case strings.EqualFold(scheme, "Basic"):
			user, pass, ok := c.Request.BasicAuth()
			if !ok {
				unauthorized(c, "malformed basic credentials")
				return
			}
			if err := auth.Authenticate(user, pass); err != nil {
				unauthorized(c, err.Error())
				return
			}
			username = user
		default:
			unauthorized(c, "unsupported authorization scheme")
			return
		}

		c.Set(ContextUsernameKey, username)
		c.Next()
	}
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", `Basic realm="recipes"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Status:          http.StatusUnauthorized,
		Message:         MessageUnauthorized,
		DetailedMessage: detail,
	})
}
