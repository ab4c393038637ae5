package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pageza/recipes-service/internal/service"
)

// Response messages shared by every error path.
const (
	MessageInvalidInput = "Invalid input"
	MessageNotFound     = "Recipe Not Found"
	MessageUnauthorized = "Unauthorized"
	MessageUnexpected   = "An unexpected error occurred on the server."
)

var (
	ErrRouteNotFound    = errors.New("route not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Status          int    `json:"status"`
	Message         string `json:"message"`
	DetailedMessage string `json:"detailedMessage"`
}

// ErrorHandler renders the last error pushed by a handler with c.Error.
// Handlers that already wrote a response are left alone.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		resp := classify(c, last)
		if resp.Status >= http.StatusInternalServerError {
			logger.Error("Internal server error",
				zap.Error(last.Err),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path))
		} else {
			logger.Debug("Request rejected", zap.Int("status", resp.Status), zap.Error(last.Err))
		}

		c.AbortWithStatusJSON(resp.Status, resp)
	}
}

func classify(c *gin.Context, ginErr *gin.Error) ErrorResponse {
	err := ginErr.Err

	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &fieldErrs):
		return ErrorResponse{Status: http.StatusBadRequest, Message: MessageInvalidInput, DetailedMessage: describe(fieldErrs)}
	case ginErr.IsType(gin.ErrorTypeBind):
		return ErrorResponse{Status: http.StatusBadRequest, Message: MessageInvalidInput, DetailedMessage: err.Error()}
	case errors.Is(err, service.ErrRecipeNotFound):
		return ErrorResponse{Status: http.StatusNotFound, Message: MessageNotFound, DetailedMessage: err.Error()}
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return ErrorResponse{Status: http.StatusUnauthorized, Message: MessageUnauthorized, DetailedMessage: err.Error()}
	case errors.Is(err, ErrMethodNotAllowed):
		return ErrorResponse{
			Status:          http.StatusMethodNotAllowed,
			Message:         MessageInvalidInput,
			DetailedMessage: fmt.Sprintf("Request method '%s' is not supported", c.Request.Method),
		}
	case errors.Is(err, ErrRouteNotFound):
		return ErrorResponse{
			Status:          http.StatusNotFound,
			Message:         "Not Found",
			DetailedMessage: fmt.Sprintf("No endpoint %s %s", c.Request.Method, c.Request.URL.Path),
		}
	default:
		return ErrorResponse{Status: http.StatusInternalServerError, Message: MessageUnexpected}
	}
}

func describe(errs validator.ValidationErrors) string {
	var b strings.Builder
	b.WriteString("Validation failed for: ")
	for _, fe := range errs {
		fmt.Fprintf(&b, "Field '%s' %s. ", fe.Field(), ruleMessage(fe))
	}
	return b.String()
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must contain at least " + fe.Param() + " item(s)"
	case "unique":
		return "must not contain duplicates"
	case "noseparator":
		return `must not contain ", "`
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// NoRoute answers unknown paths through ErrorHandler.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(ErrRouteNotFound)
	}
}

// NoMethod answers known paths hit with an unsupported method through ErrorHandler.
func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(ErrMethodNotAllowed)
	}
}

// Recovery turns panics into the generic 500 reply.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Recovered from panic",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Status:  http.StatusInternalServerError,
			Message: MessageUnexpected,
		})
	})
}
