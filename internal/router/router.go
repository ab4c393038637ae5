package router

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipes-service/config"
	"github.com/pageza/recipes-service/internal/api"
	"github.com/pageza/recipes-service/internal/database"
	"github.com/pageza/recipes-service/internal/metrics"
	"github.com/pageza/recipes-service/internal/middleware"
	"github.com/pageza/recipes-service/internal/repository"
	"github.com/pageza/recipes-service/internal/service"
)

// Dependencies are the collaborators the router wires into handlers.
// Redis may be nil when rate limiting is disabled.
type Dependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   redis.Cmdable
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	if err := api.RegisterValidators(); err != nil {
		return nil, err
	}

	cfg := deps.Config
	m := deps.Metrics
	if m == nil {
		m = metrics.New()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		m.Middleware(),
	)
	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	}
	router.Use(middleware.ErrorHandler(deps.Logger))
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", api.HealthCheck(func(ctx context.Context) error {
		return database.HealthCheck(ctx, deps.DB)
	}, deps.Logger))
	router.GET("/metrics", gin.WrapH(m.Handler()))

	authService, err := service.NewAuthService(cfg.AuthUsername, cfg.AuthPassword, cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	api.NewAuthHandler(authService).RegisterRoutes(router)

	recipeService := service.NewRecipeService(repository.NewRecipeRepository(deps.DB), deps.Logger)

	// Protected routes
	protected := router.Group("")
	if cfg.AuthEnabled {
		protected.Use(middleware.AuthMiddleware(authService))
	}

	var writeGuards []gin.HandlerFunc
	if cfg.RateLimitEnabled && deps.Redis != nil {
		limiter := middleware.NewRateLimiter(deps.Redis, middleware.RateLimitConfig{
			Window: cfg.RateLimitWindow,
			Limit:  cfg.RateLimitRequests,
		})
		writeGuards = append(writeGuards, limiter.Middleware(deps.Logger))
	}
	api.NewRecipeHandler(recipeService, m).RegisterRoutes(protected, writeGuards...)

	return router, nil
}
