package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/recipes-service/config"
	"github.com/pageza/recipes-service/internal/database"
	"github.com/pageza/recipes-service/internal/logger"
	"github.com/pageza/recipes-service/internal/metrics"
	"github.com/pageza/recipes-service/internal/router"
	"github.com/pageza/recipes-service/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "recipes-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Info("Starting recipes API", zap.String("environment", string(config.GetEnvironment())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if cfg.DBAutoMigrate {
		if err := database.RunMigrations(ctx, db, cfg.MigrationsDir, log); err != nil {
			return err
		}
	}

	var rdb redis.Cmdable
	if client := rateLimitStore(ctx, cfg, log); client != nil {
		defer client.Close()
		rdb = client
	}

	handler, err := router.SetupRouter(router.Dependencies{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		Logger:  log,
		Metrics: metrics.New(),
	})
	if err != nil {
		return err
	}
	srv := server.New(cfg, handler, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}

// rateLimitStore connects to Redis when rate limiting is enabled. An unreachable Redis leaves
// the write routes unlimited instead of keeping the API down.
func rateLimitStore(ctx context.Context, cfg *config.Config, log *zap.Logger) *redis.Client {
	if !cfg.RateLimitEnabled {
		return nil
	}
	client, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn("Rate limiting disabled, Redis is unavailable", zap.Error(err))
		return nil
	}
	return client
}
