package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/recipes-service/config"
	"github.com/pageza/recipes-service/internal/database"
	"github.com/pageza/recipes-service/internal/logger"
)

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "", "Migrations directory (default: MIGRATIONS_DIR or ./migrations)")
	flag.Parse()

	log, err := logger.New(os.Getenv("LOG_LEVEL"), config.IsDevelopment())
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Default()
	cfg.DBDriver = "postgres"
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err = config.LoadConfig()
		if err != nil {
			log.Fatal("Failed to load configuration", zap.Error(err))
		}
		dsn = cfg.PostgresDSN()
	}
	if *dir == "" {
		*dir = cfg.MigrationsDir
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := database.NewMigrator(db, *dir, log)

	if *rollback {
		name, err := m.Rollback(ctx)
		if errors.Is(err, database.ErrNoMigrations) {
			log.Info("No migrations to rollback")
			return
		}
		if err != nil {
			log.Fatal("Rollback failed", zap.Error(err))
		}
		log.Info("Rolled back migration", zap.String("name", name))
		return
	}

	applied, err := m.Up(ctx)
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Migrations complete", zap.Strings("applied", applied))
}
