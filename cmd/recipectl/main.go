package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipes-service/config"
	"github.com/pageza/recipes-service/internal/database"
	"github.com/pageza/recipes-service/internal/export"
	"github.com/pageza/recipes-service/internal/logger"
	"github.com/pageza/recipes-service/internal/query"
	"github.com/pageza/recipes-service/internal/repository"
	"github.com/pageza/recipes-service/internal/seed"
	"github.com/pageza/recipes-service/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "recipectl",
		Usage: "Administer the recipes database",
		Commands: []*cli.Command{
			seedCmd(),
			exportCmd(),
		},
	}
}

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Insert sample recipes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Usage:   "YAML file with recipes (default: built-in samples)",
				Sources: cli.EnvVars("SEED_FILE"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			recipes := seed.Defaults
			if path := cmd.String("file"); path != "" {
				loaded, err := seed.Load(path)
				if err != nil {
					return err
				}
				recipes = loaded
			}

			return withService(ctx, func(_ *config.Config, log *zap.Logger, svc *service.RecipeService) error {
				created, err := seed.Run(ctx, svc, recipes)
				if err != nil {
					return err
				}
				for _, r := range created {
					fmt.Fprintf(cmd.Root().Writer, "%d\t%s\n", r.ID, r.Name)
				}
				log.Info("Seeded recipes", zap.Int("count", len(created)))
				return nil
			})
		},
	}
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Upload the result of a search to S3 as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "bucket",
				Usage:   "Target bucket",
				Sources: cli.EnvVars("S3_BUCKET_NAME"),
			},
			&cli.StringFlag{
				Name:  "key",
				Usage: "Object key (default: exports/recipes-<timestamp>.json)",
			},
			&cli.BoolFlag{
				Name:  "vegetarian",
				Usage: "Only vegetarian (true) or non-vegetarian (false) recipes",
			},
			&cli.IntFlag{
				Name:  "servings",
				Usage: "Exact number of servings",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Ingredient that must appear, can be repeated (any one matches)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Ingredient that must not appear, can be repeated",
			},
			&cli.StringFlag{
				Name:  "instructions",
				Usage: "Text the instructions must contain",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			filters := filtersFromFlags(cmd)

			return withService(ctx, func(cfg *config.Config, log *zap.Logger, svc *service.RecipeService) error {
				if bucket := cmd.String("bucket"); bucket != "" {
					cfg.S3Bucket = bucket
				}
				s3Cfg, err := config.NewS3Config(ctx, cfg)
				if err != nil {
					return err
				}

				key, err := export.NewExporter(s3Cfg.Client, s3Cfg.BucketName, log).
					Export(ctx, svc, filters, cmd.String("key"))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.Root().Writer, "s3://%s/%s\n", s3Cfg.BucketName, key)
				return nil
			})
		},
	}
}

func filtersFromFlags(cmd *cli.Command) query.Filters {
	var f query.Filters
	if cmd.IsSet("vegetarian") {
		veg := cmd.Bool("vegetarian")
		f.Vegetarian = &veg
	}
	if cmd.IsSet("servings") {
		servings := int(cmd.Int("servings"))
		f.Servings = &servings
	}
	if cmd.IsSet("instructions") {
		instructions := cmd.String("instructions")
		f.InstructionsContains = &instructions
	}
	f.IncludeIngredients = cmd.StringSlice("include")
	f.ExcludeIngredients = cmd.StringSlice("exclude")
	return f
}

// withService opens the configured database, applies migrations when enabled and hands a
// recipe service to fn.
func withService(ctx context.Context, fn func(*config.Config, *zap.Logger, *service.RecipeService) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	if cfg.DBAutoMigrate {
		if err := database.RunMigrations(ctx, db, cfg.MigrationsDir, log); err != nil {
			return err
		}
	}

	return fn(cfg, log, service.NewRecipeService(repository.NewRecipeRepository(db), log))
}

func closeDB(db *gorm.DB, log *zap.Logger) {
	if err := database.Close(db); err != nil {
		log.Warn("Failed to close database", zap.Error(err))
	}
}
