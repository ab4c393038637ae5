package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/pageza/recipes-service/internal/query"
)

func TestSeedBuiltInRecipes(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "recipes.db"))
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	require.NoError(t, app.Run(context.Background(), []string{"recipectl", "seed"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "1\tPasta al pomodoro", lines[0])
}

func TestSeedMissingFile(t *testing.T) {
	err := newApp().Run(context.Background(), []string{"recipectl", "seed", "--file", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.ErrorContains(t, err, "failed to read seed file")
}

func TestFiltersFromFlags(t *testing.T) {
	var got query.Filters
	app := newApp()
	sub := app.Command("export")
	require.NotNil(t, sub)
	sub.Action = func(_ context.Context, cmd *cli.Command) error {
		got = filtersFromFlags(cmd)
		return nil
	}

	require.NoError(t, app.Run(context.Background(), []string{
		"recipectl", "export",
		"--vegetarian=false", "--servings", "2",
		"--include", "rice", "--include", "egg", "--exclude", "meat",
	}))

	require.NotNil(t, got.Vegetarian)
	assert.False(t, *got.Vegetarian)
	require.NotNil(t, got.Servings)
	assert.Equal(t, 2, *got.Servings)
	assert.Nil(t, got.InstructionsContains)
	assert.Equal(t, []string{"rice", "egg"}, got.IncludeIngredients)
	assert.Equal(t, []string{"meat"}, got.ExcludeIngredients)
}
