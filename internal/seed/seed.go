// Package seed loads sample recipes into the store.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pageza/recipes-service/internal/types"
)

// Adder is the slice of the recipe service the seeder needs.
type Adder interface {
	AddRecipe(ctx context.Context, req types.RecipeRequest) (*types.RecipeResponse, error)
}

// File is the layout of a seed YAML document.
type File struct {
	Recipes []Recipe `yaml:"recipes"`
}

type Recipe struct {
	Name         string   `yaml:"name"`
	Vegetarian   bool     `yaml:"vegetarian"`
	Servings     int      `yaml:"servings"`
	Ingredients  []string `yaml:"ingredients"`
	Instructions string   `yaml:"instructions"`
}

func (r Recipe) request() types.RecipeRequest {
	return types.RecipeRequest{
		Name:         r.Name,
		Vegetarian:   r.Vegetarian,
		Servings:     r.Servings,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

// Defaults are inserted when no seed file is given.
var Defaults = []Recipe{
	{
		Name:         "Pasta al pomodoro",
		Vegetarian:   true,
		Servings:     4,
		Ingredients:  []string{"Pasta", "Tomato", "Basil", "Olive oil"},
		Instructions: "Cook the pasta al dente and toss with the tomato sauce.",
	},
	{
		Name:         "Pancakes",
		Vegetarian:   true,
		Servings:     4,
		Ingredients:  []string{"Flour", "Milk", "Eggs"},
		Instructions: "Mix and fry in a hot pan.",
	},
	{
		Name:         "Steak with potatoes",
		Vegetarian:   false,
		Servings:     2,
		Ingredients:  []string{"Beef", "Potatoes", "Butter"},
		Instructions: "Sear the steak and roast the potatoes in the oven.",
	},
	{
		Name:         "Chicken fried rice",
		Vegetarian:   false,
		Servings:     3,
		Ingredients:  []string{"Rice", "Chicken", "Eggs", "Soy sauce"},
		Instructions: "Fry the chicken, add the rice and eggs, season with soy sauce.",
	},
	{
		Name:         "Greek salad",
		Vegetarian:   true,
		Servings:     2,
		Ingredients:  []string{"Tomato", "Cucumber", "Feta", "Olives"},
		Instructions: "Chop everything and dress with olive oil.",
	},
}

// Load reads recipes from a YAML seed file.
func Load(path string) ([]Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	if len(f.Recipes) == 0 {
		return nil, fmt.Errorf("seed file %s has no recipes", path)
	}
	return f.Recipes, nil
}

// Run inserts every recipe in order and returns the stored copies.
// It stops at the first failure.
func Run(ctx context.Context, recipes Adder, seeds []Recipe) ([]types.RecipeResponse, error) {
	created := make([]types.RecipeResponse, 0, len(seeds))
	for _, r := range seeds {
		resp, err := recipes.AddRecipe(ctx, r.request())
		if err != nil {
			return created, fmt.Errorf("failed to seed recipe %q: %w", r.Name, err)
		}
		created = append(created, *resp)
	}
	return created, nil
}
