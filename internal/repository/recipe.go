// Package repository persists recipes through GORM.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipes-service/internal/model"
	"github.com/pageza/recipes-service/internal/query"
)

// ErrNotFound is returned when no row has the requested id.
var ErrNotFound = errors.New("record not found")

// RecipeRepository is the recipe store. Every method issues a single statement.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a store over db.
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Insert stores recipe and sets its ID.
func (r *RecipeRepository) Insert(ctx context.Context, recipe *model.Recipe) error {
	recipe.ID = 0
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// Fetch loads the recipe with the given id.
func (r *RecipeRepository) Fetch(ctx context.Context, id int64) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch recipe %d: %w", id, err)
	}
	return &recipe, nil
}

// Replace overwrites every column but the id. Nothing changes when the id is absent.
func (r *RecipeRepository) Replace(ctx context.Context, id int64, recipe *model.Recipe) error {
	res := r.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("id = ?", id).
		Updates(map[string]any{
			model.ColumnName:         recipe.Name,
			model.ColumnVegetarian:   recipe.Vegetarian,
			model.ColumnServings:     recipe.Servings,
			model.ColumnIngredients:  recipe.Ingredients,
			model.ColumnInstructions: recipe.Instructions,
		})
	if res.Error != nil {
		return fmt.Errorf("replace recipe %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	recipe.ID = id
	return nil
}

// Delete removes the recipe. Deleting an absent id succeeds.
func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&model.Recipe{}, id).Error; err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	return nil
}

// Query returns every recipe matching e in store order.
func (r *RecipeRepository) Query(ctx context.Context, e query.Expr) ([]model.Recipe, error) {
	tx := r.db.WithContext(ctx)
	if where := query.Clause(e); where != nil {
		tx = tx.Clauses(clause.Where{Exprs: []clause.Expression{where}})
	}

	recipes := make([]model.Recipe, 0)
	if err := tx.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	return recipes, nil
}
