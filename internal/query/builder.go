package query

import (
	"github.com/pageza/recipes-service/internal/model"
)

// Filters are the optional search criteria. Nil and empty values are ignored.
type Filters struct {
	Vegetarian           *bool
	Servings             *int
	InstructionsContains *string
	IncludeIngredients   []string
	ExcludeIngredients   []string
}

// Build turns filters into a conjunction. Ingredient terms are matched against the whole
// stored blob, so a term may also hit a longer ingredient or span the separator.
func Build(f Filters) Expr {
	conjuncts := make([]Expr, 0, 5)

	if f.Vegetarian != nil {
		conjuncts = append(conjuncts, Eq(model.ColumnVegetarian, *f.Vegetarian))
	}
	if f.Servings != nil {
		conjuncts = append(conjuncts, Eq(model.ColumnServings, *f.Servings))
	}
	if f.InstructionsContains != nil && *f.InstructionsContains != "" {
		conjuncts = append(conjuncts, Like(model.ColumnInstructions, *f.InstructionsContains))
	}
	if len(f.IncludeIngredients) > 0 {
		include := make([]Expr, 0, len(f.IncludeIngredients))
		for _, ingredient := range f.IncludeIngredients {
			include = append(include, Like(model.ColumnIngredients, ingredient))
		}
		conjuncts = append(conjuncts, Or(include...))
	}
	if len(f.ExcludeIngredients) > 0 {
		exclude := make([]Expr, 0, len(f.ExcludeIngredients))
		for _, ingredient := range f.ExcludeIngredients {
			exclude = append(exclude, NotLike(model.ColumnIngredients, ingredient))
		}
		conjuncts = append(conjuncts, And(exclude...))
	}

	return And(conjuncts...)
}
