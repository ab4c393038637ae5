// Package mapper converts between the external recipe representation and the stored row.
//
// The stored row keeps ingredients as a single blob: the list joined with IngredientSeparator.
// Tokens that themselves contain the separator do not survive a round trip; the HTTP layer
// rejects them before they get here.
package mapper

import (
	"strings"

	"github.com/pageza/recipes-service/internal/model"
	"github.com/pageza/recipes-service/internal/types"
)

// IngredientSeparator joins ingredient tokens in the stored blob.
const IngredientSeparator = ", "

// EncodeIngredients joins the list into the stored blob. Nil and empty lists encode to "".
func EncodeIngredients(ingredients []string) string {
	if len(ingredients) == 0 {
		return ""
	}
	return strings.Join(ingredients, IngredientSeparator)
}

// DecodeIngredients splits a stored blob back into tokens.
// An empty blob decodes to a single empty token, the same as a plain split.
func DecodeIngredients(blob string) []string {
	return strings.Split(blob, IngredientSeparator)
}

// DecodeNullableIngredients decodes a blob that may be absent. Absent decodes to an empty list.
func DecodeNullableIngredients(blob *string) []string {
	if blob == nil {
		return []string{}
	}
	return DecodeIngredients(*blob)
}

// ToModel builds a row from a request. The id is left for the store to assign.
func ToModel(req types.RecipeRequest) model.Recipe {
	return model.Recipe{
		Name:         req.Name,
		Vegetarian:   req.Vegetarian,
		Servings:     req.Servings,
		Ingredients:  EncodeIngredients(req.Ingredients),
		Instructions: req.Instructions,
	}
}

// ToResponse builds the external representation of a row.
func ToResponse(recipe model.Recipe) types.RecipeResponse {
	return types.RecipeResponse{
		ID:           recipe.ID,
		Name:         recipe.Name,
		Vegetarian:   recipe.Vegetarian,
		Servings:     recipe.Servings,
		Ingredients:  DecodeIngredients(recipe.Ingredients),
		Instructions: recipe.Instructions,
	}
}

// ToResponses maps a result set. The returned slice is never nil.
func ToResponses(recipes []model.Recipe) []types.RecipeResponse {
	out := make([]types.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, ToResponse(r))
	}
	return out
}
