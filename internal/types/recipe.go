package types

// RecipeRequest is the body accepted by create and update.
type RecipeRequest struct {
	Name         string   `json:"name" binding:"required,notblank"`
	Vegetarian   bool     `json:"vegetarian"`
	Servings     int      `json:"servings" binding:"required,gt=0"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1,unique,dive,required,noseparator"`
	Instructions string   `json:"instructions" binding:"required,notblank"`
}

// RecipeResponse is the external representation of a stored recipe.
type RecipeResponse struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Vegetarian   bool     `json:"vegetarian"`
	Servings     int      `json:"servings"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

// SearchRecipesQuery binds the query string of GET /recipes. Vegetarian and Servings stay raw
// so that an empty value can mean "no filter".
type SearchRecipesQuery struct {
	Vegetarian         *string  `form:"vegetarian"`
	Servings           *string  `form:"servings"`
	IncludeIngredients []string `form:"includeIngredients"`
	ExcludeIngredients []string `form:"excludeIngredients"`
	Instructions       *string  `form:"instructions"`
}

// MessageResponse is returned by operations without a resource body.
type MessageResponse struct {
	Message string `json:"message"`
}
