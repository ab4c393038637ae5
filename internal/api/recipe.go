package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipes-service/internal/metrics"
	"github.com/pageza/recipes-service/internal/query"
	"github.com/pageza/recipes-service/internal/service"
	"github.com/pageza/recipes-service/internal/types"
)

const msgRecipeDeleted = "Recipe deleted successfully"

type RecipeHandler struct {
	recipes service.IRecipeService
	metrics *metrics.Metrics
}

func NewRecipeHandler(recipes service.IRecipeService, m *metrics.Metrics) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		metrics: m,
	}
}

// RegisterRoutes mounts the recipe endpoints. writeGuards run before create, update and delete.
func (h *RecipeHandler) RegisterRoutes(router gin.IRoutes, writeGuards ...gin.HandlerFunc) {
	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeGuards...), handler)
	}

	router.POST("/recipe", write(h.CreateRecipe)...)
	router.GET("/recipe/:id", h.GetRecipe)
	router.PUT("/recipe/:id", write(h.UpdateRecipe)...)
	router.DELETE("/recipe/:id", write(h.DeleteRecipe)...)
	router.GET("/recipes", h.SearchRecipes)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	recipe, err := h.recipes.AddRecipe(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.metrics.RecipeWritten("create")
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.metrics.RecipeWritten("update")
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	h.metrics.RecipeWritten("delete")
	c.JSON(http.StatusOK, types.MessageResponse{Message: msgRecipeDeleted})
}

// SearchRecipes handles GET /recipes. Absent or empty parameters do not constrain the result.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var q types.SearchRecipesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	filters, err := searchFilters(q)
	if err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), filters)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.metrics.ObserveSearch(len(recipes))
	c.JSON(http.StatusOK, recipes)
}

// paramError reports a query parameter in the same shape as body validation failures.
type paramError struct {
	field string
	rule  string
}

func (e paramError) Error() string {
	return fmt.Sprintf("Validation failed for: Field '%s' %s. ", e.field, e.rule)
}

func searchFilters(q types.SearchRecipesQuery) (query.Filters, error) {
	f := query.Filters{
		InstructionsContains: q.Instructions,
		IncludeIngredients:   q.IncludeIngredients,
		ExcludeIngredients:   q.ExcludeIngredients,
	}

	if q.Vegetarian != nil && *q.Vegetarian != "" {
		veg, err := strconv.ParseBool(*q.Vegetarian)
		if err != nil {
			return query.Filters{}, paramError{field: "vegetarian", rule: "must be true or false"}
		}
		f.Vegetarian = &veg
	}

	if q.Servings != nil && *q.Servings != "" {
		servings, err := strconv.Atoi(*q.Servings)
		if err != nil {
			return query.Filters{}, paramError{field: "servings", rule: "must be a whole number"}
		}
		if servings <= 0 {
			return query.Filters{}, paramError{field: "servings", rule: "must be greater than 0"}
		}
		f.Servings = &servings
	}

	return f, nil
}

func recipeID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		_ = c.Error(fmt.Errorf("invalid recipe id %q", raw)).SetType(gin.ErrorTypeBind)
		return 0, false
	}
	return id, true
}
