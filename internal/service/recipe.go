package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/recipes-service/internal/mapper"
	"github.com/pageza/recipes-service/internal/query"
	"github.com/pageza/recipes-service/internal/repository"
	"github.com/pageza/recipes-service/internal/types"
)

// ErrRecipeNotFound is returned when no recipe has the requested id.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeService handles recipe operations
type RecipeService struct {
	store  RecipeStore
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(store RecipeStore, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		store:  store,
		logger: logger,
	}
}

// AddRecipe stores a new recipe and returns it with its assigned id.
func (s *RecipeService) AddRecipe(ctx context.Context, req types.RecipeRequest) (*types.RecipeResponse, error) {
	s.logger.Info("Adding recipe", zap.String("name", req.Name))

	recipe := mapper.ToModel(req)
	if err := s.store.Insert(ctx, &recipe); err != nil {
		return nil, err
	}

	resp := mapper.ToResponse(recipe)
	return &resp, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id int64) (*types.RecipeResponse, error) {
	s.logger.Info("Getting recipe by id", zap.Int64("id", id))

	recipe, err := s.store.Fetch(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}

	resp := mapper.ToResponse(*recipe)
	return &resp, nil
}

// UpdateRecipe replaces every field of an existing recipe.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id int64, req types.RecipeRequest) (*types.RecipeResponse, error) {
	s.logger.Info("Updating recipe", zap.Int64("id", id))

	recipe := mapper.ToModel(req)
	if err := s.store.Replace(ctx, id, &recipe); err != nil {
		return nil, notFound(err, id)
	}
	recipe.ID = id

	resp := mapper.ToResponse(recipe)
	return &resp, nil
}

// DeleteRecipe removes a recipe. Removing an absent recipe is not an error.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id int64) error {
	s.logger.Info("Deleting recipe", zap.Int64("id", id))
	return s.store.Delete(ctx, id)
}

// SearchRecipes returns every recipe matching filters. The result is never nil.
func (s *RecipeService) SearchRecipes(ctx context.Context, filters query.Filters) ([]types.RecipeResponse, error) {
	expr := query.Build(filters)
	s.logger.Info("Searching recipes", zap.Stringer("criteria", expr))

	recipes, err := s.store.Query(ctx, expr)
	if err != nil {
		return nil, err
	}
	return mapper.ToResponses(recipes), nil
}

func notFound(err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w with id: %d", ErrRecipeNotFound, id)
	}
	return err
}
