package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipes-service/internal/model"
	"github.com/pageza/recipes-service/internal/query"
	"github.com/pageza/recipes-service/internal/types"
)

// MockRecipeStore is a mock implementation of service.RecipeStore
type MockRecipeStore struct {
	mock.Mock
}

func (m *MockRecipeStore) Insert(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeStore) Fetch(ctx context.Context, id int64) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeStore) Replace(ctx context.Context, id int64, recipe *model.Recipe) error {
	args := m.Called(ctx, id, recipe)
	return args.Error(0)
}

func (m *MockRecipeStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeStore) Query(ctx context.Context, e query.Expr) ([]model.Recipe, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) AddRecipe(ctx context.Context, req types.RecipeRequest) (*types.RecipeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id int64) (*types.RecipeResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id int64, req types.RecipeRequest) (*types.RecipeResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeService) SearchRecipes(ctx context.Context, filters query.Filters) ([]types.RecipeResponse, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeResponse), args.Error(1)
}
