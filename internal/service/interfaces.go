package service

import (
	"context"

	"github.com/pageza/recipes-service/internal/model"
	"github.com/pageza/recipes-service/internal/query"
	"github.com/pageza/recipes-service/internal/types"
)

// RecipeStore is the persistence the recipe service depends on.
type RecipeStore interface {
	Insert(ctx context.Context, recipe *model.Recipe) error
	Fetch(ctx context.Context, id int64) (*model.Recipe, error)
	Replace(ctx context.Context, id int64, recipe *model.Recipe) error
	Delete(ctx context.Context, id int64) error
	Query(ctx context.Context, e query.Expr) ([]model.Recipe, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	AddRecipe(ctx context.Context, req types.RecipeRequest) (*types.RecipeResponse, error)
	GetRecipe(ctx context.Context, id int64) (*types.RecipeResponse, error)
	UpdateRecipe(ctx context.Context, id int64, req types.RecipeRequest) (*types.RecipeResponse, error)
	DeleteRecipe(ctx context.Context, id int64) error
	SearchRecipes(ctx context.Context, filters query.Filters) ([]types.RecipeResponse, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Authenticate(username, password string) error
	Login(username, password string) (*types.TokenResponse, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}
