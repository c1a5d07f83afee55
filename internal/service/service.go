package service

import (
	"context"

	"recipe-api/internal/model"
)

// RecipeService defines operations for recipe management. Lookups that match
// nothing return model.ErrRecipeNotFound.
type RecipeService interface {
	// Create stores a new recipe and returns it with its assigned ID.
	Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)

	// GetAll retrieves every recipe.
	GetAll(ctx context.Context) ([]model.Recipe, error)

	// GetByTitle retrieves the first recipe with an exactly matching title.
	GetByTitle(ctx context.Context, title string) (*model.Recipe, error)

	// GetByAuthor retrieves all recipes by an author.
	GetByAuthor(ctx context.Context, author string) ([]model.Recipe, error)

	// GetByDifficulty retrieves all recipes with a difficulty label.
	GetByDifficulty(ctx context.Context, level string) ([]model.Recipe, error)

	// GetByID retrieves a recipe by its identifier.
	GetByID(ctx context.Context, id string) (*model.Recipe, error)

	// UpdateByID applies a patch to the recipe with the given identifier.
	UpdateByID(ctx context.Context, id string, patch *model.RecipePatch) (*model.Recipe, error)

	// UpdateByTitle applies a patch to the first recipe matching title.
	UpdateByTitle(ctx context.Context, title string, patch *model.RecipePatch) (*model.Recipe, error)

	// DeleteByID removes a recipe and returns what was removed.
	DeleteByID(ctx context.Context, id string) (*model.Recipe, error)

	// Ping checks the backing store is reachable.
	Ping(ctx context.Context) error
}
