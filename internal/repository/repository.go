package repository

import (
	"context"

	"recipe-api/internal/model"
)

// RecipeRepository defines the interface for recipe data access operations.
// Lookups that match nothing return a nil recipe or an empty slice with a nil
// error.
type RecipeRepository interface {
	// Create inserts a new recipe and returns the stored document.
	Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)

	// FindAll returns every recipe in storage order.
	FindAll(ctx context.Context) ([]model.Recipe, error)

	// FindByTitle returns the first recipe whose title matches exactly.
	FindByTitle(ctx context.Context, title string) (*model.Recipe, error)

	// FindByAuthor returns all recipes by the given author.
	FindByAuthor(ctx context.Context, author string) ([]model.Recipe, error)

	// FindByDifficulty returns all recipes with the given difficulty level.
	FindByDifficulty(ctx context.Context, level string) ([]model.Recipe, error)

	// FindByID returns the recipe with the given identifier.
	FindByID(ctx context.Context, id string) (*model.Recipe, error)

	// UpdateByID merges patch into the recipe with the given identifier and
	// returns the updated document.
	UpdateByID(ctx context.Context, id string, patch *model.RecipePatch) (*model.Recipe, error)

	// UpdateByTitle merges patch into the first recipe matching title.
	UpdateByTitle(ctx context.Context, title string, patch *model.RecipePatch) (*model.Recipe, error)

	// DeleteByID removes the recipe and returns what was removed.
	DeleteByID(ctx context.Context, id string) (*model.Recipe, error)

	// Ping checks that the underlying store is reachable.
	Ping(ctx context.Context) error
}
