package service

import (
	"context"
	"fmt"

	"recipe-api/internal/model"
	"recipe-api/internal/repository"

	"github.com/rs/zerolog"
)

// recipeService implements RecipeService.
type recipeService struct {
	recipeRepo repository.RecipeRepository
	logger     zerolog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(recipeRepo repository.RecipeRepository, logger zerolog.Logger) RecipeService {
	return &recipeService{
		recipeRepo: recipeRepo,
		logger:     logger.With().Str("service", "recipe").Logger(),
	}
}

// Create stores a new recipe.
func (s *recipeService) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	created, err := s.recipeRepo.Create(ctx, recipe)
	if err != nil {
		s.logger.Error().Err(err).Str("title", recipe.Title).Msg("failed to create recipe")
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.logger.Info().
		Str("recipe_id", created.ID).
		Str("title", created.Title).
		Msg("recipe created")

	return created, nil
}

// GetAll retrieves every recipe.
func (s *recipeService) GetAll(ctx context.Context) ([]model.Recipe, error) {
	recipes, err := s.recipeRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all recipes")
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}

	if len(recipes) == 0 {
		return nil, model.ErrRecipeNotFound
	}

	s.logger.Debug().Int("count", len(recipes)).Msg("retrieved recipes")

	return recipes, nil
}

// GetByTitle retrieves the first recipe matching title.
func (s *recipeService) GetByTitle(ctx context.Context, title string) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByTitle(ctx, title)
	if err != nil {
		s.logger.Error().Err(err).Str("title", title).Msg("failed to get recipe by title")
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if recipe == nil {
		s.logger.Debug().Str("title", title).Msg("recipe not found")
		return nil, model.ErrRecipeNotFound
	}

	return recipe, nil
}

// GetByAuthor retrieves all recipes by author.
func (s *recipeService) GetByAuthor(ctx context.Context, author string) ([]model.Recipe, error) {
	recipes, err := s.recipeRepo.FindByAuthor(ctx, author)
	if err != nil {
		s.logger.Error().Err(err).Str("author", author).Msg("failed to get recipes by author")
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}

	if len(recipes) == 0 {
		return nil, model.ErrRecipeNotFound
	}

	s.logger.Debug().
		Str("author", author).
		Int("count", len(recipes)).
		Msg("retrieved recipes by author")

	return recipes, nil
}

// GetByDifficulty retrieves all recipes at a difficulty level.
func (s *recipeService) GetByDifficulty(ctx context.Context, level string) ([]model.Recipe, error) {
	recipes, err := s.recipeRepo.FindByDifficulty(ctx, level)
	if err != nil {
		s.logger.Error().Err(err).Str("difficulty", level).Msg("failed to get recipes by difficulty")
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}

	if len(recipes) == 0 {
		return nil, model.ErrRecipeNotFound
	}

	return recipes, nil
}

// GetByID retrieves a recipe by its identifier.
func (s *recipeService) GetByID(ctx context.Context, id string) (*model.Recipe, error) {
	if id == "" {
		s.logger.Warn().Msg("recipe ID is empty")
		return nil, model.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("recipe_id", id).Msg("failed to get recipe by ID")
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if recipe == nil {
		s.logger.Debug().Str("recipe_id", id).Msg("recipe not found")
		return nil, model.ErrRecipeNotFound
	}

	return recipe, nil
}

// UpdateByID applies patch to the recipe with the given identifier.
func (s *recipeService) UpdateByID(ctx context.Context, id string, patch *model.RecipePatch) (*model.Recipe, error) {
	if patch.IsEmpty() {
		s.logger.Debug().Str("recipe_id", id).Msg("empty patch, only updatedAt changes")
	}

	updated, err := s.recipeRepo.UpdateByID(ctx, id, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("recipe_id", id).Msg("failed to update recipe by ID")
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	if updated == nil {
		s.logger.Debug().Str("recipe_id", id).Msg("recipe not found for update")
		return nil, model.ErrRecipeNotFound
	}

	s.logger.Info().Str("recipe_id", id).Msg("recipe updated")

	return updated, nil
}

// UpdateByTitle applies patch to the first recipe matching title.
func (s *recipeService) UpdateByTitle(ctx context.Context, title string, patch *model.RecipePatch) (*model.Recipe, error) {
	if patch.IsEmpty() {
		s.logger.Debug().Str("title", title).Msg("empty patch, only updatedAt changes")
	}

	updated, err := s.recipeRepo.UpdateByTitle(ctx, title, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("title", title).Msg("failed to update recipe by title")
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	if updated == nil {
		s.logger.Debug().Str("title", title).Msg("recipe not found for update")
		return nil, model.ErrRecipeNotFound
	}

	s.logger.Info().
		Str("recipe_id", updated.ID).
		Str("title", title).
		Msg("recipe updated")

	return updated, nil
}

// DeleteByID removes the recipe with the given identifier.
func (s *recipeService) DeleteByID(ctx context.Context, id string) (*model.Recipe, error) {
	deleted, err := s.recipeRepo.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("recipe_id", id).Msg("failed to delete recipe")
		return nil, fmt.Errorf("failed to delete recipe: %w", err)
	}

	if deleted == nil {
		s.logger.Debug().Str("recipe_id", id).Msg("recipe not found for delete")
		return nil, model.ErrRecipeNotFound
	}

	s.logger.Info().Str("recipe_id", id).Msg("recipe deleted")

	return deleted, nil
}

// Ping checks the backing store is reachable.
func (s *recipeService) Ping(ctx context.Context) error {
	if err := s.recipeRepo.Ping(ctx); err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}
	return nil
}
