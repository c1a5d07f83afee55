package seed

import (
	"context"
	"fmt"

	"recipe-api/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds parallel file reads.
const maxConcurrentLoads = 4

// RecipeCreator stores a single recipe.
type RecipeCreator interface {
	Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
}

// Seeder loads seed files and creates their recipes.
type Seeder struct {
	loader  Loader
	creator RecipeCreator
	logger  zerolog.Logger
}

// NewSeeder creates a seeder that reads with loader and writes with creator.
func NewSeeder(loader Loader, creator RecipeCreator, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:  loader,
		creator: creator,
		logger:  logger.With().Str("component", "seeder").Logger(),
	}
}

// Seed loads every path concurrently, then creates the recipes in path order.
// Nothing is written if any file fails to load. It returns how many recipes
// were created, which is partial if a create fails midway.
func (s *Seeder) Seed(ctx context.Context, paths []string) (int, error) {
	batches := make([][]model.Recipe, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			recipes, err := s.loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", path, err)
			}
			batches[i] = recipes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("seed loading failed, nothing written")
		return 0, err
	}

	created := 0
	for i, batch := range batches {
		for j := range batch {
			if _, err := s.creator.Create(ctx, &batch[j]); err != nil {
				s.logger.Error().
					Err(err).
					Str("file", paths[i]).
					Str("title", batch[j].Title).
					Msg("failed to create seed recipe")
				return created, fmt.Errorf("failed to create recipe %q from %s: %w", batch[j].Title, paths[i], err)
			}
			created++
		}

		s.logger.Info().
			Str("file", paths[i]).
			Int("recipes", len(batch)).
			Msg("seed file applied")
	}

	return created, nil
}
