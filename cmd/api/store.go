package main

import (
	"context"
	"fmt"
	"time"

	"recipe-api/internal/config"
	"recipe-api/internal/database"
	"recipe-api/internal/repository"

	"github.com/rs/zerolog"
)

// openStore connects to the configured backend and returns its repository
// along with a func that releases the connection.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.RecipeRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		if err := database.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ensure schema: %w", err)
		}

		return repository.NewPostgresRecipeRepository(pool, logger), pool.Close, nil

	default:
		client, err := database.NewMongoClient(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				logger.Error().Err(err).Msg("failed to disconnect from mongodb")
			}
		}

		collection := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		return repository.NewMongoRecipeRepository(collection, logger), closeFn, nil
	}
}
