package main

import (
	"context"
	"fmt"

	"recipe-api/internal/config"
	"recipe-api/internal/seed"
	"recipe-api/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <path>...",
		Short: "Create recipes from JSON, JSON lines or YAML seed files",
		Long: `Load one or more seed files and create every recipe they contain.

Files may be gzipped (.gz). When S3_ENABLED is set, each path is first read
from the configured bucket under S3_PREFIX and falls back to the local file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), cmd, args)
		},
	}
}

func runSeed(ctx context.Context, cmd *cobra.Command, paths []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	seeder := seed.NewSeeder(newSeedLoader(ctx, cfg.S3, logger), service.NewRecipeService(repo, logger), logger)

	created, err := seeder.Seed(ctx, paths)
	if err != nil {
		return fmt.Errorf("seeding failed after %d recipes: %w", created, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %d recipes from %d files\n", created, len(paths))
	return nil
}

// newSeedLoader reads from S3 with local fallback when S3 is enabled and can
// be initialised, otherwise from the local file system only.
func newSeedLoader(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) seed.Loader {
	fileLoader := seed.NewFileLoader(logger)

	if !cfg.Enabled {
		logger.Info().Msg("using local file system for seed files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := seed.NewS3Loader(ctx, cfg.Bucket, cfg.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return seed.NewFallbackLoader(s3Loader, fileLoader, cfg.Prefix, true, logger)
}
