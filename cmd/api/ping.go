package main

import (
	"context"
	"fmt"

	"recipe-api/internal/config"

	"github.com/spf13/cobra"
)

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the configured store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPing(cmd.Context(), cmd)
		},
	}
}

func runPing(ctx context.Context, cmd *cobra.Command) error {
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

	if err := repo.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully connected to %s store\n", cfg.Store.Driver)
	return nil
}
