package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the recipe-api command tree. Running it without a
// subcommand serves HTTP.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "recipe-api",
		Short:         "Recipe CRUD HTTP service",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		newServeCmd(),
		newPingCmd(),
		newSeedCmd(),
	)

	return root
}
