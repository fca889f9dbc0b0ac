package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/run-bigpig/carpick/internal/inventory"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in vehicle fixtures into the inventory database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyLogLevel(cmd, cfg.LogLevel)

			store, err := inventory.Open(cfg.Database.Path)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			fixtures := inventory.Fixtures()
			if err := store.Seed(ctx, fixtures); err != nil {
				return err
			}

			total, err := store.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d vehicles, %d total in inventory\n", len(fixtures), total)
			return nil
		},
	}
}
