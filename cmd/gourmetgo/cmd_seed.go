package main

import (
	"context"
	"fmt"
	"time"

	"gourmetgo/internal/config"
	"gourmetgo/internal/seed"

	"github.com/spf13/cobra"
)

// seedCmd loads the demo dataset into the configured backend.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo dataset into an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger := config.NewLogger(cfg.Logger)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		st, err := openStore(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				logger.Error().Err(err).Msg("failed to close store")
			}
		}()

		return seed.Run(ctx, st, logger)
	},
}
