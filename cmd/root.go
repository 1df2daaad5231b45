package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spatialsim/geocompute/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "geocompute",
	Short: "Geospatial analysis toolkit",
	Long:  "Computes distances, areas, and projections over lat/lon coordinates, detects density clusters and statistical hotspots, measures spatial autocorrelation, and overlays point layers by proximity.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
