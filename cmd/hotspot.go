package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spatialsim/geocompute/internal/analysis"
	"github.com/spatialsim/geocompute/internal/pointset"
	"github.com/spatialsim/geocompute/internal/store"
)

var (
	hotspotRadius float64
	hotspotSave   bool
)

var hotspotCmd = &cobra.Command{
	Use:   "hotspot <points-file>",
	Short: "Detect statistically significant hot and cold spots",
	Long:  "Compares each point's neighborhood mean against the global distribution and reports points whose z-score exceeds the 95% significance threshold.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		set, err := pointset.Load(args[0])
		if err != nil {
			return err
		}
		values, err := set.RequireValues()
		if err != nil {
			return err
		}

		radius := flagFloat(cmd, "radius-km", hotspotRadius, cfg.Analysis.HotspotRadiusKM)

		idx := newNeighborIndex(set.Points, radius)
		hotspots := analysis.HotspotAnalysisIndexed(idx, values, radius)

		zap.L().Info("hotspot analysis complete",
			zap.Int("points", len(set.Points)),
			zap.Int("hotspots", len(hotspots)),
			zap.Float64("radius_km", radius),
		)

		result := map[string]any{
			"point_count": len(set.Points),
			"radius_km":   radius,
			"hotspots":    hotspots,
		}
		if err := recordRun(ctx, hotspotSave, store.RunKindHotspot, len(set.Points), result); err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	hotspotCmd.Flags().Float64Var(&hotspotRadius, "radius-km", 0, "neighborhood radius in km (default from config)")
	hotspotCmd.Flags().BoolVar(&hotspotSave, "save", false, "persist the result to the run store")
	rootCmd.AddCommand(hotspotCmd)
}
