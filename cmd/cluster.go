package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spatialsim/geocompute/internal/analysis"
	"github.com/spatialsim/geocompute/internal/pointset"
	"github.com/spatialsim/geocompute/internal/store"
)

var (
	clusterRadius    float64
	clusterMinPoints int
	clusterSave      bool
)

var clusterCmd = &cobra.Command{
	Use:   "cluster <points-file>",
	Short: "Detect density clusters in a point file",
	Long:  "Groups points whose neighborhoods within the radius contain at least min-points members. Accepts CSV, GeoJSON, and shapefile input.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		set, err := pointset.Load(args[0])
		if err != nil {
			return err
		}

		radius := flagFloat(cmd, "radius-km", clusterRadius, cfg.Analysis.RadiusKM)
		minPoints := flagInt(cmd, "min-points", clusterMinPoints, cfg.Analysis.MinPoints)

		idx := newNeighborIndex(set.Points, radius)
		clusters := analysis.DetectClustersIndexed(idx, radius, minPoints)

		zap.L().Info("clustering complete",
			zap.Int("points", len(set.Points)),
			zap.Int("clusters", len(clusters)),
			zap.Float64("radius_km", radius),
		)

		result := map[string]any{
			"point_count": len(set.Points),
			"radius_km":   radius,
			"min_points":  minPoints,
			"clusters":    clusters,
		}
		if err := recordRun(ctx, clusterSave, store.RunKindCluster, len(set.Points), result); err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	clusterCmd.Flags().Float64Var(&clusterRadius, "radius-km", 0, "cluster radius in km (default from config)")
	clusterCmd.Flags().IntVar(&clusterMinPoints, "min-points", 0, "minimum neighborhood size to seed a cluster (default from config)")
	clusterCmd.Flags().BoolVar(&clusterSave, "save", false, "persist the result to the run store")
	rootCmd.AddCommand(clusterCmd)
}
