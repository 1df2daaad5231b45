package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spatialsim/geocompute/internal/analysis"
	"github.com/spatialsim/geocompute/internal/pointset"
	"github.com/spatialsim/geocompute/internal/store"
)

var (
	analyzeRadius        float64
	analyzeMinPoints     int
	analyzeHotspotRadius float64
	analyzeSave          bool
)

// analyzeResult bundles the output of every analysis over one point set.
type analyzeResult struct {
	PointCount int                      `json:"point_count"`
	RadiusKM   float64                  `json:"radius_km"`
	MinPoints  int                      `json:"min_points"`
	Clusters   [][]int                  `json:"clusters"`
	MoranI     *float64                 `json:"moran_i,omitempty"`
	Hotspots   []analysis.HotspotRecord `json:"hotspots,omitempty"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <points-file>",
	Short: "Run clustering, autocorrelation, and hotspot detection together",
	Long:  "Runs every analysis over one point file concurrently. Autocorrelation and hotspot detection require a value column and are skipped without one.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		set, err := pointset.Load(args[0])
		if err != nil {
			return err
		}

		radius := flagFloat(cmd, "radius-km", analyzeRadius, cfg.Analysis.RadiusKM)
		minPoints := flagInt(cmd, "min-points", analyzeMinPoints, cfg.Analysis.MinPoints)
		hotspotRadius := flagFloat(cmd, "hotspot-radius-km", analyzeHotspotRadius, cfg.Analysis.HotspotRadiusKM)

		result := analyzeResult{
			PointCount: len(set.Points),
			RadiusKM:   radius,
			MinPoints:  minPoints,
		}

		// Each analysis writes a distinct field, so they can run in
		// parallel without coordination.
		g, _ := errgroup.WithContext(ctx)
		g.Go(func() error {
			idx := newNeighborIndex(set.Points, radius)
			result.Clusters = analysis.DetectClustersIndexed(idx, radius, minPoints)
			return nil
		})
		if set.HasValues() {
			g.Go(func() error {
				moranI := analysis.SpatialAutocorrelation(set.Points, set.Values, analysis.MethodMoran)
				result.MoranI = &moranI
				return nil
			})
			g.Go(func() error {
				idx := newNeighborIndex(set.Points, hotspotRadius)
				result.Hotspots = analysis.HotspotAnalysisIndexed(idx, set.Values, hotspotRadius)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		zap.L().Info("analysis complete",
			zap.Int("points", result.PointCount),
			zap.Int("clusters", len(result.Clusters)),
			zap.Int("hotspots", len(result.Hotspots)),
			zap.Bool("has_values", set.HasValues()),
		)

		if err := recordRun(ctx, analyzeSave, store.RunKindAnalyze, len(set.Points), result); err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeRadius, "radius-km", 0, "cluster radius in km (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeMinPoints, "min-points", 0, "minimum neighborhood size to seed a cluster (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeHotspotRadius, "hotspot-radius-km", 0, "hotspot neighborhood radius in km (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the result to the run store")
	rootCmd.AddCommand(analyzeCmd)
}
