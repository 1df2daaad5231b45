package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spatialsim/geocompute/internal/analysis"
	"github.com/spatialsim/geocompute/internal/pointset"
	"github.com/spatialsim/geocompute/internal/store"
)

var moranSave bool

var moranCmd = &cobra.Command{
	Use:   "moran <points-file>",
	Short: "Measure spatial autocorrelation of point values",
	Long:  "Computes Moran's I over the point values with inverse-distance weights. Positive values mean similar values cluster together; negative values mean they repel.",
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

		moranI := analysis.SpatialAutocorrelation(set.Points, values, analysis.MethodMoran)

		zap.L().Info("autocorrelation complete",
			zap.Int("points", len(set.Points)),
			zap.Float64("moran_i", moranI),
		)

		result := map[string]any{
			"point_count": len(set.Points),
			"moran_i":     moranI,
		}
		if err := recordRun(ctx, moranSave, store.RunKindMoran, len(set.Points), result); err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	moranCmd.Flags().BoolVar(&moranSave, "save", false, "persist the result to the run store")
	rootCmd.AddCommand(moranCmd)
}
