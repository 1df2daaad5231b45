package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spatialsim/geocompute/internal/overlay"
	"github.com/spatialsim/geocompute/internal/store"
)

var (
	overlayOp        string
	overlayThreshold float64
	overlayOut       string
	overlaySave      bool
)

var overlayCmd = &cobra.Command{
	Use:   "overlay <layer1.geojson> <layer2.geojson>",
	Short: "Combine two GeoJSON layers by proximity",
	Long:  "Intersects, unions, or differences two feature layers. Features count as intersecting when their anchor coordinates lie within the threshold distance.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		layer1, err := overlay.LoadLayer(args[0])
		if err != nil {
			return err
		}
		layer2, err := overlay.LoadLayer(args[1])
		if err != nil {
			return err
		}

		threshold := flagFloat(cmd, "threshold-km", overlayThreshold, cfg.Overlay.ThresholdKM)

		features, err := overlay.Overlay(layer1, layer2, overlay.Op(overlayOp), threshold)
		if err != nil {
			return err
		}

		zap.L().Info("overlay complete",
			zap.String("op", overlayOp),
			zap.Int("layer1", len(layer1)),
			zap.Int("layer2", len(layer2)),
			zap.Int("features", len(features)),
		)

		out, err := overlay.MarshalLayer(features)
		if err != nil {
			return err
		}

		result := map[string]any{
			"op":            overlayOp,
			"threshold_km":  threshold,
			"feature_count": len(features),
		}
		if err := recordRun(ctx, overlaySave, store.RunKindOverlay, len(layer1)+len(layer2), result); err != nil {
			return err
		}

		if overlayOut != "" {
			if err := os.WriteFile(overlayOut, out, 0o644); err != nil {
				return eris.Wrapf(err, "write %s", overlayOut)
			}
			return nil
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	overlayCmd.Flags().StringVar(&overlayOp, "op", string(overlay.OpIntersection), "overlay operation (intersection, union, difference)")
	overlayCmd.Flags().Float64Var(&overlayThreshold, "threshold-km", 0, "proximity threshold in km (default from config)")
	overlayCmd.Flags().StringVar(&overlayOut, "out", "", "output file (default stdout)")
	overlayCmd.Flags().BoolVar(&overlaySave, "save", false, "persist the result to the run store")
	rootCmd.AddCommand(overlayCmd)
}
