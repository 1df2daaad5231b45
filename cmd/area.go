package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

var areaCmd = &cobra.Command{
	Use:   "area <lat,lon> <lat,lon> <lat,lon> [lat,lon ...]",
	Short: "Compute the approximate area of a polygon in square kilometers",
	Long:  "Computes the planar shoelace area of the polygon described by the given vertices, scaled by the per-degree arc length. Vertices are lat,lon pairs in ring order; the ring is closed implicitly.",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ring, err := parsePointArgs(args)
		if err != nil {
			return err
		}

		fmt.Printf("%.6f\n", geodesy.PolygonArea(ring))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(areaCmd)
}
