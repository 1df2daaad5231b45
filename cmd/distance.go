package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

var distanceMethod string

var distanceCmd = &cobra.Command{
	Use:   "distance <lat1> <lon1> <lat2> <lon2>",
	Short: "Compute the distance between two coordinates in kilometers",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		vals, err := parseFloats(args)
		if err != nil {
			return err
		}

		a := geodesy.Point{Lat: vals[0], Lon: vals[1]}
		b := geodesy.Point{Lat: vals[2], Lon: vals[3]}

		km, err := geodesy.Distance(a, b, geodesy.Method(distanceMethod))
		if err != nil {
			return err
		}

		fmt.Printf("%.6f\n", km)
		return nil
	},
}

func init() {
	distanceCmd.Flags().StringVar(&distanceMethod, "method", "haversine", "distance method (haversine, euclidean)")
	rootCmd.AddCommand(distanceCmd)
}
