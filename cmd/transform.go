package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

var (
	transformFrom string
	transformTo   string
)

var transformCmd = &cobra.Command{
	Use:   "transform <lat> <lon>",
	Short: "Transform a coordinate between reference systems",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		vals, err := parseFloats(args)
		if err != nil {
			return err
		}

		x, y, err := geodesy.Transform(vals[0], vals[1], geodesy.CRS(transformFrom), geodesy.CRS(transformTo))
		if err != nil {
			return err
		}

		fmt.Printf("%.6f %.6f\n", x, y)
		return nil
	},
}

func init() {
	transformCmd.Flags().StringVar(&transformFrom, "from", string(geodesy.CRSWGS84), "source CRS")
	transformCmd.Flags().StringVar(&transformTo, "to", string(geodesy.CRSWebMercator), "target CRS")
	rootCmd.AddCommand(transformCmd)
}
