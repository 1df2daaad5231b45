// Package pointset loads point sets and their attribute series from CSV,
// GeoJSON, and shapefile sources. Point order always follows source order:
// the index is the only identity an analysis output refers back to.
package pointset

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

// Set is an ordered point sequence with an optional value series of the
// same length.
type Set struct {
	Points []geodesy.Point
	Values []float64
}

// HasValues reports whether every point carries an attribute value.
func (s *Set) HasValues() bool {
	return len(s.Values) == len(s.Points) && len(s.Points) > 0
}

// RequireValues returns the value series or an error when the series is
// missing or misaligned. Analyses that need values call this at the
// boundary so degenerate files fail loudly instead of producing the silent
// neutral result reserved for well-formed degenerate data.
func (s *Set) RequireValues() ([]float64, error) {
	if len(s.Values) != len(s.Points) {
		return nil, eris.Errorf(
			"pointset: %d values for %d points; a value per point is required",
			len(s.Values), len(s.Points),
		)
	}
	return s.Values, nil
}

// Load reads points from a file, dispatching on extension: .csv, .json /
// .geojson, or .shp.
func Load(path string) (*Set, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".json", ".geojson":
		return LoadGeoJSON(path)
	case ".shp":
		return LoadShapefile(path)
	default:
		return nil, eris.Errorf("pointset: unsupported file type %q", filepath.Ext(path))
	}
}
