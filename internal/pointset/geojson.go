package pointset

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

// LoadGeoJSON reads Point features from a GeoJSON FeatureCollection. A
// numeric "value" property, when present on every feature, becomes the
// value series. Non-point geometries are skipped.
func LoadGeoJSON(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "pointset: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	return ReadGeoJSON(f)
}

// ReadGeoJSON parses a GeoJSON FeatureCollection from r.
func ReadGeoJSON(r io.Reader) (*Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "pointset: read geojson")
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "pointset: parse geojson")
	}

	set := &Set{}
	skipped := 0
	for _, feature := range fc.Features {
		pt, ok := feature.Geometry.(*geom.Point)
		if !ok || pt == nil {
			skipped++
			continue
		}

		// GeoJSON stores [lon, lat].
		set.Points = append(set.Points, geodesy.Point{Lat: pt.Y(), Lon: pt.X()})

		if v, ok := feature.Properties["value"].(float64); ok {
			set.Values = append(set.Values, v)
		}
	}

	if skipped > 0 {
		zap.L().Debug("pointset: skipped non-point features", zap.Int("skipped", skipped))
	}

	if len(set.Values) > 0 && len(set.Values) != len(set.Points) {
		return nil, eris.Errorf(
			"pointset: %d of %d features carry a value property; must be all or nothing",
			len(set.Values), len(set.Points),
		)
	}

	return set, nil
}
