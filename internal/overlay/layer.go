package overlay

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// LoadLayer reads a GeoJSON FeatureCollection from a file.
func LoadLayer(path string) ([]*geojson.Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "overlay: open layer %s", path)
	}
	defer f.Close() //nolint:errcheck

	return ReadLayer(f)
}

// ReadLayer parses a GeoJSON FeatureCollection from r.
func ReadLayer(r io.Reader) ([]*geojson.Feature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "overlay: read layer")
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "overlay: parse layer")
	}
	return fc.Features, nil
}

// MarshalLayer serializes features back to a GeoJSON FeatureCollection.
func MarshalLayer(features []*geojson.Feature) ([]byte, error) {
	fc := geojson.FeatureCollection{Features: features}
	data, err := json.Marshal(&fc)
	return data, eris.Wrap(err, "overlay: marshal layer")
}
