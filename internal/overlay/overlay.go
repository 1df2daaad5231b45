// Package overlay approximates spatial overlay operations between two
// GeoJSON feature layers. Intersection is a point-proximity heuristic over
// each feature's first coordinate pair, not geometric intersection; callers
// needing real polygon or line intersection need a dedicated geometry
// library.
package overlay

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

// Op selects the overlay operation.
type Op string

const (
	OpIntersection Op = "intersection"
	OpUnion        Op = "union"
	OpDifference   Op = "difference"
)

// DefaultThresholdKM is the default proximity cutoff for the intersection
// heuristic. It is a guessed default, not a domain-derived constant, which
// is why Overlay takes it as a parameter.
const DefaultThresholdKM = 1.0

// Overlay combines two feature layers.
//
//   - intersection: pairs of features whose anchor coordinates lie within
//     thresholdKM of each other, merged (layer2 fields win).
//   - union: plain concatenation, no deduplication.
//   - difference: layer1 features with no intersecting counterpart in layer2.
//
// thresholdKM <= 0 falls back to DefaultThresholdKM.
func Overlay(layer1, layer2 []*geojson.Feature, op Op, thresholdKM float64) ([]*geojson.Feature, error) {
	if thresholdKM <= 0 {
		thresholdKM = DefaultThresholdKM
	}

	switch op {
	case OpIntersection:
		var result []*geojson.Feature
		for _, f1 := range layer1 {
			for _, f2 := range layer2 {
				if featuresIntersect(f1, f2, thresholdKM) {
					result = append(result, mergeFeatures(f1, f2))
				}
			}
		}
		return result, nil

	case OpUnion:
		result := make([]*geojson.Feature, 0, len(layer1)+len(layer2))
		result = append(result, layer1...)
		result = append(result, layer2...)
		return result, nil

	case OpDifference:
		var result []*geojson.Feature
		for _, f1 := range layer1 {
			intersects := false
			for _, f2 := range layer2 {
				if featuresIntersect(f1, f2, thresholdKM) {
					intersects = true
					break
				}
			}
			if !intersects {
				result = append(result, f1)
			}
		}
		return result, nil

	default:
		return nil, eris.Errorf("overlay: unknown operation %q", op)
	}
}

// featuresIntersect reports whether the features' anchor coordinates lie
// within thresholdKM. The anchor is the geometry's first coordinate pair,
// fed to haversine in stored order.
func featuresIntersect(f1, f2 *geojson.Feature, thresholdKM float64) bool {
	p1, ok1 := anchor(f1)
	p2, ok2 := anchor(f2)
	if !ok1 || !ok2 {
		return false
	}
	return geodesy.Haversine(p1, p2) < thresholdKM
}

func anchor(f *geojson.Feature) (geodesy.Point, bool) {
	if f == nil || f.Geometry == nil {
		return geodesy.Point{}, false
	}
	flat := f.Geometry.FlatCoords()
	if len(flat) < 2 {
		return geodesy.Point{}, false
	}
	return geodesy.Point{Lat: flat[0], Lon: flat[1]}, true
}

// mergeFeatures mirrors a dict merge: layer2's identity and geometry win,
// properties merge with layer2 overriding, and the result is tagged with
// its overlay type.
func mergeFeatures(f1, f2 *geojson.Feature) *geojson.Feature {
	merged := &geojson.Feature{
		ID:       f2.ID,
		Geometry: f2.Geometry,
	}
	if merged.ID == "" {
		merged.ID = f1.ID
	}
	if merged.Geometry == nil {
		merged.Geometry = f1.Geometry
	}

	merged.Properties = make(map[string]interface{}, len(f1.Properties)+len(f2.Properties)+1)
	for k, v := range f1.Properties {
		merged.Properties[k] = v
	}
	for k, v := range f2.Properties {
		merged.Properties[k] = v
	}
	merged.Properties["overlay_type"] = string(OpIntersection)

	return merged
}
