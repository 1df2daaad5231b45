// Package geodesy provides distance, area, and projection primitives over
// WGS84 latitude/longitude points.
package geodesy

import (
	"math"

	"github.com/rotisserie/eris"
)

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Method selects the distance formula.
type Method string

const (
	// MethodHaversine computes great-circle distance on a sphere. This is
	// the default and the only geodesically meaningful method.
	MethodHaversine Method = "haversine"

	// MethodEuclidean treats (lat, lon) as planar coordinates. Only valid
	// for already-projected inputs; over raw degrees it is a crude
	// approximation that degrades with extent.
	MethodEuclidean Method = "euclidean"
)

const (
	// EarthRadiusKM is the Earth's mean radius.
	EarthRadiusKM = 6371.0

	// DegreesToKM approximates one degree at mid-latitudes.
	DegreesToKM = 111.0
)

// Distance returns the distance between a and b in kilometers using the
// given method. An unrecognized method is a hard error: silently picking a
// formula would corrupt geodesic correctness for the caller.
func Distance(a, b Point, method Method) (float64, error) {
	switch method {
	case MethodHaversine, "":
		return Haversine(a, b), nil
	case MethodEuclidean:
		return math.Hypot(b.Lat-a.Lat, b.Lon-a.Lon), nil
	default:
		return 0, eris.Errorf("geodesy: unknown distance method %q", method)
	}
}

// Haversine returns the great-circle distance between a and b in kilometers.
func Haversine(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadiusKM * 2 * math.Asin(math.Sqrt(h))
}

// PolygonArea returns the approximate area in km² of a simple polygon given
// as an ordered vertex ring (either winding, implicitly closed). It applies
// the planar shoelace formula over raw degrees and scales by DegreesToKM²,
// ignoring latitude-dependent longitude compression. Unsuitable for
// large-area or high-precision use. Fewer than 3 vertices yields 0.
func PolygonArea(ring []Point) float64 {
	if len(ring) < 3 {
		return 0.0
	}

	area := 0.0
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[i].Lat * ring[j].Lon
		area -= ring[j].Lat * ring[i].Lon
	}
	area = math.Abs(area) / 2.0

	return area * DegreesToKM * DegreesToKM
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
