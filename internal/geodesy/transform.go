package geodesy

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// CRS identifies a coordinate reference system by its EPSG code string.
type CRS string

const (
	// CRSWGS84 is geographic latitude/longitude (EPSG:4326).
	CRSWGS84 CRS = "EPSG:4326"

	// CRSWebMercator is the spherical Mercator projection used by web maps
	// (EPSG:3857), defined only within ±85.06° latitude.
	CRSWebMercator CRS = "EPSG:3857"
)

// WebMercatorMaxLat is the latitude bound of the Web Mercator projection.
const WebMercatorMaxLat = 85.06

const webMercatorHalfCircumference = 20037508.34

// ToWebMercator projects a WGS84 coordinate to Web Mercator meters.
// Latitudes outside ±WebMercatorMaxLat are a hard error: the projection is
// undefined there and a clamped value would silently misplace the point.
func ToWebMercator(lat, lon float64) (x, y float64, err error) {
	if math.Abs(lat) > WebMercatorMaxLat {
		return 0, 0, eris.Errorf(
			"geodesy: latitude %v outside Web Mercator range (±%v degrees)",
			lat, WebMercatorMaxLat,
		)
	}

	x = lon * webMercatorHalfCircumference / 180.0
	y = math.Log(math.Tan((90+lat)*math.Pi/360.0)) / (math.Pi / 180.0)
	y = y * webMercatorHalfCircumference / 180.0
	return x, y, nil
}

// Transform converts a coordinate between reference systems. Only the
// WGS84 → Web Mercator case is implemented. Every other pair passes
// (lon, lat) through unchanged; callers must not rely on that behavior for
// anything beyond identity. The fallback is logged so misconfigured callers
// can spot it.
func Transform(lat, lon float64, from, to CRS) (x, y float64, err error) {
	if from == CRSWGS84 && to == CRSWebMercator {
		return ToWebMercator(lat, lon)
	}

	zap.L().Warn("geodesy: unsupported CRS pair, passing coordinates through",
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return lon, lat, nil
}
