package geodesy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cdmx        = Point{Lat: 19.4326, Lon: -99.1332}
	guadalajara = Point{Lat: 20.6597, Lon: -103.3496}
)

func TestDistance_Haversine(t *testing.T) {
	d, err := Distance(cdmx, guadalajara, MethodHaversine)
	require.NoError(t, err)
	assert.InDelta(t, 462.0, d, 5.0, "CDMX to Guadalajara should be ~462 km")
}

func TestDistance_DefaultsToHaversine(t *testing.T) {
	d1, err := Distance(cdmx, guadalajara, "")
	require.NoError(t, err)
	d2, err := Distance(cdmx, guadalajara, MethodHaversine)
	require.NoError(t, err)
	assert.Equal(t, d2, d1)
}

func TestDistance_Symmetry(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Point
		method Method
	}{
		{"haversine", cdmx, guadalajara, MethodHaversine},
		{"euclidean", cdmx, guadalajara, MethodEuclidean},
		{"haversine antimeridian", Point{Lat: 10, Lon: 179.5}, Point{Lat: 10, Lon: -179.5}, MethodHaversine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab, err := Distance(tt.a, tt.b, tt.method)
			require.NoError(t, err)
			ba, err := Distance(tt.b, tt.a, tt.method)
			require.NoError(t, err)
			assert.Equal(t, ab, ba)
		})
	}
}

func TestDistance_SamePointIsZero(t *testing.T) {
	for _, method := range []Method{MethodHaversine, MethodEuclidean} {
		d, err := Distance(cdmx, cdmx, method)
		require.NoError(t, err)
		assert.Zero(t, d)
	}
}

func TestDistance_UnknownMethod(t *testing.T) {
	_, err := Distance(cdmx, guadalajara, "manhattan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown distance method")
}

func TestDistance_Euclidean(t *testing.T) {
	d, err := Distance(Point{Lat: 0, Lon: 0}, Point{Lat: 3, Lon: 4}, MethodEuclidean)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-12)
}

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name  string
		ring  []Point
		want  float64
		delta float64
	}{
		{
			name: "unit degree square",
			ring: []Point{
				{Lat: 19, Lon: -99},
				{Lat: 20, Lon: -99},
				{Lat: 20, Lon: -98},
				{Lat: 19, Lon: -98},
			},
			want:  111.0 * 111.0,
			delta: 1e-6,
		},
		{
			name: "reverse winding gives same area",
			ring: []Point{
				{Lat: 19, Lon: -98},
				{Lat: 20, Lon: -98},
				{Lat: 20, Lon: -99},
				{Lat: 19, Lon: -99},
			},
			want:  111.0 * 111.0,
			delta: 1e-6,
		},
		{
			name: "triangle",
			ring: []Point{
				{Lat: 0, Lon: 0},
				{Lat: 1, Lon: 0},
				{Lat: 0, Lon: 1},
			},
			want:  0.5 * 111.0 * 111.0,
			delta: 1e-6,
		},
		{
			name: "two points",
			ring: []Point{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}},
			want: 0.0,
		},
		{
			name: "empty",
			ring: nil,
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PolygonArea(tt.ring), tt.delta)
		})
	}
}

func TestToWebMercator(t *testing.T) {
	x, y, err := ToWebMercator(0, 0)
	require.NoError(t, err)
	assert.Zero(t, x)
	assert.Zero(t, y)

	x, y, err = ToWebMercator(19.4326, -99.1332)
	require.NoError(t, err)
	assert.InDelta(t, -11035457.34, x, 0.01)
	assert.InDelta(t, 2205934.36, y, 0.01)
}

func TestToWebMercator_LatitudeSignFlipsY(t *testing.T) {
	_, yn, err := ToWebMercator(19.4326, -99.1332)
	require.NoError(t, err)
	_, ys, err := ToWebMercator(-19.4326, -99.1332)
	require.NoError(t, err)
	assert.InDelta(t, -yn, ys, 1e-6)
}

func TestToWebMercator_OutOfRange(t *testing.T) {
	for _, lat := range []float64{86, -86, 90} {
		_, _, err := ToWebMercator(lat, 0)
		require.Error(t, err, "lat %v", lat)
		assert.Contains(t, err.Error(), "Web Mercator")
	}
}

func TestToWebMercator_AtBound(t *testing.T) {
	_, _, err := ToWebMercator(85.06, 0)
	assert.NoError(t, err)
	_, _, err = ToWebMercator(-85.06, 0)
	assert.NoError(t, err)
}

func TestTransform_UnsupportedPairPassesThrough(t *testing.T) {
	x, y, err := Transform(19.0, -99.0, CRSWebMercator, CRSWGS84)
	require.NoError(t, err)
	assert.Equal(t, -99.0, x, "pass-through returns (lon, lat)")
	assert.Equal(t, 19.0, y)
}

func TestTransform_SupportedPair(t *testing.T) {
	x, y, err := Transform(0, 0, CRSWGS84, CRSWebMercator)
	require.NoError(t, err)
	assert.Zero(t, x)
	assert.Zero(t, y)
}
