package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

func TestSpatialAutocorrelation_ConstantValues(t *testing.T) {
	points := randomPoints(10, 3)
	values := make([]float64, 10)
	for i := range values {
		values[i] = 7.5
	}

	assert.Equal(t, 0.0, SpatialAutocorrelation(points, values, MethodMoran),
		"zero denominator must yield exactly 0.0")
}

func TestSpatialAutocorrelation_DegenerateInput(t *testing.T) {
	points := randomPoints(5, 3)

	tests := []struct {
		name   string
		points []geodesy.Point
		values []float64
	}{
		{"length mismatch", points, []float64{1, 2, 3}},
		{"single point", points[:1], []float64{1}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, SpatialAutocorrelation(tt.points, tt.values, MethodMoran))
		})
	}
}

func TestSpatialAutocorrelation_UnknownMethodIsNeutral(t *testing.T) {
	points := randomPoints(5, 3)
	values := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 0.0, SpatialAutocorrelation(points, values, "geary"))
}

func TestSpatialAutocorrelation_TwoPointsFinite(t *testing.T) {
	points := []geodesy.Point{
		{Lat: 19.4326, Lon: -99.1332},
		{Lat: 20.6597, Lon: -103.3496},
	}
	got := SpatialAutocorrelation(points, []float64{1, 5}, MethodMoran)

	assert.False(t, math.IsNaN(got))
	assert.False(t, math.IsInf(got, 0))
}

func TestSpatialAutocorrelation_PositivePattern(t *testing.T) {
	// Two distant groups, each internally uniform: similar values sit
	// together, so I must be positive.
	points := []geodesy.Point{
		{Lat: 19.4300, Lon: -99.1300},
		{Lat: 19.4305, Lon: -99.1302},
		{Lat: 19.4310, Lon: -99.1304},
		{Lat: 25.6800, Lon: -100.3100},
		{Lat: 25.6805, Lon: -100.3102},
		{Lat: 25.6810, Lon: -100.3104},
	}
	values := []float64{10, 10.5, 9.5, 0, 0.5, -0.5}

	assert.Greater(t, SpatialAutocorrelation(points, values, MethodMoran), 0.0)
}

func TestSpatialAutocorrelation_NegativePattern(t *testing.T) {
	// Opposite extremes nearly coincident: dissimilar values sit together.
	points := []geodesy.Point{
		{Lat: 19.4300, Lon: -99.1300},
		{Lat: 19.4301, Lon: -99.1300},
	}
	values := []float64{0, 10}

	assert.Less(t, SpatialAutocorrelation(points, values, MethodMoran), 0.0)
}

func TestSpatialAutocorrelation_Deterministic(t *testing.T) {
	points := randomPoints(30, 9)
	values := make([]float64, len(points))
	for i := range values {
		values[i] = float64(i % 7)
	}

	a := SpatialAutocorrelation(points, values, MethodMoran)
	b := SpatialAutocorrelation(points, values, MethodMoran)
	assert.Equal(t, a, b)
}

func TestSpatialAutocorrelation_DefaultMethod(t *testing.T) {
	points := randomPoints(5, 11)
	values := []float64{3, 1, 4, 1, 5}

	require.Equal(t,
		SpatialAutocorrelation(points, values, MethodMoran),
		SpatialAutocorrelation(points, values, ""),
	)
}
