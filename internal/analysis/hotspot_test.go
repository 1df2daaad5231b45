package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

// hotspotScenario builds nBase isolated baseline points with value 0,
// spaced about a degree apart, plus one tight pack of hotCount points with
// the given value. With radius 1 km each baseline point only sees itself.
func hotspotScenario(nBase, hotCount int, hotValue float64) ([]geodesy.Point, []float64) {
	points := make([]geodesy.Point, 0, nBase+hotCount)
	values := make([]float64, 0, nBase+hotCount)

	for i := 0; i < nBase; i++ {
		points = append(points, geodesy.Point{Lat: 10 + float64(i), Lon: 10})
		values = append(values, 0)
	}
	for i := 0; i < hotCount; i++ {
		points = append(points, geodesy.Point{Lat: -40 + float64(i)*0.0005, Lon: 60})
		values = append(values, hotValue)
	}
	return points, values
}

func TestHotspotAnalysis_ZeroVariance(t *testing.T) {
	points := randomPoints(8, 5)
	values := make([]float64, 8)
	for i := range values {
		values[i] = 3.0
	}

	assert.Empty(t, HotspotAnalysis(points, values, 5.0))
}

func TestHotspotAnalysis_DegenerateInput(t *testing.T) {
	points := randomPoints(4, 5)

	assert.Empty(t, HotspotAnalysis(points, []float64{1, 2}, 5.0), "length mismatch")
	assert.Empty(t, HotspotAnalysis(nil, nil, 5.0), "empty input")
}

func TestHotspotAnalysis_MediumConfidenceHot(t *testing.T) {
	// 4 of 20 points elevated: z = sqrt((1-p)/p) = 2.0 for the hot pack.
	points, values := hotspotScenario(16, 4, 10)

	records := HotspotAnalysis(points, values, 1.0)
	require.Len(t, records, 4)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.Index, 16, "only pack members flagged")
		assert.Equal(t, KindHot, r.Kind)
		assert.Equal(t, ConfidenceMedium, r.Confidence)
		assert.InDelta(t, 2.0, r.ZScore, 1e-9)
		assert.InDelta(t, 10.0, r.LocalMean, 1e-9)
	}
}

func TestHotspotAnalysis_HighConfidenceHot(t *testing.T) {
	// 2 of 20 points elevated: z = 3.0, above the 2.58 tier.
	points, values := hotspotScenario(18, 2, 10)

	records := HotspotAnalysis(points, values, 1.0)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, KindHot, r.Kind)
		assert.Equal(t, ConfidenceHigh, r.Confidence)
		assert.InDelta(t, 3.0, r.ZScore, 1e-9)
	}
}

func TestHotspotAnalysis_ColdSpot(t *testing.T) {
	// Invert: the tight pack sits below a high baseline.
	points, values := hotspotScenario(18, 2, 0)
	for i := 0; i < 18; i++ {
		values[i] = 10
	}

	records := HotspotAnalysis(points, values, 1.0)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, KindCold, r.Kind)
		assert.Equal(t, ConfidenceHigh, r.Confidence)
		assert.Negative(t, r.ZScore)
	}
}

func TestHotspotAnalysis_OutputFollowsInputOrder(t *testing.T) {
	points, values := hotspotScenario(16, 4, 10)

	records := HotspotAnalysis(points, values, 1.0)
	require.Len(t, records, 4)
	for i := 1; i < len(records); i++ {
		assert.Greater(t, records[i].Index, records[i-1].Index)
	}
}

func TestHotspotAnalysis_RecordCarriesCoordinates(t *testing.T) {
	points, values := hotspotScenario(18, 2, 10)

	records := HotspotAnalysis(points, values, 1.0)
	require.NotEmpty(t, records)
	assert.Equal(t, points[records[0].Index], records[0].Point)
	assert.Equal(t, values[records[0].Index], records[0].Value)
}

func TestHotspotAnalysis_GridIndexMatchesBrute(t *testing.T) {
	points, values := hotspotScenario(16, 4, 10)

	want := HotspotAnalysis(points, values, 1.0)
	got := HotspotAnalysisIndexed(NewGridIndex(points, 1.0), values, 1.0)
	assert.Equal(t, want, got)
}

func TestHotspotAnalysis_NegativeRadiusSkipsAll(t *testing.T) {
	points, values := hotspotScenario(16, 4, 10)
	assert.Empty(t, HotspotAnalysis(points, values, -1.0))
}
