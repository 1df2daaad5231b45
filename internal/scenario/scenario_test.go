package scenario

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *Request {
	return &Request{
		Humano:    map[string]interface{}{"poblacion": 10000000.0},
		Espacial:  map[string]interface{}{"area_km2": 50000.0},
		Temporal:  map[string]interface{}{"horizonte": "2100"},
		Ecologico: map[string]interface{}{"biodiversidad_perdida": 0.3},
		Reglas:    map[string]interface{}{"min_sostenibilidad": 0.5},
	}
}

func defaultParams() Params {
	return Params{RadiusKM: 1.0, MinPoints: 3}
}

func TestValidate_MissingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{"missing humano", func(r *Request) { r.Humano = nil }, "humano"},
		{"missing espacial", func(r *Request) { r.Espacial = nil }, "espacial"},
		{"missing temporal", func(r *Request) { r.Temporal = nil }, "temporal"},
		{"missing ecologico", func(r *Request) { r.Ecologico = nil }, "ecologico"},
		{"missing reglas", func(r *Request) { r.Reglas = nil }, "reglas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := req.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestGenerate_ScaffoldingShape(t *testing.T) {
	resp, err := Generate(validRequest(), defaultParams())
	require.NoError(t, err)

	assert.Len(t, resp.Scenarios, 4)
	for _, mode := range []string{"base", "disruptive", "utopian", "hybrid"} {
		v, ok := resp.Scenarios[mode]
		require.True(t, ok, "missing scenario mode %s", mode)
		assert.Empty(t, v.SpatialConfiguration)
		assert.Empty(t, v.TemporalTrajectory)
	}

	assert.Empty(t, resp.Evaluation.Scores)
	assert.Empty(t, resp.DetectedPatterns)
	assert.Len(t, resp.VisualizationData.OverlayData, 4)
	assert.Equal(t, validRequest().Humano, resp.KnowledgeGraph.Metadata["human_layer"])
	assert.Nil(t, resp.SpatialAnalysis, "no points embedded, no analysis section")
}

func TestGenerate_WithEmbeddedPoints(t *testing.T) {
	req := validRequest()
	// Decode through JSON so the payload matches what the HTTP layer sees.
	raw := `{
		"points": [[19.4326, -99.1332], [19.4330, -99.1335], [19.4328, -99.1330], [19.4327, -99.1338], [25.6866, -100.3161]],
		"values": [5, 6, 5.5, 5.2, 1]
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &req.Espacial))

	resp, err := Generate(req, defaultParams())
	require.NoError(t, err)
	require.NotNil(t, resp.SpatialAnalysis)

	sa := resp.SpatialAnalysis
	assert.Equal(t, 5, sa.PointCount)
	require.Len(t, sa.Clusters, 1)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, sa.Clusters[0])
	require.NotNil(t, sa.MoranI)
}

func TestGenerate_PointsWithoutValues(t *testing.T) {
	req := validRequest()
	raw := `{"points": [[19.0, -99.0], [19.0005, -99.0]]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &req.Espacial))

	resp, err := Generate(req, defaultParams())
	require.NoError(t, err)
	require.NotNil(t, resp.SpatialAnalysis)
	assert.Nil(t, resp.SpatialAnalysis.MoranI)
	assert.Empty(t, resp.SpatialAnalysis.Hotspots)
}

func TestGenerate_MalformedPoints(t *testing.T) {
	req := validRequest()
	req.Espacial["points"] = []interface{}{[]interface{}{19.0}}

	_, err := Generate(req, defaultParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "points[0]")
}

func TestGenerate_ValueLengthMismatch(t *testing.T) {
	req := validRequest()
	raw := `{"points": [[19.0, -99.0], [20.0, -99.0]], "values": [1]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &req.Espacial))

	_, err := Generate(req, defaultParams())
	assert.Error(t, err)
}

func TestGenerate_PointLimit(t *testing.T) {
	req := validRequest()
	raw := `{"points": [[19.0, -99.0], [20.0, -99.0], [21.0, -99.0]]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &req.Espacial))

	params := defaultParams()
	params.MaxPoints = 2
	_, err := Generate(req, params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
}

func TestGenerate_ResponseSerializes(t *testing.T) {
	resp, err := Generate(validRequest(), defaultParams())
	require.NoError(t, err)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenarios"`)
	assert.Contains(t, string(data), `"knowledge_graph"`)
	assert.NotContains(t, string(data), `"spatial_analysis"`)
}
