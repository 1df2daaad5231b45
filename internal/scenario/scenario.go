// Package scenario implements the SpatialSimulator request schema: a
// five-layer scenario request whose only computed content is the spatial
// analysis section. The narrative, negotiation, governance, and XR sections
// are scaffolding that return fixed or empty structures; they exist so the
// response shape is stable for downstream consumers.
package scenario

import (
	"github.com/rotisserie/eris"

	"github.com/spatialsim/geocompute/internal/analysis"
	"github.com/spatialsim/geocompute/internal/geodesy"
)

// Request is the five-field scenario input. Every field is required; the
// layer payloads are free-form.
type Request struct {
	Humano    map[string]interface{} `json:"humano"`
	Espacial  map[string]interface{} `json:"espacial"`
	Temporal  map[string]interface{} `json:"temporal"`
	Ecologico map[string]interface{} `json:"ecologico"`
	Reglas    map[string]interface{} `json:"reglas"`
}

// requiredFields lists the request fields in schema order.
var requiredFields = []string{"humano", "espacial", "temporal", "ecologico", "reglas"}

// Validate checks that every required layer is present. The first missing
// field is reported by name so clients can fix requests one at a time, the
// same way the upstream API responded.
func (r *Request) Validate() error {
	layers := map[string]map[string]interface{}{
		"humano":    r.Humano,
		"espacial":  r.Espacial,
		"temporal":  r.Temporal,
		"ecologico": r.Ecologico,
		"reglas":    r.Reglas,
	}
	for _, field := range requiredFields {
		if layers[field] == nil {
			return eris.Errorf("scenario: missing required field %q", field)
		}
	}
	return nil
}

// Response is the scenario result. SpatialAnalysis is the only section with
// computed content.
type Response struct {
	Scenarios          map[string]Variant `json:"scenarios"`
	Evaluation         Evaluation         `json:"evaluation"`
	VisualizationData  Visualization      `json:"visualization_data"`
	KnowledgeGraph     KnowledgeGraph     `json:"knowledge_graph"`
	DetectedPatterns   []string           `json:"detected_patterns"`
	DetectedRisks      []string           `json:"detected_risks"`
	DetectedInequities []string           `json:"detected_inequities"`
	SpatialAnalysis    *SpatialAnalysis   `json:"spatial_analysis,omitempty"`
}

// Variant is one scenario mode (base, disruptive, utopian, hybrid).
type Variant struct {
	SpatialConfiguration map[string]interface{} `json:"spatial_configuration"`
	TemporalTrajectory   map[string]interface{} `json:"temporal_trajectory"`
}

// Evaluation is the trade-off section (placeholder content).
type Evaluation struct {
	Scores       map[string]float64 `json:"scores"`
	Tradeoffs    []string           `json:"tradeoffs"`
	Explanations map[string]string  `json:"explanations"`
	AuditTrail   []string           `json:"audit_trail"`
}

// Visualization is the XR payload section (placeholder content).
type Visualization struct {
	Geometry          map[string]interface{}            `json:"geometry"`
	Textures          map[string]interface{}            `json:"textures"`
	OverlayData       map[string]map[string]interface{} `json:"overlay_data"`
	InteractionPoints []interface{}                     `json:"interaction_points"`
	Metadata          map[string]interface{}            `json:"metadata"`
}

// KnowledgeGraph is the semantic-fusion section; only the layer metadata
// is populated.
type KnowledgeGraph struct {
	Nodes    []interface{}          `json:"nodes"`
	Edges    []interface{}          `json:"edges"`
	Metadata map[string]interface{} `json:"metadata"`
}

// SpatialAnalysis carries the computed core results for points embedded in
// the espacial layer.
type SpatialAnalysis struct {
	PointCount int                      `json:"point_count"`
	Clusters   [][]int                  `json:"clusters"`
	MoranI     *float64                 `json:"moran_i,omitempty"`
	Hotspots   []analysis.HotspotRecord `json:"hotspots,omitempty"`
	RadiusKM   float64                  `json:"radius_km"`
	MinPoints  int                      `json:"min_points"`
}

var scenarioModes = []string{"base", "disruptive", "utopian", "hybrid"}

var visualizationOverlays = []string{"justice", "risk", "access", "memory"}

// Params bound the embedded spatial analysis.
type Params struct {
	RadiusKM  float64
	MinPoints int
	MaxPoints int
}

// Generate produces a scenario response. The scaffolding sections are
// fixed; when the espacial layer embeds a "points" array (pairs of
// [lat, lon]) and optionally a matching "values" array, the core analyses
// run over them and fill SpatialAnalysis.
func Generate(req *Request, params Params) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp := &Response{
		Scenarios: make(map[string]Variant, len(scenarioModes)),
		Evaluation: Evaluation{
			Scores:       map[string]float64{},
			Tradeoffs:    []string{},
			Explanations: map[string]string{},
			AuditTrail:   []string{},
		},
		VisualizationData: Visualization{
			Geometry:          map[string]interface{}{},
			Textures:          map[string]interface{}{},
			OverlayData:       make(map[string]map[string]interface{}, len(visualizationOverlays)),
			InteractionPoints: []interface{}{},
			Metadata:          map[string]interface{}{},
		},
		KnowledgeGraph: KnowledgeGraph{
			Nodes: []interface{}{},
			Edges: []interface{}{},
			Metadata: map[string]interface{}{
				"human_layer":      req.Humano,
				"spatial_layer":    req.Espacial,
				"temporal_layer":   req.Temporal,
				"ecological_layer": req.Ecologico,
			},
		},
		DetectedPatterns:   []string{},
		DetectedRisks:      []string{},
		DetectedInequities: []string{},
	}

	for _, mode := range scenarioModes {
		resp.Scenarios[mode] = Variant{
			SpatialConfiguration: map[string]interface{}{},
			TemporalTrajectory:   map[string]interface{}{},
		}
	}
	for _, overlay := range visualizationOverlays {
		resp.VisualizationData.OverlayData[overlay] = map[string]interface{}{}
	}

	points, values, err := extractPoints(req.Espacial)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return resp, nil
	}
	if params.MaxPoints > 0 && len(points) > params.MaxPoints {
		return nil, eris.Errorf(
			"scenario: %d points exceeds the configured limit of %d",
			len(points), params.MaxPoints,
		)
	}

	sa := &SpatialAnalysis{
		PointCount: len(points),
		Clusters:   analysis.DetectClusters(points, params.RadiusKM, params.MinPoints),
		RadiusKM:   params.RadiusKM,
		MinPoints:  params.MinPoints,
	}
	if sa.Clusters == nil {
		sa.Clusters = [][]int{}
	}
	if values != nil {
		moran := analysis.SpatialAutocorrelation(points, values, analysis.MethodMoran)
		sa.MoranI = &moran
		sa.Hotspots = analysis.HotspotAnalysis(points, values, params.RadiusKM)
	}
	resp.SpatialAnalysis = sa

	return resp, nil
}

// extractPoints reads an optional "points" array of [lat, lon] pairs and an
// optional "values" array from the espacial layer. A values array that does
// not match the point count is a hard input error here: the soft neutral
// result is reserved for well-typed degenerate data inside the core.
func extractPoints(espacial map[string]interface{}) ([]geodesy.Point, []float64, error) {
	rawPoints, ok := espacial["points"].([]interface{})
	if !ok {
		return nil, nil, nil
	}

	points := make([]geodesy.Point, 0, len(rawPoints))
	for i, rp := range rawPoints {
		pair, ok := rp.([]interface{})
		if !ok || len(pair) < 2 {
			return nil, nil, eris.Errorf("scenario: points[%d] is not a [lat, lon] pair", i)
		}
		lat, ok1 := pair[0].(float64)
		lon, ok2 := pair[1].(float64)
		if !ok1 || !ok2 {
			return nil, nil, eris.Errorf("scenario: points[%d] coordinates must be numeric", i)
		}
		points = append(points, geodesy.Point{Lat: lat, Lon: lon})
	}

	rawValues, ok := espacial["values"].([]interface{})
	if !ok {
		return points, nil, nil
	}
	if len(rawValues) != len(points) {
		return nil, nil, eris.Errorf(
			"scenario: %d values for %d points", len(rawValues), len(points),
		)
	}
	values := make([]float64, 0, len(rawValues))
	for i, rv := range rawValues {
		v, ok := rv.(float64)
		if !ok {
			return nil, nil, eris.Errorf("scenario: values[%d] must be numeric", i)
		}
		values = append(values, v)
	}

	return points, values, nil
}
