package pointset

import (
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

// LoadShapefile reads point shapes from a shapefile. A numeric attribute
// field named "value" (case-insensitive), when present, becomes the value
// series. Non-point shapes are skipped.
func LoadShapefile(path string) (*Set, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "pointset: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	valueIdx := -1
	for i, field := range reader.Fields() {
		name := strings.TrimRight(field.String(), "\x00")
		if strings.EqualFold(name, "value") {
			valueIdx = i
			break
		}
	}

	set := &Set{}
	skipped := 0
	for reader.Next() {
		_, shape := reader.Shape()

		point, ok := shape.(*shp.Point)
		if !ok || point == nil {
			skipped++
			continue
		}

		// Shapefiles store X=lon, Y=lat.
		set.Points = append(set.Points, geodesy.Point{Lat: point.Y, Lon: point.X})

		if valueIdx >= 0 {
			raw := strings.TrimSpace(strings.TrimRight(reader.Attribute(valueIdx), "\x00"))
			v, err := parseAttrFloat(raw)
			if err != nil {
				return nil, eris.Wrapf(err, "pointset: shapefile record %d: parse value", len(set.Points)-1)
			}
			set.Values = append(set.Values, v)
		}
	}

	if skipped > 0 {
		zap.L().Debug("pointset: skipped non-point shapes",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return set, nil
}
