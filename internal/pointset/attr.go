package pointset

import (
	"strconv"

	"github.com/rotisserie/eris"
)

// parseAttrFloat parses a DBF attribute as a float. Empty attributes read
// as zero: DBF pads numeric fields and distinguishing "missing" from zero
// is not possible without the field descriptor.
func parseAttrFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "pointset: attribute %q is not numeric", raw)
	}
	return v, nil
}
