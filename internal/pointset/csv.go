package pointset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

// LoadCSV reads lat,lon[,value] rows. A first row whose lat column does not
// parse is treated as a header and skipped.
func LoadCSV(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "pointset: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	return ReadCSV(f)
}

// ReadCSV parses lat,lon[,value] records from r.
func ReadCSV(r io.Reader) (*Set, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	set := &Set{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "pointset: read csv")
		}
		line++

		if len(record) < 2 {
			return nil, eris.Errorf("pointset: line %d: need at least lat,lon", line)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return nil, eris.Wrapf(err, "pointset: line %d: parse lat", line)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "pointset: line %d: parse lon", line)
		}

		set.Points = append(set.Points, geodesy.Point{Lat: lat, Lon: lon})

		if len(record) >= 3 && strings.TrimSpace(record[2]) != "" {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
			if err != nil {
				return nil, eris.Wrapf(err, "pointset: line %d: parse value", line)
			}
			set.Values = append(set.Values, v)
		}
	}

	if len(set.Values) > 0 && len(set.Values) != len(set.Points) {
		return nil, eris.Errorf(
			"pointset: %d of %d rows carry a value; value column must be all or nothing",
			len(set.Values), len(set.Points),
		)
	}

	return set, nil
}
