package analysis

import (
	"math"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

// Hotspot classification and confidence labels.
const (
	KindHot  = "hot"
	KindCold = "cold"

	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Two-tailed normal significance thresholds.
const (
	zSignificant = 1.96 // 95%
	zHigh        = 2.58 // 99%
)

// HotspotRecord describes one statistically significant local concentration.
type HotspotRecord struct {
	Index      int           `json:"index"`
	Point      geodesy.Point `json:"coordinates"`
	Value      float64       `json:"value"`
	LocalMean  float64       `json:"local_mean"`
	ZScore     float64       `json:"z_score"`
	Kind       string        `json:"type"`
	Confidence string        `json:"confidence"`
}

// HotspotAnalysis flags points whose neighborhood mean deviates from the
// global mean by more than 1.96 population standard deviations
// (Getis-Ord-style local z-score). A point's neighborhood is every point
// within radius kilometers, itself included.
//
// Records appear in input point order. Soft failures return an empty
// result: length mismatch, empty input, and zero variance all mean there
// is no signal to flag.
func HotspotAnalysis(points []geodesy.Point, values []float64, radius float64) []HotspotRecord {
	return HotspotAnalysisIndexed(NewBruteIndex(points), values, radius)
}

// HotspotAnalysisIndexed runs hotspot detection over a prebuilt
// NeighborIndex.
func HotspotAnalysisIndexed(idx NeighborIndex, values []float64, radius float64) []HotspotRecord {
	n := idx.Len()
	if n != len(values) || n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(n))
	if std == 0 {
		return nil
	}

	var records []HotspotRecord
	for i := 0; i < n; i++ {
		localSum := 0.0
		localCount := 0

		if radius >= 0 {
			// A point is always inside its own neighborhood at distance 0.
			localSum += values[i]
			localCount++
		}
		for _, j := range idx.Neighbors(i, radius) {
			localSum += values[j]
			localCount++
		}

		if localCount == 0 {
			continue
		}

		localMean := localSum / float64(localCount)
		z := (localMean - mean) / std
		if math.Abs(z) <= zSignificant {
			continue
		}

		rec := HotspotRecord{
			Index:      i,
			Point:      idx.Point(i),
			Value:      values[i],
			LocalMean:  localMean,
			ZScore:     z,
			Kind:       KindCold,
			Confidence: ConfidenceMedium,
		}
		if z > 0 {
			rec.Kind = KindHot
		}
		if math.Abs(z) > zHigh {
			rec.Confidence = ConfidenceHigh
		}
		records = append(records, rec)
	}

	return records
}
