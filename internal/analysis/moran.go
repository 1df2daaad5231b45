package analysis

import (
	"go.uber.org/zap"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

// AutocorrelationMethod selects the global autocorrelation statistic.
type AutocorrelationMethod string

// MethodMoran is the only implemented autocorrelation statistic.
const MethodMoran AutocorrelationMethod = "moran"

// weightOffset is added to every pairwise distance before inversion. It
// keeps coincident points finite and caps the maximum weight at 10.
const weightOffset = 0.1

// SpatialAutocorrelation computes global Moran's I over points and their
// attribute values, with inverse-distance weights 1/(d+0.1).
//
// I > 0 means similar values cluster spatially, I < 0 means dissimilar
// values cluster, I ≈ 0 means no detectable pattern. Only the point
// estimate is computed; there is no significance test.
//
// Degenerate input is a soft failure returning 0.0, not an error: length
// mismatch, fewer than 2 points, constant values (zero denominator), and
// an unrecognized method all read as "no signal". The method fallback is
// logged so callers can detect a typo without a behavior change.
func SpatialAutocorrelation(points []geodesy.Point, values []float64, method AutocorrelationMethod) float64 {
	if len(points) != len(values) || len(points) < 2 {
		return 0.0
	}
	if method != MethodMoran && method != "" {
		zap.L().Warn("analysis: unsupported autocorrelation method, returning neutral value",
			zap.String("method", string(method)),
		)
		return 0.0
	}

	n := len(points)
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	numerator := 0.0
	wSum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			w := 1.0 / (geodesy.Haversine(points[i], points[j]) + weightOffset)
			numerator += w * (values[i] - mean) * (values[j] - mean)
			wSum += w
		}
	}

	denominator := 0.0
	for i := 0; i < n; i++ {
		d := values[i] - mean
		denominator += d * d
	}

	if denominator == 0 || wSum == 0 {
		return 0.0
	}

	return (float64(n) / wSum) * (numerator / denominator)
}
