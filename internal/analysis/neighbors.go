package analysis

import (
	"math"
	"sort"

	"github.com/spatialsim/geocompute/internal/geodesy"
)

// NeighborIndex answers radius queries over a fixed point set. Neighbors
// returns the indices of all points other than i whose haversine distance
// from point i is at most radius kilometers, in ascending index order.
//
// The clustering and hotspot contracts are defined against BruteIndex;
// any other implementation must return the same sets.
type NeighborIndex interface {
	Len() int
	Point(i int) geodesy.Point
	Neighbors(i int, radius float64) []int
}

// bruteIndex is the O(n²) reference implementation: a full scan per query.
type bruteIndex struct {
	points []geodesy.Point
}

// NewBruteIndex wraps a point slice in a linear-scan NeighborIndex.
func NewBruteIndex(points []geodesy.Point) NeighborIndex {
	return &bruteIndex{points: points}
}

func (b *bruteIndex) Len() int                  { return len(b.points) }
func (b *bruteIndex) Point(i int) geodesy.Point { return b.points[i] }

func (b *bruteIndex) Neighbors(i int, radius float64) []int {
	var out []int
	for j, p := range b.points {
		if j == i {
			continue
		}
		if geodesy.Haversine(b.points[i], p) <= radius {
			out = append(out, j)
		}
	}
	return out
}

// GridIndex buckets points into a degree-grid so radius queries only scan
// nearby cells. Results are identical to bruteIndex: the grid prunes
// candidates conservatively and the haversine check makes the final call.
type GridIndex struct {
	points  []geodesy.Point
	cells   map[cellKey][]int
	cellDeg float64
}

type cellKey struct {
	row, col int
}

// NewGridIndex builds a GridIndex sized for queries at the given radius in
// kilometers. Queries at larger radii than the build radius still return
// correct results but degrade toward a full scan.
func NewGridIndex(points []geodesy.Point, radiusKM float64) *GridIndex {
	cellDeg := radiusKM / geodesy.DegreesToKM
	if cellDeg <= 0 {
		// Degenerate radius: a single cell per distinct coordinate still
		// resolves coincident points correctly.
		cellDeg = 1e-9
	}

	g := &GridIndex{
		points:  points,
		cells:   make(map[cellKey][]int, len(points)),
		cellDeg: cellDeg,
	}
	for i, p := range points {
		k := g.key(p)
		g.cells[k] = append(g.cells[k], i)
	}
	return g
}

func (g *GridIndex) Len() int                  { return len(g.points) }
func (g *GridIndex) Point(i int) geodesy.Point { return g.points[i] }

func (g *GridIndex) key(p geodesy.Point) cellKey {
	return cellKey{
		row: int(math.Floor(p.Lat / g.cellDeg)),
		col: int(math.Floor(p.Lon / g.cellDeg)),
	}
}

// Neighbors scans the cell block covering the query circle. Longitude
// degrees shrink with latitude, so the column span widens toward the poles.
func (g *GridIndex) Neighbors(i int, radius float64) []int {
	center := g.points[i]

	latSpan := 1
	lonSpan := 1
	if radius > 0 {
		latDeg := radius / geodesy.DegreesToKM
		latSpan = int(math.Ceil(latDeg/g.cellDeg)) + 1

		cosLat := math.Cos(center.Lat * math.Pi / 180.0)
		if cosLat < 0.01 {
			cosLat = 0.01
		}
		lonDeg := latDeg / cosLat
		lonSpan = int(math.Ceil(lonDeg/g.cellDeg)) + 1
	}

	ck := g.key(center)
	var out []int
	for row := ck.row - latSpan; row <= ck.row+latSpan; row++ {
		for col := ck.col - lonSpan; col <= ck.col+lonSpan; col++ {
			for _, j := range g.cells[cellKey{row: row, col: col}] {
				if j == i {
					continue
				}
				if geodesy.Haversine(center, g.points[j]) <= radius {
					out = append(out, j)
				}
			}
		}
	}

	// Cell iteration is row/col ordered, not index ordered.
	sort.Ints(out)
	return out
}
