// Package analysis implements spatial statistics over in-memory point sets:
// density-based clustering, global spatial autocorrelation, and local
// hotspot detection. Points are identified by their position in the input
// slice; every output carries explicit indices.
package analysis

import (
	"github.com/spatialsim/geocompute/internal/geodesy"
)

// DetectClusters groups points into density-connected clusters. Two points
// are neighbors iff their haversine distance is at most radius kilometers;
// a point seeds a cluster when it has at least minPoints neighbors.
//
// Each cluster lists point indices in discovery order, and clusters appear
// in the order their seed was first visited. Points never reached from a
// core point are noise and are omitted. Clusters are disjoint.
//
// minPoints <= 0 makes every point a valid seed. radius <= 0 isolates every
// non-coincident point. The scan is deterministic: identical inputs always
// produce identical output.
func DetectClusters(points []geodesy.Point, radius float64, minPoints int) [][]int {
	return DetectClustersIndexed(NewBruteIndex(points), radius, minPoints)
}

// DetectClustersIndexed runs the same clustering over a prebuilt
// NeighborIndex, letting callers substitute a spatial index for the O(n²)
// scan without changing the clustering contract.
func DetectClustersIndexed(idx NeighborIndex, radius float64, minPoints int) [][]int {
	n := idx.Len()
	visited := make([]bool, n)
	var clusters [][]int

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := idx.Neighbors(i, radius)
		if len(neighbors) < minPoints {
			// Provisional noise: excluded unless a later expansion absorbs it.
			continue
		}

		clusters = append(clusters, expandCluster(idx, i, neighbors, visited, radius, minPoints))
	}

	return clusters
}

// expandCluster grows a cluster from seed by walking the neighbor queue.
// The queue grows while being consumed; the cursor makes that an explicit
// FIFO rather than recursion. Border points (reachable but not dense) join
// the cluster without contributing their own neighborhoods.
func expandCluster(idx NeighborIndex, seed int, neighbors []int, visited []bool, radius float64, minPoints int) []int {
	cluster := []int{seed}
	member := map[int]bool{seed: true}

	queue := make([]int, len(neighbors))
	copy(queue, neighbors)

	for cursor := 0; cursor < len(queue); cursor++ {
		q := queue[cursor]

		if !visited[q] {
			visited[q] = true
			qNeighbors := idx.Neighbors(q, radius)
			if len(qNeighbors) >= minPoints {
				queue = append(queue, qNeighbors...)
			}
		}

		if !member[q] {
			member[q] = true
			cluster = append(cluster, q)
		}
	}

	return cluster
}
