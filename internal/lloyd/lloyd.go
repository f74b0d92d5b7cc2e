package lloyd

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// DefaultThreshold is the centroid movement at or below which an iteration counts as converged.
const DefaultThreshold = 0.1

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Coord) float64 {
	return floats.Distance(a.Features(), b.Features(), 2)
}

// Initialize draws k distinct points uniformly at random and turns them into centroids.
// The centroid index is the draw order. points is not modified.
func Initialize(points []Point, k int, rnd *rand.Rand) ([]Centroid, error) {
	if len(points) == 0 {
		return nil, ErrEmptyDataset
	}
	if k < 1 || k > len(points) {
		return nil, fmt.Errorf("%w: k=%d, points=%d", ErrInvalidK, k, len(points))
	}
	perm := rnd.Perm(len(points))
	centroids := make([]Centroid, k)
	for i := range k {
		p := points[perm[i]]
		centroids[i] = Centroid{Index: i, Rentals: p.Rentals, Spending: p.Spending}
	}
	return centroids, nil
}

// Assign returns a copy of points with every Cluster set to its nearest centroid.
// Equidistant centroids resolve to the lowest index.
func Assign(points []Point, centroids []Centroid) []Point {
	assigned := make([]Point, len(points))
	for i, p := range points {
		best, minDist := Unassigned, math.Inf(1)
		for j, c := range centroids {
			if d := Distance(p, c); d < minDist {
				minDist = d
				best = j
			}
		}
		p.Cluster = best
		assigned[i] = p
	}
	return assigned
}

// Update recomputes each of the k centroids as the mean of its members.
// A cluster without members keeps previous[i] unchanged.
func Update(points []Point, k int, previous []Centroid) []Centroid {
	rentals := make([]AverageStore, k)
	spending := make([]AverageStore, k)
	for _, p := range points {
		if p.Cluster < 0 || p.Cluster >= k {
			continue
		}
		rentals[p.Cluster].Add(p.Rentals)
		spending[p.Cluster].Add(p.Spending)
	}

	centroids := make([]Centroid, k)
	for i := range k {
		if rentals[i].Count() == 0 {
			centroids[i] = previous[i]
			continue
		}
		centroids[i] = Centroid{
			Index:    i,
			Rentals:  rentals[i].Average(),
			Spending: spending[i].Average(),
		}
	}
	return centroids
}

// HasConverged reports whether no centroid moved more than threshold.
// The first iteration, with no previous centroids, never converges.
func HasConverged(old, next []Centroid, threshold float64) bool {
	if len(old) == 0 {
		return false
	}
	for i := range old {
		if Distance(old[i], next[i]) > threshold {
			return false
		}
	}
	return true
}

// MaxShift returns the largest distance a centroid moved between old and next.
func MaxShift(old, next []Centroid) float64 {
	var shift float64
	for i := range min(len(old), len(next)) {
		shift = max(shift, Distance(old[i], next[i]))
	}
	return shift
}
