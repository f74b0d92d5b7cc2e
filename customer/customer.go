// Package customer generates synthetic rental-store customers grouped into segments.
package customer

import (
	"math/rand"

	"github.com/yyyoichi/kmeans_stepper/internal/lloyd"
)

const (
	// RentalsNoise is the half-width of the uniform noise added to a segment's rentals.
	RentalsNoise = 4.
	// SpendingNoise is the half-width of the uniform noise added to a segment's spending.
	SpendingNoise = 40.
)

// Segment is the center of a blob of customers and how many customers it holds.
type Segment struct {
	Rentals  float64
	Spending float64
	Count    int
}

// DefaultSegments are occasional, regular and heavy renters, 20 customers each.
var DefaultSegments = []Segment{
	{Rentals: 5, Spending: 50, Count: 20},
	{Rentals: 15, Spending: 150, Count: 20},
	{Rentals: 25, Spending: 300, Count: 20},
}

// Generate creates the customers of every segment in order.
// Each customer is its segment center plus independent uniform noise of
// ±RentalsNoise and ±SpendingNoise. IDs start at 1 and every customer is unassigned.
// DefaultSegments is used when no segment is given.
func Generate(rnd *rand.Rand, segments ...Segment) []lloyd.Point {
	if len(segments) == 0 {
		segments = DefaultSegments
	}
	var total int
	for _, seg := range segments {
		total += seg.Count
	}

	points := make([]lloyd.Point, 0, total)
	id := 1
	for _, seg := range segments {
		for range seg.Count {
			points = append(points, lloyd.Point{
				ID:       id,
				Rentals:  seg.Rentals + (rnd.Float64()-0.5)*2*RentalsNoise,
				Spending: seg.Spending + (rnd.Float64()-0.5)*2*SpendingNoise,
				Cluster:  lloyd.Unassigned,
			})
			id++
		}
	}
	return points
}

// Source binds segments to Generate so it can be handed to kmeans.WithSource.
func Source(segments ...Segment) func(*rand.Rand) []lloyd.Point {
	return func(rnd *rand.Rand) []lloyd.Point {
		return Generate(rnd, segments...)
	}
}
