package lloyd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []Point {
	return []Point{
		{ID: 1, Rentals: 0, Spending: 0, Cluster: Unassigned},
		{ID: 2, Rentals: 0, Spending: 1, Cluster: Unassigned},
		{ID: 3, Rentals: 10, Spending: 0, Cluster: Unassigned},
		{ID: 4, Rentals: 10, Spending: 1, Cluster: Unassigned},
	}
}

func blobs(rnd *rand.Rand) []Point {
	var points []Point
	id := 1
	for _, c := range [][2]float64{{5, 50}, {15, 150}, {25, 300}} {
		for range 20 {
			points = append(points, Point{
				ID:       id,
				Rentals:  c[0] + (rnd.Float64()-0.5)*8,
				Spending: c[1] + (rnd.Float64()-0.5)*80,
				Cluster:  Unassigned,
			})
			id++
		}
	}
	return points
}

func TestDistance(t *testing.T) {
	test := []struct {
		a, b Coord
		exp  float64
	}{
		{Point{Rentals: 0, Spending: 0}, Point{Rentals: 3, Spending: 4}, 5},
		{Point{Rentals: 1, Spending: 1}, Centroid{Rentals: 1, Spending: 1}, 0},
		{Centroid{Rentals: -1, Spending: 2}, Centroid{Rentals: 2, Spending: -2}, 5},
	}
	for _, tt := range test {
		assert.InDelta(t, tt.exp, Distance(tt.a, tt.b), 1e-12)
		assert.Equal(t, Distance(tt.a, tt.b), Distance(tt.b, tt.a))
	}
	assert.NotZero(t, Distance(Point{Rentals: 1}, Point{Spending: 1}))
}

func TestInitialize(t *testing.T) {
	points := blobs(rand.New(rand.NewSource(1)))
	before := append([]Point(nil), points...)

	for k := 1; k <= len(points); k += 7 {
		centroids, err := Initialize(points, k, rand.New(rand.NewSource(int64(k))))
		require.NoError(t, err)
		require.Len(t, centroids, k)

		seen := map[[2]float64]bool{}
		for i, c := range centroids {
			assert.Equal(t, i, c.Index)
			key := [2]float64{c.Rentals, c.Spending}
			assert.False(t, seen[key], "centroid %d drawn twice", i)
			seen[key] = true
			assert.True(t, containsCoord(points, c), "centroid %d is not an input point", i)
		}
	}
	assert.Equal(t, before, points)
}

func TestInitialize_Errors(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	_, err := Initialize(nil, 1, rnd)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = Initialize(fixture(), 0, rnd)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = Initialize(fixture(), 5, rnd)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestInitialize_Deterministic(t *testing.T) {
	points := blobs(rand.New(rand.NewSource(7)))
	a, err := Initialize(points, 3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := Initialize(points, 3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestInitialize_CoincidentPoints(t *testing.T) {
	points := []Point{
		{ID: 1, Rentals: 2, Spending: 2},
		{ID: 2, Rentals: 2, Spending: 2},
	}
	centroids, err := Initialize(points, 2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Zero(t, Distance(centroids[0], centroids[1]))

	// Both points tie, so the lower index takes everything and the other centroid freezes.
	assigned := Assign(points, centroids)
	for _, p := range assigned {
		assert.Equal(t, 0, p.Cluster)
	}
	updated := Update(assigned, 2, centroids)
	assert.Equal(t, centroids[1], updated[1])
}

func TestAssign(t *testing.T) {
	points := fixture()
	centroids := []Centroid{
		{Index: 0, Rentals: 0, Spending: 0},
		{Index: 1, Rentals: 10, Spending: 0},
	}
	assigned := Assign(points, centroids)

	assert.Equal(t, []int{0, 0, 1, 1}, clusters(assigned))
	for _, p := range points {
		assert.Equal(t, Unassigned, p.Cluster)
	}
	assert.Equal(t, clusters(assigned), clusters(Assign(assigned, centroids)))
}

func TestAssign_TieBreak(t *testing.T) {
	points := []Point{{ID: 1, Rentals: 5, Spending: 0}}
	centroids := []Centroid{
		{Index: 0, Rentals: 10, Spending: 0},
		{Index: 1, Rentals: 0, Spending: 0},
		{Index: 2, Rentals: 5, Spending: 5},
	}
	assert.Equal(t, []int{0}, clusters(Assign(points, centroids)))
}

func TestAssign_Idempotent(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	points := blobs(rnd)
	centroids, err := Initialize(points, 4, rnd)
	require.NoError(t, err)

	once := Assign(points, centroids)
	twice := Assign(once, centroids)
	assert.Equal(t, once, twice)
	for _, p := range once {
		assert.GreaterOrEqual(t, p.Cluster, 0)
		assert.Less(t, p.Cluster, 4)
	}
}

func TestUpdate(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	points := blobs(rnd)
	centroids, err := Initialize(points, 3, rnd)
	require.NoError(t, err)
	assigned := Assign(points, centroids)
	updated := Update(assigned, 3, centroids)
	require.Len(t, updated, 3)

	for i, c := range updated {
		assert.Equal(t, i, c.Index)
		var rentals, spending float64
		var n int
		for _, p := range assigned {
			if p.Cluster == i {
				rentals += p.Rentals
				spending += p.Spending
				n++
			}
		}
		if n == 0 {
			assert.Equal(t, centroids[i], c)
			continue
		}
		assert.InDelta(t, rentals/float64(n), c.Rentals, 1e-9)
		assert.InDelta(t, spending/float64(n), c.Spending, 1e-9)
	}
}

func TestUpdate_EmptyClusterFreezes(t *testing.T) {
	points := fixture()
	previous := []Centroid{
		{Index: 0, Rentals: 0, Spending: 0},
		{Index: 1, Rentals: 10, Spending: 0},
		{Index: 2, Rentals: 1000, Spending: 1000},
	}
	assigned := Assign(points, previous)
	updated := Update(assigned, 3, previous)

	assert.Equal(t, previous[2], updated[2])
	assert.Equal(t, Centroid{Index: 0, Rentals: 0, Spending: 0.5}, updated[0])
	assert.Equal(t, Centroid{Index: 1, Rentals: 10, Spending: 0.5}, updated[1])
}

func TestHasConverged(t *testing.T) {
	base := []Centroid{{Index: 0, Rentals: 0, Spending: 0}, {Index: 1, Rentals: 10, Spending: 0}}
	test := []struct {
		name      string
		old, next []Centroid
		threshold float64
		exp       bool
	}{
		{"no_previous", nil, base, DefaultThreshold, false},
		{"empty_previous", []Centroid{}, base, DefaultThreshold, false},
		{"unchanged", base, base, DefaultThreshold, true},
		{"at_threshold", base, []Centroid{{Index: 0, Rentals: 0, Spending: 0.25}, base[1]}, 0.25, true},
		{"one_moved", base, []Centroid{base[0], {Index: 1, Rentals: 10, Spending: 0.5}}, DefaultThreshold, false},
		{"custom_threshold", base, []Centroid{base[0], {Index: 1, Rentals: 10, Spending: 0.5}}, 0.5, true},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exp, HasConverged(tt.old, tt.next, tt.threshold))
		})
	}
}

func TestLloydScenario(t *testing.T) {
	points := fixture()
	centroids := []Centroid{
		{Index: 0, Rentals: 0, Spending: 0},
		{Index: 1, Rentals: 10, Spending: 0},
	}

	// first iteration moves both centroids by 0.5
	points = Assign(points, centroids)
	assert.Equal(t, []int{0, 0, 1, 1}, clusters(points))
	next := Update(points, 2, centroids)
	assert.Equal(t, []Centroid{
		{Index: 0, Rentals: 0, Spending: 0.5},
		{Index: 1, Rentals: 10, Spending: 0.5},
	}, next)
	assert.InDelta(t, 0.5, MaxShift(centroids, next), 1e-12)
	assert.False(t, HasConverged(centroids, next, DefaultThreshold))

	// second iteration changes nothing
	centroids = next
	points = Assign(points, centroids)
	assert.Equal(t, []int{0, 0, 1, 1}, clusters(points))
	next = Update(points, 2, centroids)
	assert.Equal(t, centroids, next)
	assert.True(t, HasConverged(centroids, next, DefaultThreshold))
}

func TestAverageStore(t *testing.T) {
	var s AverageStore
	for _, v := range []float64{1, 2, 3, 4} {
		s.Add(v)
	}
	assert.Equal(t, 4, s.Count())
	assert.Equal(t, 2.5, s.Average())
}

func clusters(points []Point) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = p.Cluster
	}
	return out
}

func containsCoord(points []Point, c Centroid) bool {
	for _, p := range points {
		if p.Rentals == c.Rentals && p.Spending == c.Spending {
			return true
		}
	}
	return false
}
