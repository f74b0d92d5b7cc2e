package lloyd

// Unassigned marks a point that has not been through an assignment step yet.
const Unassigned = -1

// Coord is a record with the two features the clustering works on.
type Coord interface {
	Features() []float64
}

// Point is a customer in feature space.
// Rentals is the first feature and Spending the second.
type Point struct {
	ID       int
	Rentals  float64
	Spending float64
	Cluster  int
}

func (p Point) Features() []float64 { return []float64{p.Rentals, p.Spending} }

// Centroid is the representative of the cluster at Index.
type Centroid struct {
	Index    int
	Rentals  float64
	Spending float64
}

func (c Centroid) Features() []float64 { return []float64{c.Rentals, c.Spending} }
