package kmeans

// Status is the position of a Clusterer in its run.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusConverged
	// StatusMaxIterationsReached ends a run whose centroids were still moving
	// more than the threshold when the iteration bound was hit.
	StatusMaxIterationsReached
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusConverged:
		return "converged"
	case StatusMaxIterationsReached:
		return "max_iterations_reached"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further step can run.
func (s Status) Terminal() bool {
	return s == StatusConverged || s == StatusMaxIterationsReached
}

// State is a snapshot of one iteration. It owns its slices.
type State struct {
	Points    []Point
	Centroids []Centroid
	Iteration int
	Status    Status
}

// Converged reports whether the run is over, either because the centroids
// settled or because the iteration bound was reached. Use Status to tell them apart.
func (s State) Converged() bool {
	return s.Status.Terminal()
}
