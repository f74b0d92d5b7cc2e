// Package kmeans steps Lloyd's algorithm over two-feature customer data,
// producing one independent snapshot per iteration so a renderer can animate
// the assignment and centroid-update steps at its own pace.
package kmeans

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/yyyoichi/kmeans_stepper/customer"
	"github.com/yyyoichi/kmeans_stepper/internal/lloyd"
)

const (
	DefaultK             = 3
	DefaultMaxIterations = 50
	DefaultThreshold     = lloyd.DefaultThreshold
)

var (
	ErrInvalidK      = lloyd.ErrInvalidK
	ErrEmptyDataset  = lloyd.ErrEmptyDataset
	ErrNotRunning    = errors.New("clusterer is not running")
	ErrInvalidOption = errors.New("invalid option")
)

type (
	Point    = lloyd.Point
	Centroid = lloyd.Centroid
)

// Unassigned is the cluster of a point before its first assignment step.
const Unassigned = lloyd.Unassigned

// Initializer picks the k starting centroids for points.
type Initializer func(points []Point, k int) ([]Centroid, error)

// Run clusters points until convergence or the iteration bound and returns every snapshot.
// This is a convenience function that creates a Clusterer and drains its Steps.
// On cancellation the snapshots emitted so far are returned with the context error.
func Run(ctx context.Context, points []Point, opts ...Option) ([]State, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	c.Load(points)
	if err := c.Start(); err != nil {
		return nil, err
	}
	var states []State
	for s, err := range c.Steps(ctx) {
		if err != nil {
			return states, err
		}
		states = append(states, s)
	}
	return states, nil
}

// Clusterer drives Lloyd's algorithm one iteration at a time.
//
// It moves Idle -> Running -> {Converged, MaxIterationsReached}. Points and
// centroids are replaced wholesale every step, so snapshots handed out earlier
// never change. A Clusterer is not safe for concurrent use.
type Clusterer struct {
	k             int
	maxIterations int
	threshold     float64
	thresholdSet  bool
	rand          *rand.Rand
	source        func(*rand.Rand) []Point
	initializer   Initializer
	logger        *slog.Logger

	points    []Point
	centroids []Centroid
	iteration int
	status    Status
}

// New initializes a clusterer and generates its first dataset from the source.
// For default values, refer to the init function.
func New(opts ...Option) (*Clusterer, error) {
	c := new(Clusterer)
	if err := c.init(opts...); err != nil {
		return nil, err
	}
	c.Reset()
	return c, nil
}

func (c *Clusterer) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	if c.k == 0 {
		c.k = DefaultK
	}
	if c.maxIterations == 0 {
		c.maxIterations = DefaultMaxIterations
	}
	if !c.thresholdSet {
		c.threshold = DefaultThreshold
	}
	if c.rand == nil {
		c.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.source == nil {
		c.source = customer.Source()
	}
	if c.initializer == nil {
		c.initializer = func(points []Point, k int) ([]Centroid, error) {
			return lloyd.Initialize(points, k, c.rand)
		}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

// K returns the number of clusters.
func (c *Clusterer) K() int { return c.k }

// Status returns the current state of the run.
func (c *Clusterer) Status() Status { return c.status }

// State returns a snapshot of the current points and centroids.
func (c *Clusterer) State() State {
	return c.snapshot()
}

// Load replaces the dataset with a copy of points and returns to Idle.
func (c *Clusterer) Load(points []Point) {
	c.points = slices.Clone(points)
	c.clear()
}

// Reset regenerates the dataset from the source, clears the centroids and returns to Idle.
func (c *Clusterer) Reset() {
	c.points = c.source(c.rand)
	c.clear()
}

func (c *Clusterer) clear() {
	c.centroids = nil
	c.iteration = 0
	c.status = StatusIdle
}

// Start picks the initial centroids from the current points and begins running.
// It fails with ErrEmptyDataset or ErrInvalidK before any iteration runs.
// Starting a run that is already in progress restarts it from fresh centroids.
func (c *Clusterer) Start() error {
	if len(c.points) == 0 {
		return ErrEmptyDataset
	}
	if c.k > len(c.points) {
		return fmt.Errorf("%w: k=%d, points=%d", ErrInvalidK, c.k, len(c.points))
	}
	centroids, err := c.initializer(slices.Clone(c.points), c.k)
	if err != nil {
		return err
	}
	if len(centroids) != c.k {
		return fmt.Errorf("%w: initializer returned %d centroids, want %d", ErrInvalidK, len(centroids), c.k)
	}
	for i, ct := range centroids {
		if ct.Index != i {
			return fmt.Errorf("%w: initializer returned centroid %d with index %d", ErrInvalidOption, i, ct.Index)
		}
	}

	c.centroids = slices.Clone(centroids)
	c.iteration = 0
	c.status = StatusRunning
	c.logger.Debug("kmeans started", "k", c.k, "points", len(c.points), "maxIterations", c.maxIterations)
	return nil
}

// Step runs one assignment and update and returns the resulting snapshot.
// ctx is checked before the step begins; a cancelled step leaves the clusterer untouched.
func (c *Clusterer) Step(ctx context.Context) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	if c.status != StatusRunning {
		return State{}, fmt.Errorf("%w: status %s", ErrNotRunning, c.status)
	}

	old := c.centroids
	c.points = lloyd.Assign(c.points, old)
	c.centroids = lloyd.Update(c.points, c.k, old)
	c.iteration++

	switch {
	case lloyd.HasConverged(old, c.centroids, c.threshold):
		c.status = StatusConverged
	case c.iteration >= c.maxIterations:
		c.status = StatusMaxIterationsReached
	}

	c.logger.DebugContext(ctx, "kmeans step",
		"iteration", c.iteration,
		"status", c.status,
		"shift", lloyd.MaxShift(old, c.centroids),
	)
	if c.status.Terminal() {
		c.logger.InfoContext(ctx, "kmeans finished",
			"iteration", c.iteration,
			"status", c.status,
		)
	}
	return c.snapshot(), nil
}

// Steps yields a snapshot per iteration until the run reaches a terminal status.
// It yields ErrNotRunning once if the clusterer was not started.
// The consumer decides the pacing between pulls. Cancelling ctx ends the sequence
// with the context error at the next iteration boundary.
func (c *Clusterer) Steps(ctx context.Context) iter.Seq2[State, error] {
	return func(yield func(State, error) bool) {
		if c.status != StatusRunning {
			yield(State{}, fmt.Errorf("%w: status %s", ErrNotRunning, c.status))
			return
		}
		for c.status == StatusRunning {
			s, err := c.Step(ctx)
			if err != nil {
				yield(State{}, err)
				return
			}
			if !yield(s, nil) {
				return
			}
		}
	}
}

func (c *Clusterer) snapshot() State {
	return State{
		Points:    slices.Clone(c.points),
		Centroids: slices.Clone(c.centroids),
		Iteration: c.iteration,
		Status:    c.status,
	}
}
