package kmeans

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
)

type Option func(*Clusterer) error

// WithK sets the number of clusters. k must be at least 1; whether it fits the
// dataset is checked by Start.
func WithK(k int) Option {
	return func(c *Clusterer) error {
		if k < 1 {
			return fmt.Errorf("%w: k=%d", ErrInvalidK, k)
		}
		c.k = k
		return nil
	}
}

// WithMaxIterations bounds the number of steps before the run stops with
// StatusMaxIterationsReached. Defaults to 50.
func WithMaxIterations(n int) Option {
	return func(c *Clusterer) error {
		if n < 1 {
			return fmt.Errorf("%w: max iterations %d", ErrInvalidOption, n)
		}
		c.maxIterations = n
		return nil
	}
}

// WithThreshold sets the largest centroid movement that still counts as converged.
// Defaults to 0.1.
func WithThreshold(threshold float64) Option {
	return func(c *Clusterer) error {
		if math.IsNaN(threshold) || threshold < 0 {
			return fmt.Errorf("%w: threshold %v", ErrInvalidOption, threshold)
		}
		c.threshold = threshold
		c.thresholdSet = true
		return nil
	}
}

// WithSeed makes centroid sampling and dataset generation reproducible.
// Two clusterers with the same seed and options produce identical trajectories.
func WithSeed(seed int64) Option {
	return func(c *Clusterer) error {
		c.rand = rand.New(rand.NewSource(seed))
		return nil
	}
}

// WithSource replaces the dataset generator used by New and Reset.
func WithSource(source func(*rand.Rand) []Point) Option {
	return func(c *Clusterer) error {
		if source == nil {
			return fmt.Errorf("%w: nil source", ErrInvalidOption)
		}
		c.source = source
		return nil
	}
}

// WithInitializer replaces the random centroid sampling done by Start.
// The initializer must return exactly k centroids.
func WithInitializer(init Initializer) Option {
	return func(c *Clusterer) error {
		if init == nil {
			return fmt.Errorf("%w: nil initializer", ErrInvalidOption)
		}
		c.initializer = init
		return nil
	}
}

// WithLogger reports every step at debug level and terminal statuses at info level.
// Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Clusterer) error {
		c.logger = logger
		return nil
	}
}
