package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	kmeans "github.com/yyyoichi/kmeans_stepper"
)

const (
	minK = 2
	maxK = 5
)

func main() {
	var (
		k       = flag.Int("k", kmeans.DefaultK, "number of clusters, clamped to [2, 5]")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "seed for dataset generation and centroid sampling")
		maxIter = flag.Int("max-iter", kmeans.DefaultMaxIterations, "maximum number of iterations")
		delay   = flag.Duration("delay", 500*time.Millisecond, "pause between iterations")
		out     = flag.String("out", "kmeans.html", "output HTML file")
		serve   = flag.String("serve", "", "serve the charts on this address instead of writing a file, e.g. :8080")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	states, err := run(ctx, clampK(*k), *seed, *maxIter, *delay)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Failed to run k-means: %v", err)
	}
	if len(states) == 0 {
		log.Println("No iterations to render")
		return
	}

	page := newPage(states)
	if *serve != "" {
		if err := listen(ctx, *serve, page.Render); err != nil {
			log.Fatalf("Failed to serve charts: %v", err)
		}
		return
	}

	if err := writePage(*out, page.Render); err != nil {
		log.Fatalf("Failed to write charts: %v", err)
	}
	log.Printf("Saved %d iterations to %s\n", len(states), *out)
}

// writePage renders into path and removes the file again if rendering fails.
func writePage(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return f.Close()
}

// clampK keeps k inside the range the UI offers.
func clampK(k int) int {
	return min(max(k, minK), maxK)
}

func run(ctx context.Context, k int, seed int64, maxIter int, delay time.Duration) ([]kmeans.State, error) {
	c, err := kmeans.New(
		kmeans.WithK(k),
		kmeans.WithSeed(seed),
		kmeans.WithMaxIterations(maxIter),
	)
	if err != nil {
		return nil, err
	}
	if err := c.Start(); err != nil {
		return nil, err
	}
	log.Printf("Clustering %d customers into %d segments (seed=%d)\n", len(c.State().Points), k, seed)

	var states []kmeans.State
	for s, err := range c.Steps(ctx) {
		if err != nil {
			return states, err
		}
		states = append(states, s)
		log.Printf("iteration %d: %s\n", s.Iteration, s.Status)
		for _, sum := range kmeans.Summarize(s) {
			log.Printf("  cluster %d: %d customers, avg rentals %.1f, avg spending $%.2f\n",
				sum.Cluster, sum.Count, sum.MeanRentals, sum.MeanSpending)
		}
		if s.Converged() {
			break
		}
		select {
		case <-ctx.Done():
		case <-time.After(delay):
		}
	}
	return states, nil
}

func listen(ctx context.Context, addr string, render func(io.Writer) error) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if err := render(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Serving charts on http://localhost%s\n", addr)
	fmt.Println("Press Ctrl+C to stop the server...")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
