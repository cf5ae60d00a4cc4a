package equity

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/isaacvp2/pokerproj/holdem"
)

// Cancellation is checked between chunks of this many trials.
const chunkSize = 4096

// RunParallel splits n trials over workers goroutines. Worker w draws from its own generator
// seeded with seed+w, so a run is replayable for a fixed (seed, workers) pair.
func RunParallel(ctx context.Context, scenario holdem.Scenario, n, workers int, seed int64, stats *Stats) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTrials, n)
	}
	if err := scenario.Validate(); err != nil {
		return Result{}, err
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if stats == nil {
		stats = &Stats{}
	}

	results := make([]Result, workers)
	per, rem := n/workers, n%workers
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		trials := per
		if w < rem {
			trials++
		}
		g.Go(func() error {
			sim, err := NewWithRand(rand.New(rand.NewSource(seed+int64(w))), scenario, stats)
			if err != nil {
				return err
			}
			for done := 0; done < trials; {
				if err := ctx.Err(); err != nil {
					return err
				}
				chunk := min(chunkSize, trials-done)
				r, err := sim.RunTrials(chunk)
				if err != nil {
					return fmt.Errorf("worker %d: %w", w, err)
				}
				results[w] = results[w].Merge(r)
				done += chunk
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	total := Result{}
	for _, r := range results {
		total = total.Merge(r)
	}
	total.Elapsed = time.Since(start)
	return total, nil
}
