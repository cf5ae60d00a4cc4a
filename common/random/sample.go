package random

import (
	"cmp"
	"fmt"
	"math/rand"
	"slices"
)

// Sample draws one key with probability equal to its value. Keys are walked in sorted order so
// a seeded rng always gives the same draw.
func Sample[T cmp.Ordered](rand *rand.Rand, probs map[T]float32) (T, error) {
	var zero T
	if len(probs) == 0 {
		return zero, fmt.Errorf("no values to sample from")
	}
	keys := make([]T, 0, len(probs))
	var sum float32 = 0.0
	for val, prob := range probs {
		if prob < 0 {
			return zero, fmt.Errorf("negative probability for %v", val)
		}
		keys = append(keys, val)
		sum += prob
	}
	if sum < 0.95 || sum > 1.05 {
		return zero, fmt.Errorf("invalid probs sum %.3f != 1", sum)
	}
	slices.Sort(keys)

	r := rand.Float32() * sum
	var cumulativeProb float32 = 0.0
	for _, k := range keys {
		cumulativeProb += probs[k]
		if r < cumulativeProb {
			return k, nil
		}
	}
	return keys[len(keys)-1], nil
}

// Normalize scales non-negative weights so they sum to 1.
func Normalize[T comparable](weights map[T]float32) (map[T]float32, error) {
	var sum float32
	for k, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("negative weight for %v", k)
		}
		sum += w
	}
	if sum == 0 {
		return nil, fmt.Errorf("weights sum to zero")
	}
	out := make(map[T]float32, len(weights))
	for k, w := range weights {
		out[k] = w / sum
	}
	return out, nil
}
