package testutil

import (
	"cmp"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Ints returns n pseudo-random integers in [lo, hi].
func (r *RNG) Ints(n, lo, hi int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = lo + r.rand.Intn(hi-lo+1)
	}
	return out
}

// Float64s returns n pseudo-random floats in [0, 1).
func (r *RNG) Float64s(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, n)
	for i := range out {
		out[i] = r.rand.Float64()
	}
	return out
}

// Range returns a random non-empty half-open range [begin, end) within [0, n).
// n must be positive.
func (r *RNG) Range(n int) (begin, end int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	begin = r.rand.Intn(n)
	end = begin + 1 + r.rand.Intn(n-begin)
	return begin, end
}

// ArgMin returns the smallest value of s and the lowest position holding it.
// s must not be empty.
func ArgMin[T cmp.Ordered](s []T) (T, int) {
	best, pos := s[0], 0
	for i, v := range s[1:] {
		if v < best {
			best, pos = v, i+1
		}
	}
	return best, pos
}

// ArgMax returns the largest value of s and the lowest position holding it.
// s must not be empty.
func ArgMax[T cmp.Ordered](s []T) (T, int) {
	best, pos := s[0], 0
	for i, v := range s[1:] {
		if v > best {
			best, pos = v, i+1
		}
	}
	return best, pos
}

// Sum returns the sum of s.
func Sum[T int | int64 | float64](s []T) T {
	var total T
	for _, v := range s {
		total += v
	}
	return total
}

// Fold combines s from left to right with op. s must not be empty.
func Fold[T any](s []T, op func(a, b T) T) T {
	acc := s[0]
	for _, v := range s[1:] {
		acc = op(acc, v)
	}
	return acc
}
