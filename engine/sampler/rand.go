package sampler

import "math/rand/v2"

// Rand is the randomness source threaded through sampling and pool construction.
// A fixed seed reproduces the same scene.
type Rand interface {
	// Float32 returns a pseudo-random number in the half-open interval [0.0, 1.0).
	//
	// Returns:
	//   - float32: the drawn value
	Float32() float32

	// IntN returns a pseudo-random number in the half-open interval [0, n).
	// It panics if n <= 0.
	//
	// Parameters:
	//   - n: exclusive upper bound
	//
	// Returns:
	//   - int: the drawn value
	IntN(n int) int
}

// NewRand creates a deterministic PCG-backed Rand from a seed.
// Not safe for concurrent use; give each goroutine its own source.
//
// Parameters:
//   - seed: the seed value
//
// Returns:
//   - Rand: the seeded random source
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
