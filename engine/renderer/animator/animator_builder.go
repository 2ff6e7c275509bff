package animator

import (
	"github.com/Carmen-Shannon/automation/tools/worker"
)

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithComputePool is an option builder that lets the animator split its elements across a worker pool.
// The pool is borrowed, not owned; the caller stops it.
//
// Parameters:
//   - pool: the worker pool to submit chunks to
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the pool option to an animator
func WithComputePool(pool worker.DynamicWorkerPool) AnimatorBuilderOption {
	return func(a *animator) {
		a.computePool = pool
	}
}

// WithChunkSize is an option builder that sets how many elements each worker task processes.
//
// Parameters:
//   - n: elements per chunk (values < 1 fall back to DefaultChunkSize)
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the chunk size option to an animator
func WithChunkSize(n int) AnimatorBuilderOption {
	return func(a *animator) {
		a.chunkSize = n
	}
}

// WithMotion is an option builder that overrides the secondary-motion policy of an instance animator.
//
// Parameters:
//   - m: the motion policy
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the motion option to an animator
func WithMotion(m MotionPolicy) AnimatorBuilderOption {
	return func(a *animator) {
		a.motion = m
	}
}

// WithRate is an option builder that sets the foliage progress relaxation rate in 1/s.
//
// Parameters:
//   - rate: the relaxation rate
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the rate option to an animator
func WithRate(rate float32) AnimatorBuilderOption {
	return func(a *animator) {
		a.rate = rate
	}
}

// WithFoliageStyle is an option builder that sets the foliage colour and point-size rules.
//
// Parameters:
//   - style: the foliage style
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the style option to an animator
func WithFoliageStyle(style FoliageStyle) AnimatorBuilderOption {
	return func(a *animator) {
		a.style = style
	}
}
