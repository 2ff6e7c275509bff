package scene

import (
	"github.com/Carmen-Shannon/oxy-tree/engine/pool"
	"github.com/Carmen-Shannon/oxy-tree/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-tree/engine/sampler"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithSeed seeds the scene's randomness source. Ignored if WithRand is also given.
//
// Parameters:
//   - seed: the seed value
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSeed(seed uint64) SceneBuilderOption {
	return func(s *scene) {
		s.seed = seed
	}
}

// WithRand sets the randomness source used to sample every pool.
//
// Parameters:
//   - rng: the randomness source
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRand(rng sampler.Rand) SceneBuilderOption {
	return func(s *scene) {
		s.rng = rng
	}
}

// WithShape sets the cone silhouette shared by every group.
//
// Parameters:
//   - shape: the cone shape
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShape(shape sampler.ConeShape) SceneBuilderOption {
	return func(s *scene) {
		s.shape = shape
	}
}

// WithFoliage sets the needle count and scatter radius.
//
// Parameters:
//   - count: number of points (> 0)
//   - chaosRadius: scatter radius (> 0)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFoliage(count int, chaosRadius float32) SceneBuilderOption {
	return func(s *scene) {
		s.foliageSize = count
		s.foliageR = chaosRadius
	}
}

// WithFoliageRate sets how fast the needles' shared progress relaxes toward its goal.
//
// Parameters:
//   - rate: relaxation rate in 1/s (> 0)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFoliageRate(rate float32) SceneBuilderOption {
	return func(s *scene) {
		s.foliageRate = rate
	}
}

// WithFoliageStyle replaces the needle colour gradient, sparkle and size rules.
//
// Parameters:
//   - style: the foliage style
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFoliageStyle(style animator.FoliageStyle) SceneBuilderOption {
	return func(s *scene) {
		s.style = style
	}
}

// WithCategories replaces the ornament groups.
//
// Parameters:
//   - categories: the groups, in draw order
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCategories(categories ...pool.Category) SceneBuilderOption {
	return func(s *scene) {
		s.categories = categories
	}
}

// WithTopper replaces the topper definition.
//
// Parameters:
//   - spec: the topper endpoints, rate and look
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTopper(spec pool.TopperSpec) SceneBuilderOption {
	return func(s *scene) {
		s.topperSpec = spec
	}
}

// WithStar sets the topper's star outline.
//
// Parameters:
//   - points: number of tips
//   - outer: tip radius
//   - inner: notch radius
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithStar(points int, outer, inner float32) SceneBuilderOption {
	return func(s *scene) {
		s.starPoints = points
		s.starOuter = outer
		s.starInner = inner
	}
}

// WithSignal shares an existing toggle with the scene instead of creating one.
//
// Parameters:
//   - signal: the toggle
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSignal(signal *Signal) SceneBuilderOption {
	return func(s *scene) {
		s.signal = signal
	}
}

// WithFormed sets the initial toggle state. Ignored if WithSignal is also given.
//
// Parameters:
//   - formed: the initial state
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFormed(formed bool) SceneBuilderOption {
	return func(s *scene) {
		if s.signal == nil {
			s.signal = NewSignal(formed)
		}
	}
}

// WithComputeWorkers sets the number of worker goroutines used to split large groups
// across cores. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithChunkSize sets how many elements one worker task processes.
//
// Parameters:
//   - n: elements per chunk
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithChunkSize(n int) SceneBuilderOption {
	return func(s *scene) {
		s.chunkSize = n
	}
}
