package pool

import (
	"github.com/Carmen-Shannon/oxy-tree/engine/sampler"
)

// PoolBuilderOption is a functional option for configuring pool construction.
// Use the With* functions to create options.
type PoolBuilderOption func(b *poolBuilder)

// poolBuilder collects construction parameters shared by every pool type.
type poolBuilder struct {
	rng         sampler.Rand
	shape       sampler.ConeShape
	count       int
	chaosRadius float32
}

func newPoolBuilder(options ...PoolBuilderOption) *poolBuilder {
	b := &poolBuilder{
		shape:       sampler.DefaultConeShape(),
		count:       DefaultFoliageCount,
		chaosRadius: DefaultFoliageChaosRadius,
	}
	for _, opt := range options {
		opt(b)
	}
	if b.rng == nil {
		b.rng = sampler.NewRand(1)
	}
	return b
}

// WithRand sets the randomness source used for every draw.
// Defaults to a source seeded with 1.
//
// Parameters:
//   - rng: the randomness source
//
// Returns:
//   - PoolBuilderOption: option function to apply
func WithRand(rng sampler.Rand) PoolBuilderOption {
	return func(b *poolBuilder) {
		b.rng = rng
	}
}

// WithShape sets the cone silhouette used for target positions.
//
// Parameters:
//   - shape: the cone shape
//
// Returns:
//   - PoolBuilderOption: option function to apply
func WithShape(shape sampler.ConeShape) PoolBuilderOption {
	return func(b *poolBuilder) {
		b.shape = shape
	}
}

// WithCount sets the number of foliage points. Ignored by instance pools, which take Category.Count.
//
// Parameters:
//   - count: number of points (> 0)
//
// Returns:
//   - PoolBuilderOption: option function to apply
func WithCount(count int) PoolBuilderOption {
	return func(b *poolBuilder) {
		b.count = count
	}
}

// WithChaosRadius sets the foliage scatter radius. Ignored by instance pools.
//
// Parameters:
//   - radius: sphere radius (> 0)
//
// Returns:
//   - PoolBuilderOption: option function to apply
func WithChaosRadius(radius float32) PoolBuilderOption {
	return func(b *poolBuilder) {
		b.chaosRadius = radius
	}
}
