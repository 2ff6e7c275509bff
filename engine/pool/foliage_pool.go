package pool

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/Carmen-Shannon/oxy-tree/engine/sampler"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultFoliageCount is the number of needle points in the stock scene.
	DefaultFoliageCount = 15000
	// DefaultFoliageChaosRadius is the scatter radius for needle points.
	DefaultFoliageChaosRadius float32 = 25
)

// FoliagePool holds the static buffers of the point-particle group.
// Positions are flattened xyz triples laid out for direct vertex-buffer upload.
// Nothing in the pool changes after construction; blending happens downstream from a shared progress.
type FoliagePool struct {
	chaos       []float32
	target      []float32
	seeds       []float32
	chaosRadius float32
}

// NewFoliagePool samples the needle points.
//
// Parameters:
//   - options: functional options (count, chaos radius, rand source, cone shape)
//
// Returns:
//   - *FoliagePool: the constructed pool
//   - error: an error wrapping common.ErrInvalidConfig on bad parameters
func NewFoliagePool(options ...PoolBuilderOption) (*FoliagePool, error) {
	b := newPoolBuilder(options...)
	if b.count <= 0 {
		return nil, fmt.Errorf("foliage count must be > 0, got %d: %w", b.count, common.ErrInvalidConfig)
	}
	if !(b.chaosRadius > 0) {
		return nil, fmt.Errorf("foliage chaos radius must be > 0, got %v: %w", b.chaosRadius, common.ErrInvalidConfig)
	}
	if err := b.shape.Validate(); err != nil {
		return nil, fmt.Errorf("foliage: %w", err)
	}

	p := &FoliagePool{
		chaos:       make([]float32, b.count*3),
		target:      make([]float32, b.count*3),
		seeds:       make([]float32, b.count),
		chaosRadius: b.chaosRadius,
	}
	for i := range b.count {
		c := sampler.SphereVolume(b.rng, b.chaosRadius)
		t := sampler.LayeredCone(b.rng, b.shape)
		copy(p.chaos[i*3:i*3+3], c[:])
		copy(p.target[i*3:i*3+3], t[:])
		p.seeds[i] = b.rng.Float32()
	}
	return p, nil
}

// Len returns the fixed point count.
func (p *FoliagePool) Len() int {
	return len(p.seeds)
}

// ChaosRadius returns the scatter radius the pool was sampled with.
func (p *FoliagePool) ChaosRadius() float32 {
	return p.chaosRadius
}

// ChaosPositions returns the flattened scattered positions (3 floats per point).
func (p *FoliagePool) ChaosPositions() []float32 {
	return p.chaos
}

// TargetPositions returns the flattened tree positions (3 floats per point).
func (p *FoliagePool) TargetPositions() []float32 {
	return p.target
}

// Seeds returns the per-point random seeds in [0, 1).
func (p *FoliagePool) Seeds() []float32 {
	return p.seeds
}

// Chaos returns the scattered position of point i.
func (p *FoliagePool) Chaos(i int) mgl32.Vec3 {
	return mgl32.Vec3{p.chaos[i*3], p.chaos[i*3+1], p.chaos[i*3+2]}
}

// Target returns the tree position of point i.
func (p *FoliagePool) Target(i int) mgl32.Vec3 {
	return mgl32.Vec3{p.target[i*3], p.target[i*3+1], p.target[i*3+2]}
}
