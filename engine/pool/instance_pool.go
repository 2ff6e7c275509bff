package pool

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/Carmen-Shannon/oxy-tree/engine/sampler"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// InstancePool is a fixed-size group of rigid instances sharing one Category.
type InstancePool struct {
	category Category
	elements []Element
}

// NewInstancePool samples every element of a category.
// Chaos positions come from the category's sphere, targets from the shared cone.
//
// Parameters:
//   - category: the group definition
//   - options: functional options (rand source, cone shape)
//
// Returns:
//   - *InstancePool: the constructed pool
//   - error: an error wrapping common.ErrInvalidConfig on bad parameters
func NewInstancePool(category Category, options ...PoolBuilderOption) (*InstancePool, error) {
	b := newPoolBuilder(options...)
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := b.shape.Validate(); err != nil {
		return nil, fmt.Errorf("category %q: %w", category.Name, err)
	}

	p := &InstancePool{
		category: category,
		elements: make([]Element, category.Count),
	}
	for i := range p.elements {
		e := &p.elements[i]
		e.Chaos = sampler.SphereVolume(b.rng, category.ChaosRadius)
		e.Target = sampler.LayeredCone(b.rng, b.shape)
		e.Current = e.Chaos
		e.Seed = b.rng.Float32()
		e.BaseRotation = [3]float32{
			b.rng.Float32() * math32.Pi,
			b.rng.Float32() * math32.Pi,
			b.rng.Float32() * math32.Pi,
		}
		e.Rotation = e.BaseRotation
		e.Scale = category.Size(b.rng)
		e.Color = JitterLightness(category.Palette[b.rng.IntN(len(category.Palette))], b.rng.Float32())
	}
	return p, nil
}

// JitterLightness shifts a colour's HSL lightness by (u-0.5)*LightnessJitter.
//
// Parameters:
//   - c: the palette colour
//   - u: a uniform draw in [0, 1)
//
// Returns:
//   - colorful.Color: the perturbed colour, clamped into the RGB gamut
func JitterLightness(c colorful.Color, u float32) colorful.Color {
	h, s, l := c.Hsl()
	l += (float64(u) - 0.5) * LightnessJitter
	l = min(max(l, 0), 1)
	return colorful.Hsl(h, s, l).Clamped()
}

// Category returns the group definition the pool was built from.
func (p *InstancePool) Category() Category {
	return p.category
}

// Len returns the fixed element count.
func (p *InstancePool) Len() int {
	return len(p.elements)
}

// Elements returns the backing element slice. Callers other than the animator must treat it as read-only.
func (p *InstancePool) Elements() []Element {
	return p.elements
}

// Element returns a pointer to the i-th element.
func (p *InstancePool) Element(i int) *Element {
	return &p.elements[i]
}

// TopperSpec describes the single star element crowning the tree.
type TopperSpec struct {
	Chaos  mgl32.Vec3
	Target mgl32.Vec3
	Weight float32
	Scale  float32
	Color  colorful.Color
}

// DefaultTopperSpec returns the stock gold star: high above the scene when scattered, at the tip when formed.
func DefaultTopperSpec() TopperSpec {
	return TopperSpec{
		Chaos:  mgl32.Vec3{0, 25, 0},
		Target: mgl32.Vec3{0, 7, 0},
		Weight: 2,
		Scale:  1,
		Color:  MustPalette(HexGold)[0],
	}
}

// NewTopper builds a one-element pool for the topper. Its endpoints are fixed, not sampled.
//
// Parameters:
//   - spec: topper endpoints, rate and look
//   - options: functional options (rand source for the seed)
//
// Returns:
//   - *InstancePool: a pool of length 1 with Kind KindTopper
//   - error: an error wrapping common.ErrInvalidConfig on bad parameters
func NewTopper(spec TopperSpec, options ...PoolBuilderOption) (*InstancePool, error) {
	b := newPoolBuilder(options...)
	if !(spec.Weight > 0) {
		return nil, fmt.Errorf("topper weight must be > 0, got %v: %w", spec.Weight, common.ErrInvalidConfig)
	}
	if !(spec.Scale > 0) {
		return nil, fmt.Errorf("topper scale must be > 0, got %v: %w", spec.Scale, common.ErrInvalidConfig)
	}

	p := &InstancePool{
		category: Category{
			Name:        "topper",
			Kind:        KindTopper,
			Count:       1,
			ChaosRadius: spec.Chaos.Len(),
			Weight:      spec.Weight,
			Palette:     []colorful.Color{spec.Color},
			Size:        FixedSize(spec.Scale),
		},
		elements: []Element{{
			Chaos:   spec.Chaos,
			Target:  spec.Target,
			Current: spec.Chaos,
			Seed:    b.rng.Float32(),
			Scale:   [3]float32{spec.Scale, spec.Scale, spec.Scale},
			Color:   spec.Color,
		}},
	}
	return p, nil
}
