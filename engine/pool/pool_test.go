package pool

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/Carmen-Shannon/oxy-tree/engine/sampler"
	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstancePoolDefaults(t *testing.T) {
	shape := sampler.DefaultConeShape()
	for _, cat := range DefaultCategories() {
		p, err := NewInstancePool(cat, WithRand(sampler.NewRand(2)))
		require.NoError(t, err, cat.Name)
		require.Equal(t, cat.Count, p.Len())

		for i, e := range p.Elements() {
			assert.Equal(t, e.Chaos, e.Current, "element %d starts scattered", i)
			assert.Equal(t, e.BaseRotation, e.Rotation)
			assert.LessOrEqual(t, e.Chaos.Len(), cat.ChaosRadius*(1+1e-5))

			radial := math32.Sqrt(e.Target.X()*e.Target.X() + e.Target.Z()*e.Target.Z())
			assert.LessOrEqual(t, radial, shape.BaseRadius*(1+1e-5))
			assert.GreaterOrEqual(t, e.Target.Y(), shape.YOffset-shape.MaxDroop()-1e-5)

			for axis := range 3 {
				assert.GreaterOrEqual(t, e.BaseRotation[axis], float32(0))
				assert.Less(t, e.BaseRotation[axis], math32.Pi)
				assert.Greater(t, e.Scale[axis], float32(0))
			}
			assert.True(t, e.Color.IsValid())
		}
	}
}

func TestInstancePoolScaleRules(t *testing.T) {
	rng := sampler.NewRand(4)
	for range 1000 {
		s := BoxSize(rng)
		// base in [0.3, 0.6): width/depth in [0.15, 0.6), height in [0.15, 1.2).
		assert.GreaterOrEqual(t, s[0], float32(0.15))
		assert.Less(t, s[0], float32(0.6))
		assert.Less(t, s[1], float32(1.2))

		b := SizeRuleFor(KindBow)(rng)
		assert.Equal(t, b[0], b[1])
		assert.GreaterOrEqual(t, b[0], float32(0.2))
		assert.Less(t, b[0], float32(0.4))

		sp := SizeRuleFor(KindSphere)(rng)
		assert.GreaterOrEqual(t, sp[0], float32(0.15))
		assert.Less(t, sp[0], float32(0.4))
	}
}

func TestInstancePoolColoursStayNearPalette(t *testing.T) {
	p, err := NewInstancePool(Bows(), WithRand(sampler.NewRand(8)))
	require.NoError(t, err)

	palette := Bows().Palette
	for _, e := range p.Elements() {
		_, _, l := e.Color.Hsl()
		near := false
		for _, c := range palette {
			_, _, pl := c.Hsl()
			if l >= pl-0.05-1e-3 && l <= pl+0.05+1e-3 {
				near = true
			}
		}
		assert.True(t, near, "lightness %v strays from palette", l)
	}
}

func TestJitterLightness(t *testing.T) {
	gold := MustPalette(HexGold)[0]
	_, _, l := gold.Hsl()

	_, _, lo := JitterLightness(gold, 0).Hsl()
	_, _, hi := JitterLightness(gold, 0.999).Hsl()
	_, _, mid := JitterLightness(gold, 0.5).Hsl()

	assert.InDelta(t, l-0.05, lo, 1e-3)
	assert.InDelta(t, l+0.05, hi, 1e-3)
	assert.InDelta(t, l, mid, 1e-3)
}

func TestNewInstancePoolRejectsBadConfig(t *testing.T) {
	cases := map[string]func(*Category){
		"zero count":     func(c *Category) { c.Count = 0 },
		"negative count": func(c *Category) { c.Count = -5 },
		"zero radius":    func(c *Category) { c.ChaosRadius = 0 },
		"zero weight":    func(c *Category) { c.Weight = 0 },
		"empty palette":  func(c *Category) { c.Palette = nil },
		"nil size rule":  func(c *Category) { c.Size = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cat := Boxes()
			mutate(&cat)
			_, err := NewInstancePool(cat)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrInvalidConfig))
		})
	}

	shape := sampler.DefaultConeShape()
	shape.Layers = 0
	_, err := NewInstancePool(Boxes(), WithShape(shape))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestNewFoliagePool(t *testing.T) {
	p, err := NewFoliagePool(WithCount(500), WithRand(sampler.NewRand(3)))
	require.NoError(t, err)
	assert.Equal(t, 500, p.Len())
	assert.Len(t, p.ChaosPositions(), 1500)
	assert.Len(t, p.TargetPositions(), 1500)
	assert.Len(t, p.Seeds(), 500)

	for i := range p.Len() {
		assert.LessOrEqual(t, p.Chaos(i).Len(), DefaultFoliageChaosRadius*(1+1e-5))
		assert.GreaterOrEqual(t, p.Seeds()[i], float32(0))
		assert.Less(t, p.Seeds()[i], float32(1))
	}
	t1 := p.Target(1)
	assert.Equal(t, p.TargetPositions()[3:6], t1[:])
}

func TestNewFoliagePoolDefaults(t *testing.T) {
	p, err := NewFoliagePool()
	require.NoError(t, err)
	assert.Equal(t, DefaultFoliageCount, p.Len())
	assert.Equal(t, DefaultFoliageChaosRadius, p.ChaosRadius())
}

func TestNewFoliagePoolRejectsBadConfig(t *testing.T) {
	_, err := NewFoliagePool(WithCount(0))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	_, err = NewFoliagePool(WithChaosRadius(-1))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	shape := sampler.DefaultConeShape()
	shape.Height = 0
	_, err = NewFoliagePool(WithShape(shape))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestPoolsAreReproducible(t *testing.T) {
	a, err := NewInstancePool(Baubles(), WithRand(sampler.NewRand(77)))
	require.NoError(t, err)
	b, err := NewInstancePool(Baubles(), WithRand(sampler.NewRand(77)))
	require.NoError(t, err)
	assert.Equal(t, a.Elements(), b.Elements())
}

func TestNewTopper(t *testing.T) {
	p, err := NewTopper(DefaultTopperSpec())
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())

	e := p.Element(0)
	assert.Equal(t, KindTopper, p.Category().Kind)
	assert.Equal(t, float32(25), e.Chaos.Y())
	assert.Equal(t, float32(7), e.Target.Y())
	assert.Equal(t, e.Chaos, e.Current)
	assert.Equal(t, float32(2), p.Category().Weight)

	spec := DefaultTopperSpec()
	spec.Weight = 0
	_, err = NewTopper(spec)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestParsePaletteAndKind(t *testing.T) {
	p, err := ParsePalette("#ffffff", "#000000")
	require.NoError(t, err)
	assert.Equal(t, []colorful.Color{{R: 1, G: 1, B: 1}, {}}, p)

	_, err = ParsePalette("gold")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	k, err := ParseKind("bow")
	require.NoError(t, err)
	assert.Equal(t, KindBow, k)
	_, err = ParseKind("candle")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestElementDestination(t *testing.T) {
	e := Element{Chaos: [3]float32{1, 2, 3}, Target: [3]float32{4, 5, 6}, Current: [3]float32{1, 1, 1}, Offset: [3]float32{0, 1, 0}}
	assert.Equal(t, e.Target, e.Destination(true))
	assert.Equal(t, e.Chaos, e.Destination(false))
	assert.Equal(t, float32(2), e.Position().Y())
}
