package sampler

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereVolumeStaysInsideRadius(t *testing.T) {
	rng := NewRand(1)
	for _, radius := range []float32{0.5, 1, 25, 30} {
		for range 10000 {
			p := SphereVolume(rng, radius)
			assert.LessOrEqual(t, p.Len(), radius*(1+1e-5))
		}
	}
}

func TestSphereVolumeIsUniformByVolume(t *testing.T) {
	const (
		samples = 10000
		bins    = 10
		radius  = 25
	)
	rng := NewRand(7)
	var hist [bins]int
	for range samples {
		n := SphereVolume(rng, radius).Len() / radius
		// (r/R)^3 is uniform on [0,1) when density is uniform by volume.
		idx := int(n * n * n * bins)
		if idx >= bins {
			idx = bins - 1
		}
		hist[idx]++
	}
	expected := float64(samples) / bins
	for i, c := range hist {
		assert.InDelta(t, expected, float64(c), expected*0.15, "bin %d", i)
	}
}

func TestLayeredConeBounds(t *testing.T) {
	shapes := []ConeShape{
		DefaultConeShape(),
		{Height: 1, BaseRadius: 3, Layers: 1, GapRatio: 0.3, DroopFactor: 0.3},
		{Height: 40, BaseRadius: 0.5, Layers: 25, YOffset: 2, GapRatio: 0, DroopFactor: 1},
	}
	rng := NewRand(3)
	for _, shape := range shapes {
		require.NoError(t, shape.Validate())
		for range 5000 {
			p := LayeredCone(rng, shape)
			radial := math32.Sqrt(p.X()*p.X() + p.Z()*p.Z())
			assert.GreaterOrEqual(t, radial, float32(0))
			assert.LessOrEqual(t, radial, shape.BaseRadius*(1+1e-5))

			y := p.Y() - shape.YOffset
			assert.GreaterOrEqual(t, y, -shape.MaxDroop()-1e-5)
			assert.LessOrEqual(t, y, shape.Height)
		}
	}
}

func TestLayeredConeDefaultShapeYRange(t *testing.T) {
	rng := NewRand(42)
	shape := DefaultConeShape()
	for range 1000 {
		y := LayeredCone(rng, shape).Y()
		assert.GreaterOrEqual(t, y, float32(-6.5-0.3)-1e-5)
		assert.LessOrEqual(t, y, float32(-6.5+13))
	}
}

func TestLayeredConeLeavesLayerGaps(t *testing.T) {
	// Without droop every sample must sit in the branch band of its layer.
	shape := ConeShape{Height: 9, BaseRadius: 3, Layers: 3, GapRatio: 0.5}
	rng := NewRand(11)
	for range 3000 {
		y := LayeredCone(rng, shape).Y()
		local := y - float32(int(y/3))*3
		assert.LessOrEqual(t, local, float32(1.5)+1e-4)
	}
}

func TestSamplingIsReproducibleWithSeed(t *testing.T) {
	a, b := NewRand(99), NewRand(99)
	for range 100 {
		assert.Equal(t, SphereVolume(a, 25), SphereVolume(b, 25))
		assert.Equal(t, LayeredCone(a, DefaultConeShape()), LayeredCone(b, DefaultConeShape()))
	}
}

func TestConeShapeValidate(t *testing.T) {
	base := DefaultConeShape()
	cases := map[string]func(*ConeShape){
		"zero layers":     func(c *ConeShape) { c.Layers = 0 },
		"zero height":     func(c *ConeShape) { c.Height = 0 },
		"negative radius": func(c *ConeShape) { c.BaseRadius = -1 },
		"nan height":      func(c *ConeShape) { c.Height = math32.NaN() },
		"gap of one":      func(c *ConeShape) { c.GapRatio = 1 },
		"negative droop":  func(c *ConeShape) { c.DroopFactor = -0.1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			shape := base
			mutate(&shape)
			err := shape.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrInvalidConfig))
		})
	}
	assert.NoError(t, base.Validate())
}

func TestStarOutline(t *testing.T) {
	outline := StarOutline(5, 1.2, 0.5)
	require.Len(t, outline, 10)

	assert.InDelta(t, 0, outline[0].X(), 1e-6)
	assert.InDelta(t, 1.2, outline[0].Y(), 1e-6)
	for i, v := range outline {
		want := float32(1.2)
		if i%2 == 1 {
			want = 0.5
		}
		assert.InDelta(t, want, v.Len(), 1e-5, "vertex %d", i)
	}
	assert.Nil(t, StarOutline(1, 1, 0.5))
}
