package scene

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/Carmen-Shannon/oxy-tree/engine/pool"
	"github.com/Carmen-Shannon/oxy-tree/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-tree/engine/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallScene(t *testing.T, options ...SceneBuilderOption) Scene {
	t.Helper()
	boxes, bows := pool.Boxes(), pool.Bows()
	boxes.Count, bows.Count = 20, 30
	opts := append([]SceneBuilderOption{
		WithSeed(3),
		WithFoliage(400, 25),
		WithCategories(boxes, bows),
		WithComputeWorkers(2),
		WithChunkSize(64),
	}, options...)
	s, err := NewScene("test", opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestNewSceneDefaults(t *testing.T) {
	s, err := NewScene("tree")
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "tree", s.Name())
	assert.True(t, s.Active())
	assert.False(t, s.Formed())
	assert.Equal(t, pool.DefaultFoliageCount, s.Foliage().Len())

	groups := s.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, 140, groups[0].Len())
	assert.Equal(t, 600, groups[1].Len())
	assert.Equal(t, 180, groups[2].Len())
	assert.Equal(t, 1, s.Topper().Len())
	assert.Len(t, s.Star(), 10)
	assert.Equal(t, sampler.DefaultConeShape(), s.Shape())
}

func TestNewSceneRejectsBadConfig(t *testing.T) {
	_, err := NewScene("bad", WithFoliage(0, 25))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	empty := pool.Bows()
	empty.Palette = nil
	_, err = NewScene("bad", WithCategories(empty))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	shape := sampler.DefaultConeShape()
	shape.BaseRadius = 0
	_, err = NewScene("bad", WithShape(shape))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestStaticFoliageBuffersAreStaged(t *testing.T) {
	s := smallScene(t)
	static := s.Static()
	require.Len(t, static, 3)
	assert.Len(t, static[0].Data, 400*12)
	assert.Len(t, static[1].Data, 400*12)
	assert.Len(t, static[2].Data, 400*4)
	assert.Equal(t, "foliage.seed", static[2].Name)
}

func TestFoliageRate(t *testing.T) {
	s := smallScene(t, WithFormed(true))
	s.Update(0.1, 0.1)
	assert.InDelta(t, 0.1*animator.DefaultFoliageRate, s.Foliage().Progress(), 1e-6)

	fast := smallScene(t, WithFormed(true), WithFoliageRate(2))
	fast.Update(0.1, 0.1)
	assert.InDelta(t, 0.2, fast.Foliage().Progress(), 1e-6)

	_, err := NewScene("bad", WithFoliageRate(0))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestFoliageStyle(t *testing.T) {
	red := pool.MustPalette("#ff0000")[0]
	style := animator.DefaultFoliageStyle()
	style.Bottom, style.Top, style.SparkleMix = red, red, 0
	style.BaseSize, style.SizeRange = 3, 0

	s := smallScene(t, WithFoliageStyle(style))
	s.Update(1, 0.1)
	pt := s.Foliage().Sample(7)
	assert.InDelta(t, 1, pt.Color.R, 1e-6)
	assert.InDelta(t, 0, pt.Color.G, 1e-6)
	assert.Equal(t, float32(3), pt.Size)
}

func TestUpdateFollowsSignal(t *testing.T) {
	s := smallScene(t)

	for i := range 300 {
		if i == 0 {
			assert.True(t, s.Toggle())
		}
		s.Update(float32(i)/60, 1.0/60)
	}
	assert.True(t, s.LastFrame().Formed)
	assert.Greater(t, s.Foliage().Progress(), float32(0.95))
	for _, g := range s.Groups() {
		for _, e := range g.Pool().Elements() {
			assert.InDelta(t, 0, e.Target.Sub(e.Current).Len(), 0.05)
		}
	}

	s.Signal().Set(false)
	s.Update(5, 1.0/60)
	assert.False(t, s.LastFrame().Formed)
	assert.Less(t, s.Foliage().Progress(), float32(1))
}

func TestTogglingNeverRebuildsPools(t *testing.T) {
	s := smallScene(t)
	before := s.Groups()[0].Pool()
	first := before.Element(0).Target

	for i := range 10 {
		s.Toggle()
		s.Update(float32(i), 0.1)
	}
	after := s.Groups()[0].Pool()
	assert.Same(t, before, after)
	assert.Equal(t, first, after.Element(0).Target)
}

func TestUpdateTreatsMissingDeltaAsZero(t *testing.T) {
	s := smallScene(t, WithFormed(true))
	s.Update(0, -1)
	assert.Equal(t, float32(0), s.LastFrame().Delta)
	assert.Equal(t, float32(0), s.Foliage().Progress())
	for _, g := range s.Groups() {
		for _, e := range g.Pool().Elements() {
			assert.Equal(t, e.Chaos, e.Current)
		}
	}
}

func TestSameSeedSameScene(t *testing.T) {
	a := smallScene(t)
	b := smallScene(t)
	assert.Equal(t, a.Foliage().Pool().TargetPositions(), b.Foliage().Pool().TargetPositions())
	assert.Equal(t, a.Groups()[1].Pool().Elements(), b.Groups()[1].Pool().Elements())
}

func TestSignalToggleIsAtomic(t *testing.T) {
	sig := NewSignal(false)
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sig.Toggle()
		}()
	}
	wg.Wait()
	assert.False(t, sig.Formed())

	shared := NewSignal(true)
	s := smallScene(t, WithSignal(shared))
	assert.True(t, s.Formed())
	shared.Set(false)
	assert.False(t, s.Formed())
}
