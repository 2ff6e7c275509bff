package animator

import (
	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/Carmen-Shannon/oxy-tree/engine/pool"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// FoliageAnimator drives the point-particle group with one shared progress scalar.
// The pool's buffers are static; Uniforms carries everything that changes per frame.
type FoliageAnimator interface {
	Animator

	// Pool returns the driven pool.
	//
	// Returns:
	//   - *pool.FoliagePool: the pool
	Pool() *pool.FoliagePool

	// Progress returns the shared blend fraction in [0, 1].
	//
	// Returns:
	//   - float32: 0 is fully scattered, 1 is fully formed
	Progress() float32

	// Uniforms returns the per-frame GPU uniform block.
	//
	// Returns:
	//   - GPUFoliageUniforms: time and progress for the render stage
	Uniforms() GPUFoliageUniforms

	// Sample evaluates the render-stage blend for one point on the CPU.
	//
	// Parameters:
	//   - i: the point index
	//
	// Returns:
	//   - FoliagePoint: the point's position, size and colour this frame
	Sample(i int) FoliagePoint

	// Resolve evaluates Sample for every point into dst, split across the compute pool.
	// dst must hold at least Len() entries.
	//
	// Parameters:
	//   - dst: the destination buffer
	Resolve(dst []FoliagePoint)
}

// FoliageStyle holds the colour and point-size rules of the needles.
type FoliageStyle struct {
	Bottom  colorful.Color
	Top     colorful.Color
	Sparkle colorful.Color
	// GradientHeight is the Y over which Bottom fades to Top.
	GradientHeight float32
	SparkleMix     float32
	BaseSize       float32
	SizeRange      float32
	// BreatheThreshold is the progress above which the outward breathing starts.
	BreatheThreshold float32
	BreatheAmplitude float32
}

// DefaultFoliageStyle returns dark-to-light emerald needles with gold sparkles.
func DefaultFoliageStyle() FoliageStyle {
	palette := pool.MustPalette(pool.HexEmeraldDeep, pool.HexEmeraldLight, pool.HexGold)
	return FoliageStyle{
		Bottom:           palette[0],
		Top:              palette[1],
		Sparkle:          palette[2],
		GradientHeight:   10,
		SparkleMix:       0.8,
		BaseSize:         5,
		SizeRange:        15,
		BreatheThreshold: 0.8,
		BreatheAmplitude: 0.1,
	}
}

// FoliagePoint is the CPU-side evaluation of one needle for one frame.
type FoliagePoint struct {
	Position mgl32.Vec3
	Size     float32
	Color    colorful.Color
}

type foliageAnimatorBackend struct {
	*animator

	pool     *pool.FoliagePool
	progress float32
	elapsed  float32
}

var _ FoliageAnimator = &foliageAnimatorBackend{}

// NewFoliageAnimator creates the shared-progress animator. Progress starts at 0. Panics if p is nil.
//
// Parameters:
//   - p: the pool to drive
//   - options: functional options (compute pool, chunk size, rate, style)
//
// Returns:
//   - FoliageAnimator: the animator
func NewFoliageAnimator(p *pool.FoliagePool, options ...AnimatorBuilderOption) FoliageAnimator {
	if p == nil {
		panic("animator: NewFoliageAnimator requires a non-nil pool")
	}
	return &foliageAnimatorBackend{
		animator: newAnimator(BackendTypeFoliage, options...),
		pool:     p,
	}
}

func (b *foliageAnimatorBackend) Len() int {
	return b.pool.Len()
}

func (b *foliageAnimatorBackend) Pool() *pool.FoliagePool {
	return b.pool
}

func (b *foliageAnimatorBackend) Progress() float32 {
	return b.progress
}

func (b *foliageAnimatorBackend) PrepareFrame(frame Frame) {
	frame = frame.Sanitize()
	var goal float32
	if frame.Formed {
		goal = 1
	}
	b.progress = common.Lerp(b.progress, goal, common.Clamp01(frame.Delta*b.rate))
	b.elapsed = frame.Elapsed
}

func (b *foliageAnimatorBackend) Uniforms() GPUFoliageUniforms {
	return GPUFoliageUniforms{Time: b.elapsed, Progress: b.progress}
}

func (b *foliageAnimatorBackend) Sample(i int) FoliagePoint {
	seed := b.pool.Seeds()[i]
	pos := common.LerpVec3(b.pool.Chaos(i), b.pool.Target(i), common.EaseInOutCubic(b.progress))

	if b.progress > b.style.BreatheThreshold {
		if l := pos.Len(); l > 0 {
			breathe := math32.Sin(b.elapsed*2+seed*10) * b.style.BreatheAmplitude
			pos = pos.Add(pos.Mul(breathe / l))
		}
	}

	c := b.style.Bottom.BlendRgb(b.style.Top, float64(common.Clamp01(pos.Y()/b.style.GradientHeight)))
	sparkle := common.SmoothStep(0.8, 1, math32.Sin(b.elapsed*3+seed*20))
	c = c.BlendRgb(b.style.Sparkle, float64(sparkle*b.style.SparkleMix))

	return FoliagePoint{
		Position: pos,
		Size:     b.style.SizeRange*seed + b.style.BaseSize,
		Color:    c,
	}
}

func (b *foliageAnimatorBackend) Resolve(dst []FoliagePoint) {
	b.forEachChunk(b.pool.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = b.Sample(i)
		}
	})
}
