package animator

import (
	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/Carmen-Shannon/oxy-tree/engine/pool"
)

// InstanceAnimator drives a pool of rigid instances with the per-element regime.
// Each element keeps its own current position, so a toggle mid-flight reverses from where it is.
type InstanceAnimator interface {
	Animator

	// Pool returns the driven pool. Element fields other than Current, Rotation and Offset never change.
	//
	// Returns:
	//   - *pool.InstancePool: the pool
	Pool() *pool.InstancePool

	// Weight returns the group's interpolation rate in 1/s.
	//
	// Returns:
	//   - float32: the category weight
	Weight() float32

	// InstanceData returns the per-instance GPU records written by the last PrepareFrame.
	// The slice is reused every frame.
	//
	// Returns:
	//   - []GPUInstanceData: one record per element
	InstanceData() []GPUInstanceData
}

type instanceAnimatorBackend struct {
	*animator

	pool   *pool.InstancePool
	weight float32
	output []GPUInstanceData
}

var _ InstanceAnimator = &instanceAnimatorBackend{}

// NewInstanceAnimator creates an animator for a pool of ornaments or the topper.
// The motion policy defaults to the pool kind's stock policy. Panics if p is nil.
//
// Parameters:
//   - p: the pool to drive
//   - options: functional options (compute pool, chunk size, motion)
//
// Returns:
//   - InstanceAnimator: the animator, with output already populated for the initial state
func NewInstanceAnimator(p *pool.InstancePool, options ...AnimatorBuilderOption) InstanceAnimator {
	if p == nil {
		panic("animator: NewInstanceAnimator requires a non-nil pool")
	}
	b := &instanceAnimatorBackend{
		animator: newAnimator(BackendTypeInstance, options...),
		pool:     p,
		weight:   p.Category().Weight,
		output:   make([]GPUInstanceData, p.Len()),
	}
	if b.motion == nil {
		b.motion = MotionFor(p.Category().Kind)
	}
	elems := p.Elements()
	for i := range elems {
		b.output[i] = NewGPUInstanceData(&elems[i])
	}
	return b
}

func (b *instanceAnimatorBackend) Len() int {
	return b.pool.Len()
}

func (b *instanceAnimatorBackend) Pool() *pool.InstancePool {
	return b.pool
}

func (b *instanceAnimatorBackend) Weight() float32 {
	return b.weight
}

func (b *instanceAnimatorBackend) InstanceData() []GPUInstanceData {
	return b.output
}

func (b *instanceAnimatorBackend) PrepareFrame(frame Frame) {
	frame = frame.Sanitize()
	// Clamped so a long stall converges instead of overshooting.
	t := common.Clamp01(frame.Delta * b.weight)
	elems := b.pool.Elements()

	b.forEachChunk(len(elems), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			e := &elems[i]
			e.Current = common.LerpVec3(e.Current, e.Destination(frame.Formed), t)
			b.motion.Apply(e, i, frame)
			b.output[i] = NewGPUInstanceData(e)
		}
	})
}
