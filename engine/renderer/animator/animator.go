package animator

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/chewxy/math32"
)

// Frame is the per-frame input shared by every animator.
type Frame struct {
	// Elapsed is monotonic seconds since the scene started.
	Elapsed float32
	// Delta is seconds since the previous frame. It varies; no fixed timestep is assumed.
	Delta float32
	// Formed is the toggle sampled at the start of the frame.
	Formed bool
}

// Sanitize replaces missing, negative or non-finite clock values with zero.
//
// Returns:
//   - Frame: a frame safe to animate with
func (f Frame) Sanitize() Frame {
	if !finiteNonNegative(f.Elapsed) {
		f.Elapsed = 0
	}
	if !finiteNonNegative(f.Delta) {
		f.Delta = 0
	}
	return f
}

func finiteNonNegative(v float32) bool {
	return v >= 0 && !math32.IsInf(v, 1)
}

// Animator is the part shared by both animation regimes.
//
// PrepareFrame is the only mutating call. It must not run concurrently with itself or with readers
// of the animator's output; the scene's frame boundary provides that ordering.
type Animator interface {
	// BackendType returns which interpolation regime the animator runs.
	//
	// Returns:
	//   - AnimatorBackendType: BackendTypeInstance or BackendTypeFoliage
	BackendType() AnimatorBackendType

	// Len returns the number of elements driven by the animator.
	//
	// Returns:
	//   - int: the fixed element count
	Len() int

	// PrepareFrame advances the animation by one frame and refreshes the output buffers.
	//
	// Parameters:
	//   - frame: elapsed time, delta and toggle state for this frame
	PrepareFrame(frame Frame)
}

// animator holds configuration shared by both backends.
type animator struct {
	backendType AnimatorBackendType

	// computePool fans element chunks out to persistent workers. Nil means serial.
	computePool worker.DynamicWorkerPool
	chunkSize   int

	motion MotionPolicy
	rate   float32
	style  FoliageStyle
}

const (
	// DefaultChunkSize is the number of elements per worker task.
	DefaultChunkSize = 2048
	// DefaultFoliageRate is the relaxation rate of the shared progress, in 1/s.
	DefaultFoliageRate float32 = 0.8
)

func newAnimator(backendType AnimatorBackendType, options ...AnimatorBuilderOption) *animator {
	a := &animator{
		backendType: backendType,
		chunkSize:   DefaultChunkSize,
		rate:        DefaultFoliageRate,
		style:       DefaultFoliageStyle(),
	}
	for _, opt := range options {
		opt(a)
	}
	if a.chunkSize < 1 {
		a.chunkSize = DefaultChunkSize
	}
	return a
}

func (a *animator) BackendType() AnimatorBackendType {
	return a.backendType
}

// forEachChunk calls fn over [0, n) split into chunkSize ranges.
// Ranges run on the compute pool when one is set and there is more than one chunk; every
// index is visited by exactly one call. Returns after all calls have finished.
func (a *animator) forEachChunk(n int, fn func(lo, hi int)) {
	if a.computePool == nil || n <= a.chunkSize {
		fn(0, n)
		return
	}

	// A WaitGroup provides the per-frame barrier; pool.Wait() does not track in-flight tasks.
	var wg sync.WaitGroup
	id := 0
	for lo := 0; lo < n; lo += a.chunkSize {
		hi := min(lo+a.chunkSize, n)
		wg.Add(1)
		loCap, hiCap := lo, hi
		a.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				fn(loCap, hiCap)
				return nil, nil
			},
		})
		id++
	}
	wg.Wait()
}
