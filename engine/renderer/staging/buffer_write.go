package staging

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/Carmen-Shannon/oxy-tree/engine/renderer/animator"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrLayoutMismatch is returned when a staged buffer does not hold exactly one
// layout stride per element.
var ErrLayoutMismatch = errors.New("staged buffer does not match its vertex layout")

// BufferWrite is one pending upload: a named buffer, the slot it binds to, and its bytes.
type BufferWrite struct {
	Name    string
	Binding int
	Offset  uint64
	Data    []byte
}

// FoliageStatic stages the three static foliage vertex buffers and checks each one
// against its FoliageVertexLayouts entry.
// The byte slices alias the pool's buffers; upload them once at setup.
//
// Parameters:
//   - f: the foliage animator whose pool is staged
//
// Returns:
//   - []BufferWrite: chaos, target and seed buffers in vertex-slot order
//   - error: ErrLayoutMismatch if a buffer is not stride × point count bytes long
func FoliageStatic(f animator.FoliageAnimator) ([]BufferWrite, error) {
	p := f.Pool()
	writes := []BufferWrite{
		{Name: "foliage.chaos", Binding: 0, Data: common.SliceToBytes(p.ChaosPositions())},
		{Name: "foliage.target", Binding: 1, Data: common.SliceToBytes(p.TargetPositions())},
		{Name: "foliage.seed", Binding: 2, Data: common.SliceToBytes(p.Seeds())},
	}
	for i, layout := range FoliageVertexLayouts() {
		if err := checkStride(writes[i], layout, f.Len()); err != nil {
			return nil, err
		}
	}
	return writes, nil
}

// Frame stages everything that changes per frame: the foliage uniform block and
// one instance buffer per rigid-instance animator, bound after the foliage slots.
// Every instance buffer is checked against InstanceVertexLayout.
//
// Parameters:
//   - f: the foliage animator (may be nil)
//   - groups: instance animators in draw order
//
// Returns:
//   - []BufferWrite: the per-frame uploads
//   - error: ErrLayoutMismatch if an instance buffer is not stride × instance count bytes long
func Frame(f animator.FoliageAnimator, groups ...animator.InstanceAnimator) ([]BufferWrite, error) {
	writes := make([]BufferWrite, 0, len(groups)+1)
	if f != nil {
		u := f.Uniforms()
		writes = append(writes, BufferWrite{Name: "foliage.uniforms", Binding: 0, Data: u.Marshal()})
	}
	layout := InstanceVertexLayout()
	for i, g := range groups {
		w := BufferWrite{
			Name:    g.Pool().Category().Name,
			Binding: i + 1,
			Data:    common.SliceToBytes(g.InstanceData()),
		}
		if err := checkStride(w, layout, g.Len()); err != nil {
			return nil, err
		}
		writes = append(writes, w)
	}
	return writes, nil
}

// checkStride verifies that w holds exactly count elements of the layout's stride.
func checkStride(w BufferWrite, layout wgpu.VertexBufferLayout, count int) error {
	want := layout.ArrayStride * uint64(count)
	if uint64(len(w.Data)) != want {
		return fmt.Errorf("%s: %d bytes, want %d (%d x %d): %w",
			w.Name, len(w.Data), want, count, layout.ArrayStride, ErrLayoutMismatch)
	}
	return nil
}

// TotalBytes sums the payload sizes of a set of writes.
//
// Parameters:
//   - writes: the staged writes
//
// Returns:
//   - int: total bytes
func TotalBytes(writes []BufferWrite) int {
	n := 0
	for _, w := range writes {
		n += len(w.Data)
	}
	return n
}
