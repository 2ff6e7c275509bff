package staging

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-tree/engine/renderer/animator"
	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex shader locations of the foliage and instance inputs.
const (
	LocationChaosPos    = 0
	LocationTargetPos   = 1
	LocationRandom      = 2
	LocationModelColumn = 3 // occupies 3..6, one vec4 per matrix column
	LocationColor       = 7
)

// FoliageVertexLayouts returns one vertex buffer layout per static foliage buffer,
// in slot order: chaos positions, target positions, seeds.
//
// Returns:
//   - []wgpu.VertexBufferLayout: the three per-vertex layouts
func FoliageVertexLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: 12,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: LocationChaosPos},
			},
		},
		{
			ArrayStride: 12,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: LocationTargetPos},
			},
		},
		{
			ArrayStride: 4,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32, Offset: 0, ShaderLocation: LocationRandom},
			},
		},
	}
}

// InstanceVertexLayout returns the per-instance layout matching animator.GPUInstanceData.
//
// Returns:
//   - wgpu.VertexBufferLayout: model matrix columns then colour, stepped per instance
func InstanceVertexLayout() wgpu.VertexBufferLayout {
	stride := uint64(unsafe.Sizeof(animator.GPUInstanceData{}))
	attrs := make([]wgpu.VertexAttribute, 0, 5)
	for col := range 4 {
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(col * 16),
			ShaderLocation: uint32(LocationModelColumn + col),
		})
	}
	attrs = append(attrs, wgpu.VertexAttribute{
		Format:         wgpu.VertexFormatFloat32x4,
		Offset:         64,
		ShaderLocation: LocationColor,
	})
	return wgpu.VertexBufferLayout{
		ArrayStride: stride,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes:  attrs,
	}
}
