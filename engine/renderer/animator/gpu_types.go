package animator

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/Carmen-Shannon/oxy-tree/engine/pool"
)

// GPUInstanceData is the GPU-aligned representation of one rigid instance.
// Size: 80 bytes (mat4x4<f32> + vec4<f32>, std430 aligned).
type GPUInstanceData struct {
	Model [16]float32 // offset 0, size 64 (mat4x4<f32>)
	Color [4]float32  // offset 64, size 16 (vec4<f32>, alpha 1)
}

// NewGPUInstanceData packs an element's displayed transform and colour.
//
// Parameters:
//   - e: the element
//
// Returns:
//   - GPUInstanceData: the packed record
func NewGPUInstanceData(e *pool.Element) GPUInstanceData {
	return GPUInstanceData{
		Model: common.BuildModelMatrix(e.Position(), e.Rotation, e.Scale),
		Color: [4]float32{float32(e.Color.R), float32(e.Color.G), float32(e.Color.B), 1},
	}
}

// Size returns the size of the GPUInstanceData struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUInstanceData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstanceData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUInstanceData) Marshal() []byte {
	buf := make([]byte, 80)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[64+i*4:64+(i+1)*4], math.Float32bits(g.Color[i]))
	}
	return buf
}

// GPUFoliageUniforms is the per-frame uniform block of the foliage render stage.
// Size: 16 bytes (std140 aligned).
type GPUFoliageUniforms struct {
	Time     float32    // offset 0: elapsed seconds
	Progress float32    // offset 4: shared blend fraction
	_pad     [2]float32 // offset 8: pad to 16
}

// Size returns the size of the GPUFoliageUniforms struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUFoliageUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFoliageUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUFoliageUniforms) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Time))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Progress))
	return buf
}
