package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Lerp linearly interpolates between a and b by t. t is not clamped.
//
// Parameters:
//   - a: start value
//   - b: end value
//   - t: interpolation factor
//
// Returns:
//   - float32: a + (b-a)*t
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec3 linearly interpolates each component of a toward b by t.
//
// Parameters:
//   - a: start point
//   - b: end point
//   - t: interpolation factor
//
// Returns:
//   - mgl32.Vec3: the interpolated point
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// Clamp01 clamps x into [0, 1]. NaN maps to 0.
//
// Parameters:
//   - x: the value to clamp
//
// Returns:
//   - float32: the clamped value
func Clamp01(x float32) float32 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// EaseInOutCubic maps a linear fraction in [0, 1] onto a cubic ease-in/ease-out curve.
//
// Parameters:
//   - x: linear fraction
//
// Returns:
//   - float32: eased fraction
func EaseInOutCubic(x float32) float32 {
	if x < 0.5 {
		return 4 * x * x * x
	}
	return 1 - math32.Pow(-2*x+2, 3)/2
}

// SmoothStep is the Hermite step between edge0 and edge1, matching the WGSL/GLSL builtin.
//
// Parameters:
//   - edge0: lower edge
//   - edge1: upper edge
//   - x: input value
//
// Returns:
//   - float32: 0 below edge0, 1 above edge1, smooth in between
func SmoothStep(edge0, edge1, x float32) float32 {
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is X * Y * Z, so Z is applied to the mesh first. All matrices are column-major.
//
// Parameters:
//   - pos: translation in world space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - [16]float32: the column-major model matrix
func BuildModelMatrix(pos mgl32.Vec3, rot, scale [3]float32) [16]float32 {
	m := mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl32.HomogRotate3DX(rot[0])).
		Mul4(mgl32.HomogRotate3DY(rot[1])).
		Mul4(mgl32.HomogRotate3DZ(rot[2])).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
	return [16]float32(m)
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}
