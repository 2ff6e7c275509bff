package pool

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Element is one rigid instance (ornament or topper).
// Chaos, Target, Seed, BaseRotation, Scale and Color are fixed at construction.
// The animator writes only Current, Rotation and Offset.
type Element struct {
	Chaos  mgl32.Vec3
	Target mgl32.Vec3

	// Current starts at Chaos and relaxes toward whichever endpoint is active.
	Current mgl32.Vec3
	// Offset is display-only secondary motion (bob, float) added on output.
	Offset mgl32.Vec3

	Seed float32

	BaseRotation [3]float32
	Rotation     [3]float32
	Scale        [3]float32

	Color colorful.Color
}

// Position returns the displayed position, Current plus the secondary-motion Offset.
//
// Returns:
//   - mgl32.Vec3: the world position to draw at
func (e *Element) Position() mgl32.Vec3 {
	return e.Current.Add(e.Offset)
}

// Destination returns the endpoint the element relaxes toward for the given state.
//
// Parameters:
//   - formed: true for the tree shape, false for the scattered state
//
// Returns:
//   - mgl32.Vec3: Target when formed, Chaos otherwise
func (e *Element) Destination(formed bool) mgl32.Vec3 {
	if formed {
		return e.Target
	}
	return e.Chaos
}
