package sampler

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// StarOutline returns the closed outline of a star polygon in the XY plane, starting at the top.
// Vertices alternate between the outer and inner radius every π/points radians.
//
// Parameters:
//   - points: number of star tips
//   - outer: tip radius
//   - inner: notch radius
//
// Returns:
//   - []mgl32.Vec2: 2*points vertices, or nil if points < 2
func StarOutline(points int, outer, inner float32) []mgl32.Vec2 {
	if points < 2 {
		return nil
	}
	out := make([]mgl32.Vec2, 0, points*2)
	for i := range points * 2 {
		angle := float32(i) * math32.Pi / float32(points)
		r := outer
		if i%2 == 1 {
			r = inner
		}
		sin, cos := math32.Sincos(angle)
		out = append(out, mgl32.Vec2{sin * r, cos * r})
	}
	return out
}
