package sampler

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SphereVolume returns a point uniformly distributed by volume inside a sphere
// of the given radius centred on the origin.
// The cube root on the radial draw keeps density uniform instead of clustering at the centre.
//
// Parameters:
//   - rng: the randomness source
//   - radius: sphere radius
//
// Returns:
//   - mgl32.Vec3: the sampled point
func SphereVolume(rng Rand, radius float32) mgl32.Vec3 {
	theta := rng.Float32() * 2 * math32.Pi
	phi := math32.Acos(2*rng.Float32() - 1)
	r := math32.Cbrt(rng.Float32()) * radius

	sinPhi, cosPhi := math32.Sincos(phi)
	sinTheta, cosTheta := math32.Sincos(theta)
	return mgl32.Vec3{
		r * sinPhi * cosTheta,
		r * sinPhi * sinTheta,
		r * cosPhi,
	}
}
