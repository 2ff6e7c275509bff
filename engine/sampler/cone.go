package sampler

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultGapRatio is the fraction of each layer left empty above its branches.
	DefaultGapRatio float32 = 0.3
	// DefaultDroopFactor is the Y drop applied at the outer edge of the base radius.
	DefaultDroopFactor float32 = 0.3
)

// ConeShape describes the layered tree silhouette shared by every element group.
type ConeShape struct {
	Height      float32
	BaseRadius  float32
	Layers      int
	YOffset     float32
	GapRatio    float32
	DroopFactor float32
}

// DefaultConeShape returns the tree silhouette used by the stock scene.
//
// Returns:
//   - ConeShape: height 13, base radius 4.5, 9 layers, offset -6.5
func DefaultConeShape() ConeShape {
	return ConeShape{
		Height:      13,
		BaseRadius:  4.5,
		Layers:      9,
		YOffset:     -6.5,
		GapRatio:    DefaultGapRatio,
		DroopFactor: DefaultDroopFactor,
	}
}

// Validate reports whether the shape can be sampled.
// Invalid shapes are rejected, never clamped.
//
// Returns:
//   - error: an error wrapping common.ErrInvalidConfig, or nil
func (c ConeShape) Validate() error {
	switch {
	case c.Layers < 1:
		return fmt.Errorf("cone layers must be >= 1, got %d: %w", c.Layers, common.ErrInvalidConfig)
	case !(c.Height > 0):
		return fmt.Errorf("cone height must be > 0, got %v: %w", c.Height, common.ErrInvalidConfig)
	case !(c.BaseRadius > 0):
		return fmt.Errorf("cone base radius must be > 0, got %v: %w", c.BaseRadius, common.ErrInvalidConfig)
	case c.GapRatio < 0 || c.GapRatio >= 1:
		return fmt.Errorf("cone gap ratio must be in [0, 1), got %v: %w", c.GapRatio, common.ErrInvalidConfig)
	case c.DroopFactor < 0:
		return fmt.Errorf("cone droop factor must be >= 0, got %v: %w", c.DroopFactor, common.ErrInvalidConfig)
	}
	return nil
}

// MaxDroop returns the largest downward displacement a branch point can receive.
//
// Returns:
//   - float32: the droop at r == BaseRadius
func (c ConeShape) MaxDroop() float32 {
	return c.DroopFactor
}

// LayeredCone returns a point on a layered pine silhouette.
// A layer is picked uniformly and Y is drawn from the branch band at the bottom of it.
// The radius tapers with absolute height, so upper layers are narrower whatever their index.
// Points further from the trunk droop lower. The shape must have passed Validate.
//
// Parameters:
//   - rng: the randomness source
//   - shape: the silhouette parameters
//
// Returns:
//   - mgl32.Vec3: the sampled point, with YOffset applied
func LayeredCone(rng Rand, shape ConeShape) mgl32.Vec3 {
	layer := rng.IntN(shape.Layers)
	layerHeight := shape.Height / float32(shape.Layers)
	branch := layerHeight * (1 - shape.GapRatio)

	y := float32(layer)*layerHeight + rng.Float32()*branch

	maxR := shape.BaseRadius * (1 - y/shape.Height)
	r := math32.Sqrt(rng.Float32()) * maxR

	y -= (r / shape.BaseRadius) * shape.DroopFactor

	sin, cos := math32.Sincos(rng.Float32() * 2 * math32.Pi)
	return mgl32.Vec3{r * cos, y + shape.YOffset, r * sin}
}
