package animator

import (
	"github.com/Carmen-Shannon/oxy-tree/engine/pool"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MotionPolicy applies secondary motion to an element after its position has been blended.
// Implementations write only Rotation and Offset.
type MotionPolicy interface {
	// Apply updates one element for the current frame.
	//
	// Parameters:
	//   - e: the element to update
	//   - index: the element's index in its pool, used as a phase offset
	//   - frame: the sanitized frame input
	Apply(e *pool.Element, index int, frame Frame)
}

// OrnamentMotion bobs and wobbles settled ornaments and tumbles scattered ones.
type OrnamentMotion struct {
	BobAmplitude    float32
	BobFrequency    float32
	BobPhaseStep    float32
	WobbleAmplitude float32
	WobbleFrequency float32
	SpinRate        float32
	TumbleRate      float32
}

// DefaultOrnamentMotion returns the stock ornament motion constants.
func DefaultOrnamentMotion() OrnamentMotion {
	return OrnamentMotion{
		BobAmplitude:    0.002,
		BobFrequency:    2,
		BobPhaseStep:    0.1,
		WobbleAmplitude: 0.1,
		WobbleFrequency: 0.5,
		SpinRate:        0.1,
		TumbleRate:      1,
	}
}

func (m OrnamentMotion) Apply(e *pool.Element, index int, frame Frame) {
	if !frame.Formed {
		// Scattered ornaments accumulate rotation freely.
		e.Offset = mgl32.Vec3{}
		e.Rotation[0] += frame.Delta * m.TumbleRate
		e.Rotation[1] += frame.Delta * m.TumbleRate
		return
	}

	i := float32(index)
	e.Offset = mgl32.Vec3{0, math32.Sin(frame.Elapsed*m.BobFrequency+i*m.BobPhaseStep) * m.BobAmplitude, 0}
	e.Rotation = [3]float32{
		e.BaseRotation[0] + math32.Sin(frame.Elapsed*m.WobbleFrequency+i)*m.WobbleAmplitude,
		e.BaseRotation[1] + frame.Elapsed*m.SpinRate,
		e.BaseRotation[2],
	}
}

// TopperMotion spins the settled star about Y, tumbles it on X and Z when scattered,
// and floats it gently up and down in both states.
type TopperMotion struct {
	SpinRate       float32
	TumbleRate     float32
	FloatSpeed     float32
	FloatIntensity float32
}

// DefaultTopperMotion returns the stock topper motion constants.
func DefaultTopperMotion() TopperMotion {
	return TopperMotion{
		SpinRate:       0.5,
		TumbleRate:     1,
		FloatSpeed:     2,
		FloatIntensity: 0.2,
	}
}

func (m TopperMotion) Apply(e *pool.Element, _ int, frame Frame) {
	if frame.Formed {
		e.Rotation[1] += frame.Delta * m.SpinRate
	} else {
		e.Rotation[0] += frame.Delta * m.TumbleRate
		e.Rotation[2] += frame.Delta * m.TumbleRate
	}
	e.Offset = mgl32.Vec3{0, math32.Sin(frame.Elapsed*m.FloatSpeed/4) / 10 * m.FloatIntensity, 0}
}

// MotionFor returns the stock motion policy for an element kind.
//
// Parameters:
//   - k: the element kind
//
// Returns:
//   - MotionPolicy: TopperMotion for the topper, OrnamentMotion otherwise
func MotionFor(k pool.Kind) MotionPolicy {
	if k == pool.KindTopper {
		return DefaultTopperMotion()
	}
	return DefaultOrnamentMotion()
}
