package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns the orbit state (target, radius, azimuth, elevation) and derives
// the camera position from it. The Camera reads position and target from the controller
// when it recomputes its matrices.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target mgl32.Vec3)

	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// Zoom adjusts the orbit radius. Positive delta zooms in.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// Radius returns the current distance from the target.
	//
	// Returns:
	//   - float32: current orbit radius
	Radius() float32

	// SetRadius sets the orbit radius, clamped to the radius bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis. Zero looks down -Z from +Z.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle and recomputes position.
	//
	// Parameters:
	//   - azimuth: new horizontal angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to the elevation bounds.
	//
	// Parameters:
	//   - elevation: new vertical angle in radians
	SetElevation(elevation float32)

	// AutoRotateSpeed returns the auto-rotate speed. A speed of 1 is one turn per minute.
	//
	// Returns:
	//   - float32: the auto-rotate speed
	AutoRotateSpeed() float32

	// SetAutoRotateSpeed changes the auto-rotate speed. Zero disables auto-rotation.
	//
	// Parameters:
	//   - speed: turns per minute
	SetAutoRotateSpeed(speed float32)

	// Advance turns the camera around the target by the auto-rotate rate over dt seconds.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous call
	Advance(dt float32)

	// Reset restores the orbit state the controller was built with.
	Reset()
}
