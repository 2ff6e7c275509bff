package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// orbitState is the part of the controller that Reset restores.
type orbitState struct {
	target    mgl32.Vec3
	radius    float32
	azimuth   float32
	elevation float32
}

// cameraControllerImpl orbits a target on spherical coordinates and recomputes the
// position whenever any of them change.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position mgl32.Vec3
	target   mgl32.Vec3

	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed      float32
	zoomSpeed       float32
	autoRotateSpeed float32

	placement *mgl32.Vec3
	home      orbitState
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller. Defaults frame the tree from
// (0, 4, 25) looking at the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		minRadius:    2.0,
		maxRadius:    200.0,
		minElevation: -math32.Pi/2 + 0.1,
		maxElevation: math32.Pi/2 - 0.1,

		orbitSpeed: 0.05,
		zoomSpeed:  1.0,
	}
	WithPosition(0, 4, 25)(cc)

	for _, option := range options {
		option(cc)
	}

	if cc.placement != nil {
		cc.placeAt(*cc.placement)
		cc.placement = nil
	}
	cc.radius = clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.home = orbitState{target: cc.target, radius: cc.radius, azimuth: cc.azimuth, elevation: cc.elevation}
	cc.updatePosition()
	return cc
}

// AutoRotateRate converts an auto-rotate speed in turns per minute to radians per second.
func AutoRotateRate(speed float32) float32 {
	return speed * 2 * math32.Pi / 60
}

// placeAt derives spherical coordinates from a world position relative to the target.
// Caller must hold the mutex or be the constructor.
func (cc *cameraControllerImpl) placeAt(p mgl32.Vec3) {
	offset := p.Sub(cc.target)
	r := offset.Len()
	if r < 1e-6 {
		return
	}
	cc.radius = r
	cc.elevation = math32.Asin(offset.Y() / r)
	cc.azimuth = math32.Atan2(offset.X(), offset.Z())
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinElev, cosElev := math32.Sincos(cc.elevation)
	sinAzim, cosAzim := math32.Sincos(cc.azimuth)
	cc.position = cc.target.Add(mgl32.Vec3{
		cc.radius * cosElev * sinAzim,
		cc.radius * sinElev,
		cc.radius * cosElev * cosAzim,
	})
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wrapAngle keeps the azimuth in [-Pi, Pi] so long runs do not lose float precision.
func wrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = wrapAngle(cc.azimuth - cc.orbitSpeed)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = wrapAngle(cc.azimuth + cc.orbitSpeed)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = clamp(cc.elevation+cc.orbitSpeed, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = clamp(cc.elevation-cc.orbitSpeed, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = clamp(cc.radius-delta*cc.zoomSpeed, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = wrapAngle(azimuth)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) AutoRotateSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.autoRotateSpeed
}

func (cc *cameraControllerImpl) SetAutoRotateSpeed(speed float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.autoRotateSpeed = speed
}

func (cc *cameraControllerImpl) Advance(dt float32) {
	if !(dt > 0) || math32.IsInf(dt, 1) {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.autoRotateSpeed == 0 {
		return
	}
	cc.azimuth = wrapAngle(cc.azimuth + AutoRotateRate(cc.autoRotateSpeed)*dt)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = cc.home.target
	cc.radius = cc.home.radius
	cc.azimuth = cc.home.azimuth
	cc.elevation = cc.home.elevation
	cc.updatePosition()
}
