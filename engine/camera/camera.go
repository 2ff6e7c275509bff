package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCellAspect is the width/height ratio of one terminal character cell.
const DefaultCellAspect float32 = 0.5

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	cellAspect float32
	cols       int
	rows       int

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	controller CameraController
}

// Projection is a world point mapped onto the terminal grid.
type Projection struct {
	X, Y  int
	Depth float32 // distance along the view axis, smaller is nearer
}

// Camera holds perspective settings and computes view/projection matrices from an
// attached CameraController. It projects world points onto a grid of terminal cells,
// correcting for cells being taller than they are wide.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height) of the viewport in world units.
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Viewport returns the grid size set by the last SetViewport call.
	//
	// Returns:
	//   - cols, rows: grid size in cells
	Viewport() (cols, rows int)

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined view-projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Controller returns the attached CameraController, or nil.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// Update reads position/target from the controller and recomputes matrices.
	// Does nothing without a controller.
	Update()

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetViewport records the grid size and derives the aspect ratio from it and the cell aspect.
	//
	// Parameters:
	//   - cols: grid width in cells
	//   - rows: grid height in cells
	SetViewport(cols, rows int)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// Project maps a world point to a cell of the current viewport.
	//
	// Parameters:
	//   - p: world-space point
	//
	// Returns:
	//   - Projection: the cell and view depth
	//   - bool: false when the point is behind the camera, outside the clip range or off the grid
	Project(p mgl32.Vec3) (Projection, bool)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with a 45 degree field of view and an 80x24 viewport.
// Without a WithController option it gets a default CameraController.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		up:         mgl32.Vec3{0, 1, 0},
		fov:        mgl32.DegToRad(45),
		near:       0.1,
		far:        200.0,
		cellAspect: DefaultCellAspect,
		cols:       80,
		rows:       24,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewCameraController()
	}
	c.cellAspect = common.PositiveOr(c.cellAspect, DefaultCellAspect)
	c.near = common.PositiveOr(c.near, 0.1)
	if !(c.far > c.near) {
		c.far = c.near * 2000
	}
	if c.aspect == 0 {
		c.aspect = viewportAspect(c.cols, c.rows, c.cellAspect)
	}
	c.updateMatrices()
	return c
}

func viewportAspect(cols, rows int, cellAspect float32) float32 {
	if cols <= 0 || rows <= 0 {
		return 1
	}
	return float32(cols) * cellAspect / float32(rows)
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Viewport() (cols, rows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cols, c.rows
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetViewport(cols, rows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cols, c.rows = cols, rows
	c.aspect = viewportAspect(cols, rows, c.cellAspect)
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

func (c *cameraImpl) Project(p mgl32.Vec3) (Projection, bool) {
	c.mu.Lock()
	vp, cols, rows := c.viewProjectionMatrix, c.cols, c.rows
	c.mu.Unlock()

	clip := vp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if !(w > 0) {
		return Projection{}, false
	}
	// Negated ranges so NaN coordinates are rejected too.
	ndc := clip.Vec3().Mul(1 / w)
	if !(ndc.Z() >= -1 && ndc.Z() <= 1 && ndc.X() >= -1 && ndc.X() < 1 && ndc.Y() > -1 && ndc.Y() <= 1) {
		return Projection{}, false
	}
	x := int((ndc.X() + 1) / 2 * float32(cols))
	y := int((1 - ndc.Y()) / 2 * float32(rows))
	if x < 0 || x >= cols || y < 0 || y >= rows {
		return Projection{}, false
	}
	return Projection{X: x, Y: y, Depth: w}, true
}

// updateMatrices recalculates the view, projection and view-projection matrices from the
// controller. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}
	c.viewMatrix = mgl32.LookAtV(c.controller.Position(), c.controller.Target(), c.up)
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
