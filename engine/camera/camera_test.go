package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultControllerFramesTree(t *testing.T) {
	cc := NewCameraController()
	pos := cc.Position()
	assert.InDelta(t, 0, pos.X(), 1e-4)
	assert.InDelta(t, 4, pos.Y(), 1e-4)
	assert.InDelta(t, 25, pos.Z(), 1e-4)
	assert.InDelta(t, math32.Sqrt(4*4+25*25), cc.Radius(), 1e-4)
	assert.Equal(t, mgl32.Vec3{}, cc.Target())
}

func TestWithPositionIsOrderIndependent(t *testing.T) {
	a := NewCameraController(WithPosition(3, 5, 10), WithTarget(0, 2, 0))
	b := NewCameraController(WithTarget(0, 2, 0), WithPosition(3, 5, 10))
	assert.True(t, a.Position().ApproxEqualThreshold(mgl32.Vec3{3, 5, 10}, 1e-4))
	assert.True(t, b.Position().ApproxEqualThreshold(mgl32.Vec3{3, 5, 10}, 1e-4))
}

func TestAdvanceAutoRotates(t *testing.T) {
	cc := NewCameraController(WithAutoRotateSpeed(0.5))
	start := cc.Azimuth()

	cc.Advance(2)
	assert.InDelta(t, start+AutoRotateRate(0.5)*2, cc.Azimuth(), 1e-5)
	assert.InDelta(t, math32.Pi/60, AutoRotateRate(0.5), 1e-7)

	// Radius and height are untouched by rotation.
	assert.InDelta(t, 4, cc.Position().Y(), 1e-4)
	assert.InDelta(t, math32.Sqrt(4*4+25*25), cc.Position().Len(), 1e-3)

	before := cc.Azimuth()
	cc.Advance(math32.NaN())
	cc.Advance(-1)
	cc.Advance(math32.Inf(1))
	assert.Equal(t, before, cc.Azimuth())
}

func TestAdvanceWithoutSpeedIsStill(t *testing.T) {
	cc := NewCameraController()
	cc.Advance(10)
	assert.Equal(t, float32(0), cc.Azimuth())
}

func TestAzimuthWraps(t *testing.T) {
	cc := NewCameraController(WithAutoRotateSpeed(60))
	for i := 0; i < 100; i++ {
		cc.Advance(0.37)
	}
	assert.LessOrEqual(t, cc.Azimuth(), math32.Pi)
	assert.GreaterOrEqual(t, cc.Azimuth(), -math32.Pi)
}

func TestControllerBoundsAndReset(t *testing.T) {
	cc := NewCameraController(WithRadiusBounds(10, 30), WithElevationBounds(-0.5, 0.5), WithOrbitSpeed(0.25))

	cc.SetElevation(3)
	assert.Equal(t, float32(0.5), cc.Elevation())
	cc.OrbitDown()
	assert.Equal(t, float32(0.25), cc.Elevation())

	cc.Zoom(100)
	assert.Equal(t, float32(10), cc.Radius())
	cc.SetRadius(1000)
	assert.Equal(t, float32(30), cc.Radius())

	cc.OrbitLeft()
	cc.OrbitLeft()
	assert.InDelta(t, -0.5, cc.Azimuth(), 1e-6)

	cc.Reset()
	assert.True(t, cc.Position().ApproxEqualThreshold(mgl32.Vec3{0, 4, 25}, 1e-4))
}

func TestProjectCentersTarget(t *testing.T) {
	cam := NewCamera(WithViewport(80, 24))
	p, ok := cam.Project(mgl32.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 40, p.X, 1)
	assert.InDelta(t, 12, p.Y, 1)
	assert.InDelta(t, math32.Sqrt(4*4+25*25), p.Depth, 1e-3)
}

func TestProjectRejectsHiddenPoints(t *testing.T) {
	cam := NewCamera(WithViewport(80, 24))

	_, ok := cam.Project(mgl32.Vec3{0, 4, 40})
	assert.False(t, ok, "behind the camera")

	_, ok = cam.Project(mgl32.Vec3{500, 0, 0})
	assert.False(t, ok, "off the side of the grid")

	_, ok = cam.Project(mgl32.Vec3{0, 0, -1000})
	assert.False(t, ok, "past the far plane")
}

func TestProjectCorrectsCellAspect(t *testing.T) {
	ctrl := NewCameraController(WithPosition(0, 0, 25))
	cam := NewCamera(WithController(ctrl), WithViewport(200, 100))

	center, ok := cam.Project(mgl32.Vec3{})
	require.True(t, ok)
	right, ok := cam.Project(mgl32.Vec3{3, 0, 0})
	require.True(t, ok)
	up, ok := cam.Project(mgl32.Vec3{0, 3, 0})
	require.True(t, ok)

	dx := right.X - center.X
	dy := center.Y - up.Y
	assert.Greater(t, dy, 0)
	assert.InDelta(t, 2*dy, dx, 3)
}

func TestNearerPointsHaveSmallerDepth(t *testing.T) {
	cam := NewCamera()
	near, ok := cam.Project(mgl32.Vec3{0, 0, 5})
	require.True(t, ok)
	far, ok := cam.Project(mgl32.Vec3{0, 0, -5})
	require.True(t, ok)
	assert.Less(t, near.Depth, far.Depth)
}

func TestSetViewportUpdatesAspect(t *testing.T) {
	cam := NewCamera()
	cam.SetViewport(120, 40)
	cols, rows := cam.Viewport()
	assert.Equal(t, 120, cols)
	assert.Equal(t, 40, rows)
	assert.InDelta(t, 120*DefaultCellAspect/40, cam.Aspect(), 1e-6)

	cam.SetViewport(0, 0)
	assert.Equal(t, float32(1), cam.Aspect())
}

func TestUpdateFollowsController(t *testing.T) {
	cam := NewCamera()
	before := cam.ViewMatrix()
	cam.Controller().SetAzimuth(1)
	assert.Equal(t, before, cam.ViewMatrix())
	cam.Update()
	assert.NotEqual(t, before, cam.ViewMatrix())
}

func TestProjectRejectsNaN(t *testing.T) {
	cam := NewCamera()
	_, ok := cam.Project(mgl32.Vec3{math32.NaN(), 0, 0})
	assert.False(t, ok)
}

func TestInvalidLensOptionsFallBack(t *testing.T) {
	c := NewCamera(WithCellAspect(0), WithNear(-1), WithFar(0.05), WithViewport(80, 20))
	assert.Equal(t, float32(0.1), c.Near())
	assert.Greater(t, c.Far(), c.Near())
	assert.InDelta(t, 80*DefaultCellAspect/20, c.Aspect(), 1e-6)
}
