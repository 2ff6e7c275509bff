package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-tree/engine/camera"
	"github.com/Carmen-Shannon/oxy-tree/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-tree/engine/renderer/staging"
	"github.com/Carmen-Shannon/oxy-tree/engine/scene"
	"github.com/Carmen-Shannon/oxy-tree/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// starEdgeSamples is the number of cells sampled along each edge of the star outline.
const starEdgeSamples = 4

// topperDepthBias is the margin added on top of the star's extent when the topper glyph
// is depth tested, so it wins against every point of its own outline.
const topperDepthBias = 0.05

// statusColor is the colour of the status row.
var statusColor = colorful.Color{R: 0.8, G: 0.8, B: 0.8}

// cell is one entry of the frame buffer.
type cell struct {
	glyph rune
	color colorful.Color
	depth float32
	set   bool
}

// FrameStats counts what happened to the points submitted during one frame.
type FrameStats struct {
	// Submitted is the number of DrawPoint calls.
	Submitted int
	// Culled points fell outside the view.
	Culled int
	// Occluded points lost the depth test.
	Occluded int
	// Cells is the number of filled cells at EndFrame.
	Cells int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	camera      camera.Camera
	glyphs      Glyphs

	maxFoliage  int
	sparkleSize float32
	statusLine  bool

	width  int
	height int
	cells  []cell
	points []animator.FoliagePoint
	stats  FrameStats
}

// Renderer projects the tree onto a grid of terminal cells with a per-cell depth buffer.
//
// A frame is BeginFrame, any number of DrawPoint or DrawScene calls, EndFrame, then Present.
type Renderer interface {
	// BackendType returns the presentation backend in use.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	BackendType() RendererBackendType

	// Camera returns the projecting camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Resize reallocates the frame buffer and updates the camera viewport.
	// The status row, when enabled, is taken from the bottom of the grid.
	//
	// Parameters:
	//   - width: the new width in cells
	//   - height: the new height in cells
	Resize(width, height int)

	// BeginFrame clears the frame buffer and refreshes the camera matrices.
	BeginFrame()

	// DrawPoint projects one world point and keeps it if it is nearer than what the cell holds.
	//
	// Parameters:
	//   - p: world-space position
	//   - glyph: the rune to draw
	//   - c: the glyph colour
	//
	// Returns:
	//   - bool: true if the point now owns its cell
	DrawPoint(p mgl32.Vec3, glyph rune, c colorful.Color) bool

	// DrawScene draws the needles, every ornament group, the topper and its star outline
	// as left by the scene's last Update.
	//
	// Parameters:
	//   - s: the scene to draw
	DrawScene(s scene.Scene)

	// EndFrame flushes the frame buffer and the status text to the backend.
	//
	// Parameters:
	//   - status: text for the status row, ignored when the status row is disabled
	EndFrame(status string)

	// Present makes the frame visible.
	Present()

	// Stats returns the counters of the current or last frame.
	//
	// Returns:
	//   - FrameStats: the counters
	Stats() FrameStats
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer that draws on the given window.
//
// Parameters:
//   - backendType: the backend implementation to use
//   - win: the window to draw on, may be nil when WithBackend is given
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the renderer, sized to the backend
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		glyphs:      DefaultGlyphs(),
		maxFoliage:  6000,
		sparkleSize: 15,
		statusLine:  true,
	}
	for _, option := range options {
		option(r)
	}
	if r.backend == nil {
		switch backendType {
		case BackendTypeTerminal:
			r.backend = newTerminalRendererBackend(win)
		default:
			panic(fmt.Sprintf("renderer: unsupported backend type %d", backendType))
		}
	}
	if r.camera == nil {
		r.camera = camera.NewCamera()
	}
	r.Resize(r.backend.Size())
	return r
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Camera() camera.Camera {
	return r.camera
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = max(width, 0), max(height, 0)
	rows := r.sceneRows()
	r.cells = make([]cell, r.width*rows)
	r.camera.SetViewport(r.width, rows)
}

// sceneRows is the grid height available to the scene. Caller must hold the mutex.
func (r *renderer) sceneRows() int {
	if r.statusLine && r.height > 0 {
		return r.height - 1
	}
	return r.height
}

func (r *renderer) BeginFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.cells)
	r.stats = FrameStats{}
	r.camera.Update()
}

func (r *renderer) DrawPoint(p mgl32.Vec3, glyph rune, c colorful.Color) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.plot(p, glyph, c, 0)
}

// plot runs the projection and depth test. Caller must hold the mutex.
func (r *renderer) plot(p mgl32.Vec3, glyph rune, c colorful.Color, bias float32) bool {
	r.stats.Submitted++
	proj, ok := r.camera.Project(p)
	if !ok || proj.X >= r.width || proj.Y*r.width+proj.X >= len(r.cells) {
		r.stats.Culled++
		return false
	}
	depth := proj.Depth - bias
	dst := &r.cells[proj.Y*r.width+proj.X]
	if dst.set && dst.depth <= depth {
		r.stats.Occluded++
		return false
	}
	*dst = cell{glyph: glyph, color: c, depth: depth, set: true}
	return true
}

func (r *renderer) DrawScene(s scene.Scene) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drawFoliage(s.Foliage())
	for _, g := range s.Groups() {
		glyph := r.glyphs.ForKind(g.Pool().Category().Kind)
		for _, e := range g.Pool().Elements() {
			r.plot(e.Position(), glyph, e.Color, 0)
		}
	}
	r.drawTopper(s.Topper(), s.Star())
}

// drawFoliage resolves every needle on the compute pool, then plots a strided subset.
// Caller must hold the mutex.
func (r *renderer) drawFoliage(f animator.FoliageAnimator) {
	n := f.Len()
	if cap(r.points) < n {
		r.points = make([]animator.FoliagePoint, n)
	}
	points := r.points[:n]
	f.Resolve(points)

	stride := 1
	if r.maxFoliage > 0 && n > r.maxFoliage {
		stride = (n + r.maxFoliage - 1) / r.maxFoliage
	}
	for i := 0; i < n; i += stride {
		pt := &points[i]
		glyph := r.glyphs.Needle
		if pt.Size >= r.sparkleSize {
			glyph = r.glyphs.Sparkle
		}
		r.plot(pt.Position, glyph, pt.Color, 0)
	}
}

// drawTopper plots the star outline in the topper's local XY plane, turned by its Y rotation,
// and the topper glyph at its centre. Caller must hold the mutex.
func (r *renderer) drawTopper(t animator.InstanceAnimator, star []mgl32.Vec2) {
	if t == nil || t.Len() == 0 {
		return
	}
	e := t.Pool().Element(0)
	center := e.Position()
	turn := mgl32.Rotate3DY(e.Rotation[1])
	scale := e.Scale[0]

	// An outline point can sit up to the star's radius nearer to the camera than its centre.
	var extent float32
	for _, v := range star {
		extent = max(extent, v.Len()*scale)
	}

	for i := range star {
		a, b := star[i], star[(i+1)%len(star)]
		for k := 0; k < starEdgeSamples; k++ {
			q := a.Add(b.Sub(a).Mul(float32(k) / starEdgeSamples)).Mul(scale)
			r.plot(center.Add(turn.Mul3x1(mgl32.Vec3{q.X(), q.Y(), 0})), r.glyphs.StarEdge, e.Color, 0)
		}
	}
	r.plot(center, r.glyphs.Topper, e.Color, extent+topperDepthBias)
}

func (r *renderer) EndFrame(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend.Clear()
	filled := 0
	for i := range r.cells {
		c := &r.cells[i]
		if !c.set {
			continue
		}
		filled++
		r.backend.Plot(i%r.width, i/r.width, c.glyph, c.color)
	}
	r.stats.Cells = filled
	if r.statusLine && r.height > 0 {
		r.backend.Print(0, r.height-1, status, statusColor)
	}
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// StatusLine summarises a scene for the status row: toggle state, blend progress,
// element counts and the bytes a GPU upload would stage, per frame and once at setup.
//
// Parameters:
//   - s: the scene
//   - paused: whether the frame clock is paused
//
// Returns:
//   - string: the status text
func StatusLine(s scene.Scene, paused bool) string {
	state := "scattered"
	if s.Formed() {
		state = "formed"
	}
	if paused {
		state += " (paused)"
	}
	groups := s.Groups()
	ornaments := 0
	for _, g := range groups {
		ornaments += g.Len()
	}
	staged := "staging error"
	if writes, err := staging.Frame(s.Foliage(), append(groups, s.Topper())...); err == nil {
		staged = fmt.Sprintf("staged %.1f KiB/frame + %.1f KiB static",
			float64(staging.TotalBytes(writes))/1024, float64(staging.TotalBytes(s.Static()))/1024)
	}
	return fmt.Sprintf(" %s %3.0f%% | needles %d | ornaments %d | %s | space toggle  p pause  r reset  q quit",
		state, s.Foliage().Progress()*100, s.Foliage().Len(), ornaments, staged)
}
