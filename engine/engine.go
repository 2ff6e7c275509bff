package engine

import (
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/Carmen-Shannon/oxy-tree/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tree/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tree/engine/scene"
	"github.com/Carmen-Shannon/oxy-tree/engine/window"
)

// zoomStep is the radius change of one zoom key press.
const zoomStep = 1.5

// engine implements the Engine interface.
// One goroutine owns the frame loop (update, then render); the window's event loop runs on
// the caller of Run and only touches atomics, the camera and the quit channel.
type engine struct {
	mu *sync.RWMutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates
	redrawChannel   chan struct{}      // Requests a render without an update (resize)

	running atomic.Bool
	paused  atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once     // Ensures quitChannel is only closed once
	framesDone  chan struct{} // Closed when the frame loop has returned

	window   window.Window
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	maxFrames int // stop after this many frames; 0 = unlimited
	frames    atomic.Int64
	elapsed   float32
}

// Engine is the main entry point for the engine.
// It owns the frame loop, keyboard handling and the window's lifetime.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer drawing the scenes.
	//
	// Returns:
	//   - renderer.Renderer: the renderer, or nil when the engine has no window
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the frame rate in frames per second.
	// Each frame updates every active scene once, then renders once.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called after each frame's scene update.
	//
	// Parameters:
	//   - callback: function receiving the frame delta in seconds (0 while paused)
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each frame is presented.
	//
	// Parameters:
	//   - callback: function receiving the frame delta in seconds (0 while paused)
	SetRenderCallback(callback func(deltaTime float32))

	// AddScene registers a scene at the given z-index key.
	// Scenes are updated and drawn in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining order (lower first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Paused reports whether the frame clock is frozen.
	//
	// Returns:
	//   - bool: true while paused
	Paused() bool

	// SetPaused freezes or resumes the frame clock. Paused frames are still drawn with a zero delta.
	//
	// Parameters:
	//   - paused: true to freeze
	SetPaused(paused bool)

	// Frames returns the number of frames run so far.
	//
	// Returns:
	//   - int: the frame count
	Frames() int

	// Run starts the frame loop and processes window events. Blocks until Quit, until
	// the frame budget is spent or until the window closes. Run may be called once.
	Run()

	// Quit signals the frame loop to stop and closes the window.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// With a window and no WithRenderer option, a terminal renderer is created for it.
//
// Parameters:
//   - options: functional options for engine configuration (window, scenes, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.RWMutex{},
		tickRateChannel:  make(chan time.Duration, 1),
		redrawChannel:    make(chan struct{}, 1),
		quitChannel:      make(chan struct{}),
		framesDone:       make(chan struct{}),
		scenes:           make(map[int]scene.Scene),
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		if e.renderer == nil {
			e.renderer = renderer.NewRenderer(renderer.BackendTypeTerminal, e.window)
		}
		e.window.SetResizeCallback(func(width, height int) {
			e.renderer.Resize(width, height)
			select {
			case e.redrawChannel <- struct{}{}:
			default:
			}
		})
		e.window.SetKeyDownCallback(e.handleKey)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() {
	e.running.Store(true)
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		// The window may close on its own; make sure the frame loop follows.
		e.signalQuit()
	}
	e.wg.Wait()
	e.running.Store(false)
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handle launches the frame and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleFrames()
	go e.handleQuit()
}

// handleKey maps key presses to actions. Runs on the window's event goroutine.
func (e *engine) handleKey(keyCode uint32) {
	switch keyCode {
	case common.KeySpace, common.KeyEnter:
		for _, s := range e.activeScenes() {
			s.Toggle()
		}
	case common.KeyQ, common.KeyEsc, common.KeyCtrlC:
		log.Printf("[Engine] quit requested")
		e.signalQuit()
	case common.KeyP:
		e.SetPaused(!e.paused.Load())
	case common.KeyR:
		if e.renderer != nil {
			e.renderer.Camera().Controller().Reset()
		}
	case common.KeyLeft, common.KeyRight, common.KeyUp, common.KeyDown, common.KeyPlus, common.KeyEqual, common.KeyMinus:
		if e.renderer != nil {
			e.orbit(keyCode)
		}
	}
}

// orbit moves the camera for the arrow and zoom keys.
func (e *engine) orbit(keyCode uint32) {
	ctrl := e.renderer.Camera().Controller()
	switch keyCode {
	case common.KeyLeft:
		ctrl.OrbitLeft()
	case common.KeyRight:
		ctrl.OrbitRight()
	case common.KeyUp:
		ctrl.OrbitUp()
	case common.KeyDown:
		ctrl.OrbitDown()
	case common.KeyPlus, common.KeyEqual:
		ctrl.Zoom(zoomStep)
	case common.KeyMinus:
		ctrl.Zoom(-zoomStep)
	}
}

// handleFrames runs the ticker-driven frame loop in its own goroutine.
// Each tick measures the real delta, updates every active scene once, then renders once.
// The first frame runs with a zero delta. Exits when the quit channel is closed.
// Recovers from panics to avoid leaving the terminal in raw mode, and signals quit on recovery.
func (e *engine) handleFrames() {
	defer e.wg.Done()
	defer close(e.framesDone)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	var lastTick time.Time

	for {
		select {
		case <-e.quitChannel:
			return
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		case <-e.redrawChannel:
			e.render()
		case <-ticker.C:
			now := time.Now()
			var dt float32
			if !lastTick.IsZero() {
				dt = float32(now.Sub(lastTick).Seconds())
			}
			lastTick = now
			if e.paused.Load() {
				dt = 0
			}

			updateStart := time.Now()
			e.update(dt)
			if e.tickCallback != nil {
				e.tickCallback(dt)
			}

			renderStart := time.Now()
			e.render()
			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick(renderStart.Sub(updateStart), time.Since(renderStart))
			}

			if n := e.frames.Add(1); e.maxFrames > 0 && n >= int64(e.maxFrames) {
				e.signalQuit()
				return
			}
		}
	}
}

// update advances the frame clock and every active scene. The camera turns while any
// active scene is formed.
func (e *engine) update(dt float32) {
	e.elapsed += dt
	formed := false
	for _, s := range e.activeScenes() {
		s.Update(e.elapsed, dt)
		formed = formed || s.Formed()
	}
	if formed && e.renderer != nil {
		e.renderer.Camera().Controller().Advance(dt)
	}
}

// render draws every active scene into one frame and presents it.
func (e *engine) render() {
	if e.renderer == nil {
		return
	}
	active := e.activeScenes()
	e.renderer.BeginFrame()
	for _, s := range active {
		e.renderer.DrawScene(s)
	}
	status := ""
	if len(active) > 0 {
		status = renderer.StatusLine(active[0], e.paused.Load())
	}
	e.renderer.EndFrame(status)
	e.renderer.Present()
}

// activeScenes returns the active scenes in ascending key order.
func (e *engine) activeScenes() []scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			out = append(out, s)
		}
	}
	return out
}

// handleQuit blocks until the quit channel is closed and the last frame is presented,
// then closes the window so ProcessMessages returns.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
	<-e.framesDone
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] closing window: %v", err)
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the frame rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each frame after the update.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each frame after presenting.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func (e *engine) Paused() bool {
	return e.paused.Load()
}

func (e *engine) SetPaused(paused bool) {
	if e.paused.Swap(paused) != paused {
		log.Printf("[Engine] paused: %v", paused)
	}
}

func (e *engine) Frames() int {
	return int(e.frames.Load())
}
