package engine

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-tree/engine/pool"
	"github.com/Carmen-Shannon/oxy-tree/engine/scene"
	"github.com/Carmen-Shannon/oxy-tree/engine/window"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScene(t *testing.T, options ...scene.SceneBuilderOption) scene.Scene {
	t.Helper()
	bows := pool.Bows()
	bows.Count = 10
	opts := append([]scene.SceneBuilderOption{
		scene.WithSeed(4),
		scene.WithFoliage(200, 25),
		scene.WithCategories(bows),
		scene.WithComputeWorkers(1),
	}, options...)
	s, err := scene.NewScene("engine", opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func simEngine(t *testing.T, options ...EngineBuilderOption) (Engine, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	w, err := window.NewWindow(window.WithScreen(sim))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return NewEngine(append([]EngineBuilderOption{WithWindow(w), WithTickRate(200)}, options...)...), sim
}

func runAsync(e Engine) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	return done
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}
}

func TestRunStopsAfterMaxFrames(t *testing.T) {
	s := testScene(t)
	e, _ := simEngine(t, WithScene(0, s), WithMaxFrames(5))

	var mu sync.Mutex
	var deltas []float32
	e.SetTickCallback(func(dt float32) {
		mu.Lock()
		deltas = append(deltas, dt)
		mu.Unlock()
	})

	waitDone(t, runAsync(e))

	assert.Equal(t, 5, e.Frames())
	assert.False(t, e.Window().IsRunning())
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, deltas, 5)
	assert.Equal(t, float32(0), deltas[0], "first frame has no delta")
	for _, dt := range deltas[1:] {
		assert.Greater(t, dt, float32(0))
	}
}

func TestRenderPresentsStatusLine(t *testing.T) {
	s := testScene(t)
	e, sim := simEngine(t, WithScene(0, s), WithMaxFrames(2))

	var mu sync.Mutex
	var snapshot string
	e.SetRenderCallback(func(float32) {
		cells, _, _ := sim.GetContents()
		var sb strings.Builder
		for _, c := range cells {
			if len(c.Runes) > 0 {
				sb.WriteRune(c.Runes[0])
			}
		}
		mu.Lock()
		snapshot = sb.String()
		mu.Unlock()
	})
	waitDone(t, runAsync(e))

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, snapshot, "needles 200")
	assert.Contains(t, snapshot, "scattered")
}

func TestKeysToggleAndQuit(t *testing.T) {
	s := testScene(t)
	e, sim := simEngine(t, WithScene(0, s))
	done := runAsync(e)

	sim.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	assert.Eventually(t, s.Formed, 2*time.Second, 5*time.Millisecond)

	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	assert.Eventually(t, func() bool { return !s.Formed() }, 2*time.Second, 5*time.Millisecond)

	sim.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	assert.Eventually(t, e.Paused, 2*time.Second, 5*time.Millisecond)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	waitDone(t, done)
	assert.Greater(t, e.Frames(), 0)
}

func TestEscapeQuits(t *testing.T) {
	e, sim := simEngine(t, WithScene(0, testScene(t)))
	done := runAsync(e)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	waitDone(t, done)
}

func TestPausedFramesHaveZeroDelta(t *testing.T) {
	s := testScene(t, scene.WithFormed(true))
	e, _ := simEngine(t, WithScene(0, s), WithMaxFrames(4), WithPaused(true))

	var mu sync.Mutex
	var deltas []float32
	e.SetTickCallback(func(dt float32) {
		mu.Lock()
		deltas = append(deltas, dt)
		mu.Unlock()
	})
	waitDone(t, runAsync(e))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []float32{0, 0, 0, 0}, deltas)
	assert.Equal(t, float32(0), s.Foliage().Progress())
}

func TestCameraTurnsOnlyWhileFormed(t *testing.T) {
	scattered := testScene(t)
	e, _ := simEngine(t, WithScene(0, scattered), WithMaxFrames(5))
	ctrl := e.Renderer().Camera().Controller()
	ctrl.SetAutoRotateSpeed(30)
	waitDone(t, runAsync(e))
	assert.Equal(t, float32(0), ctrl.Azimuth())

	formed := testScene(t, scene.WithFormed(true))
	e, _ = simEngine(t, WithScene(0, formed), WithMaxFrames(5))
	ctrl = e.Renderer().Camera().Controller()
	ctrl.SetAutoRotateSpeed(30)
	waitDone(t, runAsync(e))
	assert.NotEqual(t, float32(0), ctrl.Azimuth())
}

func TestQuitIsIdempotent(t *testing.T) {
	e, _ := simEngine(t, WithScene(0, testScene(t)))
	done := runAsync(e)
	e.Quit()
	e.Quit()
	waitDone(t, done)
}

func TestRunWithoutWindow(t *testing.T) {
	s := testScene(t)
	e := NewEngine(WithScene(0, s), WithTickRate(500), WithMaxFrames(3))
	assert.Nil(t, e.Renderer())
	waitDone(t, runAsync(e))
	assert.Equal(t, 3, e.Frames())
	assert.Greater(t, s.LastFrame().Elapsed, float32(0))
}

func TestSceneRegistry(t *testing.T) {
	a, b := testScene(t), testScene(t, scene.WithActive(false))
	e := NewEngine(WithScene(1, a))
	e.AddScene(0, b)

	assert.Same(t, a, e.Scene(1))
	assert.Len(t, e.Scenes(), 2)

	active := e.(*engine).activeScenes()
	require.Len(t, active, 1)
	assert.Same(t, a, active[0])

	e.RemoveScene(1)
	assert.Nil(t, e.Scene(1))
}
