package window

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simWindow(t *testing.T) (Window, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	w, err := NewWindow(WithScreen(sim), WithTitle("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, sim
}

func cellAt(t *testing.T, sim tcell.SimulationScreen, x, y int) tcell.SimCell {
	t.Helper()
	cells, width, _ := sim.GetContents()
	return cells[y*width+x]
}

func TestNewWindowUsesScreenSize(t *testing.T) {
	w, sim := simWindow(t)
	width, height := sim.Size()
	assert.Equal(t, width, w.Width())
	assert.Equal(t, height, w.Height())
	assert.True(t, w.IsRunning())
}

func TestPlotAndShow(t *testing.T) {
	w, sim := simWindow(t)
	red := colorful.Color{R: 1, G: 0, B: 0}

	w.Clear()
	w.Plot(3, 2, '*', red)
	w.Plot(-1, 0, '!', red)
	w.Plot(1000, 0, '!', red)
	w.Show()

	cell := cellAt(t, sim, 3, 2)
	require.NotEmpty(t, cell.Runes)
	assert.Equal(t, '*', cell.Runes[0])
	fg, _, _ := cell.Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
}

func TestPrintClipsToWidth(t *testing.T) {
	w, sim := simWindow(t)
	x := w.Width() - 3

	w.Print(x, 1, "abcdef", colorful.Color{R: 1, G: 1, B: 1})
	w.Show()

	assert.Equal(t, 'a', cellAt(t, sim, x, 1).Runes[0])
	assert.Equal(t, 'c', cellAt(t, sim, x+2, 1).Runes[0])
}

func TestColorClampsOutOfGamut(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(255, 0, 128), Color(colorful.Color{R: 1.7, G: -0.3, B: 128.0 / 255}))
}

func TestKeyCode(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want uint32
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), common.KeyQ, true},
		{tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), common.KeyQ, true},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), common.KeySpace, true},
		{tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), common.KeyPlus, true},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), common.KeyEnter, true},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), common.KeyEsc, true},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), common.KeyCtrlC, true},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), common.KeyLeft, true},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), common.KeyUp, true},
		{tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), 0, false},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), 0, false},
	}
	for _, c := range cases {
		got, ok := KeyCode(c.ev)
		assert.Equal(t, c.ok, ok, c.ev.Name())
		assert.Equal(t, c.want, got, c.ev.Name())
	}
}

func TestProcessMessagesDispatchesUntilClose(t *testing.T) {
	w, sim := simWindow(t)

	keys := make(chan uint32, 4)
	sizes := make(chan [2]int, 1)
	w.SetKeyDownCallback(func(code uint32) { keys <- code })
	w.SetResizeCallback(func(width, height int) { sizes <- [2]int{width, height} })

	done := make(chan struct{})
	go func() {
		w.ProcessMessages()
		close(done)
	}()

	sim.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	require.NoError(t, sim.PostEvent(tcell.NewEventResize(120, 40)))

	assert.Equal(t, uint32(common.KeyP), <-keys)
	assert.Equal(t, uint32(common.KeyEnter), <-keys)
	assert.Equal(t, [2]int{120, 40}, <-sizes)
	assert.Equal(t, 120, w.Width())
	assert.Equal(t, 40, w.Height())

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ProcessMessages did not return after Close")
	}
	assert.False(t, w.IsRunning())
}
