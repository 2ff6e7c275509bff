package window

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Window provides a terminal surface and input event handling.
// Drawing calls are safe from any goroutine; callbacks run on the goroutine
// that calls ProcessMessages.
type Window interface {
	// SetResizeCallback sets the function called when the terminal is resized.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in cells
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// IsRunning returns true until Close is called.
	//
	// Returns:
	//   - bool: true if the window is running, false if closed
	IsRunning() bool

	// Close restores the terminal. Safe to call more than once.
	//
	// Returns:
	//   - error: always nil for terminal screens
	Close() error

	// ProcessMessages runs the event loop.
	// Blocks until the window is closed, dispatching key and resize events to the callbacks.
	ProcessMessages()

	// Width returns the current width in cells.
	//
	// Returns:
	//   - int: width in cells
	Width() int

	// Height returns the current height in cells.
	//
	// Returns:
	//   - int: height in cells
	Height() int

	// Clear blanks the back buffer.
	Clear()

	// Plot sets one cell of the back buffer. Cells outside the window are ignored.
	//
	// Parameters:
	//   - x, y: cell coordinates, origin top-left
	//   - r: the glyph
	//   - fg: the foreground colour
	Plot(x, y int, r rune, fg colorful.Color)

	// Print writes a string starting at a cell, clipped to the window width.
	//
	// Parameters:
	//   - x, y: cell coordinates of the first rune
	//   - text: the text to write
	//   - fg: the foreground colour
	Print(x, y int, text string, fg colorful.Color)

	// Show presents the back buffer.
	Show()
}

// engineWindow is the tcell implementation of the Window interface.
type engineWindow struct {
	mu *sync.Mutex

	// title is set on terminals that support it.
	title string

	// background fills cleared cells.
	background colorful.Color

	// width is the current width in cells.
	width int

	// height is the current height in cells.
	height int

	screen    tcell.Screen
	running   atomic.Bool
	closeOnce sync.Once

	// onResize is called when the terminal is resized.
	onResize func(width, height int)

	// onKeyDown is called when a key is pressed.
	onKeyDown func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow initialises a terminal screen with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the running window
//   - error: error if the terminal cannot be opened
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		mu:    &sync.Mutex{},
		title: "oxy-tree",
	}
	for _, opt := range options {
		opt(w)
	}
	if w.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to create terminal screen: %w", err)
		}
		w.screen = s
	}
	if err := w.screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialise terminal screen: %w", err)
	}
	w.screen.SetTitle(w.title)
	w.screen.HideCursor()
	w.screen.SetStyle(tcell.StyleDefault.Background(Color(w.background)))
	w.screen.Clear()
	w.width, w.height = w.screen.Size()
	w.running.Store(true)
	return w, nil
}

// Color converts a colour to a 24-bit terminal colour.
//
// Parameters:
//   - c: the colour, clamped to the displayable range
//
// Returns:
//   - tcell.Color: the RGB terminal colour
func Color(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// KeyCode translates a tcell key event into a virtual key code.
// Letters are reported as their uppercase ASCII value.
//
// Parameters:
//   - ev: the key event
//
// Returns:
//   - uint32: the key code
//   - bool: false for keys the window does not report
func KeyCode(ev *tcell.EventKey) (uint32, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r > unicode.MaxASCII {
			return 0, false
		}
		return uint32(unicode.ToUpper(r)), true
	case tcell.KeyEnter:
		return common.KeyEnter, true
	case tcell.KeyEscape:
		return common.KeyEsc, true
	case tcell.KeyCtrlC:
		return common.KeyCtrlC, true
	case tcell.KeyLeft:
		return common.KeyLeft, true
	case tcell.KeyRight:
		return common.KeyRight, true
	case tcell.KeyUp:
		return common.KeyUp, true
	case tcell.KeyDown:
		return common.KeyDown, true
	}
	return 0, false
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onKeyDown = callback
}

func (w *engineWindow) IsRunning() bool {
	return w.running.Load()
}

func (w *engineWindow) Close() error {
	w.closeOnce.Do(func() {
		w.running.Store(false)
		w.screen.Fini()
	})
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		ev := w.screen.PollEvent()
		if ev == nil {
			// Screen finalised.
			return
		}
		w.dispatch(ev)
	}
}

// dispatch routes one event to its callback.
func (w *engineWindow) dispatch(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		code, ok := KeyCode(ev)
		if !ok {
			return
		}
		w.mu.Lock()
		cb := w.onKeyDown
		w.mu.Unlock()
		if cb != nil {
			cb(code)
		}
	case *tcell.EventResize:
		width, height := ev.Size()
		w.mu.Lock()
		w.width, w.height = width, height
		cb := w.onResize
		w.mu.Unlock()
		w.screen.Sync()
		if cb != nil {
			cb(width, height)
		}
	}
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

func (w *engineWindow) Clear() {
	w.screen.Clear()
}

func (w *engineWindow) Plot(x, y int, r rune, fg colorful.Color) {
	w.screen.SetContent(x, y, r, nil, w.style(fg))
}

func (w *engineWindow) Print(x, y int, text string, fg colorful.Color) {
	st := w.style(fg)
	width := w.Width()
	for _, r := range text {
		if x >= width {
			return
		}
		w.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func (w *engineWindow) style(fg colorful.Color) tcell.Style {
	return tcell.StyleDefault.Background(Color(w.background)).Foreground(Color(fg))
}

func (w *engineWindow) Show() {
	w.screen.Show()
}
