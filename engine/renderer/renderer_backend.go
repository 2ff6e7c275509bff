package renderer

import (
	"github.com/Carmen-Shannon/oxy-tree/engine/window"
	"github.com/lucasb-eyer/go-colorful"
)

// RendererBackendType identifies the presentation backend used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeTerminal draws character cells on a tcell window.
	BackendTypeTerminal RendererBackendType = iota
)

// String returns the backend name.
func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeTerminal:
		return "terminal"
	}
	return "unknown"
}

// RendererBackend is the surface a Renderer flushes its cell buffer to.
type RendererBackend interface {
	// Size returns the surface size in cells.
	//
	// Returns:
	//   - width, height: the surface size
	Size() (width, height int)

	// Clear blanks the surface.
	Clear()

	// Plot sets one cell.
	//
	// Parameters:
	//   - x, y: cell coordinates
	//   - r: the glyph
	//   - fg: the glyph colour
	Plot(x, y int, r rune, fg colorful.Color)

	// Print writes a line of text.
	//
	// Parameters:
	//   - x, y: coordinates of the first cell
	//   - text: the text
	//   - fg: the text colour
	Print(x, y int, text string, fg colorful.Color)

	// Present makes the drawn cells visible.
	Present()
}

// terminalRendererBackend adapts a window.Window to RendererBackend.
type terminalRendererBackend struct {
	window window.Window
}

var _ RendererBackend = &terminalRendererBackend{}

func newTerminalRendererBackend(w window.Window) *terminalRendererBackend {
	return &terminalRendererBackend{window: w}
}

func (b *terminalRendererBackend) Size() (width, height int) {
	return b.window.Width(), b.window.Height()
}

func (b *terminalRendererBackend) Clear() {
	b.window.Clear()
}

func (b *terminalRendererBackend) Plot(x, y int, r rune, fg colorful.Color) {
	b.window.Plot(x, y, r, fg)
}

func (b *terminalRendererBackend) Print(x, y int, text string, fg colorful.Color) {
	b.window.Print(x, y, text, fg)
}

func (b *terminalRendererBackend) Present() {
	b.window.Show()
}
