package renderer

import "github.com/Carmen-Shannon/oxy-tree/engine/camera"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithCamera sets the camera used to project the scene. Defaults to camera.NewCamera().
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - RendererBuilderOption: a function that applies the camera option to a renderer
func WithCamera(c camera.Camera) RendererBuilderOption {
	return func(r *renderer) {
		r.camera = c
	}
}

// WithGlyphs replaces the glyph set.
//
// Parameters:
//   - g: the glyphs to draw with
//
// Returns:
//   - RendererBuilderOption: a function that applies the glyph option to a renderer
func WithGlyphs(g Glyphs) RendererBuilderOption {
	return func(r *renderer) {
		r.glyphs = g
	}
}

// WithMaxFoliagePoints caps how many needles are drawn per frame. Larger pools are
// drawn with a stride. Zero or less draws every needle.
//
// Parameters:
//   - n: the maximum needle count
//
// Returns:
//   - RendererBuilderOption: a function that applies the cap to a renderer
func WithMaxFoliagePoints(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.maxFoliage = n
	}
}

// WithSparkleSize sets the needle size at or above which the sparkle glyph is used.
//
// Parameters:
//   - size: the point size threshold
//
// Returns:
//   - RendererBuilderOption: a function that applies the threshold to a renderer
func WithSparkleSize(size float32) RendererBuilderOption {
	return func(r *renderer) {
		r.sparkleSize = size
	}
}

// WithStatusLine toggles the bottom status row.
//
// Parameters:
//   - enabled: true to reserve the last row for status text
//
// Returns:
//   - RendererBuilderOption: a function that applies the status option to a renderer
func WithStatusLine(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.statusLine = enabled
	}
}

// WithBackend draws on a custom backend instead of the window.
//
// Parameters:
//   - b: the backend
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend option to a renderer
func WithBackend(b RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = b
	}
}
