package renderer

import "github.com/Carmen-Shannon/oxy-tree/engine/pool"

// Glyphs maps scene elements to terminal runes.
type Glyphs struct {
	Needle   rune
	Sparkle  rune
	Box      rune
	Sphere   rune
	Bow      rune
	Topper   rune
	StarEdge rune
}

// DefaultGlyphs returns the stock glyph set.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		Needle:   '.',
		Sparkle:  '*',
		Box:      '■',
		Sphere:   'o',
		Bow:      '%',
		Topper:   '★',
		StarEdge: '*',
	}
}

// ForKind returns the glyph of an ornament kind.
func (g Glyphs) ForKind(k pool.Kind) rune {
	switch k {
	case pool.KindBox:
		return g.Box
	case pool.KindSphere:
		return g.Sphere
	case pool.KindBow:
		return g.Bow
	case pool.KindTopper:
		return g.Topper
	}
	return g.Needle
}
