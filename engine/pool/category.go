package pool

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/Carmen-Shannon/oxy-tree/engine/sampler"
	"github.com/lucasb-eyer/go-colorful"
)

// Kind identifies the mesh an instanced element stands for.
type Kind int

const (
	KindBox Kind = iota
	KindSphere
	KindBow
	KindTopper
)

// String returns the lowercase kind name used in configuration files.
func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindSphere:
		return "sphere"
	case KindBow:
		return "bow"
	case KindTopper:
		return "topper"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a configuration name to a Kind.
//
// Parameters:
//   - name: one of "box", "sphere", "bow", "topper"
//
// Returns:
//   - Kind: the parsed kind
//   - error: an error wrapping common.ErrInvalidConfig for unknown names
func ParseKind(name string) (Kind, error) {
	for _, k := range []Kind{KindBox, KindSphere, KindBow, KindTopper} {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown ornament kind %q: %w", name, common.ErrInvalidConfig)
}

// SizeRule draws the per-axis scale of one element.
type SizeRule func(rng sampler.Rand) [3]float32

// Palette hex values for the stock ornament groups.
const (
	HexRedVelvet    = "#8a0303"
	HexGold         = "#FFD700"
	HexBlueRoyal    = "#4169E1"
	HexPurpleDeep   = "#4B0082"
	HexEmeraldLight = "#005c3e"
	HexEmeraldDeep  = "#002419"
	HexSilver       = "#E5E4E2"
	HexPinkPastel   = "#FFD1DC"
	HexPinkHot      = "#FF69B4"
	HexBlueIce      = "#A5F2F3"
	HexPurpleRoyal  = "#7851A9"
)

const (
	// DefaultOrnamentChaosRadius is the scatter radius for instanced ornaments.
	DefaultOrnamentChaosRadius float32 = 30
	// LightnessJitter is the full width of the random HSL lightness perturbation.
	LightnessJitter = 0.1
)

// Category holds everything shared by one group of instanced elements.
type Category struct {
	Name        string
	Kind        Kind
	Count       int
	ChaosRadius float32
	// Weight is the interpolation rate in 1/s; heavier groups settle faster.
	Weight  float32
	Palette []colorful.Color
	Size    SizeRule
}

// Validate reports whether a pool can be built from the category.
//
// Returns:
//   - error: an error wrapping common.ErrInvalidConfig, or nil
func (c Category) Validate() error {
	switch {
	case c.Count <= 0:
		return fmt.Errorf("category %q: count must be > 0, got %d: %w", c.Name, c.Count, common.ErrInvalidConfig)
	case !(c.ChaosRadius > 0):
		return fmt.Errorf("category %q: chaos radius must be > 0, got %v: %w", c.Name, c.ChaosRadius, common.ErrInvalidConfig)
	case !(c.Weight > 0):
		return fmt.Errorf("category %q: weight must be > 0, got %v: %w", c.Name, c.Weight, common.ErrInvalidConfig)
	case len(c.Palette) == 0:
		return fmt.Errorf("category %q: empty colour palette: %w", c.Name, common.ErrInvalidConfig)
	case c.Size == nil:
		return fmt.Errorf("category %q: missing size rule: %w", c.Name, common.ErrInvalidConfig)
	}
	return nil
}

// ParsePalette converts hex strings ("#rrggbb") to colours.
//
// Parameters:
//   - hexes: the colour strings
//
// Returns:
//   - []colorful.Color: the parsed colours
//   - error: an error wrapping common.ErrInvalidConfig on the first bad entry
func ParsePalette(hexes ...string) ([]colorful.Color, error) {
	out := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette colour %q: %v: %w", h, err, common.ErrInvalidConfig)
		}
		out = append(out, c)
	}
	return out, nil
}

// MustPalette is ParsePalette for compile-time constants. It panics on a bad hex string.
func MustPalette(hexes ...string) []colorful.Color {
	p, err := ParsePalette(hexes...)
	if err != nil {
		panic(err)
	}
	return p
}

// BoxSize draws an independent width, height and depth biased to stretch vertically.
func BoxSize(rng sampler.Rand) [3]float32 {
	base := rng.Float32()*0.3 + 0.3
	return [3]float32{
		(rng.Float32()*0.5 + 0.5) * base,
		(rng.Float32()*1.5 + 0.5) * base,
		(rng.Float32()*0.5 + 0.5) * base,
	}
}

// UniformSize returns a SizeRule drawing one scalar in [lo, lo+span) for all three axes.
func UniformSize(lo, span float32) SizeRule {
	return func(rng sampler.Rand) [3]float32 {
		s := rng.Float32()*span + lo
		return [3]float32{s, s, s}
	}
}

// FixedSize returns a SizeRule that always yields s on every axis.
func FixedSize(s float32) SizeRule {
	return func(sampler.Rand) [3]float32 {
		return [3]float32{s, s, s}
	}
}

// SizeRuleFor returns the stock size distribution of a kind.
func SizeRuleFor(k Kind) SizeRule {
	switch k {
	case KindBox:
		return BoxSize
	case KindBow:
		return UniformSize(0.2, 0.2)
	case KindTopper:
		return FixedSize(1)
	}
	return UniformSize(0.15, 0.25)
}

// Boxes is the stock gift-box group: few, heavy and slow to settle.
func Boxes() Category {
	return Category{
		Name:        "boxes",
		Kind:        KindBox,
		Count:       140,
		ChaosRadius: DefaultOrnamentChaosRadius,
		Weight:      1.5,
		Palette:     MustPalette(HexRedVelvet, HexGold, HexBlueRoyal, HexPurpleDeep, HexEmeraldLight),
		Size:        BoxSize,
	}
}

// Baubles is the stock sphere-ornament group.
func Baubles() Category {
	return Category{
		Name:        "baubles",
		Kind:        KindSphere,
		Count:       600,
		ChaosRadius: DefaultOrnamentChaosRadius,
		Weight:      2.5,
		Palette:     MustPalette(HexGold, HexSilver, HexPinkPastel, HexPinkHot, HexBlueIce, HexPurpleRoyal),
		Size:        SizeRuleFor(KindSphere),
	}
}

// Bows is the stock bow group: light and fastest to settle.
func Bows() Category {
	return Category{
		Name:        "bows",
		Kind:        KindBow,
		Count:       180,
		ChaosRadius: DefaultOrnamentChaosRadius,
		Weight:      3.0,
		Palette:     MustPalette(HexGold, HexRedVelvet),
		Size:        SizeRuleFor(KindBow),
	}
}

// DefaultCategories returns the three stock ornament groups.
func DefaultCategories() []Category {
	return []Category{Boxes(), Baubles(), Bows()}
}
