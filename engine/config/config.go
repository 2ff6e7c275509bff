// Package config loads tree scene settings from TOML. Defaults come first; a file only
// overrides the keys it sets.
package config

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/Carmen-Shannon/oxy-tree/engine/camera"
	"github.com/Carmen-Shannon/oxy-tree/engine/pool"
	"github.com/Carmen-Shannon/oxy-tree/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-tree/engine/sampler"
	"github.com/Carmen-Shannon/oxy-tree/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// Config is the full set of recognised settings.
type Config struct {
	Seed    uint64  `toml:"seed"`
	Workers int     `toml:"workers"`
	FPS     float64 `toml:"fps"`
	Formed  bool    `toml:"formed"`

	Shape     ShapeConfig      `toml:"shape"`
	Foliage   FoliageConfig    `toml:"foliage"`
	Ornaments []OrnamentConfig `toml:"ornaments"`
	Topper    TopperConfig     `toml:"topper"`
	Camera    CameraConfig     `toml:"camera"`
}

type ShapeConfig struct {
	Height      float32 `toml:"height"`
	BaseRadius  float32 `toml:"base_radius"`
	Layers      int     `toml:"layers"`
	YOffset     float32 `toml:"y_offset"`
	GapRatio    float32 `toml:"gap_ratio"`
	DroopFactor float32 `toml:"droop_factor"`
}

// FoliageConfig is the [foliage] table. Colours are "#rrggbb" strings.
type FoliageConfig struct {
	Count        int     `toml:"count"`
	ChaosRadius  float32 `toml:"chaos_radius"`
	Rate         float32 `toml:"rate"`
	BottomColor  string  `toml:"bottom_color"`
	TopColor     string  `toml:"top_color"`
	SparkleColor string  `toml:"sparkle_color"`
}

// OrnamentConfig is one [[ornaments]] table. A missing name falls back to the kind and a
// missing chaos_radius to the stock ornament radius; an explicit chaos_radius must be > 0.
type OrnamentConfig struct {
	Name        string   `toml:"name"`
	Kind        string   `toml:"kind"`
	Count       int      `toml:"count"`
	Weight      float32  `toml:"weight"`
	ChaosRadius *float32 `toml:"chaos_radius"`
	Palette     []string `toml:"palette"`
}

type TopperConfig struct {
	Chaos  [3]float32 `toml:"chaos"`
	Target [3]float32 `toml:"target"`
	Weight float32    `toml:"weight"`
	Scale  float32    `toml:"scale"`
	Color  string     `toml:"color"`
	Points int        `toml:"points"`
	Outer  float32    `toml:"outer_radius"`
	Inner  float32    `toml:"inner_radius"`
}

type CameraConfig struct {
	Position        [3]float32 `toml:"position"`
	Target          [3]float32 `toml:"target"`
	FOV             float32    `toml:"fov"`
	AutoRotateSpeed float32    `toml:"auto_rotate_speed"`
}

// Default returns the stock tree settings.
//
// Returns:
//   - *Config: a fresh default configuration
func Default() *Config {
	shape := sampler.DefaultConeShape()
	topper := pool.DefaultTopperSpec()
	style := animator.DefaultFoliageStyle()
	return &Config{
		Seed: 1,
		FPS:  30,
		Shape: ShapeConfig{
			Height:      shape.Height,
			BaseRadius:  shape.BaseRadius,
			Layers:      shape.Layers,
			YOffset:     shape.YOffset,
			GapRatio:    shape.GapRatio,
			DroopFactor: shape.DroopFactor,
		},
		Foliage: FoliageConfig{
			Count:        pool.DefaultFoliageCount,
			ChaosRadius:  pool.DefaultFoliageChaosRadius,
			Rate:         animator.DefaultFoliageRate,
			BottomColor:  style.Bottom.Hex(),
			TopColor:     style.Top.Hex(),
			SparkleColor: style.Sparkle.Hex(),
		},
		Ornaments: []OrnamentConfig{
			ornamentFromCategory(pool.Boxes()),
			ornamentFromCategory(pool.Baubles()),
			ornamentFromCategory(pool.Bows()),
		},
		Topper: TopperConfig{
			Chaos:  topper.Chaos,
			Target: topper.Target,
			Weight: topper.Weight,
			Scale:  topper.Scale,
			Color:  topper.Color.Hex(),
			Points: 5,
			Outer:  1.2,
			Inner:  0.5,
		},
		Camera: CameraConfig{
			Position:        [3]float32{0, 4, 25},
			FOV:             45,
			AutoRotateSpeed: 0.5,
		},
	}
}

func ornamentFromCategory(c pool.Category) OrnamentConfig {
	palette := make([]string, len(c.Palette))
	for i, col := range c.Palette {
		palette[i] = col.Hex()
	}
	radius := c.ChaosRadius
	return OrnamentConfig{
		Name:        c.Name,
		Kind:        c.Kind.String(),
		Count:       c.Count,
		Weight:      c.Weight,
		ChaosRadius: &radius,
		Palette:     palette,
	}
}

// Load reads a TOML file and overlays it on Default.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - *Config: the merged, validated configuration
//   - error: a read, decode or validation error naming the path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	log.Printf("[Config] loaded %s: seed %d, %d foliage points, %d ornament groups",
		path, cfg.Seed, cfg.Foliage.Count, len(cfg.Ornaments))
	return cfg, nil
}

// Parse decodes TOML over Default. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - *Config: the merged, validated configuration
//   - error: a decode error, or a validation error wrapping common.ErrInvalidConfig
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decoding toml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section by building the values the scene would build.
//
// Returns:
//   - error: the first problem found, wrapping common.ErrInvalidConfig
func (c *Config) Validate() error {
	if !(c.FPS > 0) {
		return fmt.Errorf("fps must be > 0, got %v: %w", c.FPS, common.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d: %w", c.Workers, common.ErrInvalidConfig)
	}
	if c.Foliage.Count <= 0 {
		return fmt.Errorf("foliage count must be > 0, got %d: %w", c.Foliage.Count, common.ErrInvalidConfig)
	}
	if !(c.Foliage.ChaosRadius > 0) {
		return fmt.Errorf("foliage chaos radius must be > 0, got %v: %w", c.Foliage.ChaosRadius, common.ErrInvalidConfig)
	}
	if !(c.Foliage.Rate > 0) {
		return fmt.Errorf("foliage rate must be > 0, got %v: %w", c.Foliage.Rate, common.ErrInvalidConfig)
	}
	if _, err := c.FoliageStyle(); err != nil {
		return err
	}
	if err := c.ConeShape().Validate(); err != nil {
		return err
	}
	if _, err := c.Categories(); err != nil {
		return err
	}
	if _, err := c.TopperSpec(); err != nil {
		return err
	}
	if !(c.Camera.FOV > 0 && c.Camera.FOV < 180) {
		return fmt.Errorf("camera fov must be in (0, 180), got %v: %w", c.Camera.FOV, common.ErrInvalidConfig)
	}
	if c.Camera.Position == c.Camera.Target {
		return fmt.Errorf("camera position and target coincide: %w", common.ErrInvalidConfig)
	}
	return nil
}

// ConeShape converts the [shape] table.
func (c *Config) ConeShape() sampler.ConeShape {
	return sampler.ConeShape{
		Height:      c.Shape.Height,
		BaseRadius:  c.Shape.BaseRadius,
		Layers:      c.Shape.Layers,
		YOffset:     c.Shape.YOffset,
		GapRatio:    c.Shape.GapRatio,
		DroopFactor: c.Shape.DroopFactor,
	}
}

// Categories converts the [[ornaments]] tables, validating each one.
//
// Returns:
//   - []pool.Category: the ornament groups in file order
//   - error: the first invalid group, wrapping common.ErrInvalidConfig
func (c *Config) Categories() ([]pool.Category, error) {
	out := make([]pool.Category, 0, len(c.Ornaments))
	for i, o := range c.Ornaments {
		kind, err := pool.ParseKind(o.Kind)
		if err != nil {
			return nil, fmt.Errorf("ornaments[%d]: %w", i, err)
		}
		palette, err := pool.ParsePalette(o.Palette...)
		if err != nil {
			return nil, fmt.Errorf("ornaments[%d]: %w", i, err)
		}
		radius := float32(pool.DefaultOrnamentChaosRadius)
		if o.ChaosRadius != nil {
			radius = *o.ChaosRadius
		}
		cat := pool.Category{
			Name:        common.Coalesce(o.Name, kind.String()),
			Kind:        kind,
			Count:       o.Count,
			ChaosRadius: radius,
			Weight:      o.Weight,
			Palette:     palette,
			Size:        pool.SizeRuleFor(kind),
		}
		if err := cat.Validate(); err != nil {
			return nil, fmt.Errorf("ornaments[%d]: %w", i, err)
		}
		out = append(out, cat)
	}
	return out, nil
}

// FoliageStyle converts the [foliage] colours onto the stock needle style.
//
// Returns:
//   - animator.FoliageStyle: the needle style
//   - error: a bad colour, wrapping common.ErrInvalidConfig
func (c *Config) FoliageStyle() (animator.FoliageStyle, error) {
	palette, err := pool.ParsePalette(c.Foliage.BottomColor, c.Foliage.TopColor, c.Foliage.SparkleColor)
	if err != nil {
		return animator.FoliageStyle{}, fmt.Errorf("foliage: %w", err)
	}
	style := animator.DefaultFoliageStyle()
	style.Bottom, style.Top, style.Sparkle = palette[0], palette[1], palette[2]
	return style, nil
}

// TopperSpec converts the [topper] table.
//
// Returns:
//   - pool.TopperSpec: the topper definition
//   - error: a bad colour, weight or scale, wrapping common.ErrInvalidConfig
func (c *Config) TopperSpec() (pool.TopperSpec, error) {
	palette, err := pool.ParsePalette(c.Topper.Color)
	if err != nil {
		return pool.TopperSpec{}, fmt.Errorf("topper: %w", err)
	}
	spec := pool.TopperSpec{
		Chaos:  mgl32.Vec3(c.Topper.Chaos),
		Target: mgl32.Vec3(c.Topper.Target),
		Weight: c.Topper.Weight,
		Scale:  c.Topper.Scale,
		Color:  palette[0],
	}
	if !(spec.Weight > 0) || !(spec.Scale > 0) {
		return pool.TopperSpec{}, fmt.Errorf("topper weight and scale must be > 0: %w", common.ErrInvalidConfig)
	}
	if c.Topper.Points < 2 {
		return pool.TopperSpec{}, fmt.Errorf("topper needs at least 2 star points, got %d: %w", c.Topper.Points, common.ErrInvalidConfig)
	}
	return spec, nil
}

// SceneOptions validates the configuration and translates it into scene builder options.
//
// Parameters:
//   - signal: the toggle to share with the scene, or nil to let the scene own one. A shared
//     toggle is set to the configured formed state.
//
// Returns:
//   - []scene.SceneBuilderOption: options for scene.NewScene
//   - error: the first validation problem, wrapping common.ErrInvalidConfig
func (c *Config) SceneOptions(signal *scene.Signal) ([]scene.SceneBuilderOption, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cats, err := c.Categories()
	if err != nil {
		return nil, err
	}
	topper, err := c.TopperSpec()
	if err != nil {
		return nil, err
	}
	style, err := c.FoliageStyle()
	if err != nil {
		return nil, err
	}
	opts := []scene.SceneBuilderOption{
		scene.WithSeed(c.Seed),
		scene.WithShape(c.ConeShape()),
		scene.WithFoliage(c.Foliage.Count, c.Foliage.ChaosRadius),
		scene.WithFoliageRate(c.Foliage.Rate),
		scene.WithFoliageStyle(style),
		scene.WithCategories(cats...),
		scene.WithTopper(topper),
		scene.WithStar(c.Topper.Points, c.Topper.Outer, c.Topper.Inner),
	}
	if signal != nil {
		signal.Set(c.Formed)
		opts = append(opts, scene.WithSignal(signal))
	} else {
		opts = append(opts, scene.WithFormed(c.Formed))
	}
	if c.Workers > 0 {
		opts = append(opts, scene.WithComputeWorkers(c.Workers))
	}
	return opts, nil
}

// CameraOptions translates the [camera] table into camera builder options.
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (c *Config) CameraOptions() []camera.CameraBuilderOption {
	pos, target := c.Camera.Position, c.Camera.Target
	ctrl := camera.NewCameraController(
		camera.WithTarget(target[0], target[1], target[2]),
		camera.WithPosition(pos[0], pos[1], pos[2]),
		camera.WithAutoRotateSpeed(c.Camera.AutoRotateSpeed),
	)
	return []camera.CameraBuilderOption{
		camera.WithFov(mgl32.DegToRad(c.Camera.FOV)),
		camera.WithController(ctrl),
	}
}
