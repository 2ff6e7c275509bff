package scene

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-tree/common"
	"github.com/Carmen-Shannon/oxy-tree/engine/pool"
	"github.com/Carmen-Shannon/oxy-tree/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-tree/engine/renderer/staging"
	"github.com/Carmen-Shannon/oxy-tree/engine/sampler"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene owns one tree session: the foliage pool, the ornament groups, the topper and
// the animators that drive them from a shared toggle.
// Pools are built once in NewScene and never rebuilt; toggling only changes where elements head.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Update samples the toggle and advances every animator by one frame.
	// Missing or negative clock values are treated as zero.
	//
	// Parameters:
	//   - elapsed: seconds since the scene started
	//   - delta: seconds since the previous frame
	Update(elapsed, delta float32)

	// Signal returns the toggle the scene samples each frame.
	Signal() *Signal

	// Formed reports the toggle's current state.
	Formed() bool

	// Toggle flips the toggle and returns the new state.
	Toggle() bool

	// LastFrame returns the sanitized frame input of the most recent Update.
	//
	// Returns:
	//   - animator.Frame: the last frame, or the zero Frame before the first Update
	LastFrame() animator.Frame

	// Foliage returns the shared-progress animator of the needle points.
	Foliage() animator.FoliageAnimator

	// Groups returns the ornament animators in construction order.
	//
	// Returns:
	//   - []animator.InstanceAnimator: a copy of the group list
	Groups() []animator.InstanceAnimator

	// Topper returns the animator of the star on top.
	Topper() animator.InstanceAnimator

	// Shape returns the cone silhouette every group was sampled against.
	Shape() sampler.ConeShape

	// Star returns the topper's star outline in its local XY plane.
	Star() []mgl32.Vec2

	// Static returns the foliage vertex buffers staged once at construction, checked
	// against their vertex layouts. They never change, so a GPU sink uploads them once.
	//
	// Returns:
	//   - []staging.BufferWrite: chaos, target and seed buffers in vertex-slot order
	Static() []staging.BufferWrite

	// Close stops the scene's compute workers. The scene must not be updated afterwards.
	Close()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	signal *Signal
	frame  animator.Frame

	rng         sampler.Rand
	seed        uint64
	shape       sampler.ConeShape
	categories  []pool.Category
	topperSpec  pool.TopperSpec
	foliageSize int
	foliageR    float32
	foliageRate float32
	style       animator.FoliageStyle
	starPoints  int
	starOuter   float32
	starInner   float32
	chunkSize   int

	foliage animator.FoliageAnimator
	groups  []animator.InstanceAnimator
	topper  animator.InstanceAnimator
	star    []mgl32.Vec2
	static  []staging.BufferWrite

	// computePool manages a bounded set of reusable goroutines shared by every animator's
	// per-frame chunk fan-out. Workers persist across frames.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
	closeOnce      sync.Once
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene samples every pool and wires its animator.
// With no options it builds the stock tree: 15000 needles, boxes, baubles, bows and a gold star.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
//   - error: an error wrapping common.ErrInvalidConfig if any pool rejects its parameters
func NewScene(name string, options ...SceneBuilderOption) (Scene, error) {
	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		active:         true,
		seed:           1,
		shape:          sampler.DefaultConeShape(),
		categories:     pool.DefaultCategories(),
		topperSpec:     pool.DefaultTopperSpec(),
		foliageSize:    pool.DefaultFoliageCount,
		foliageR:       pool.DefaultFoliageChaosRadius,
		foliageRate:    animator.DefaultFoliageRate,
		style:          animator.DefaultFoliageStyle(),
		starPoints:     5,
		starOuter:      1.2,
		starInner:      0.5,
		chunkSize:      animator.DefaultChunkSize,
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}
	if s.signal == nil {
		s.signal = NewSignal(false)
	}
	if s.rng == nil {
		s.rng = sampler.NewRand(s.seed)
	}

	if err := s.build(); err != nil {
		return nil, err
	}

	total := 0
	for _, g := range s.groups {
		total += g.Len()
	}
	log.Printf("[Scene] %s: %d foliage points, %d ornaments in %d groups, %d compute workers",
		s.name, s.foliage.Len(), total, len(s.groups), s.computeWorkers)
	return s, nil
}

// build samples the pools in a fixed order so a seed always reproduces the same tree.
func (s *scene) build() error {
	if !(s.foliageRate > 0) {
		return fmt.Errorf("scene %s: foliage rate must be > 0, got %v: %w", s.name, s.foliageRate, common.ErrInvalidConfig)
	}
	poolOpts := []pool.PoolBuilderOption{pool.WithRand(s.rng), pool.WithShape(s.shape)}

	fp, err := pool.NewFoliagePool(append(poolOpts, pool.WithCount(s.foliageSize), pool.WithChaosRadius(s.foliageR))...)
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.name, err)
	}

	groupPools := make([]*pool.InstancePool, 0, len(s.categories))
	for _, cat := range s.categories {
		ip, err := pool.NewInstancePool(cat, poolOpts...)
		if err != nil {
			return fmt.Errorf("scene %s: %w", s.name, err)
		}
		groupPools = append(groupPools, ip)
	}

	tp, err := pool.NewTopper(s.topperSpec, poolOpts...)
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.name, err)
	}

	// Pools are valid; only now start workers so a failed build leaks nothing.
	// Queue size of 256 accommodates a full foliage fan-out with headroom.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
	animOpts := []animator.AnimatorBuilderOption{
		animator.WithComputePool(s.computePool),
		animator.WithChunkSize(s.chunkSize),
	}

	s.foliage = animator.NewFoliageAnimator(fp, append(animOpts,
		animator.WithRate(s.foliageRate),
		animator.WithFoliageStyle(s.style),
	)...)
	for _, ip := range groupPools {
		s.groups = append(s.groups, animator.NewInstanceAnimator(ip, animOpts...))
	}
	s.topper = animator.NewInstanceAnimator(tp, animOpts...)
	s.star = sampler.StarOutline(s.starPoints, s.starOuter, s.starInner)

	s.static, err = staging.FoliageStatic(s.foliage)
	if err != nil {
		s.computePool.Stop()
		return fmt.Errorf("scene %s: %w", s.name, err)
	}
	return nil
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Update(elapsed, delta float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The toggle is read exactly once so every group sees the same state this frame.
	frame := animator.Frame{Elapsed: elapsed, Delta: delta, Formed: s.signal.Formed()}.Sanitize()

	s.foliage.PrepareFrame(frame)
	for _, g := range s.groups {
		g.PrepareFrame(frame)
	}
	s.topper.PrepareFrame(frame)
	s.frame = frame
}

func (s *scene) Signal() *Signal {
	return s.signal
}

func (s *scene) Formed() bool {
	return s.signal.Formed()
}

func (s *scene) Toggle() bool {
	formed := s.signal.Toggle()
	log.Printf("[Scene] %s: toggled, formed=%v", s.name, formed)
	return formed
}

func (s *scene) LastFrame() animator.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

func (s *scene) Foliage() animator.FoliageAnimator {
	return s.foliage
}

func (s *scene) Groups() []animator.InstanceAnimator {
	out := make([]animator.InstanceAnimator, len(s.groups))
	copy(out, s.groups)
	return out
}

func (s *scene) Topper() animator.InstanceAnimator {
	return s.topper
}

func (s *scene) Shape() sampler.ConeShape {
	return s.shape
}

func (s *scene) Star() []mgl32.Vec2 {
	return s.star
}

func (s *scene) Static() []staging.BufferWrite {
	return s.static
}

func (s *scene) Close() {
	s.closeOnce.Do(func() {
		s.computePool.Stop()
	})
}
