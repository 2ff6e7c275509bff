package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one reporting window of frame timings and memory statistics.
type Stats struct {
	FPS         float64
	Frames      int
	AvgUpdate   time.Duration
	AvgRender   time.Duration
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	MaxPauseUs  uint64
}

// Profiler tracks frame rate, per-phase frame cost and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	updateTotal    time.Duration
	renderTotal    time.Duration
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// SetInterval changes how often Tick reports.
//
// Parameters:
//   - d: the reporting interval, zero reports every tick
func (p *Profiler) SetInterval(d time.Duration) {
	p.updateInterval = d
}

// Tick should be called once per frame with the time the frame spent updating and rendering.
// Logs performance statistics when the update interval has elapsed.
//
// Parameters:
//   - update: time spent in the scene update this frame
//   - render: time spent drawing and presenting this frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(update, render time.Duration) bool {
	p.frameCount++
	p.updateTotal += update
	p.renderTotal += render
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	seconds := max(elapsed.Seconds(), 1e-9)
	runtime.ReadMemStats(&p.memStats)

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
			maxPauseUs = pause
		}
	}

	frames := time.Duration(p.frameCount)
	p.last = Stats{
		FPS:         float64(p.frameCount) / seconds,
		Frames:      p.frameCount,
		AvgUpdate:   p.updateTotal / frames,
		AvgRender:   p.renderTotal / frames,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:     gcCount,
		MaxPauseUs:  maxPauseUs,
	}

	log.Printf("[Profiler] FPS: %.2f | Update: %s | Render: %s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (max: %d µs)",
		p.last.FPS, p.last.AvgUpdate, p.last.AvgRender, p.last.HeapMB, p.last.AllocRateMB, gcCount, maxPauseUs)

	p.frameCount = 0
	p.updateTotal = 0
	p.renderTotal = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recently reported window.
//
// Returns:
//   - Stats: the last logged statistics, zero before the first report
func (p *Profiler) Last() Stats {
	return p.last
}
