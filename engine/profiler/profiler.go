package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/flicker-go/log"
)

var logger = log.New("profiler")

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a fixed one second interval.
type Profiler struct {
	frameCount int
	lastTime   time.Time
	memStats   runtime.MemStats
}

// NewProfiler creates a new Profiler with default settings.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime: time.Now(),
	}
}

// Tick should be called once per frame to track frame timing.
// Logs FPS and heap statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < time.Second {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	logger.Noticef("FPS: %.2f | Heap: %.2f MB | Sys: %.2f MB | GC: %d", fps, allocMB, sysMB, p.memStats.NumGC)

	p.frameCount = 0
	p.lastTime = currentTime
	return true
}
