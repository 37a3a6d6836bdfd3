package profiler

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// Profiler tracks frame rate, camera update rate and memory statistics.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	logger zerolog.Logger
	now    func() time.Time

	frameCount     int
	updateCount    int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// Stats is one reporting interval's worth of measurements.
type Stats struct {
	FPS float64
	// UpdateRate is the number of frames per second in which the camera moved.
	UpdateRate  float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// NewProfiler creates a new Profiler that logs to logger.
// Update interval defaults to 1 second.
//
// Parameters:
//   - logger: destination for the periodic stats line
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger zerolog.Logger) *Profiler {
	return &Profiler{
		logger:         logger.With().Str("component", "profiler").Logger(),
		now:            time.Now,
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// SetInterval changes how often stats are reported. Non-positive values are ignored.
func (p *Profiler) SetInterval(interval time.Duration) {
	if interval > 0 {
		p.updateInterval = interval
	}
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
//
// Parameters:
//   - cameraChanged: whether the controls moved the camera this frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(cameraChanged bool) bool {
	p.frameCount++
	if cameraChanged {
		p.updateCount++
	}
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	stats := p.collect(elapsed)
	p.logger.Info().
		Float64("fps", stats.FPS).
		Float64("camera_updates_per_sec", stats.UpdateRate).
		Float64("heap_mb", stats.HeapMB).
		Float64("alloc_rate_mb_s", stats.AllocRateMB).
		Uint32("gc", stats.GCCount).
		Uint64("gc_last_pause_us", stats.LastPauseUs).
		Uint64("gc_max_pause_us", stats.MaxPauseUs).
		Float64("sys_mb", stats.SysMB).
		Msg("frame stats")

	p.frameCount = 0
	p.updateCount = 0
	p.lastTime = currentTime
	p.lastGCCount = stats.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// collect reads the runtime memory statistics for the interval that just ended.
func (p *Profiler) collect(elapsed time.Duration) Stats {
	seconds := elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)

	// Alloc: live heap; TotalAlloc: cumulative allocations (tracks churn); Sys: process footprint
	stats := Stats{
		FPS:         float64(p.frameCount) / seconds,
		UpdateRate:  float64(p.updateCount) / seconds,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:     p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}

	gcCount := stats.GCCount
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		stats.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			stats.MaxPauseUs = max(stats.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}
	return stats
}
