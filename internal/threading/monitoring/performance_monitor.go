package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// smoothing factor for the running averages
const averageWeight = 0.1

// PerformanceMonitor tracks frame and ray-pass timings
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds between consecutive frame starts
	drawTime   atomic.Uint64 // nanoseconds from frame start to frame end

	// Rendering metrics
	raycastTime   atomic.Uint64 // nanoseconds
	raycastPasses atomic.Uint64
	raysCast      atomic.Uint64

	// Statistics
	mutex          sync.RWMutex
	lastFrameStart time.Time
	avgFrameTime   float64
	avgRaycastTime float64
	startTime      time.Time
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime: time.Now(),
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing. The time since the previous StartFrame is recorded as the
// frame time.
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	now := time.Now()

	pm.mutex.Lock()
	last := pm.lastFrameStart
	pm.lastFrameStart = now
	pm.mutex.Unlock()

	if !last.IsZero() {
		pm.RecordFrame(now.Sub(last))
	}
	return &FrameTimer{
		monitor:   pm,
		startTime: now,
	}
}

// EndFrame records how long the frame took to draw
func (ft *FrameTimer) EndFrame() {
	ft.monitor.drawTime.Store(uint64(time.Since(ft.startTime).Nanoseconds()))
}

// RecordFrame stores the time between two frames
func (pm *PerformanceMonitor) RecordFrame(d time.Duration) {
	pm.frameTime.Store(uint64(d.Nanoseconds()))
	count := pm.frameCount.Add(1)

	pm.mutex.Lock()
	pm.avgFrameTime = runningAverage(pm.avgFrameTime, float64(d.Nanoseconds()), count)
	pm.mutex.Unlock()
}

// RaycastTimer helps measure one ray pass
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
	rays      int
}

// StartRaycast begins timing a pass of rays
func (pm *PerformanceMonitor) StartRaycast(rays int) *RaycastTimer {
	return &RaycastTimer{
		monitor:   pm,
		startTime: time.Now(),
		rays:      rays,
	}
}

// EndRaycast completes raycast timing
func (rt *RaycastTimer) EndRaycast() {
	rt.monitor.RecordRaycast(time.Since(rt.startTime), rt.rays)
}

// RecordRaycast stores the duration of one pass of rays
func (pm *PerformanceMonitor) RecordRaycast(d time.Duration, rays int) {
	pm.raycastTime.Store(uint64(d.Nanoseconds()))
	pm.raysCast.Add(uint64(rays))
	passes := pm.raycastPasses.Add(1)

	pm.mutex.Lock()
	pm.avgRaycastTime = runningAverage(pm.avgRaycastTime, float64(d.Nanoseconds()), passes)
	pm.mutex.Unlock()
}

// runningAverage folds the n-th sample into avg; the first sample seeds it
func runningAverage(avg, sample float64, n uint64) float64 {
	if n <= 1 {
		return sample
	}
	return avg + (sample-avg)*averageWeight
}

// FrameMetrics is a snapshot for the debug overlay
type FrameMetrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	DrawTime        time.Duration
	RaycastTime     time.Duration
	AvgRaycastTime  time.Duration
	FrameCount      uint64
	RaycastPasses   uint64
	RaysCast        uint64
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	frameTime := pm.frameTime.Load()
	fps := 0.0
	if pm.avgFrameTime > 0 {
		fps = float64(time.Second) / pm.avgFrameTime
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return FrameMetrics{
		FramesPerSecond: fps,
		FrameTime:       time.Duration(frameTime),
		DrawTime:        time.Duration(pm.drawTime.Load()),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		AvgRaycastTime:  time.Duration(pm.avgRaycastTime),
		FrameCount:      pm.frameCount.Load(),
		RaycastPasses:   pm.raycastPasses.Load(),
		RaysCast:        pm.raysCast.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":      time.Since(pm.startTime).Seconds(),
		"frame_count":         pm.frameCount.Load(),
		"avg_frame_time_ms":   pm.avgFrameTime / 1e6,
		"draw_time_ms":        float64(pm.drawTime.Load()) / 1e6,
		"avg_raycast_time_ms": pm.avgRaycastTime / 1e6,
		"raycast_passes":      pm.raycastPasses.Load(),
		"rays_cast":           pm.raysCast.Load(),
		"memory_alloc_mb":     memStats.Alloc / 1024 / 1024,
		"gc_cycles":           memStats.NumGC,
		"cpu_cores":           runtime.NumCPU(),
		"goroutines":          runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	frameTime := pm.frameTime.Load()
	if frameTime > 0 {
		fps := float64(time.Second) / float64(frameTime)
		if fps < 30 {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: 30,
				Timestamp: currentTime,
			})
		}
	}

	// A ray pass longer than half a 60 FPS frame leaves no room for drawing
	raycastMs := float64(pm.raycastTime.Load()) / 1e6
	if raycastMs > 8 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_raycast",
			Message:   "Ray pass is taking more than 8ms",
			Value:     raycastMs,
			Threshold: 8,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.drawTime.Store(0)
	pm.raycastTime.Store(0)
	pm.raycastPasses.Store(0)
	pm.raysCast.Store(0)

	pm.mutex.Lock()
	pm.lastFrameStart = time.Time{}
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
