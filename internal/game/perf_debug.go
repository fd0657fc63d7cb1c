package game

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"peakcast/internal/threading"
	"peakcast/internal/threading/monitoring"
)

const (
	perfAlertDuration = 3 * time.Second
	perfLogInterval   = 3 * time.Second

	debugOverlayWidth = 240
	debugOverlayY     = 4
)

// perfLog writes a snapshot to the log when performance alerts persist
type perfLog struct {
	alertSince time.Time
	lastLog    time.Time
}

func (p *perfLog) check(tc *threading.ThreadingComponents) {
	alerts := tc.CheckPerformanceAlerts()
	if p.shouldLog(len(alerts) > 0, time.Now()) {
		logPerfSnapshot(alerts, tc.PerformanceMonitor.GetDetailedStats())
	}
}

// shouldLog reports whether a snapshot is due. Alerts must persist for perfAlertDuration and
// snapshots are at least perfLogInterval apart.
func (p *perfLog) shouldLog(alerting bool, now time.Time) bool {
	if !alerting {
		p.alertSince = time.Time{}
		p.lastLog = time.Time{}
		return false
	}
	if p.alertSince.IsZero() {
		p.alertSince = now
		return false
	}
	if now.Sub(p.alertSince) < perfAlertDuration {
		return false
	}
	if !p.lastLog.IsZero() && now.Sub(p.lastLog) < perfLogInterval {
		return false
	}
	p.lastLog = now
	return true
}

func logPerfSnapshot(alerts []monitoring.PerformanceAlert, stats map[string]interface{}) {
	causes := make([]string, 0, len(alerts))
	for _, a := range alerts {
		causes = append(causes, fmt.Sprintf("%s (%.1f, threshold %.0f)", a.Type, a.Value, a.Threshold))
	}
	log.Printf("[Perf] %s for >=%s | fps=%.1f tps=%.1f", strings.Join(causes, ", "), perfAlertDuration,
		ebiten.ActualFPS(), ebiten.ActualTPS())
	log.Printf("[Perf] frame=%.2fms raycast=%.2fms rays=%d goroutines=%d mem_alloc=%dMB gc_cycles=%d",
		getPerfFloat(stats, "avg_frame_time_ms"),
		getPerfFloat(stats, "avg_raycast_time_ms"),
		getPerfUint(stats, "rays_cast"),
		getPerfInt(stats, "goroutines"),
		getPerfUint(stats, "memory_alloc_mb"),
		getPerfUint(stats, "gc_cycles"),
	)
}

// drawDebugOverlay prints frame statistics in the top right corner
func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	msg := debugText(g.threading.GetPerformanceMetrics(), ebiten.ActualFPS(), ebiten.ActualTPS(),
		g.state, g.renderer.NumRays)
	x := screen.Bounds().Dx() - debugOverlayWidth
	ebitenutil.DebugPrintAt(screen, msg, x, debugOverlayY)
}

func debugText(m monitoring.FrameMetrics, fps, tps float64, st *State, rays int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f\n", fps, tps)
	fmt.Fprintf(&b, "Frame: %.2fms  draw: %.2fms\n",
		float64(m.FrameTime.Microseconds())/1000, float64(m.DrawTime.Microseconds())/1000)
	fmt.Fprintf(&b, "Rays: %d  cast: %.2fms (avg %.2fms)\n", rays,
		float64(m.RaycastTime.Microseconds())/1000, float64(m.AvgRaycastTime.Microseconds())/1000)
	fmt.Fprintf(&b, "Pos: %.2f, %.2f\n", st.Player.Position.X, st.Player.Position.Y)
	fmt.Fprintf(&b, "Angle: %.1f  Look: %.1f\n", degrees(st.Player.Angle), degrees(st.Player.LookOffset))
	fmt.Fprintf(&b, "Textures: %s  Mode: %s\n", st.Textures, st.Menu.Mode())
	fmt.Fprintf(&b, "Mem: %dMB", m.MemoryUsageMB)
	return b.String()
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func getPerfFloat(stats map[string]interface{}, key string) float64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case uint64:
			return float64(v)
		}
	}
	return 0
}

func getPerfInt(stats map[string]interface{}, key string) int {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case uint64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

func getPerfUint(stats map[string]interface{}, key string) uint64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case uint64:
			return v
		case uint32:
			return uint64(v)
		case int:
			return uint64(v)
		case float64:
			return uint64(v)
		}
	}
	return 0
}
