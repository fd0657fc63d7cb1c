package render

import (
	"image/color"

	"peakcast/internal/config"
	"peakcast/internal/player"
	"peakcast/internal/raycast"
	"peakcast/internal/texture"
	"peakcast/internal/threading"
	"peakcast/internal/threading/monitoring"
	"peakcast/internal/threading/rendering"
	"peakcast/internal/world"
)

// LoadingText is shown while textures are still being decoded
const LoadingText = "Loading textures..."

// Position of the loading text
const (
	LoadingTextX = 20
	LoadingTextY = 40
)

var background = color.RGBA{0, 0, 0, 255}

// Surface is the framebuffer a frame is composited onto
type Surface interface {
	Size() (w, h int)
	FillRect(x, y, w, h float64, c color.Color)
	// DrawStretchedColumn draws texture column srcX scaled to the destination rectangle
	DrawStretchedColumn(t *texture.Texture, srcX int, dstX, dstY, dstW, dstH float64)
	DrawText(msg string, x, y int, c color.Color)
}

// TextureSource supplies wall textures once they have loaded
type TextureSource interface {
	Ready() bool
	ForCell(code world.CellCode) *texture.Texture
}

// Renderer composites the first-person view one ray column at a time
type Renderer struct {
	Caster    *raycast.Caster
	Projector *raycast.Projector
	NumRays   int

	CeilingColor color.Color
	FloorColor   color.Color
	LoadingColor color.Color

	parallel *rendering.ParallelRenderer
	monitor  *monitoring.PerformanceMonitor
	hits     []raycast.Hit
}

// NewRenderer builds a renderer from the config. tc may be nil, in which case rays are cast
// sequentially and nothing is timed.
func NewRenderer(cfg *config.Config, caster *raycast.Caster, tc *threading.ThreadingComponents) *Renderer {
	r := &Renderer{
		Caster:       caster,
		Projector:    raycast.NewProjectorFromConfig(cfg),
		NumRays:      cfg.Camera.NumRays,
		CeilingColor: cfg.CeilingColor(),
		FloorColor:   cfg.FloorColor(),
		LoadingColor: cfg.LoadingColor(),
	}
	if tc != nil {
		r.parallel = tc.ParallelRenderer
		r.monitor = tc.PerformanceMonitor
	}
	return r
}

// RenderFrame draws one frame of st's view of grid onto s
func (r *Renderer) RenderFrame(s Surface, st player.State, grid raycast.Grid, tex TextureSource) {
	w, h := s.Size()
	if w != r.Projector.ScreenWidth || h != r.Projector.ScreenHeight {
		r.Projector.Resize(w, h)
	}

	s.FillRect(0, 0, float64(w), float64(h), background)

	if !tex.Ready() {
		s.DrawText(LoadingText, LoadingTextX, LoadingTextY, r.LoadingColor)
		return
	}

	horizon := r.Projector.Horizon(st.LookOffset)
	s.FillRect(0, 0, float64(w), horizon, r.CeilingColor)
	s.FillRect(0, horizon, float64(w), float64(h)-horizon, r.FloorColor)

	hits := r.CastRays(st, grid)
	for i, hit := range hits {
		t := tex.ForCell(hit.Cell)
		if t == nil {
			continue
		}
		col := r.Projector.Column(i, len(hits), hit, st.LookOffset, t.Width())
		s.DrawStretchedColumn(t, col.TexX, col.X, col.Top, col.Width, col.Height)
	}
}

// CastRays casts the frame's fan of rays. The returned slice is reused by the next call.
func (r *Renderer) CastRays(st player.State, grid raycast.Grid) []raycast.Hit {
	numRays := r.NumRays
	if numRays <= 0 {
		numRays = 1
	}

	if r.monitor != nil {
		defer r.monitor.StartRaycast(numRays).EndRaycast()
	}

	castFunc := func(i int) raycast.Hit {
		view := r.Projector.RayAngle(st.Angle, i, numRays)
		return r.Caster.Cast(st.Position.X, st.Position.Y, st.Angle, view, grid)
	}

	if r.parallel != nil {
		r.hits = r.parallel.RenderRaycast(numRays, castFunc, r.hits)
		return r.hits
	}

	if cap(r.hits) < numRays {
		r.hits = make([]raycast.Hit, numRays)
	}
	r.hits = r.hits[:numRays]
	for i := range r.hits {
		r.hits[i] = castFunc(i)
	}
	return r.hits
}

// LastHits returns the rays cast by the most recent frame
func (r *Renderer) LastHits() []raycast.Hit {
	return r.hits
}
