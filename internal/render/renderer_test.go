package render

import (
	"image/color"
	"math"
	"testing"

	"peakcast/internal/config"
	"peakcast/internal/player"
	"peakcast/internal/raycast"
	"peakcast/internal/texture"
	"peakcast/internal/threading"
	"peakcast/internal/world"
)

type fillCall struct {
	x, y, w, h float64
	c          color.Color
}

type columnCall struct {
	tex        *texture.Texture
	srcX       int
	x, y, w, h float64
}

type textCall struct {
	msg  string
	x, y int
	c    color.Color
}

// recordingSurface records every draw call in order
type recordingSurface struct {
	w, h    int
	order   []string
	fills   []fillCall
	columns []columnCall
	texts   []textCall
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) FillRect(x, y, w, h float64, c color.Color) {
	s.order = append(s.order, "fill")
	s.fills = append(s.fills, fillCall{x, y, w, h, c})
}

func (s *recordingSurface) DrawStretchedColumn(t *texture.Texture, srcX int, x, y, w, h float64) {
	s.order = append(s.order, "column")
	s.columns = append(s.columns, columnCall{t, srcX, x, y, w, h})
}

func (s *recordingSurface) DrawText(msg string, x, y int, c color.Color) {
	s.order = append(s.order, "text")
	s.texts = append(s.texts, textCall{msg, x, y, c})
}

// staticTextures is a texture source with a fixed ready flag
type staticTextures struct {
	ready bool
	tex   *texture.Texture
}

func (s staticTextures) Ready() bool                             { return s.ready }
func (s staticTextures) ForCell(world.CellCode) *texture.Texture { return s.tex }

func newTestRenderer(t *testing.T, cfg *config.Config, tc *threading.ThreadingComponents) *Renderer {
	t.Helper()
	caster, err := raycast.NewCaster(cfg)
	if err != nil {
		t.Fatalf("new caster: %v", err)
	}
	return NewRenderer(cfg, caster, tc)
}

func TestRenderFrame_LoadingIndicator(t *testing.T) {
	cfg := config.DefaultConfig()
	r := newTestRenderer(t, cfg, nil)
	m := world.CorridorMap("peak")
	s := &recordingSurface{w: 800, h: 600}

	r.RenderFrame(s, player.NewState(m.Start.X, m.Start.Y, 0), m.Grid, staticTextures{ready: false})

	if len(s.order) != 2 || s.order[0] != "fill" || s.order[1] != "text" {
		t.Fatalf("expected clear then text, got %v", s.order)
	}
	if f := s.fills[0]; f.w != 800 || f.h != 600 || f.c != background {
		t.Errorf("expected full black clear, got %+v", f)
	}
	txt := s.texts[0]
	if txt.msg != "Loading textures..." || txt.x != 20 || txt.y != 40 {
		t.Errorf("unexpected loading text %+v", txt)
	}
	if txt.c != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("expected green loading text, got %v", txt.c)
	}
}

func TestRenderFrame_CompositesColumns(t *testing.T) {
	cfg := config.DefaultConfig()
	r := newTestRenderer(t, cfg, nil)
	m := world.CorridorMap("peak")
	tex := texture.Checker("peak", 64, 8, color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})
	s := &recordingSurface{w: 1000, h: 800}
	st := player.NewState(m.Start.X, m.Start.Y, 0)

	r.RenderFrame(s, st, m.Grid, staticTextures{ready: true, tex: tex})

	if len(s.fills) != 3 {
		t.Fatalf("expected clear, ceiling and floor fills, got %d", len(s.fills))
	}
	ceiling, floor := s.fills[1], s.fills[2]
	if ceiling.y != 0 || ceiling.h != 400 || ceiling.c != cfg.CeilingColor() {
		t.Errorf("unexpected ceiling %+v", ceiling)
	}
	if floor.y != 400 || floor.h != 400 || floor.c != cfg.FloorColor() {
		t.Errorf("unexpected floor %+v", floor)
	}
	if len(s.texts) != 0 {
		t.Errorf("no text expected once textures are ready, got %+v", s.texts)
	}

	if len(s.columns) != 200 {
		t.Fatalf("expected 200 columns, got %d", len(s.columns))
	}
	for i, c := range s.columns {
		if c.x != float64(i)*5 || c.w != 6 {
			t.Fatalf("column %d: expected x=%v w=6, got x=%v w=%v", i, float64(i)*5, c.x, c.w)
		}
		if c.srcX < 0 || c.srcX >= tex.Width() {
			t.Fatalf("column %d: texture x %d out of range", i, c.srcX)
		}
		if math.IsNaN(c.h) || math.IsInf(c.h, 0) || c.h <= 0 {
			t.Fatalf("column %d: bad height %v", i, c.h)
		}
		// Every slice is centered on the horizon
		if math.Abs(c.y+c.h/2-400) > 1e-6 {
			t.Fatalf("column %d: slice not centered on horizon", i)
		}
	}

	// The middle column looks straight down the corridor at the east wall 4.5 tiles away
	mid := s.columns[100]
	if want := r.Projector.WallHeight(4.5); math.Abs(mid.h-want) > want*0.01 {
		t.Errorf("middle column height %v, want about %v", mid.h, want)
	}
}

func TestRenderFrame_LookShiftsHorizon(t *testing.T) {
	cfg := config.DefaultConfig()
	r := newTestRenderer(t, cfg, nil)
	m := world.CorridorMap("peak")
	tex := texture.Checker("peak", 16, 2, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255})
	s := &recordingSurface{w: 640, h: 480}

	st := player.NewState(m.Start.X, m.Start.Y, 0)
	st.LookOffset = cfg.MaxLook()
	r.RenderFrame(s, st, m.Grid, staticTextures{ready: true, tex: tex})

	if ceiling := s.fills[1]; math.Abs(ceiling.h-360) > 1e-9 {
		t.Errorf("expected horizon at 0.75h = 360, got %v", ceiling.h)
	}
}

func TestRenderFrame_ResizeUpdatesProjection(t *testing.T) {
	cfg := config.DefaultConfig()
	r := newTestRenderer(t, cfg, nil)
	m := world.CorridorMap("peak")
	tex := texture.Checker("peak", 16, 2, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255})

	r.RenderFrame(&recordingSurface{w: 400, h: 300}, player.NewState(1.5, 1.5, 0), m.Grid, staticTextures{ready: true, tex: tex})
	if r.Projector.ScreenWidth != 400 || r.Projector.ScreenHeight != 300 {
		t.Fatalf("projector not resized: %dx%d", r.Projector.ScreenWidth, r.Projector.ScreenHeight)
	}
	if want := cfg.ProjectionCoefficient(400); math.Abs(r.Projector.Coeff-want) > 1e-9 {
		t.Errorf("expected coefficient %v, got %v", want, r.Projector.Coeff)
	}
}

func TestCastRays_ParallelMatchesSequential(t *testing.T) {
	cfg := config.DefaultConfig()
	m := world.CorridorMap("peak")
	st := player.NewState(2.3, 3.4, -0.8)

	sequential := newTestRenderer(t, cfg, threading.NewThreadingComponents(cfg))
	want := append([]raycast.Hit(nil), sequential.CastRays(st, m.Grid)...)

	parallelCfg, err := cfg.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	parallelCfg.Threading.ParallelRays = true
	parallelCfg.Threading.Workers = 4
	tc := threading.NewThreadingComponents(parallelCfg)
	defer tc.Shutdown()
	parallel := newTestRenderer(t, parallelCfg, tc)
	got := parallel.CastRays(st, m.Grid)

	if len(got) != len(want) {
		t.Fatalf("expected %d hits, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ray %d differs: sequential %+v parallel %+v", i, want[i], got[i])
		}
	}
	if tc.GetPerformanceMetrics().RaysCast != uint64(cfg.Camera.NumRays) {
		t.Errorf("expected ray pass to be recorded, got %+v", tc.GetPerformanceMetrics())
	}
}
