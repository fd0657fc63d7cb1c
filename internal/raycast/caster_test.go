package raycast

import (
	"math"
	"testing"

	"peakcast/internal/config"
	"peakcast/internal/world"
)

// openGrid has no walls anywhere, not even outside its extents
type openGrid struct{}

func (openGrid) Cell(row, col int) world.CellCode { return world.CellEmpty }

// roomGrid is a closed width x height room with no interior walls
func roomGrid(width, height int) *world.Grid {
	rows := make([][]int, height)
	for y := range rows {
		rows[y] = make([]int, width)
		for x := range rows[y] {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				rows[y][x] = 1
			}
		}
	}
	return world.MustGrid(rows)
}

func casters() map[string]*Caster {
	return map[string]*Caster{
		"march": {Step: DefaultStep, MaxDepth: DefaultMaxDepth, Mode: ModeMarch},
		"dda":   {Step: DefaultStep, MaxDepth: DefaultMaxDepth, Mode: ModeDDA},
	}
}

func TestCast_TowardWall(t *testing.T) {
	grid := roomGrid(10, 8)

	testCases := []struct {
		name     string
		x, y     float64
		angle    float64
		boundary float64 // distance to the first wall face
	}{
		{"east", 2.5, 3.5, 0, 6.5},
		{"west", 2.5, 3.5, math.Pi, 1.5},
		{"south", 2.5, 3.5, math.Pi / 2, 3.5},
		{"north", 2.5, 3.5, -math.Pi / 2, 2.5},
		{"diagonal", 4, 4, math.Pi / 4, 3 * math.Sqrt2},
	}

	for mode, c := range casters() {
		for _, tc := range testCases {
			t.Run(mode+"/"+tc.name, func(t *testing.T) {
				h := c.Cast(tc.x, tc.y, tc.angle, tc.angle, grid)
				if !h.Hit {
					t.Fatalf("expected a hit")
				}
				if math.IsNaN(h.Distance) || math.IsInf(h.Distance, 0) {
					t.Fatalf("distance should be finite, got %v", h.Distance)
				}
				if h.Distance > tc.boundary+c.Step+1e-9 {
					t.Errorf("distance %v beyond boundary %v + step", h.Distance, tc.boundary)
				}
				if h.Distance < tc.boundary-1e-9 {
					t.Errorf("distance %v stops short of boundary %v", h.Distance, tc.boundary)
				}
				if !h.Cell.IsWall() {
					t.Errorf("hit cell %v should be a wall", h.Cell)
				}
			})
		}
	}
}

func TestCast_PerpEqualsRawWhenFacing(t *testing.T) {
	grid := roomGrid(10, 8)
	for mode, c := range casters() {
		h := c.Cast(3.3, 4.1, 0.7, 0.7, grid)
		if h.PerpDistance != h.Distance {
			t.Errorf("%s: expected perp == raw, got %v vs %v", mode, h.PerpDistance, h.Distance)
		}
	}
}

func TestCast_PerpendicularRayProjectsFinite(t *testing.T) {
	grid := roomGrid(10, 8)
	cfg := config.DefaultConfig()
	p := NewProjectorFromConfig(cfg)

	for mode, c := range casters() {
		for _, offset := range []float64{math.Pi / 2, -math.Pi / 2} {
			h := c.Cast(4.5, 4.5, 0, offset, grid)
			if math.Abs(h.PerpDistance) > 1e-9 {
				t.Errorf("%s: expected perp ~0 at 90 degrees, got %v", mode, h.PerpDistance)
			}
			height := p.WallHeight(h.PerpDistance)
			if math.IsNaN(height) || math.IsInf(height, 0) || height <= 0 {
				t.Errorf("%s: expected finite positive height, got %v", mode, height)
			}
		}
	}
}

func TestCast_NoHitIsFarHit(t *testing.T) {
	for mode, c := range casters() {
		h := c.Cast(0.5, 0.5, 0, 0, openGrid{})
		if h.Hit {
			t.Errorf("%s: expected no hit in an open grid", mode)
		}
		if math.Abs(h.Distance-c.MaxDepth) > c.Step+1e-9 {
			t.Errorf("%s: expected distance near max depth, got %v", mode, h.Distance)
		}
		if math.Abs(h.HitX-(0.5+h.Distance)) > 1e-9 {
			t.Errorf("%s: far point should lie on the ray, got x=%v", mode, h.HitX)
		}
	}
}

func TestCast_DDAAgreesWithMarch(t *testing.T) {
	grid := roomGrid(12, 9)
	cs := casters()
	march, dda := cs["march"], cs["dda"]

	origins := [][2]float64{{1.5, 1.5}, {5.25, 4.75}, {10.9, 7.1}}
	for _, o := range origins {
		for deg := 0; deg < 360; deg += 3 {
			angle := float64(deg) * math.Pi / 180
			m := march.Cast(o[0], o[1], angle, angle, grid)
			d := dda.Cast(o[0], o[1], angle, angle, grid)
			if m.Hit != d.Hit {
				t.Fatalf("hit flags differ at %v deg from %v", deg, o)
			}
			if math.Abs(m.Distance-d.Distance) > march.Step+1e-9 {
				t.Errorf("distance differs at %v deg from %v: march %v dda %v", deg, o, m.Distance, d.Distance)
			}
		}
	}
}

func TestCast_CorridorEndToEnd(t *testing.T) {
	m := world.CorridorMap("peak")
	cfg := config.DefaultConfig()
	p := NewProjectorFromConfig(cfg)

	for mode, c := range casters() {
		t.Run(mode, func(t *testing.T) {
			// The middle ray of an even fan points straight down the corridor
			view := p.RayAngle(0, cfg.Camera.NumRays/2, cfg.Camera.NumRays)
			if math.Abs(view) > 1e-12 {
				t.Fatalf("middle ray should face east, got %v", view)
			}
			h := c.Cast(m.Start.X, m.Start.Y, 0, view, m.Grid)
			if !h.Hit {
				t.Fatal("expected corridor ray to hit the east wall")
			}
			if math.Abs(h.HitX-6.0) > c.Step+1e-9 {
				t.Errorf("expected hitX ~6.0, got %v", h.HitX)
			}
			if math.Abs(h.Distance-4.5) > c.Step+1e-9 {
				t.Errorf("expected distance ~4.5, got %v", h.Distance)
			}
			if h.Distance >= c.MaxDepth {
				t.Errorf("distance %v should be under max depth", h.Distance)
			}
			if h.Row != 1 || h.Col != 6 {
				t.Errorf("expected hit cell (1,6), got (%d,%d)", h.Row, h.Col)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("dda"); err != nil || m != ModeDDA {
		t.Errorf("expected dda, got %v %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeMarch {
		t.Errorf("expected march default, got %v %v", m, err)
	}
	if _, err := ParseMode("bsp"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestNewCasterFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Camera.CastMode = "dda"
	c, err := NewCaster(cfg)
	if err != nil {
		t.Fatalf("new caster: %v", err)
	}
	if c.Mode != ModeDDA || c.Step != 0.005 || c.MaxDepth != 15 {
		t.Errorf("unexpected caster %+v", c)
	}
}
