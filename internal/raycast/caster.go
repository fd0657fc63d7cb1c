package raycast

import (
	"fmt"
	"math"

	"peakcast/internal/config"
	"peakcast/internal/mathutil"
	"peakcast/internal/world"
)

// Grid is the read-only map view the caster marches through. Indices outside the grid must
// return a wall code.
type Grid interface {
	Cell(row, col int) world.CellCode
}

// Mode selects the grid traversal algorithm
type Mode int

const (
	ModeMarch Mode = iota // fixed-step marching
	ModeDDA               // exact cell-boundary traversal
)

// ParseMode converts the config cast_mode string
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "march":
		return ModeMarch, nil
	case "dda":
		return ModeDDA, nil
	}
	return ModeMarch, fmt.Errorf("unknown cast mode %q", s)
}

func (m Mode) String() string {
	if m == ModeDDA {
		return "dda"
	}
	return "march"
}

// Default marching constants
const (
	DefaultStep     = 0.005
	DefaultMaxDepth = 15.0
)

// Hit is the result of one ray. It only lives for the frame that produced it.
type Hit struct {
	PerpDistance float64 // fisheye corrected distance, not clamped
	Distance     float64 // distance along the ray
	HitX, HitY   float64 // world point where marching stopped
	Hit          bool    // false when the ray reached MaxDepth without touching a wall
	Cell         world.CellCode
	Row, Col     int
}

// Caster casts rays against a grid
type Caster struct {
	Step     float64
	MaxDepth float64
	Mode     Mode
}

// NewCaster builds a caster from the camera section of the config
func NewCaster(cfg *config.Config) (*Caster, error) {
	mode, err := ParseMode(cfg.Camera.CastMode)
	if err != nil {
		return nil, err
	}
	return &Caster{Step: cfg.Camera.RayStep, MaxDepth: cfg.Camera.MaxDepth, Mode: mode}, nil
}

// Cast sends a ray from (originX, originY) along view. facing is the player's angle and is used
// only to remove the fisheye distortion from the returned distance.
func (c *Caster) Cast(originX, originY, facing, view float64, grid Grid) Hit {
	var h Hit
	if c.Mode == ModeDDA {
		h = c.castDDA(originX, originY, view, grid)
	} else {
		h = c.castMarch(originX, originY, view, grid)
	}
	h.PerpDistance = h.Distance * math.Cos(view-facing)
	return h
}

func (c *Caster) step() float64 {
	if c.Step > 0 {
		return c.Step
	}
	return DefaultStep
}

func (c *Caster) castMarch(ox, oy, view float64, grid Grid) Hit {
	step := c.step()
	cos, sin := math.Cos(view), math.Sin(view)

	h := Hit{HitX: ox, HitY: oy}
	for i := 1; h.Distance < c.MaxDepth; i++ {
		h.Distance = float64(i) * step
		h.HitX = ox + cos*h.Distance
		h.HitY = oy + sin*h.Distance
		h.Row, h.Col = mathutil.FloorInt(h.HitY), mathutil.FloorInt(h.HitX)
		if code := grid.Cell(h.Row, h.Col); code.IsWall() {
			h.Hit = true
			h.Cell = code
			return h
		}
	}
	return h
}

func (c *Caster) castDDA(ox, oy, view float64, grid Grid) Hit {
	cos, sin := math.Cos(view), math.Sin(view)
	col, row := mathutil.FloorInt(ox), mathutil.FloorInt(oy)

	if code := grid.Cell(row, col); code.IsWall() {
		// Starting inside a wall: report it at the first marching sample
		d := c.step()
		return Hit{Distance: d, HitX: ox + cos*d, HitY: oy + sin*d, Hit: true, Cell: code, Row: row, Col: col}
	}

	stepCol, sideX, deltaX := axisSetup(ox, cos)
	stepRow, sideY, deltaY := axisSetup(oy, sin)

	for {
		var dist float64
		if sideX < sideY {
			dist = sideX
			sideX += deltaX
			col += stepCol
		} else {
			dist = sideY
			sideY += deltaY
			row += stepRow
		}

		if dist >= c.MaxDepth || math.IsInf(dist, 1) {
			d := c.MaxDepth
			return Hit{
				Distance: d,
				HitX:     ox + cos*d,
				HitY:     oy + sin*d,
				Row:      mathutil.FloorInt(oy + sin*d),
				Col:      mathutil.FloorInt(ox + cos*d),
			}
		}

		if code := grid.Cell(row, col); code.IsWall() {
			return Hit{
				Distance: dist,
				HitX:     ox + cos*dist,
				HitY:     oy + sin*dist,
				Hit:      true,
				Cell:     code,
				Row:      row,
				Col:      col,
			}
		}
	}
}

// axisSetup returns the cell step, the distance to the first boundary and the distance between
// boundaries along one axis
func axisSetup(origin, dir float64) (step int, side, delta float64) {
	step = mathutil.FloatSign(dir)
	if step == 0 {
		return 0, math.Inf(1), math.Inf(1)
	}
	delta = math.Abs(1 / dir)
	cell := math.Floor(origin)
	if step < 0 {
		side = (origin - cell) * delta
	} else {
		side = (cell + 1 - origin) * delta
	}
	return step, side, delta
}
