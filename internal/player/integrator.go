package player

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"

	"peakcast/internal/config"
)

// Blocker answers point-in-grid collision queries. Points outside the grid must report blocked.
type Blocker interface {
	IsBlocked(x, y float64) bool
}

// Integrator advances a State from one frame of input
type Integrator struct {
	MoveSpeed        float64 // grid units per second
	TurnSpeed        float64 // radians per second
	LookSpeed        float64 // radians per second
	MaxLook          float64 // radians
	MouseSensitivity float64 // radians per pointer unit
	MaxFrameDelta    float64 // seconds; larger dt values are clamped
}

// NewIntegrator builds an integrator from the movement section of the config
func NewIntegrator(cfg *config.Config) *Integrator {
	return &Integrator{
		MoveSpeed:        cfg.GetMoveSpeed(),
		TurnSpeed:        cfg.GetTurnSpeed(),
		LookSpeed:        cfg.GetLookSpeed(),
		MaxLook:          cfg.MaxLook(),
		MouseSensitivity: cfg.Movement.MouseSensitivity,
		MaxFrameDelta:    cfg.Movement.MaxFrameDelta,
	}
}

// Integrate applies one frame of input to st. Translation is resolved one axis at a time so the
// player slides along walls instead of stopping dead.
func (ig *Integrator) Integrate(st *State, in Input, dt float64, grid Blocker) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if ig.MaxFrameDelta > 0 && dt > ig.MaxFrameDelta {
		dt = ig.MaxFrameDelta
	}

	dx, dy := ig.displacement(*st, in, dt)

	if in.TurnLeft {
		st.Angle -= ig.TurnSpeed * dt
	}
	if in.TurnRight {
		st.Angle += ig.TurnSpeed * dt
	}
	if in.LookUp {
		st.LookOffset += ig.LookSpeed * dt
	}
	if in.LookDown {
		st.LookOffset -= ig.LookSpeed * dt
	}

	// Pointer look
	st.Angle += in.PointerDX * ig.MouseSensitivity
	st.LookOffset -= in.PointerDY * ig.MouseSensitivity
	st.LookOffset = geom.Clamp(st.LookOffset, -ig.MaxLook, ig.MaxLook)

	newX := st.Position.X + dx
	if !grid.IsBlocked(newX, st.Position.Y) {
		st.Position.X = newX
	}
	newY := st.Position.Y + dy
	if !grid.IsBlocked(st.Position.X, newY) {
		st.Position.Y = newY
	}
}

// displacement sums the movement keys. Diagonals are not normalized: W+D covers more ground
// than W alone.
func (ig *Integrator) displacement(st State, in Input, dt float64) (dx, dy float64) {
	step := ig.MoveSpeed * dt
	if in.Forward {
		dx += st.GetForwardX() * step
		dy += st.GetForwardY() * step
	}
	if in.Back {
		dx -= st.GetForwardX() * step
		dy -= st.GetForwardY() * step
	}
	if in.StrafeLeft {
		dx -= st.GetRightX() * step
		dy -= st.GetRightY() * step
	}
	if in.StrafeRight {
		dx += st.GetRightX() * step
		dy += st.GetRightY() * step
	}
	return dx, dy
}
