package player

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

// State is the viewpoint moving through the grid
type State struct {
	Position   geom.Vector2 // World position in grid units
	Angle      float64      // Facing angle in radians, unbounded
	LookOffset float64      // Vertical look in radians, clamped by the integrator
}

// NewState creates a player at (x, y) facing angle
func NewState(x, y, angle float64) State {
	return State{Position: geom.Vector2{X: x, Y: y}, Angle: angle}
}

// GetForwardX returns the X component of the forward direction vector
func (s State) GetForwardX() float64 {
	return math.Cos(s.Angle)
}

// GetForwardY returns the Y component of the forward direction vector
func (s State) GetForwardY() float64 {
	return math.Sin(s.Angle)
}

// GetRightX returns the X component of the right direction vector
func (s State) GetRightX() float64 {
	return math.Cos(s.Angle + math.Pi/2)
}

// GetRightY returns the Y component of the right direction vector
func (s State) GetRightY() float64 {
	return math.Sin(s.Angle + math.Pi/2)
}

// GetPosition returns the current position
func (s State) GetPosition() (float64, float64) {
	return s.Position.X, s.Position.Y
}
