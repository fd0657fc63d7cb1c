package game

import (
	"peakcast/internal/player"
	"peakcast/internal/texture"
	"peakcast/internal/world"
)

// Controls is everything the player asked for during one tick
type Controls struct {
	Input player.Input

	// Edge-triggered
	TogglePause bool
	MenuUp      bool
	MenuDown    bool
	MenuConfirm bool
	ToggleMap   bool
	ToggleDebug bool
}

// State is the whole mutable application state. It is owned by the game loop.
type State struct {
	Map    *world.Map
	Player player.State
	Menu   Menu

	ShowMinimap bool
	ShowDebug   bool

	Textures texture.LoadState
	Ticks    uint64
}

// NewState places the player at the map's start position
func NewState(m *world.Map) *State {
	return &State{
		Map:    m,
		Player: player.NewState(m.Start.X, m.Start.Y, m.Start.Angle()),
	}
}

// Tick advances the state by dt seconds. The pause menu sees key presses before movement, and
// movement is frozen while the menu is open.
func (s *State) Tick(c Controls, dt float64, ig *player.Integrator) MenuAction {
	s.Ticks++

	if c.ToggleMap {
		s.ShowMinimap = !s.ShowMinimap
	}
	if c.ToggleDebug {
		s.ShowDebug = !s.ShowDebug
	}

	action := ActionNone
	if c.TogglePause {
		s.Menu.Handle(MenuToggle)
	}
	if s.Menu.Paused() {
		switch {
		case c.MenuUp:
			s.Menu.Handle(MenuUp)
		case c.MenuDown:
			s.Menu.Handle(MenuDown)
		case c.MenuConfirm:
			action = s.Menu.Handle(MenuConfirm)
		}
		return action
	}

	ig.Integrate(&s.Player, c.Input, dt, s.Map.Grid)
	return action
}
