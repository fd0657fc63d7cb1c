package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"peakcast/internal/player"
)

// Keyboard answers held and edge-triggered key queries for the current tick
type Keyboard interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
}

// Key bindings
const (
	keyForward     = ebiten.KeyW
	keyBack        = ebiten.KeyS
	keyStrafeLeft  = ebiten.KeyA
	keyStrafeRight = ebiten.KeyD
	keyTurnLeft    = ebiten.KeyArrowLeft
	keyTurnRight   = ebiten.KeyArrowRight
	keyLookUp      = ebiten.KeyArrowUp
	keyLookDown    = ebiten.KeyArrowDown
	keyPause       = ebiten.KeyE
	keyConfirm     = ebiten.KeyEnter
	keyMinimap     = ebiten.KeyM
	keyDebug       = ebiten.KeyF3
)

// trackedKeys lists every key the game polls
var trackedKeys = []ebiten.Key{
	keyForward, keyBack, keyStrafeLeft, keyStrafeRight,
	keyTurnLeft, keyTurnRight, keyLookUp, keyLookDown,
	keyPause, keyConfirm, keyMinimap, keyDebug,
}

// readControls converts this tick's keyboard state and pointer motion into Controls
func readControls(kb Keyboard, pointerDX, pointerDY float64) Controls {
	return Controls{
		Input: player.Input{
			Forward:     kb.IsKeyPressed(keyForward),
			Back:        kb.IsKeyPressed(keyBack),
			StrafeLeft:  kb.IsKeyPressed(keyStrafeLeft),
			StrafeRight: kb.IsKeyPressed(keyStrafeRight),
			TurnLeft:    kb.IsKeyPressed(keyTurnLeft),
			TurnRight:   kb.IsKeyPressed(keyTurnRight),
			LookUp:      kb.IsKeyPressed(keyLookUp),
			LookDown:    kb.IsKeyPressed(keyLookDown),
			PointerDX:   pointerDX,
			PointerDY:   pointerDY,
		},
		TogglePause: kb.IsKeyJustPressed(keyPause),
		MenuUp:      kb.IsKeyJustPressed(keyLookUp),
		MenuDown:    kb.IsKeyJustPressed(keyLookDown),
		MenuConfirm: kb.IsKeyJustPressed(keyConfirm),
		ToggleMap:   kb.IsKeyJustPressed(keyMinimap),
		ToggleDebug: kb.IsKeyJustPressed(keyDebug),
	}
}

// pointer turns absolute cursor positions into per-tick deltas
type pointer struct {
	x, y  int
	valid bool
}

// delta returns the motion since the previous sample. The first sample after a reset is zero.
func (p *pointer) delta(x, y int) (float64, float64) {
	if !p.valid {
		p.x, p.y, p.valid = x, y, true
		return 0, 0
	}
	dx, dy := x-p.x, y-p.y
	p.x, p.y = x, y
	return float64(dx), float64(dy)
}

func (p *pointer) reset() {
	p.valid = false
}
