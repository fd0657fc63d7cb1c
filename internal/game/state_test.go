package game

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"peakcast/internal/config"
	"peakcast/internal/player"
	"peakcast/internal/world"
)

// fakeKeyboard reports a fixed set of held and freshly pressed keys
type fakeKeyboard struct {
	held map[ebiten.Key]bool
	just map[ebiten.Key]bool
}

func (k fakeKeyboard) IsKeyPressed(key ebiten.Key) bool     { return k.held[key] }
func (k fakeKeyboard) IsKeyJustPressed(key ebiten.Key) bool { return k.just[key] }

func newTestState(t *testing.T) (*State, *player.Integrator) {
	t.Helper()
	return NewState(world.CorridorMap("peak")), player.NewIntegrator(config.DefaultConfig())
}

func TestNewStateUsesMapStart(t *testing.T) {
	m := world.CorridorMap("peak")
	m.Start.AngleDegrees = 90
	st := NewState(m)
	if st.Player.Position.X != 1.5 || st.Player.Position.Y != 1.5 {
		t.Errorf("unexpected start position %+v", st.Player.Position)
	}
	if math.Abs(st.Player.Angle-math.Pi/2) > 1e-12 {
		t.Errorf("expected start angle pi/2, got %v", st.Player.Angle)
	}
	if st.Menu.Paused() {
		t.Error("game should start unpaused")
	}
}

func TestTickMovesWhilePlaying(t *testing.T) {
	st, ig := newTestState(t)
	action := st.Tick(Controls{Input: player.Input{Forward: true}}, 0.1, ig)

	if action != ActionNone {
		t.Errorf("unexpected action %v", action)
	}
	if math.Abs(st.Player.Position.X-1.7) > 1e-9 || st.Player.Position.Y != 1.5 {
		t.Errorf("expected to move 0.2 east, got %+v", st.Player.Position)
	}
	if st.Ticks != 1 {
		t.Errorf("expected 1 tick, got %d", st.Ticks)
	}
}

func TestTickFreezesWhilePaused(t *testing.T) {
	st, ig := newTestState(t)
	st.Tick(Controls{TogglePause: true, Input: player.Input{Forward: true}}, 0.1, ig)
	if !st.Menu.Paused() {
		t.Fatal("expected pause menu to open")
	}
	st.Tick(Controls{Input: player.Input{Forward: true, TurnLeft: true, PointerDX: 100}}, 0.1, ig)

	if st.Player.Position.X != 1.5 || st.Player.Angle != 0 {
		t.Errorf("player moved while paused: %+v", st.Player)
	}
}

func TestTickMenuFlow(t *testing.T) {
	st, ig := newTestState(t)

	st.Tick(Controls{TogglePause: true}, 0.1, ig)
	st.Tick(Controls{MenuDown: true}, 0.1, ig)
	if st.Menu.Selection() != 1 {
		t.Fatalf("expected Exit selected, got %d", st.Menu.Selection())
	}
	st.Tick(Controls{MenuUp: true}, 0.1, ig)
	if action := st.Tick(Controls{MenuConfirm: true}, 0.1, ig); action != ActionResume {
		t.Fatalf("expected resume, got %v", action)
	}
	if st.Menu.Paused() {
		t.Fatal("resume should close the menu")
	}

	st.Tick(Controls{TogglePause: true}, 0.1, ig)
	st.Tick(Controls{MenuDown: true}, 0.1, ig)
	if action := st.Tick(Controls{MenuConfirm: true}, 0.1, ig); action != ActionExit {
		t.Errorf("expected exit, got %v", action)
	}
}

func TestTickToggles(t *testing.T) {
	st, ig := newTestState(t)
	st.Tick(Controls{ToggleMap: true, ToggleDebug: true}, 0.1, ig)
	if !st.ShowMinimap || !st.ShowDebug {
		t.Fatalf("expected overlays on, got minimap=%v debug=%v", st.ShowMinimap, st.ShowDebug)
	}
	st.Tick(Controls{ToggleMap: true}, 0.1, ig)
	if st.ShowMinimap || !st.ShowDebug {
		t.Errorf("expected only the minimap off, got minimap=%v debug=%v", st.ShowMinimap, st.ShowDebug)
	}
}

func TestReadControls(t *testing.T) {
	kb := fakeKeyboard{
		held: map[ebiten.Key]bool{
			ebiten.KeyW:         true,
			ebiten.KeyD:         true,
			ebiten.KeyArrowLeft: true,
			ebiten.KeyArrowUp:   true,
			ebiten.KeyE:         true,
		},
		just: map[ebiten.Key]bool{
			ebiten.KeyE:       true,
			ebiten.KeyArrowUp: true,
			ebiten.KeyF3:      true,
		},
	}
	c := readControls(kb, 3, -2)

	want := player.Input{
		Forward:     true,
		StrafeRight: true,
		TurnLeft:    true,
		LookUp:      true,
		PointerDX:   3,
		PointerDY:   -2,
	}
	if c.Input != want {
		t.Errorf("input = %+v, want %+v", c.Input, want)
	}
	if !c.TogglePause || !c.MenuUp || !c.ToggleDebug {
		t.Errorf("missing edge-triggered controls: %+v", c)
	}
	if c.MenuDown || c.MenuConfirm || c.ToggleMap {
		t.Errorf("unexpected edge-triggered controls: %+v", c)
	}
}

func TestPointerDelta(t *testing.T) {
	var p pointer
	if dx, dy := p.delta(100, 50); dx != 0 || dy != 0 {
		t.Errorf("first sample should be zero, got %v,%v", dx, dy)
	}
	if dx, dy := p.delta(110, 45); dx != 10 || dy != -5 {
		t.Errorf("expected 10,-5 got %v,%v", dx, dy)
	}
	p.reset()
	if dx, dy := p.delta(0, 0); dx != 0 || dy != 0 {
		t.Errorf("sample after reset should be zero, got %v,%v", dx, dy)
	}
}
