package keytracker

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestKeyStateTracker(t *testing.T) {
	held := map[ebiten.Key]bool{}
	k := NewWithSource(func(key ebiten.Key) bool { return held[key] }, ebiten.KeyE, ebiten.KeyW)

	steps := []struct {
		name       string
		e, w       bool
		wantJustE  bool
		wantPressW bool
		wantJustW  bool
	}{
		{"idle", false, false, false, false, false},
		{"press both", true, true, true, true, true},
		{"hold both", true, true, false, true, false},
		{"release e", false, true, false, true, false},
		{"press e again", true, false, true, false, false},
	}

	for _, s := range steps {
		held[ebiten.KeyE], held[ebiten.KeyW] = s.e, s.w
		k.Update()
		if got := k.IsKeyJustPressed(ebiten.KeyE); got != s.wantJustE {
			t.Errorf("%s: just pressed E = %v, want %v", s.name, got, s.wantJustE)
		}
		if got := k.IsKeyPressed(ebiten.KeyW); got != s.wantPressW {
			t.Errorf("%s: pressed W = %v, want %v", s.name, got, s.wantPressW)
		}
		if got := k.IsKeyJustPressed(ebiten.KeyW); got != s.wantJustW {
			t.Errorf("%s: just pressed W = %v, want %v", s.name, got, s.wantJustW)
		}
	}
}

func TestUntrackedKeysAreNeverPressed(t *testing.T) {
	k := NewWithSource(func(ebiten.Key) bool { return true }, ebiten.KeyE)
	k.Update()
	if k.IsKeyPressed(ebiten.KeyQ) || k.IsKeyJustPressed(ebiten.KeyQ) {
		t.Error("keys outside the tracked set should read as released")
	}
}
