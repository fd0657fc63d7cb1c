package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Camera.NumRays != 200 {
		t.Errorf("expected 200 rays, got %d", cfg.Camera.NumRays)
	}
	if cfg.Camera.MaxDepth != 15 {
		t.Errorf("expected max depth 15, got %v", cfg.Camera.MaxDepth)
	}
	if math.Abs(cfg.FOVRadians()-105*math.Pi/180) > 1e-12 {
		t.Errorf("unexpected fov radians %v", cfg.FOVRadians())
	}
	if math.Abs(cfg.MaxLook()-math.Pi/4) > 1e-12 {
		t.Errorf("expected max look pi/4, got %v", cfg.MaxLook())
	}
	// Terminals wait 250-600ms before auto-repeat; the first press must outlast that
	if cfg.Terminal.RepeatDelayMillis <= 600 || cfg.Terminal.RepeatDelayMillis < cfg.Terminal.HoldMillis {
		t.Errorf("first-press hold %dms does not cover the auto-repeat delay", cfg.Terminal.RepeatDelayMillis)
	}
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	data := []byte(`
display:
  screen_width: 640
camera:
  num_rays: 320
  cast_mode: dda
graphics:
  ceiling_color: [1, 2, 3]
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.GetScreenWidth() != 640 {
		t.Errorf("expected width 640, got %d", cfg.GetScreenWidth())
	}
	// Untouched fields keep their defaults
	if cfg.GetScreenHeight() != 768 {
		t.Errorf("expected default height 768, got %d", cfg.GetScreenHeight())
	}
	if cfg.Camera.NumRays != 320 || cfg.Camera.CastMode != "dda" {
		t.Errorf("camera overrides not applied: %+v", cfg.Camera)
	}
	if c := cfg.CeilingColor(); c.R != 1 || c.G != 2 || c.B != 3 || c.A != 255 {
		t.Errorf("unexpected ceiling color %v", c)
	}
	if cfg.Camera.RayStep != 0.005 {
		t.Errorf("expected default ray step, got %v", cfg.Camera.RayStep)
	}
}

func TestParseConfigRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
		want string
	}{
		{"zero rays", "camera:\n  num_rays: 0\n", "num_rays"},
		{"fov too wide", "camera:\n  field_of_view: 180\n", "field_of_view"},
		{"negative depth", "camera:\n  max_depth: -1\n", "max_depth"},
		{"step beyond depth", "camera:\n  ray_step: 20\n", "ray_step"},
		{"unknown cast mode", "camera:\n  cast_mode: bsp\n", "cast_mode"},
		{"look clamp", "movement:\n  max_look_degrees: 90\n", "max_look_degrees"},
		{"tile size", "world:\n  tile_size: 0\n", "tile_size"},
		{"no key hold", "terminal:\n  hold_millis: 0\n", "hold_millis"},
		{"repeat delay shorter than hold", "terminal:\n  repeat_delay_millis: 50\n", "repeat_delay_millis"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tc.yaml))
			if err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadConfigSetsGlobal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("display:\n  window_title: test\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	defer func() { GlobalConfig = nil }()

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if GlobalConfig != cfg {
		t.Error("LoadConfig should set GlobalConfig")
	}
	if cfg.Display.WindowTitle != "test" {
		t.Errorf("expected title test, got %q", cfg.Display.WindowTitle)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := DefaultConfig()
	clone, err := cfg.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	clone.Camera.NumRays = 80
	clone.Graphics.FloorColor[0] = 0
	if cfg.Camera.NumRays != 200 {
		t.Errorf("clone mutation leaked into original rays: %d", cfg.Camera.NumRays)
	}
	if cfg.Graphics.FloorColor[0] != 0x30 {
		t.Errorf("clone mutation leaked into original floor color: %v", cfg.Graphics.FloorColor)
	}
}

func TestProjectionCoefficient(t *testing.T) {
	cfg := DefaultConfig()
	want := 512 / math.Tan(cfg.HalfFOV())
	if got := cfg.ProjectionCoefficient(1024); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
}
