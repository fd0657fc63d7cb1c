package config

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"peakcast/internal/mathutil"
)

// Config holds all renderer configuration values
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	World     WorldConfig     `yaml:"world"`
	Movement  MovementConfig  `yaml:"movement"`
	Camera    CameraConfig    `yaml:"camera"`
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Threading ThreadingConfig `yaml:"threading"`
	Terminal  TerminalConfig  `yaml:"terminal"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	CaptureMouse bool   `yaml:"capture_mouse"`
}

type WorldConfig struct {
	TileSize float64 `yaml:"tile_size"`
	MapFile  string  `yaml:"map_file"`
}

type MovementConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`        // grid units per second
	TurnSpeed        float64 `yaml:"turn_speed"`        // radians per second
	LookSpeed        float64 `yaml:"look_speed"`        // radians per second
	MaxLookDegrees   float64 `yaml:"max_look_degrees"`  // vertical look clamp
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // radians per pointer pixel
	MaxFrameDelta    float64 `yaml:"max_frame_delta"`   // seconds
}

type CameraConfig struct {
	FieldOfViewDegrees float64 `yaml:"field_of_view"`
	NumRays            int     `yaml:"num_rays"`
	MaxDepth           float64 `yaml:"max_depth"`
	RayStep            float64 `yaml:"ray_step"`
	CastMode           string  `yaml:"cast_mode"` // "march" or "dda"
	LookScale          float64 `yaml:"look_scale"`
}

type GraphicsConfig struct {
	Texture        string  `yaml:"texture"`
	TextureDir     string  `yaml:"texture_dir"`
	MaxTextureSize int     `yaml:"max_texture_size"`
	CeilingColor   [3]int  `yaml:"ceiling_color"`
	FloorColor     [3]int  `yaml:"floor_color"`
	LoadingColor   [3]int  `yaml:"loading_color"`
	FontSize       float64 `yaml:"font_size"`
}

type ThreadingConfig struct {
	ParallelRays bool `yaml:"parallel_rays"`
	Workers      int  `yaml:"workers"` // 0 means runtime.NumCPU()
}

type TerminalConfig struct {
	NumRays           int     `yaml:"num_rays"`            // 0 means one ray per terminal column
	HoldMillis        int     `yaml:"hold_millis"`         // how long a key stays down after a repeat
	RepeatDelayMillis int     `yaml:"repeat_delay_millis"` // how long the first press stays down, until auto-repeat starts
	TickMillis        int     `yaml:"tick_millis"`
	CellAspect        float64 `yaml:"cell_aspect"` // terminal cell height / width
}

var GlobalConfig *Config

// DefaultConfig returns the built-in configuration used when a value is absent from config.yaml
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  1024,
			ScreenHeight: 768,
			WindowTitle:  "peakcast",
			Resizable:    true,
			CaptureMouse: true,
		},
		World: WorldConfig{
			TileSize: 1.0,
			MapFile:  "assets/maps/corridor.yaml",
		},
		Movement: MovementConfig{
			MoveSpeed:        2,
			TurnSpeed:        2,
			LookSpeed:        1.5,
			MaxLookDegrees:   45,
			MouseSensitivity: 0.002,
			MaxFrameDelta:    0.25,
		},
		Camera: CameraConfig{
			FieldOfViewDegrees: 105,
			NumRays:            200,
			MaxDepth:           15,
			RayStep:            0.005,
			CastMode:           "march",
			LookScale:          0.5,
		},
		Graphics: GraphicsConfig{
			Texture:        "peak",
			TextureDir:     "assets/textures",
			MaxTextureSize: 256,
			CeilingColor:   [3]int{0x20, 0x20, 0x20},
			FloorColor:     [3]int{0x30, 0x30, 0x30},
			LoadingColor:   [3]int{0x00, 0xff, 0x00},
			FontSize:       20,
		},
		Threading: ThreadingConfig{
			ParallelRays: false,
			Workers:      0,
		},
		Terminal: TerminalConfig{
			NumRays:           0,
			HoldMillis:        120,
			RepeatDelayMillis: 650,
			TickMillis:        16,
			CellAspect:        2.0,
		},
	}
}

// LoadConfig loads the configuration from a YAML file on top of DefaultConfig
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}

	// Set global config for easy access
	GlobalConfig = cfg

	return cfg, nil
}

// ParseConfig decodes YAML bytes over the defaults and validates the result
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects values the renderer cannot work with
func (c *Config) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.World.TileSize <= 0:
		return fmt.Errorf("tile_size must be positive, got %v", c.World.TileSize)
	case c.Camera.FieldOfViewDegrees <= 0 || c.Camera.FieldOfViewDegrees >= 180:
		return fmt.Errorf("field_of_view must be in (0, 180), got %v", c.Camera.FieldOfViewDegrees)
	case c.Camera.NumRays <= 0:
		return fmt.Errorf("num_rays must be positive, got %d", c.Camera.NumRays)
	case c.Camera.MaxDepth <= 0:
		return fmt.Errorf("max_depth must be positive, got %v", c.Camera.MaxDepth)
	case c.Camera.RayStep <= 0 || c.Camera.RayStep >= c.Camera.MaxDepth:
		return fmt.Errorf("ray_step must be in (0, max_depth), got %v", c.Camera.RayStep)
	case c.Camera.CastMode != "march" && c.Camera.CastMode != "dda":
		return fmt.Errorf("cast_mode must be march or dda, got %q", c.Camera.CastMode)
	case c.Movement.MaxLookDegrees <= 0 || c.Movement.MaxLookDegrees >= 90:
		return fmt.Errorf("max_look_degrees must be in (0, 90), got %v", c.Movement.MaxLookDegrees)
	case c.Movement.MaxFrameDelta <= 0:
		return fmt.Errorf("max_frame_delta must be positive, got %v", c.Movement.MaxFrameDelta)
	case c.Graphics.MaxTextureSize <= 0:
		return fmt.Errorf("max_texture_size must be positive, got %d", c.Graphics.MaxTextureSize)
	case c.Terminal.HoldMillis <= 0:
		return fmt.Errorf("terminal hold_millis must be positive, got %d", c.Terminal.HoldMillis)
	case c.Terminal.RepeatDelayMillis < c.Terminal.HoldMillis:
		return fmt.Errorf("terminal repeat_delay_millis must be at least hold_millis (%d), got %d",
			c.Terminal.HoldMillis, c.Terminal.RepeatDelayMillis)
	case c.Terminal.CellAspect <= 0:
		return fmt.Errorf("terminal cell_aspect must be positive, got %v", c.Terminal.CellAspect)
	}
	return nil
}

// Clone returns a deep copy so a front-end can tune its own values without touching the shared config
func (c *Config) Clone() (*Config, error) {
	clone := &Config{}
	if err := copier.CopyWithOption(clone, c, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone config: %w", err)
	}
	return clone, nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTileSize() float64 {
	return c.World.TileSize
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetTurnSpeed() float64 {
	return c.Movement.TurnSpeed
}

func (c *Config) GetLookSpeed() float64 {
	return c.Movement.LookSpeed
}

// FOVRadians returns the full horizontal field of view
func (c *Config) FOVRadians() float64 {
	return mathutil.Radians(c.Camera.FieldOfViewDegrees)
}

// HalfFOV returns half the field of view, the angular span on each side of the facing angle
func (c *Config) HalfFOV() float64 {
	return c.FOVRadians() / 2
}

// MaxLook returns the vertical look clamp in radians
func (c *Config) MaxLook() float64 {
	return mathutil.Radians(c.Movement.MaxLookDegrees)
}

// ProjectionCoefficient returns (screenWidth/2) / tan(halfFOV) for the given width
func (c *Config) ProjectionCoefficient(screenWidth int) float64 {
	return (float64(screenWidth) / 2) / math.Tan(c.HalfFOV())
}

func (c *Config) CeilingColor() color.RGBA {
	return rgb(c.Graphics.CeilingColor)
}

func (c *Config) FloorColor() color.RGBA {
	return rgb(c.Graphics.FloorColor)
}

func (c *Config) LoadingColor() color.RGBA {
	return rgb(c.Graphics.LoadingColor)
}

func rgb(v [3]int) color.RGBA {
	return color.RGBA{uint8(v[0]), uint8(v[1]), uint8(v[2]), 255}
}
