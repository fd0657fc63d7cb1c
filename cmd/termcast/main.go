// Command termcast renders the raycaster in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"peakcast/internal/config"
	"peakcast/internal/player"
	"peakcast/internal/raycast"
	"peakcast/internal/render"
	"peakcast/internal/surface/termsurface"
	"peakcast/internal/texture"
	"peakcast/internal/threading"
	"peakcast/internal/world"
)

const helpText = "WASD move  arrows turn/look  Esc quit"

func main() {
	os.Exit(realMain(os.Args[1:], os.Stderr))
}

// realMain runs the terminal front-end and returns the process exit code, so deferred cleanup
// runs before the process exits
func realMain(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("termcast", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "config.yaml", "configuration file")
	mapPath := flags.String("map", "", "map file (defaults to world.map_file)")
	logPath := flags.String("log", "", "write log output to this file")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	// The terminal is the display, so logging goes to a file or nowhere
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(stderr, "termcast: %v\n", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(*configPath, *mapPath); err != nil {
		log.Printf("[Terminal] %v", err)
		fmt.Fprintf(stderr, "termcast: %v\n", err)
		return 1
	}
	return 0
}

func run(configPath, mapPath string) error {
	base, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := terminalConfig(base)
	if err != nil {
		return err
	}
	if mapPath == "" {
		mapPath = cfg.World.MapFile
	}
	m := world.NewMapLoader(cfg.Graphics.Texture).LoadMapOrDefault(mapPath)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	textures := texture.NewLoader(os.DirFS(cfg.Graphics.TextureDir), cfg.Graphics.MaxTextureSize, m)
	textures.Start()

	caster, err := raycast.NewCaster(cfg)
	if err != nil {
		return fmt.Errorf("failed to create ray caster: %w", err)
	}
	tc := threading.NewThreadingComponents(cfg)
	defer tc.Shutdown()

	t := &terminal{
		screen:     screen,
		surface:    termsurface.New(screen, cfg.Terminal.CellAspect),
		renderer:   render.NewRenderer(cfg, caster, tc),
		integrator: player.NewIntegrator(cfg),
		textures:   textures,
		m:          m,
		st:         player.NewState(m.Start.X, m.Start.Y, m.Start.Angle()),
		fixedRays:  cfg.Terminal.NumRays > 0,
	}
	holder := player.NewHolder(&t.input,
		time.Duration(cfg.Terminal.RepeatDelayMillis)*time.Millisecond,
		time.Duration(cfg.Terminal.HoldMillis)*time.Millisecond)

	quit := make(chan struct{})
	resized := make(chan struct{}, 1)
	go pollEvents(screen, holder, quit, resized)

	log.Printf("[Terminal] Map %q, %s casting, tick %dms", m.Name, caster.Mode, cfg.Terminal.TickMillis)
	t.loop(time.Duration(cfg.Terminal.TickMillis)*time.Millisecond, quit, resized)
	return nil
}

// terminalConfig derives the terminal's tuning from the shared config
func terminalConfig(base *config.Config) (*config.Config, error) {
	cfg, err := base.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to copy config: %w", err)
	}
	if cfg.Terminal.NumRays > 0 {
		cfg.Camera.NumRays = cfg.Terminal.NumRays
	}
	if cfg.Terminal.TickMillis <= 0 {
		cfg.Terminal.TickMillis = 16
	}
	return cfg, nil
}

// pollEvents turns terminal key presses into held controls until the user quits
func pollEvents(screen tcell.Screen, holder *player.Holder, quit chan<- struct{}, resized chan<- struct{}) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if isQuitKey(ev) {
				close(quit)
				return
			}
			if c, ok := controlFor(ev); ok {
				holder.Press(c)
			}
		case *tcell.EventResize:
			select {
			case resized <- struct{}{}:
			default:
			}
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}

func controlFor(ev *tcell.EventKey) (player.Control, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return player.ControlTurnLeft, true
	case tcell.KeyRight:
		return player.ControlTurnRight, true
	case tcell.KeyUp:
		return player.ControlLookUp, true
	case tcell.KeyDown:
		return player.ControlLookDown, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return player.ControlForward, true
		case 's', 'S':
			return player.ControlBack, true
		case 'a', 'A':
			return player.ControlStrafeLeft, true
		case 'd', 'D':
			return player.ControlStrafeRight, true
		}
	}
	return 0, false
}

// terminal owns the game state of the terminal front-end
type terminal struct {
	screen     tcell.Screen
	surface    *termsurface.Surface
	renderer   *render.Renderer
	integrator *player.Integrator
	textures   *texture.Loader
	input      player.InputBox

	m  *world.Map
	st player.State

	fixedRays bool
}

func (t *terminal) loop(tick time.Duration, quit <-chan struct{}, resized <-chan struct{}) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-quit:
			return
		case <-resized:
			t.screen.Sync()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			t.frame(dt)
		}
	}
}

// frame advances the player and draws one frame
func (t *terminal) frame(dt float64) {
	t.textures.Poll()
	t.integrator.Integrate(&t.st, t.input.Snapshot(), dt, t.m.Grid)

	t.surface.Begin()
	if w, _ := t.surface.Size(); !t.fixedRays && w > 0 {
		// One ray per terminal column
		t.renderer.NumRays = w
	}
	t.renderer.RenderFrame(t.surface, t.st, t.m.Grid, t.textures)
	if t.textures.Ready() {
		t.surface.DrawText(helpText, 1, 0, t.renderer.LoadingColor)
	}
	t.surface.Flush()
}
