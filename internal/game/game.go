package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"peakcast/internal/config"
	"peakcast/internal/game/keytracker"
	"peakcast/internal/player"
	"peakcast/internal/raycast"
	"peakcast/internal/render"
	"peakcast/internal/surface/ebitensurface"
	"peakcast/internal/texture"
	"peakcast/internal/threading"
	"peakcast/internal/world"
)

// Game is the ebiten front-end: Update advances State, Draw renders it
type Game struct {
	state  *State
	config *config.Config

	keys       *keytracker.KeyStateTracker
	pointer    pointer
	integrator *player.Integrator

	renderer  *render.Renderer
	surface   *ebitensurface.Surface
	textures  *texture.Loader
	threading *threading.ThreadingComponents
	ui        *uiAssets

	perf perfLog
}

// NewGame wires the game for map m and starts loading its textures
func NewGame(cfg *config.Config, m *world.Map, textures *texture.Loader) (*Game, error) {
	caster, err := raycast.NewCaster(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create ray caster: %w", err)
	}
	surface, err := ebitensurface.New(cfg.Graphics.FontSize)
	if err != nil {
		return nil, err
	}

	tc := threading.NewThreadingComponents(cfg)
	g := &Game{
		state:      NewState(m),
		config:     cfg,
		keys:       keytracker.New(trackedKeys...),
		integrator: player.NewIntegrator(cfg),
		renderer:   render.NewRenderer(cfg, caster, tc),
		surface:    surface,
		textures:   textures,
		threading:  tc,
		ui:         newUIAssets(surface.Face(), m),
	}

	textures.Start()
	log.Printf("[Game] Map %q %dx%d, start (%.2f, %.2f), %d rays, %s casting",
		m.Name, m.Grid.Width(), m.Grid.Height(), m.Start.X, m.Start.Y, cfg.Camera.NumRays, caster.Mode)
	return g, nil
}

// State returns the live application state
func (g *Game) State() *State {
	return g.state
}

// Update runs one fixed tick
func (g *Game) Update() error {
	g.keys.Update()
	g.state.Textures = g.textures.Poll()

	dx, dy := g.pointerDelta()
	action := g.state.Tick(readControls(g.keys, dx, dy), tickSeconds(ebiten.TPS()), g.integrator)
	if action == ActionExit {
		log.Printf("[Game] Exit selected after %d ticks", g.state.Ticks)
		g.threading.Shutdown()
		return ebiten.Termination
	}

	// The cursor is released while the pause menu is open
	if g.state.Menu.Paused() && ebiten.CursorMode() == ebiten.CursorModeCaptured {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}

	g.perf.check(g.threading)
	return nil
}

// pointerDelta returns captured cursor motion since the last tick. Clicking the window captures
// the cursor.
func (g *Game) pointerDelta() (float64, float64) {
	if ebiten.CursorMode() != ebiten.CursorModeCaptured {
		g.pointer.reset()
		if g.config.Display.CaptureMouse && !g.state.Menu.Paused() &&
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		}
		return 0, 0
	}
	return g.pointer.delta(ebiten.CursorPosition())
}

// Draw renders the view followed by the overlays
func (g *Game) Draw(screen *ebiten.Image) {
	frameTimer := g.threading.PerformanceMonitor.StartFrame()
	defer frameTimer.EndFrame()

	g.surface.Target(screen)
	g.renderer.RenderFrame(g.surface, g.state.Player, g.state.Map.Grid, g.textures)

	if g.state.ShowMinimap {
		g.drawMinimap(screen)
	}
	if g.state.Menu.Paused() {
		g.drawMenu(screen)
	}
	if g.state.ShowDebug {
		g.drawDebugOverlay(screen)
	}
}

// Layout follows the window size when resizing is enabled
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.config.Display.Resizable {
		return outsideWidth, outsideHeight
	}
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}

// tickSeconds is the simulated time of one Update call
func tickSeconds(tps int) float64 {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}
