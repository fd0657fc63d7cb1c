// Command mapview shows every map in a directory with its derived wall segments.
package main

import (
	"flag"
	"fmt"
	"hash/fnv"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"peakcast/internal/config"
	"peakcast/internal/world"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
	padding      = 16
)

const (
	tabInfo = iota
	tabLegend
)

var (
	backgroundColor = color.RGBA{15, 15, 22, 255}
	panelColor      = color.RGBA{20, 20, 35, 255}
	borderColor     = color.RGBA{70, 70, 90, 255}
	floorColor      = color.RGBA{40, 40, 48, 255}
	startColor      = color.RGBA{50, 200, 255, 255}
)

type mapInfo struct {
	Path string
	Map  *world.Map
	Err  error
}

type viewer struct {
	maps     []mapInfo
	mapIndex int
	tab      int
}

func main() {
	configPath := flag.String("config", "config.yaml", "configuration file")
	dir := flag.String("dir", "", "directory of map files (defaults to the directory of world.map_file)")
	flag.Parse()

	ensureRuntimeCWD()
	cfg := config.MustLoadConfig(*configPath)
	if *dir == "" {
		*dir = filepath.Dir(cfg.World.MapFile)
	}

	maps, err := loadMaps(*dir, cfg.Graphics.Texture)
	if err != nil {
		log.Printf("[Map] %v", err)
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("peakcast map viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&viewer{maps: maps}); err != nil {
		log.Fatal(err)
	}
}

// loadMaps loads every YAML file in dir, keeping failures so they can be shown
func loadMaps(dir, defaultTexture string) ([]mapInfo, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list maps in %s: %w", dir, err)
	}
	sort.Strings(paths)

	loader := world.NewMapLoader(defaultTexture)
	maps := make([]mapInfo, 0, len(paths))
	for _, path := range paths {
		m, err := loader.LoadMap(path)
		maps = append(maps, mapInfo{Path: path, Map: m, Err: err})
	}
	if len(maps) == 0 {
		return nil, fmt.Errorf("no maps found in %s", dir)
	}
	return maps, nil
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.tab == tabInfo {
			v.tab = tabLegend
		} else {
			v.tab = tabInfo
		}
	}
	if len(v.maps) == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.mapIndex = (v.mapIndex + 1) % len(v.maps)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.mapIndex = (v.mapIndex - 1 + len(v.maps)) % len(v.maps)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if len(v.maps) == 0 {
		ebitenutil.DebugPrintAt(screen, "no maps loaded", padding, padding)
		return
	}
	info := v.maps[v.mapIndex]
	if info.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s failed to load:\n%v", info.Path, info.Err), padding, padding)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	sidebarX := padding + mapAreaW + padding

	drawMapPanel(screen, info, padding, padding, mapAreaW, mapAreaH)
	drawSidebar(screen, info, sidebarX, padding, sidebarWidth, mapAreaH, v.tab)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// panelGeometry fits a gridW x gridH map into a w x h panel and returns the tile size and the
// top-left corner of the centred map
func panelGeometry(x, y, w, h, gridW, gridH int) (tileSize, originX, originY int) {
	tileSize = w / gridW
	if alt := h / gridH; alt < tileSize {
		tileSize = alt
	}
	if tileSize < 2 {
		tileSize = 2
	}
	originX = x + (w-gridW*tileSize)/2
	originY = y + (h-gridH*tileSize)/2
	return tileSize, originX, originY
}

func drawMapPanel(screen *ebiten.Image, info mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, panelColor)
	drawRectBorder(screen, x, y, w, h, 2, borderColor)

	m := info.Map
	tileSize, originX, originY := panelGeometry(x, y, w, h, m.Grid.Width(), m.Grid.Height())
	ts := float32(tileSize)

	for row := 0; row < m.Grid.Height(); row++ {
		for col := 0; col < m.Grid.Width(); col++ {
			c := floorColor
			if code := m.Grid.Cell(row, col); code.IsWall() {
				c = dim(textureColor(m.TextureName(code)))
			}
			vector.DrawFilledRect(screen, float32(originX+col*tileSize), float32(originY+row*tileSize), ts, ts, c, false)
		}
	}

	// Derived wall outline in the colour of each wall's texture
	for _, s := range m.Segments {
		vector.StrokeLine(screen,
			float32(originX)+float32(s.X1)*ts, float32(originY)+float32(s.Y1)*ts,
			float32(originX)+float32(s.X2)*ts, float32(originY)+float32(s.Y2)*ts,
			2, textureColor(s.Texture), true)
	}

	sx := float32(originX) + float32(m.Start.X)*ts
	sy := float32(originY) + float32(m.Start.Y)*ts
	angle := m.Start.Angle()
	vector.DrawFilledCircle(screen, sx, sy, ts*0.3, startColor, true)
	vector.StrokeLine(screen, sx, sy, sx+float32(math.Cos(angle))*ts, sy+float32(math.Sin(angle))*ts, 2, startColor, true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%s)", m.Name, filepath.Base(info.Path)), x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch maps, Tab for legend, Esc to quit", x+12, y+24)
}

func drawSidebar(screen *ebiten.Image, info mapInfo, x, y, w, h, tab int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, borderColor)

	lines := infoLines(info.Map)
	if tab == tabLegend {
		lines = legendLines(info.Map)
	}
	row := y + 12
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

func infoLines(m *world.Map) []string {
	return []string{
		"Info (Tab: legend)",
		"",
		fmt.Sprintf("Tiles: %dx%d", m.Grid.Width(), m.Grid.Height()),
		fmt.Sprintf("Wall segments: %d", len(m.Segments)),
		fmt.Sprintf("Textures: %d", len(m.TextureNames())),
		fmt.Sprintf("Start: %.2f, %.2f facing %.0f", m.Start.X, m.Start.Y, m.Start.AngleDegrees),
	}
}

// legendLines lists each wall code with the texture it resolves to
func legendLines(m *world.Map) []string {
	lines := []string{"Legend (Tab: info)", "", "code -> texture"}
	for _, code := range m.Grid.Codes() {
		if !code.IsWall() {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d -> %s", int(code), m.TextureName(code)))
	}
	return lines
}

// textureColor gives every texture name a stable, bright colour
func textureColor(name string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(name))
	sum := h.Sum32()
	return color.RGBA{
		R: uint8(96 + sum&0x9f),
		G: uint8(96 + (sum>>8)&0x9f),
		B: uint8(96 + (sum>>16)&0x9f),
		A: 255,
	}
}

func dim(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 3, c.G / 3, c.B / 3, 255}
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
