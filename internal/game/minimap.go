package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"peakcast/internal/world"
)

const (
	minimapScale    = 12 // pixels per tile
	minimapMargin   = 10
	headingTiles    = 1.0
	playerDotRadius = 3
)

var (
	minimapFloor   = color.RGBA{20, 20, 20, 200}
	minimapWall    = color.RGBA{90, 90, 90, 220}
	minimapSegment = color.RGBA{230, 200, 60, 255}
	minimapPlayer  = color.RGBA{255, 60, 60, 255}
)

// minimapPoint converts world coordinates to screen coordinates on the minimap
func minimapPoint(x, y float64) (float32, float32) {
	return float32(minimapMargin + x*minimapScale), float32(minimapMargin + y*minimapScale)
}

// renderMinimap draws the static part of the minimap: cells and the derived wall outline
func renderMinimap(m *world.Map) *ebiten.Image {
	g := m.Grid
	img := ebiten.NewImage(g.Width()*minimapScale+1, g.Height()*minimapScale+1)
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			c := minimapFloor
			if g.Cell(row, col).IsWall() {
				c = minimapWall
			}
			vector.DrawFilledRect(img, float32(col*minimapScale), float32(row*minimapScale),
				minimapScale, minimapScale, c, false)
		}
	}
	for _, s := range m.Segments {
		vector.StrokeLine(img,
			float32(s.X1*minimapScale), float32(s.Y1*minimapScale),
			float32(s.X2*minimapScale), float32(s.Y2*minimapScale),
			1, minimapSegment, false)
	}
	return img
}

// drawMinimap overlays the map with the player position and heading
func (g *Game) drawMinimap(screen *ebiten.Image) {
	if g.ui.minimap == nil {
		g.ui.minimap = renderMinimap(g.ui.m)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(minimapMargin, minimapMargin)
	screen.DrawImage(g.ui.minimap, op)

	p := g.state.Player
	px, py := minimapPoint(p.Position.X, p.Position.Y)
	hx, hy := minimapPoint(p.Position.X+p.GetForwardX()*headingTiles, p.Position.Y+p.GetForwardY()*headingTiles)
	vector.StrokeLine(screen, px, py, hx, hy, 1, minimapPlayer, false)
	vector.DrawFilledCircle(screen, px, py, playerDotRadius, minimapPlayer, false)
}
