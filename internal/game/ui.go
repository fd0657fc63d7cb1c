package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"peakcast/internal/world"
)

const arrowFontSize = 24

// uiAssets holds the fonts and cached images used by the overlays
type uiAssets struct {
	face      *text.GoTextFace
	arrowFace *text.GoTextFace

	m       *world.Map
	minimap *ebiten.Image // rendered on first use
}

func newUIAssets(face *text.GoTextFace, m *world.Map) *uiAssets {
	return &uiAssets{
		face:      face,
		arrowFace: &text.GoTextFace{Source: face.Source, Size: arrowFontSize},
		m:         m,
	}
}

// measure returns the size of a single line of menu text
func (ui *uiAssets) measure(s string) (float64, float64) {
	return text.Measure(s, ui.face, ui.face.Size)
}

func drawText(dst *ebiten.Image, s string, x, y float64, face *text.GoTextFace, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// drawFilledRect draws a filled rectangle
func drawFilledRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}
