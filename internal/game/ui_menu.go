package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Pause menu geometry in pixels
const (
	buttonPadX   = 40
	buttonPadY   = 15
	buttonMargin = 10
	arrowGap     = 10
)

var (
	overlayColor        = color.RGBA{0, 0, 0, 128}
	buttonColor         = color.RGBA{0x22, 0x22, 0x22, 0xff}
	selectedButtonColor = color.RGBA{0x44, 0x44, 0x44, 0xff}
	menuTextColor       = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// menuButton is the screen rectangle of one pause menu entry
type menuButton struct {
	X, Y, W, H float64
	Label      string
	Selected   bool
}

// menuLayout stacks the entries in a column centred on the screen. measure returns the size
// of a label's text.
func menuLayout(screenW, screenH int, labels []string, selected int, measure func(string) (float64, float64)) []menuButton {
	buttons := make([]menuButton, len(labels))
	total := 0.0
	for i, label := range labels {
		tw, th := measure(label)
		buttons[i] = menuButton{
			W:        tw + 2*buttonPadX,
			H:        th + 2*buttonPadY,
			Label:    label,
			Selected: i == selected,
		}
		total += buttons[i].H + 2*buttonMargin
	}

	y := (float64(screenH) - total) / 2
	for i := range buttons {
		y += buttonMargin
		buttons[i].X = (float64(screenW) - buttons[i].W) / 2
		buttons[i].Y = y
		y += buttons[i].H + buttonMargin
	}
	return buttons
}

// drawMenu renders the pause overlay with the selected entry highlighted and marked by an arrow
func (g *Game) drawMenu(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	drawFilledRect(screen, 0, 0, float64(w), float64(h), overlayColor)

	buttons := menuLayout(w, h, g.state.Menu.Labels(), g.state.Menu.Selection(), g.ui.measure)
	for _, b := range buttons {
		bg := buttonColor
		if b.Selected {
			bg = selectedButtonColor
		}
		drawFilledRect(screen, b.X, b.Y, b.W, b.H, bg)
		drawText(screen, b.Label, b.X+buttonPadX, b.Y+buttonPadY, g.ui.face, menuTextColor)

		if b.Selected {
			_, ah := text.Measure("<", g.ui.arrowFace, g.ui.arrowFace.Size)
			drawText(screen, "<", b.X+b.W+arrowGap, b.Y+(b.H-ah)/2, g.ui.arrowFace, menuTextColor)
		}
	}
}
