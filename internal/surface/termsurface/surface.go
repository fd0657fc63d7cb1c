// Package termsurface draws frames into a terminal using half-block characters.
// Every terminal cell holds two vertically stacked pixels: the upper one in the
// foreground colour of '▀' and the lower one in the background colour.
package termsurface

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"peakcast/internal/mathutil"
	"peakcast/internal/texture"
)

const halfBlock = '▀'

// Screen is the subset of tcell.Screen the surface writes to
type Screen interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

type textRun struct {
	msg      string
	col, row int
	c        color.Color
}

// Surface implements render.Surface over a terminal screen. Drawing happens in a
// pixel buffer which Flush copies to the screen.
type Surface struct {
	screen Screen
	aspect float64 // cell height / cell width

	cols, rows int
	pixels     []color.RGBA
	texts      []textRun
}

// New creates a surface for screen. cellAspect is the height of a terminal cell
// divided by its width; values <= 0 select 2.
func New(screen Screen, cellAspect float64) *Surface {
	if cellAspect <= 0 {
		cellAspect = 2
	}
	s := &Surface{screen: screen, aspect: cellAspect}
	s.Begin()
	return s
}

// Begin starts a new frame: it picks up the current screen size and drops the previous frame
func (s *Surface) Begin() {
	cols, rows := s.screen.Size()
	cols, rows = mathutil.IntMax(cols, 0), mathutil.IntMax(rows, 0)
	if cols != s.cols || rows != s.rows || s.pixels == nil {
		s.cols, s.rows = cols, rows
		s.pixels = make([]color.RGBA, cols*rows*2)
	} else {
		clear(s.pixels)
	}
	s.texts = s.texts[:0]
}

// Size reports the surface in units of one cell width, so a wall projected onto it keeps its shape
func (s *Surface) Size() (int, int) {
	return s.cols, int(math.Round(float64(s.rows) * s.aspect))
}

// pixelScale converts a vertical surface coordinate to buffer pixel rows
func (s *Surface) pixelScale() float64 {
	return 2 / s.aspect
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	rgba := toRGBA(c)
	x0, x1 := span(x, w, s.cols)
	y0, y1 := span(y*s.pixelScale(), h*s.pixelScale(), s.rows*2)
	for py := y0; py < y1; py++ {
		row := s.pixels[py*s.cols : (py+1)*s.cols]
		for px := x0; px < x1; px++ {
			row[px] = rgba
		}
	}
}

// DrawStretchedColumn samples texture column srcX down the height of the destination rectangle
func (s *Surface) DrawStretchedColumn(t *texture.Texture, srcX int, dstX, dstY, dstW, dstH float64) {
	if dstH <= 0 {
		return
	}
	scale := s.pixelScale()
	x0, x1 := span(dstX, dstW, s.cols)
	y0, y1 := span(dstY*scale, dstH*scale, s.rows*2)
	for py := y0; py < y1; py++ {
		v := ((float64(py)+0.5)/scale - dstY) / dstH
		c := t.Sample(srcX, v)
		for px := x0; px < x1; px++ {
			s.pixels[py*s.cols+px] = c
		}
	}
}

// DrawText places msg at the cell containing (x, y). Text is drawn over the pixels on Flush.
func (s *Surface) DrawText(msg string, x, y int, c color.Color) {
	s.texts = append(s.texts, textRun{
		msg: msg,
		col: x,
		row: int(float64(y) / s.aspect),
		c:   c,
	})
}

// Pixel returns the buffer pixel at column x and pixel row y
func (s *Surface) Pixel(x, y int) color.RGBA {
	if x < 0 || x >= s.cols || y < 0 || y >= s.rows*2 {
		return color.RGBA{}
	}
	return s.pixels[y*s.cols+x]
}

// Flush writes the frame to the screen and shows it
func (s *Surface) Flush() {
	for cy := 0; cy < s.rows; cy++ {
		for cx := 0; cx < s.cols; cx++ {
			top := s.pixels[2*cy*s.cols+cx]
			bottom := s.pixels[(2*cy+1)*s.cols+cx]
			s.screen.SetContent(cx, cy, halfBlock, nil, cellStyle(top, bottom))
		}
	}
	for _, t := range s.texts {
		if t.row < 0 || t.row >= s.rows {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcellColor(toRGBA(t.c))).Background(tcell.ColorBlack)
		col := t.col
		for _, r := range t.msg {
			if col >= s.cols {
				break
			}
			if col >= 0 {
				s.screen.SetContent(col, t.row, r, nil, style)
			}
			col++
		}
	}
	s.screen.Show()
}

func cellStyle(top, bottom color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func toRGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// span returns the half-open range of pixel indices whose centres lie in [start, start+length),
// clipped to [0, limit)
func span(start, length float64, limit int) (int, int) {
	if length <= 0 || math.IsNaN(start) || math.IsNaN(length) {
		return 0, 0
	}
	lo := int(math.Ceil(math.Max(start-0.5, -1)))
	hi := int(math.Ceil(math.Min(start+length-0.5, float64(limit))))
	lo = mathutil.IntClamp(lo, 0, limit)
	hi = mathutil.IntClamp(hi, lo, limit)
	return lo, hi
}
