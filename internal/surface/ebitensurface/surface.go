// Package ebitensurface draws frames onto an ebiten image
package ebitensurface

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"peakcast/internal/texture"
	"peakcast/internal/threading/rendering"
)

// columnKey identifies one single-pixel-wide column of a texture
type columnKey struct {
	tex *texture.Texture
	x   int
}

// Surface implements render.Surface on top of an *ebiten.Image. Texture images and their
// column sub-images are uploaded once and reused across frames.
type Surface struct {
	dst     *ebiten.Image
	images  map[*texture.Texture]*ebiten.Image
	columns *rendering.SliceCache[columnKey, *ebiten.Image]
	face    *text.GoTextFace
}

// New creates a surface that renders text with the embedded Go Regular font at fontSize
func New(fontSize float64) (*Surface, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	log.Printf("[Font] Go Regular (embedded) at %.0fpx", fontSize)
	return &Surface{
		images:  make(map[*texture.Texture]*ebiten.Image),
		columns: rendering.NewSliceCache[columnKey, *ebiten.Image](0),
		face:    &text.GoTextFace{Source: src, Size: fontSize},
	}, nil
}

// Target sets the image the following draw calls render onto
func (s *Surface) Target(dst *ebiten.Image) {
	s.dst = dst
}

// Face returns the UI font face
func (s *Surface) Face() *text.GoTextFace {
	return s.face
}

func (s *Surface) Size() (int, int) {
	if s.dst == nil {
		return 0, 0
	}
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

// DrawStretchedColumn draws column srcX of t scaled to fill the destination rectangle
func (s *Surface) DrawStretchedColumn(t *texture.Texture, srcX int, dstX, dstY, dstW, dstH float64) {
	if dstW <= 0 || dstH <= 0 {
		return
	}
	col := s.column(t, srcX)

	op := &ebiten.DrawImageOptions{}
	sx, sy := stretch(t.Height(), dstW, dstH)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(dstX, dstY)
	s.dst.DrawImage(col, op)
}

func (s *Surface) DrawText(msg string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.dst, msg, s.face, op)
}

// image returns the GPU copy of t, uploading it on first use
func (s *Surface) image(t *texture.Texture) *ebiten.Image {
	if img, ok := s.images[t]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(t.Image)
	s.images[t] = img
	return img
}

func (s *Surface) column(t *texture.Texture, srcX int) *ebiten.Image {
	return s.columns.GetOrCreate(columnKey{t, srcX}, func() *ebiten.Image {
		img := s.image(t)
		return img.SubImage(image.Rect(srcX, 0, srcX+1, t.Height())).(*ebiten.Image)
	})
}

// stretch returns the scale that maps a 1 x texHeight column onto a dstW x dstH rectangle
func stretch(texHeight int, dstW, dstH float64) (float64, float64) {
	if texHeight <= 0 {
		return dstW, dstH
	}
	return dstW, dstH / float64(texHeight)
}
