package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"

	"golang.org/x/image/draw"

	"peakcast/internal/mathutil"
)

// Texture is a square wall image
type Texture struct {
	Name  string
	Image *image.RGBA
}

// New converts img into a square texture whose side is the larger image dimension, capped at
// maxSize. Non-square images are stretched.
func New(name string, img image.Image, maxSize int) *Texture {
	b := img.Bounds()
	size := mathutil.IntMax(b.Dx(), b.Dy())
	if maxSize > 0 {
		size = mathutil.IntMin(size, maxSize)
	}
	size = mathutil.IntMax(size, 1)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	if b.Dx() == size && b.Dy() == size {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}
	return &Texture{Name: name, Image: dst}
}

// Decode reads an encoded PNG or JPEG image into a texture
func Decode(r io.Reader, name string, maxSize int) (*Texture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", name, err)
	}
	t := New(name, img, maxSize)
	if t.Width() != img.Bounds().Dx() || t.Height() != img.Bounds().Dy() {
		log.Printf("[Texture] %s (%s) resized from %dx%d to %dx%d", name, format, img.Bounds().Dx(), img.Bounds().Dy(), t.Width(), t.Height())
	}
	return t, nil
}

// Checker generates a two-colour checkerboard, used when an image cannot be loaded
func Checker(name string, size, cells int, a, b color.RGBA) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := mathutil.IntMax(size/mathutil.IntMax(cells, 1), 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return &Texture{Name: name, Image: img}
}

func (t *Texture) Width() int  { return t.Image.Bounds().Dx() }
func (t *Texture) Height() int { return t.Image.Bounds().Dy() }

// Column returns the pixels of texture column x from top to bottom. x is clamped into range.
func (t *Texture) Column(x int) []color.RGBA {
	x = mathutil.IntClamp(x, 0, t.Width()-1)
	b := t.Image.Bounds()
	col := make([]color.RGBA, b.Dy())
	for y := range col {
		col[y] = t.Image.RGBAAt(b.Min.X+x, b.Min.Y+y)
	}
	return col
}

// Sample returns the pixel at column x and fractional height v in [0, 1]
func (t *Texture) Sample(x int, v float64) color.RGBA {
	b := t.Image.Bounds()
	x = mathutil.IntClamp(x, 0, b.Dx()-1)
	y := mathutil.IntClamp(int(v*float64(b.Dy())), 0, b.Dy()-1)
	return t.Image.RGBAAt(b.Min.X+x, b.Min.Y+y)
}
