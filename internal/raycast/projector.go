package raycast

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"

	"peakcast/internal/config"
	"peakcast/internal/mathutil"
)

// MinDistance is the smallest perpendicular distance used for projection. Rays cast close to
// ±90° from the facing angle produce distances near zero or below it.
const MinDistance = 1e-4

// Column is one projected wall slice in screen space
type Column struct {
	X, Width    float64
	Top, Height float64
	TexX        int
}

// Projector converts ray hits into screen-space wall slices
type Projector struct {
	ScreenWidth  int
	ScreenHeight int
	FOV          float64 // radians
	TileSize     float64
	MaxLook      float64 // radians
	LookScale    float64 // fraction of the half screen the horizon moves at MaxLook
	Coeff        float64 // (ScreenWidth/2) / tan(FOV/2)
}

// NewProjector creates a projector for a screenW x screenH surface
func NewProjector(screenW, screenH int, fov, tileSize, maxLook, lookScale float64) *Projector {
	p := &Projector{
		FOV:       fov,
		TileSize:  tileSize,
		MaxLook:   maxLook,
		LookScale: lookScale,
	}
	p.Resize(screenW, screenH)
	return p
}

// NewProjectorFromConfig creates a projector using the display and camera config
func NewProjectorFromConfig(cfg *config.Config) *Projector {
	return NewProjector(cfg.GetScreenWidth(), cfg.GetScreenHeight(), cfg.FOVRadians(), cfg.GetTileSize(), cfg.MaxLook(), cfg.Camera.LookScale)
}

// Resize recomputes the projection coefficient for a new surface size
func (p *Projector) Resize(w, h int) {
	p.ScreenWidth = w
	p.ScreenHeight = h
	p.Coeff = (float64(w) / 2) / math.Tan(p.FOV/2)
}

// WallHeight returns the on-screen height of a wall at perpendicular distance perp
func (p *Projector) WallHeight(perp float64) float64 {
	if !(perp > MinDistance) {
		perp = MinDistance
	}
	return p.TileSize / perp * p.Coeff
}

// Horizon returns the screen row of the horizon for a vertical look offset
func (p *Projector) Horizon(look float64) float64 {
	h := float64(p.ScreenHeight)
	if p.MaxLook <= 0 {
		return h / 2
	}
	look = geom.Clamp(look, -p.MaxLook, p.MaxLook)
	return h/2 + (look/p.MaxLook)*(h/2)*p.LookScale
}

// Project returns the height and top row of a wall slice
func (p *Projector) Project(perp, look float64) (height, top float64) {
	height = p.WallHeight(perp)
	top = p.Horizon(look) - height/2
	return height, top
}

// TextureX picks the texture column for a hit point. Both coordinates contribute so walls facing
// either axis sample across the whole texture.
func (p *Projector) TextureX(hitX, hitY float64, texWidth int) int {
	if texWidth <= 0 {
		return 0
	}
	x := int(mathutil.Frac(hitX+hitY) * float64(texWidth))
	return mathutil.IntClamp(x, 0, texWidth-1)
}

// RayAngle returns the view angle of ray i when numRays rays span the field of view around facing
func (p *Projector) RayAngle(facing float64, i, numRays int) float64 {
	return facing - p.FOV/2 + float64(i)*p.FOV/float64(numRays)
}

// SliceWidth is the screen width covered by one ray
func (p *Projector) SliceWidth(numRays int) float64 {
	return float64(p.ScreenWidth) / float64(numRays)
}

// Column projects the hit of ray i out of numRays. Slices are one pixel wider than their share of
// the screen so neighbours overlap instead of leaving seams.
func (p *Projector) Column(i, numRays int, h Hit, look float64, texWidth int) Column {
	slice := p.SliceWidth(numRays)
	height, top := p.Project(h.PerpDistance, look)
	return Column{
		X:      float64(i) * slice,
		Width:  slice + 1,
		Top:    top,
		Height: height,
		TexX:   p.TextureX(h.HitX, h.HitY, texWidth),
	}
}
