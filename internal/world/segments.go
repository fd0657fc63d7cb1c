package world

import "github.com/harbdog/raycaster-go/geom"

// WallSegment is one exposed wall face in grid coordinates, tagged with the texture of the wall
// cell it belongs to
type WallSegment struct {
	geom.Line
	Texture string
}

// SegmentsFromGrid returns the wall faces that border walkable cells. Adjacent faces along the
// same grid line that share a texture are merged into a single segment.
func SegmentsFromGrid(g *Grid, textureFor func(CellCode) string) []WallSegment {
	var segments []WallSegment

	// Horizontal faces: the edge between row y-1 and row y, for y in [0, height]
	for y := 0; y <= g.height; y++ {
		var run *WallSegment
		for x := 0; x < g.width; x++ {
			wall, ok := exposedFace(g.Cell(y-1, x), g.Cell(y, x))
			if !ok {
				run = flush(&segments, run)
				continue
			}
			name := textureFor(wall)
			if run != nil && run.Texture == name && run.X2 == float64(x) {
				run.X2 = float64(x + 1)
				continue
			}
			run = flush(&segments, run)
			run = &WallSegment{
				Line:    geom.Line{X1: float64(x), Y1: float64(y), X2: float64(x + 1), Y2: float64(y)},
				Texture: name,
			}
		}
		flush(&segments, run)
	}

	// Vertical faces: the edge between column x-1 and column x
	for x := 0; x <= g.width; x++ {
		var run *WallSegment
		for y := 0; y < g.height; y++ {
			wall, ok := exposedFace(g.Cell(y, x-1), g.Cell(y, x))
			if !ok {
				run = flush(&segments, run)
				continue
			}
			name := textureFor(wall)
			if run != nil && run.Texture == name && run.Y2 == float64(y) {
				run.Y2 = float64(y + 1)
				continue
			}
			run = flush(&segments, run)
			run = &WallSegment{
				Line:    geom.Line{X1: float64(x), Y1: float64(y), X2: float64(x), Y2: float64(y + 1)},
				Texture: name,
			}
		}
		flush(&segments, run)
	}

	return segments
}

// exposedFace reports whether exactly one side of an edge is a wall inside the grid and the other
// is walkable, returning the wall's code
func exposedFace(a, b CellCode) (CellCode, bool) {
	switch {
	case a.IsWall() && !b.IsWall() && a != OutOfBounds:
		return a, true
	case b.IsWall() && !a.IsWall() && b != OutOfBounds:
		return b, true
	}
	return CellEmpty, false
}

func flush(segments *[]WallSegment, run *WallSegment) *WallSegment {
	if run != nil {
		*segments = append(*segments, *run)
	}
	return nil
}
