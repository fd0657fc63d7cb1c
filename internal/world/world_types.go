package world

import (
	"math"
	"sort"
)

// CellCode identifies what occupies a grid cell. Zero is empty floor; any other value is a wall
// and doubles as the texture id of that wall.
type CellCode int

const (
	CellEmpty CellCode = 0 // Walkable empty space
	CellWall  CellCode = 1 // Standard wall using the map's default texture

	// OutOfBounds is returned for any lookup outside the grid extents. It is non-zero, so it
	// blocks movement and stops rays exactly like a wall.
	OutOfBounds CellCode = -1
)

// IsWall reports whether the code blocks rays and movement
func (c CellCode) IsWall() bool {
	return c != CellEmpty
}

// Grid is an immutable occupancy grid indexed by row (floor of y) and column (floor of x)
type Grid struct {
	cells  [][]CellCode
	width  int
	height int
}

// NewGrid copies rows into a grid. Rows must be rectangular.
func NewGrid(rows [][]CellCode) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errEmptyGrid
	}
	width := len(rows[0])
	cells := make([][]CellCode, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, &RowWidthError{Row: y, Want: width, Got: len(row)}
		}
		cells[y] = append([]CellCode(nil), row...)
	}
	return &Grid{cells: cells, width: width, height: len(rows)}, nil
}

// MustGrid builds a grid from integer rows and panics on malformed input. Intended for tests and
// built-in maps.
func MustGrid(rows [][]int) *Grid {
	converted := make([][]CellCode, len(rows))
	for y, row := range rows {
		converted[y] = make([]CellCode, len(row))
		for x, v := range row {
			converted[y][x] = CellCode(v)
		}
	}
	g, err := NewGrid(converted)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Cell returns the code at (row, col), or OutOfBounds outside the grid
func (g *Grid) Cell(row, col int) CellCode {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return OutOfBounds
	}
	return g.cells[row][col]
}

// CellAt returns the code of the cell containing world point (x, y)
func (g *Grid) CellAt(x, y float64) CellCode {
	if math.IsNaN(x) || math.IsNaN(y) {
		return OutOfBounds
	}
	return g.Cell(int(math.Floor(y)), int(math.Floor(x)))
}

// IsBlocked reports whether world point (x, y) is inside a wall or outside the grid
func (g *Grid) IsBlocked(x, y float64) bool {
	return g.CellAt(x, y).IsWall()
}

// BorderIsClosed reports whether every edge cell is a wall, which keeps rays and the player
// inside the grid
func (g *Grid) BorderIsClosed() bool {
	for x := 0; x < g.width; x++ {
		if !g.cells[0][x].IsWall() || !g.cells[g.height-1][x].IsWall() {
			return false
		}
	}
	for y := 0; y < g.height; y++ {
		if !g.cells[y][0].IsWall() || !g.cells[y][g.width-1].IsWall() {
			return false
		}
	}
	return true
}

// Codes returns the distinct wall codes used by the grid in ascending order
func (g *Grid) Codes() []CellCode {
	seen := make(map[CellCode]bool)
	var codes []CellCode
	for _, row := range g.cells {
		for _, c := range row {
			if c.IsWall() && !seen[c] {
				seen[c] = true
				codes = append(codes, c)
			}
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
