package world

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"peakcast/internal/mathutil"
)

var errEmptyGrid = errors.New("map contains no grid data")

// RowWidthError reports a row whose length differs from the first row
type RowWidthError struct {
	Row       int
	Want, Got int
}

func (e *RowWidthError) Error() string {
	return fmt.Sprintf("row %d has inconsistent width: expected %d, got %d", e.Row+1, e.Want, e.Got)
}

// MapFile is the on-disk YAML layout of a map. Either Rows (one character per cell) or Grid
// (integer codes) must be present.
type MapFile struct {
	Name           string         `yaml:"name"`
	Rows           []string       `yaml:"rows,omitempty"`
	Grid           [][]int        `yaml:"grid,omitempty"`
	Textures       map[int]string `yaml:"textures,omitempty"`
	DefaultTexture string         `yaml:"default_texture"`
	Start          *StartPosition `yaml:"start,omitempty"`
}

// StartPosition is the player spawn in world units
type StartPosition struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	AngleDegrees float64 `yaml:"angle"`
}

// Angle returns the spawn facing in radians
func (p StartPosition) Angle() float64 {
	return mathutil.Radians(p.AngleDegrees)
}

// Map is a loaded, validated level
type Map struct {
	Name           string
	Grid           *Grid
	Textures       map[CellCode]string
	DefaultTexture string
	Start          StartPosition
	Segments       []WallSegment
}

// TextureName returns the texture used by walls with the given code
func (m *Map) TextureName(code CellCode) string {
	if name, ok := m.Textures[code]; ok && name != "" {
		return name
	}
	return m.DefaultTexture
}

// TextureNames returns every texture name the map can reference, default first
func (m *Map) TextureNames() []string {
	names := []string{m.DefaultTexture}
	seen := map[string]bool{m.DefaultTexture: true}
	for _, code := range m.Grid.Codes() {
		name := m.TextureName(code)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// MapLoader handles loading world maps from files
type MapLoader struct {
	defaultTexture string
}

// NewMapLoader creates a map loader that falls back to defaultTexture when a map names none
func NewMapLoader(defaultTexture string) *MapLoader {
	return &MapLoader{defaultTexture: defaultTexture}
}

// LoadMap loads a map from the specified file path
func (ml *MapLoader) LoadMap(mapPath string) (*Map, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}

	m, err := ml.ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", mapPath, err)
	}

	log.Printf("[Map] Loaded %q from %s: %dx%d, %d wall segments", m.Name, mapPath, m.Grid.Width(), m.Grid.Height(), len(m.Segments))
	return m, nil
}

// LoadMapOrDefault loads mapPath, falling back to the built-in corridor when the file is missing
// or invalid
func (ml *MapLoader) LoadMapOrDefault(mapPath string) *Map {
	if mapPath != "" {
		m, err := ml.LoadMap(mapPath)
		if err == nil {
			return m
		}
		log.Printf("[Map] %v; using the built-in corridor", err)
	}
	return CorridorMap(ml.defaultTexture)
}

// ParseMap decodes and validates YAML map data
func (ml *MapLoader) ParseMap(data []byte) (*Map, error) {
	var file MapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}
	return ml.Build(file)
}

// Build validates a decoded map file and derives its wall segments
func (ml *MapLoader) Build(file MapFile) (*Map, error) {
	if len(file.Rows) > 0 && len(file.Grid) > 0 {
		return nil, errors.New("map must define either rows or grid, not both")
	}

	var (
		rows     [][]CellCode
		start    *StartPosition
		startErr error
	)
	if len(file.Rows) > 0 {
		rows, start, startErr = parseRows(file.Rows)
		if startErr != nil {
			return nil, startErr
		}
	} else {
		for _, intRow := range file.Grid {
			row := make([]CellCode, len(intRow))
			for x, v := range intRow {
				if v < 0 {
					return nil, fmt.Errorf("negative cell code %d", v)
				}
				row[x] = CellCode(v)
			}
			rows = append(rows, row)
		}
	}

	grid, err := NewGrid(rows)
	if err != nil {
		return nil, err
	}
	if !grid.BorderIsClosed() {
		return nil, errors.New("map border must be made of walls")
	}

	if file.Start != nil {
		start = file.Start
	}
	if start == nil {
		return nil, errors.New("map has no starting position: add a '+' cell or a start block")
	}
	if grid.IsBlocked(start.X, start.Y) {
		return nil, fmt.Errorf("starting position (%.2f, %.2f) is inside a wall", start.X, start.Y)
	}

	m := &Map{
		Name:           file.Name,
		Grid:           grid,
		Textures:       make(map[CellCode]string, len(file.Textures)),
		DefaultTexture: file.DefaultTexture,
		Start:          *start,
	}
	if m.DefaultTexture == "" {
		m.DefaultTexture = ml.defaultTexture
	}
	for code, name := range file.Textures {
		m.Textures[CellCode(code)] = name
	}
	m.Segments = SegmentsFromGrid(grid, m.TextureName)

	return m, nil
}

// parseRows converts character rows into cell codes.
// '#' is a wall, '.' and ' ' are empty, '1'-'9' are textured walls and '+' marks the start cell.
func parseRows(lines []string) ([][]CellCode, *StartPosition, error) {
	var start *StartPosition
	rows := make([][]CellCode, 0, len(lines))
	for y, line := range lines {
		line = strings.TrimRight(line, "\r")
		row := make([]CellCode, 0, len(line))
		for x, char := range line {
			switch {
			case char == '#':
				row = append(row, CellWall)
			case char == '.' || char == ' ':
				row = append(row, CellEmpty)
			case char == '+':
				if start != nil {
					return nil, nil, fmt.Errorf("second start marker at row %d, column %d", y+1, x+1)
				}
				start = &StartPosition{X: float64(x) + 0.5, Y: float64(y) + 0.5}
				row = append(row, CellEmpty)
			case char >= '1' && char <= '9':
				row = append(row, CellCode(char-'0'))
			default:
				return nil, nil, fmt.Errorf("unknown map symbol %q at row %d, column %d", char, y+1, x+1)
			}
		}
		rows = append(rows, row)
	}
	return rows, start, nil
}

// CorridorMap returns the built-in 5x7 map used when no map file is available
func CorridorMap(defaultTexture string) *Map {
	m, err := NewMapLoader(defaultTexture).Build(MapFile{
		Name: "corridor",
		Grid: [][]int{
			{1, 1, 1, 1, 1, 1, 1},
			{1, 0, 0, 0, 0, 0, 1},
			{1, 0, 1, 0, 1, 0, 1},
			{1, 0, 0, 0, 0, 0, 1},
			{1, 1, 1, 1, 1, 1, 1},
		},
		Start: &StartPosition{X: 1.5, Y: 1.5},
	})
	if err != nil {
		panic(err)
	}
	return m
}
