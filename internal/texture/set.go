package texture

import "peakcast/internal/world"

// Set resolves wall codes to loaded textures
type Set struct {
	byName   map[string]*Texture
	byCode   map[world.CellCode]*Texture
	fallback *Texture
}

// NewSet indexes textures by the wall codes m uses. Codes whose texture is missing use the map's
// default texture, then a checkerboard.
func NewSet(textures map[string]*Texture, m *world.Map) *Set {
	s := &Set{
		byName: textures,
		byCode: make(map[world.CellCode]*Texture),
	}
	s.fallback = textures[m.DefaultTexture]
	if s.fallback == nil {
		s.fallback = Checker(m.DefaultTexture, fallbackSize, 8, fallbackLight, fallbackDark)
	}
	for _, code := range m.Grid.Codes() {
		if t := textures[m.TextureName(code)]; t != nil {
			s.byCode[code] = t
		}
	}
	return s
}

// Ready always reports true; a Set only exists once loading has finished
func (s *Set) Ready() bool { return true }

// ForCell returns the texture for a wall code. Out-of-bounds and unknown codes use the default.
func (s *Set) ForCell(code world.CellCode) *Texture {
	if t, ok := s.byCode[code]; ok {
		return t
	}
	return s.fallback
}

// Get returns a texture by name
func (s *Set) Get(name string) (*Texture, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// Len returns the number of named textures
func (s *Set) Len() int { return len(s.byName) }
