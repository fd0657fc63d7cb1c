package texture

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"time"

	"peakcast/internal/world"
)

// LoadState tracks the asynchronous texture load
type LoadState int

const (
	Unloaded LoadState = iota
	Loading
	Ready
	Failed // at least one texture fell back to a generated checkerboard
)

func (s LoadState) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("LoadState(%d)", int(s))
}

// Usable reports whether textures can be drawn in this state
func (s LoadState) Usable() bool {
	return s == Ready || s == Failed
}

// Extensions tried, in order, when resolving a texture name to a file
var Extensions = []string{".png", ".jpg", ".jpeg"}

const fallbackSize = 64

var (
	fallbackLight = color.RGBA{0x90, 0x90, 0x90, 0xff}
	fallbackDark  = color.RGBA{0x50, 0x50, 0x50, 0xff}
)

type loadResult struct {
	textures map[string]*Texture
	err      error
}

// Loader decodes a map's textures on a background goroutine. The game loop calls Poll once per
// tick; Poll never blocks.
type Loader struct {
	fsys    fs.FS
	maxSize int
	m       *world.Map

	state   LoadState
	err     error
	set     *Set
	results chan loadResult
}

// NewLoader creates a loader that reads textures named by m from fsys
func NewLoader(fsys fs.FS, maxSize int, m *world.Map) *Loader {
	return &Loader{
		fsys:    fsys,
		maxSize: maxSize,
		m:       m,
		state:   Unloaded,
	}
}

// Start begins loading. Calling it again while loading or after completion does nothing.
func (l *Loader) Start() {
	if l.state != Unloaded {
		return
	}
	l.state = Loading
	l.results = make(chan loadResult, 1)

	names := l.m.TextureNames()
	go func() {
		start := time.Now()
		textures, err := l.loadAll(names)
		log.Printf("[Texture] Loaded %d textures in %v", len(textures), time.Since(start))
		l.results <- loadResult{textures: textures, err: err}
	}()
}

// Poll checks for a finished load without blocking and returns the current state
func (l *Loader) Poll() LoadState {
	if l.state != Loading {
		return l.state
	}
	select {
	case res := <-l.results:
		l.finish(res)
	default:
	}
	return l.state
}

// Wait blocks until loading finishes or ctx is done
func (l *Loader) Wait(ctx context.Context) (LoadState, error) {
	if l.state != Loading {
		return l.state, nil
	}
	select {
	case res := <-l.results:
		l.finish(res)
		return l.state, nil
	case <-ctx.Done():
		return l.state, ctx.Err()
	}
}

func (l *Loader) finish(res loadResult) {
	l.set = NewSet(res.textures, l.m)
	l.err = res.err
	if res.err != nil {
		l.state = Failed
		log.Printf("[Texture] Using fallback textures: %v", res.err)
	} else {
		l.state = Ready
	}
}

func (l *Loader) State() LoadState { return l.state }

// Err returns the load error once the state is Failed
func (l *Loader) Err() error { return l.err }

// Ready implements the renderer's texture source
func (l *Loader) Ready() bool {
	return l.state.Usable()
}

// ForCell returns the texture for a wall code, or nil before loading completes
func (l *Loader) ForCell(code world.CellCode) *Texture {
	if l.set == nil {
		return nil
	}
	return l.set.ForCell(code)
}

// Set returns the loaded texture set, or nil before loading completes
func (l *Loader) Set() *Set { return l.set }

// loadAll decodes every name. Names that fail are replaced by a checkerboard and their errors are
// joined.
func (l *Loader) loadAll(names []string) (map[string]*Texture, error) {
	textures := make(map[string]*Texture, len(names))
	var errs []error
	for _, name := range names {
		t, err := l.loadOne(name)
		if err != nil {
			errs = append(errs, err)
			t = Checker(name, fallbackSize, 8, fallbackLight, fallbackDark)
		}
		textures[name] = t
	}
	return textures, errors.Join(errs...)
}

func (l *Loader) loadOne(name string) (*Texture, error) {
	for _, ext := range Extensions {
		f, err := l.fsys.Open(name + ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open texture %s: %w", name+ext, err)
		}
		t, err := Decode(f, name, l.maxSize)
		f.Close()
		return t, err
	}
	return nil, fmt.Errorf("texture %s: no file with extensions %v: %w", name, Extensions, fs.ErrNotExist)
}
