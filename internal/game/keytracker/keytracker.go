// Package keytracker turns polled key states into held and just-pressed queries.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Source reports whether a key is currently held down
type Source func(key ebiten.Key) bool

// KeyStateTracker remembers the state of a fixed set of keys between ticks.
// Update must be called once per tick before any query.
type KeyStateTracker struct {
	source  Source
	keys    []ebiten.Key
	current map[ebiten.Key]bool
	prev    map[ebiten.Key]bool
}

// New tracks keys using ebiten's keyboard state
func New(keys ...ebiten.Key) *KeyStateTracker {
	return NewWithSource(ebiten.IsKeyPressed, keys...)
}

// NewWithSource tracks keys polled from source
func NewWithSource(source Source, keys ...ebiten.Key) *KeyStateTracker {
	return &KeyStateTracker{
		source:  source,
		keys:    append([]ebiten.Key(nil), keys...),
		current: make(map[ebiten.Key]bool, len(keys)),
		prev:    make(map[ebiten.Key]bool, len(keys)),
	}
}

// Update polls every tracked key
func (k *KeyStateTracker) Update() {
	k.prev, k.current = k.current, k.prev
	for _, key := range k.keys {
		k.current[key] = k.source(key)
	}
}

// IsKeyPressed reports whether key was held at the last Update
func (k *KeyStateTracker) IsKeyPressed(key ebiten.Key) bool {
	return k.current[key]
}

// IsKeyJustPressed returns true if the key was not pressed last tick but is pressed this tick.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.current[key] && !k.prev[key]
}
