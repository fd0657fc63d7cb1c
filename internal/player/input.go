package player

import (
	"github.com/sasha-s/go-deadlock"
)

// Input is the set of controls held during a frame plus the pointer movement since the last one
type Input struct {
	Forward     bool
	Back        bool
	StrafeLeft  bool
	StrafeRight bool
	TurnLeft    bool
	TurnRight   bool
	LookUp      bool
	LookDown    bool

	PointerDX float64
	PointerDY float64
}

// Idle reports whether no control is active
func (in Input) Idle() bool {
	return in == Input{}
}

// InputBox shares input between an event goroutine and the game loop
type InputBox struct {
	mu    deadlock.Mutex
	input Input
}

// Set replaces the held controls and keeps any pointer movement not yet consumed
func (b *InputBox) Set(in Input) {
	b.mu.Lock()
	defer b.mu.Unlock()
	dx, dy := b.input.PointerDX, b.input.PointerDY
	b.input = in
	b.input.PointerDX += dx
	b.input.PointerDY += dy
}

// Update applies fn to the stored input under the lock
func (b *InputBox) Update(fn func(in *Input)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.input)
}

// AddPointer accumulates pointer movement until the next Snapshot
func (b *InputBox) AddPointer(dx, dy float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.input.PointerDX += dx
	b.input.PointerDY += dy
}

// Snapshot returns the current input and clears the accumulated pointer movement
func (b *InputBox) Snapshot() Input {
	b.mu.Lock()
	defer b.mu.Unlock()
	in := b.input
	b.input.PointerDX = 0
	b.input.PointerDY = 0
	return in
}
