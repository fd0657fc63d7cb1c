package player

import (
	"fmt"
	"time"
)

// Control is one held input
type Control int

const (
	ControlForward Control = iota
	ControlBack
	ControlStrafeLeft
	ControlStrafeRight
	ControlTurnLeft
	ControlTurnRight
	ControlLookUp
	ControlLookDown
)

func (c Control) String() string {
	switch c {
	case ControlForward:
		return "forward"
	case ControlBack:
		return "back"
	case ControlStrafeLeft:
		return "strafe-left"
	case ControlStrafeRight:
		return "strafe-right"
	case ControlTurnLeft:
		return "turn-left"
	case ControlTurnRight:
		return "turn-right"
	case ControlLookUp:
		return "look-up"
	case ControlLookDown:
		return "look-down"
	}
	return fmt.Sprintf("Control(%d)", int(c))
}

func (c Control) set(in *Input, down bool) {
	switch c {
	case ControlForward:
		in.Forward = down
	case ControlBack:
		in.Back = down
	case ControlStrafeLeft:
		in.StrafeLeft = down
	case ControlStrafeRight:
		in.StrafeRight = down
	case ControlTurnLeft:
		in.TurnLeft = down
	case ControlTurnRight:
		in.TurnRight = down
	case ControlLookUp:
		in.LookUp = down
	case ControlLookDown:
		in.LookDown = down
	}
}

// Holder emulates held keys for front-ends that only see key presses, such as a terminal
// relying on key repeat. The first press keeps its control down for firstHold, long enough for
// auto-repeat to start; every repeat after that extends it by hold.
type Holder struct {
	box       *InputBox
	firstHold time.Duration
	hold      time.Duration
	gen       map[Control]uint64 // guarded by box
	down      map[Control]bool   // guarded by box
}

// NewHolder creates a holder writing into box
func NewHolder(box *InputBox, firstHold, hold time.Duration) *Holder {
	if firstHold < hold {
		firstHold = hold
	}
	return &Holder{
		box:       box,
		firstHold: firstHold,
		hold:      hold,
		gen:       make(map[Control]uint64),
		down:      make(map[Control]bool),
	}
}

// Press marks c as held and schedules its release
func (h *Holder) Press(c Control) {
	var gen uint64
	wait := h.hold
	h.box.Update(func(in *Input) {
		if !h.down[c] {
			wait = h.firstHold
		}
		h.gen[c]++
		gen = h.gen[c]
		h.down[c] = true
		c.set(in, true)
	})
	time.AfterFunc(wait, func() {
		h.box.Update(func(in *Input) {
			// A later press owns the control now
			if h.gen[c] == gen {
				h.down[c] = false
				c.set(in, false)
			}
		})
	})
}
