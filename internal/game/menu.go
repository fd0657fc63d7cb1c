package game

import "fmt"

// Mode is the top-level state of the application
type Mode int

const (
	ModePlaying Mode = iota
	ModePaused
)

func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MenuEvent is a key press the pause menu reacts to
type MenuEvent int

const (
	MenuToggle MenuEvent = iota
	MenuUp
	MenuDown
	MenuConfirm
)

// MenuAction is what confirming a menu entry asks the game to do
type MenuAction int

const (
	ActionNone MenuAction = iota
	ActionResume
	ActionExit
)

// menuOptions are the pause menu entries, top to bottom
var menuOptions = []struct {
	Label  string
	Action MenuAction
}{
	{"Resume", ActionResume},
	{"Exit", ActionExit},
}

// Menu is the pause menu state machine. The selection survives closing and reopening the menu.
type Menu struct {
	mode      Mode
	selection int
}

// Handle applies ev and returns the action it triggered, if any.
// Navigation and confirm are ignored while playing.
func (m *Menu) Handle(ev MenuEvent) MenuAction {
	if ev == MenuToggle {
		if m.mode == ModePlaying {
			m.mode = ModePaused
		} else {
			m.mode = ModePlaying
		}
		return ActionNone
	}
	if m.mode != ModePaused {
		return ActionNone
	}

	switch ev {
	case MenuUp:
		m.selection = (m.selection - 1 + len(menuOptions)) % len(menuOptions)
	case MenuDown:
		m.selection = (m.selection + 1) % len(menuOptions)
	case MenuConfirm:
		action := menuOptions[m.selection].Action
		if action == ActionResume {
			m.mode = ModePlaying
		}
		return action
	}
	return ActionNone
}

func (m *Menu) Mode() Mode     { return m.mode }
func (m *Menu) Paused() bool   { return m.mode == ModePaused }
func (m *Menu) Selection() int { return m.selection }

// Labels returns the entry labels in display order
func (m *Menu) Labels() []string {
	labels := make([]string, len(menuOptions))
	for i, opt := range menuOptions {
		labels[i] = opt.Label
	}
	return labels
}
