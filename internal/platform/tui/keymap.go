package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vetovoima/internal/core"
)

// holdWindow is how long a steering or gravity key counts as held after
// its last press. Terminals report presses and auto-repeats, never
// releases, so a held key is one that keeps repeating.
const holdWindow = 120 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "enter", " ":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionCancel, false
	case "f2":
		return core.ActionDevTools, false
	}

	return core.ActionNone, false
}

// Continuous reports whether an action applies for as long as its key is
// held, as opposed to once per press.
func Continuous(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown:
		return true
	}
	return false
}

// InputState collects key presses between ticks and turns them into one
// input frame per tick.
type InputState struct {
	held   map[core.Action]time.Time // Last press of each continuous action
	pulses core.InputFrame           // Discrete actions since the last frame
}

// NewInputState creates an empty input state.
func NewInputState() *InputState {
	return &InputState{
		held:   make(map[core.Action]time.Time),
		pulses: core.NewInputFrame(),
	}
}

// Press records an action pressed at now.
func (s *InputState) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if Continuous(a) {
		s.held[a] = now
		return
	}
	s.pulses.Set(a)
}

// Frame returns the actions active at now: continuous actions pressed within
// the hold window and every discrete action since the previous frame.
func (s *InputState) Frame(now time.Time) core.InputFrame {
	frame := s.pulses.Clone()
	for a, at := range s.held {
		if now.Sub(at) <= holdWindow {
			frame.Set(a)
		} else {
			delete(s.held, a)
		}
	}
	s.pulses.Clear()
	return frame
}

// Reset forgets every pressed key.
func (s *InputState) Reset() {
	clear(s.held)
	s.pulses.Clear()
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
