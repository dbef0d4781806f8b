package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - brake / reverse
	ActionRight          // D, Right arrow - accelerate
	ActionUp             // W, Up arrow - decrease gravity force
	ActionDown           // S, Down arrow - increase gravity force
	ActionConfirm        // Enter, Space - start game / toggle auto-cycle
	ActionCancel         // Escape, B - back to menu / exit from menu
	ActionQuit           // Q, Ctrl+C - exit session
	ActionDevTools       // F2 - toggle the developer overlay
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionQuit:
		return "Quit"
	case ActionDevTools:
		return "DevTools"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// Continuous actions (steering, gravity) are present for every tick the key
// is considered held; discrete actions (confirm, cancel) for a single tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
