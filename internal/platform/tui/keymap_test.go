package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vetovoima/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a", runeKey('a'), core.ActionLeft, false},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionCancel, false},
		{"b", runeKey('b'), core.ActionCancel, false},
		{"f2", tea.KeyMsg{Type: tea.KeyF2}, core.ActionDevTools, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)",
					tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.action {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.action)
		}
	}
}

func TestInputStateHoldWindow(t *testing.T) {
	s := NewInputState()
	t0 := time.Unix(1000, 0)

	s.Press(core.ActionRight, t0)

	if !s.Frame(t0).Has(core.ActionRight) {
		t.Error("a pressed steering key should be held on the same tick")
	}
	if !s.Frame(t0.Add(holdWindow)).Has(core.ActionRight) {
		t.Error("a steering key should stay held for the whole hold window")
	}
	if s.Frame(t0.Add(holdWindow + time.Millisecond)).Has(core.ActionRight) {
		t.Error("a steering key should be released after the hold window")
	}

	// Auto-repeat keeps the key held
	s.Press(core.ActionUp, t0)
	s.Press(core.ActionUp, t0.Add(100*time.Millisecond))
	if !s.Frame(t0.Add(200 * time.Millisecond)).Has(core.ActionUp) {
		t.Error("a repeating key should stay held")
	}
}

func TestInputStateDiscreteActionsFireOnce(t *testing.T) {
	s := NewInputState()
	t0 := time.Unix(1000, 0)

	s.Press(core.ActionConfirm, t0)
	s.Press(core.ActionNone, t0)

	first := s.Frame(t0)
	if !first.Has(core.ActionConfirm) {
		t.Fatal("confirm should be present on the next frame")
	}
	if first.Has(core.ActionNone) {
		t.Error("ActionNone should never be recorded")
	}
	if s.Frame(t0).Has(core.ActionConfirm) {
		t.Error("confirm should fire once per press")
	}
}

func TestInputStateReset(t *testing.T) {
	s := NewInputState()
	t0 := time.Unix(1000, 0)

	s.Press(core.ActionLeft, t0)
	s.Press(core.ActionCancel, t0)
	s.Reset()

	frame := s.Frame(t0)
	if frame.Has(core.ActionLeft) || frame.Has(core.ActionCancel) {
		t.Error("Reset() should forget every pressed key")
	}
}

func TestContinuous(t *testing.T) {
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown} {
		if !Continuous(a) {
			t.Errorf("%v should be continuous", a)
		}
	}
	for _, a := range []core.Action{core.ActionConfirm, core.ActionCancel, core.ActionDevTools, core.ActionQuit} {
		if Continuous(a) {
			t.Errorf("%v should be discrete", a)
		}
	}
}
