// Package events defines the lifecycle events the game core emits to its
// collaborators (renderer, audio, scoreboard).
package events

import (
	"fmt"
	"time"
)

// Event is a lifecycle event produced by a simulation tick.
type Event interface {
	event()
}

// EnterMenu is emitted whenever the session enters the menu.
type EnterMenu struct{}

func (EnterMenu) event() {}

// BeginNewGame is emitted when the player starts a new run from the menu.
type BeginNewGame struct{}

func (BeginNewGame) event() {}

// LevelStarted is emitted when a level becomes playable.
type LevelStarted struct {
	Level int
}

func (LevelStarted) event() {}

// CountdownTick is emitted each time the whole seconds remaining on the
// level countdown change.
type CountdownTick struct {
	Seconds int
}

func (CountdownTick) event() {}

// GoalReached is emitted when the player touches the goal marker.
type GoalReached struct {
	Level int
}

func (GoalReached) event() {}

// GameOver is emitted once when the level countdown runs out.
type GameOver struct {
	Level int
}

func (GameOver) event() {}

// PlayerCollided is emitted for a debounced player contact.
type PlayerCollided struct {
	Gap       time.Duration // Time since the previous accepted contact
	Magnitude float64       // Total contact impulse
}

func (PlayerCollided) event() {}

// Name returns a short name for an event, used in logs.
func Name(e Event) string {
	switch e := e.(type) {
	case EnterMenu:
		return "EnterMenu"
	case BeginNewGame:
		return "BeginNewGame"
	case LevelStarted:
		return fmt.Sprintf("LevelStarted(%d)", e.Level)
	case CountdownTick:
		return fmt.Sprintf("CountdownTick(%d)", e.Seconds)
	case GoalReached:
		return fmt.Sprintf("GoalReached(%d)", e.Level)
	case GameOver:
		return fmt.Sprintf("GameOver(%d)", e.Level)
	case PlayerCollided:
		return fmt.Sprintf("PlayerCollided(%s, %.2f)", e.Gap, e.Magnitude)
	default:
		return "Unknown"
	}
}
