package core

import "github.com/vovakirdan/vetovoima/internal/events"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic level generation
	DevTools bool  // Show the developer overlay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState summarizes the game for the platform layer.
type GameState struct {
	Phase    string // Session state name (Menu, Loading, InGame, GameOver)
	Level    int    // Index of the current or last played level
	GameOver bool   // The run ended and the game over screen is showing
	Quit     bool   // The player asked to leave from the menu
}

// StepResult is returned by Game.Step() after each simulation tick.
// Events holds the lifecycle events the tick produced, in order.
type StepResult struct {
	State  GameState
	Events []events.Event
}
