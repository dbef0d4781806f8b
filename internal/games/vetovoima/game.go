// Package vetovoima adapts the simulation session to the platform: it maps
// input frames onto session controls, reports the game state and draws the
// ring into the screen buffer.
package vetovoima

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vetovoima/internal/config"
	"github.com/vovakirdan/vetovoima/internal/core"
	"github.com/vovakirdan/vetovoima/internal/events"
	"github.com/vovakirdan/vetovoima/internal/registry"
	"github.com/vovakirdan/vetovoima/internal/simulation"
)

// Mode selects how the gravity field starts out.
type Mode int

const (
	ModeManual Mode = iota // Player drives the force with up/down
	ModeCycle              // Force sweeps on its own from the first level
)

// ringCount is the number of gravity rings drawn behind the level.
const ringCount = 6

// ringSpeed is how many ring spacings per second the rings drift at full force.
const ringSpeed = 0.5

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset = config.DifficultyNormal

// logger receives session and loading diagnostics
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are
// rejected and leave the current preset in place.
func SetDifficultyPreset(name string) error {
	p, err := config.ParsePreset(name)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// SetLogger sets the logger handed to new sessions.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game implements registry.Game on top of a simulation session.
type Game struct {
	mode    Mode
	session *simulation.Session
	runtime core.RuntimeConfig
	tick    time.Duration

	pending   []events.Event // Emitted by Reset, returned by the next Step
	ringPhase float64        // Drift of the gravity rings, in [0, 1)
	devTools  bool
	ticks     int
}

// New creates a game where gravity is controlled by hand.
func New() *Game {
	return &Game{mode: ModeManual}
}

// NewCycle creates a game where gravity starts auto-cycling.
func NewCycle() *Game {
	return &Game{mode: ModeCycle}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeCycle {
		return "vetovoima_cycle"
	}
	return "vetovoima"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeCycle {
		return "Vetovoima (Auto-cycle)"
	}
	return "Vetovoima"
}

// Reset loads the configuration, starts a fresh session and brings it to
// the menu.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.devTools = runtime.DevTools
	g.ringPhase = 0
	g.ticks = 0

	rate := runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.tick = time.Second / time.Duration(rate)

	cfg := g.loadConfig()
	session, err := simulation.NewSession(cfg, runtime.Seed, simulation.WithLogger(logger))
	if err != nil {
		logger.Warn("falling back to default config", "err", err)
		session, _ = simulation.NewSession(g.adjust(config.DefaultConfig()), runtime.Seed,
			simulation.WithLogger(logger))
	}
	g.session = session
	g.pending = g.session.SurfaceReady()
}

func (g *Game) loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Warn("config not loaded", "path", configPath, "err", err)
		cfg = config.DefaultConfig()
	}
	return g.adjust(cfg)
}

// adjust applies the difficulty preset and the game mode.
func (g *Game) adjust(cfg config.Config) config.Config {
	config.ApplyPreset(&cfg, difficultyPreset)
	if g.mode == ModeCycle {
		cfg.Gravity.AutoCycle = true
		cfg.Session.PreserveAutoCycle = true
	}
	return cfg
}

// Step advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.ticks++
	if in.Has(core.ActionDevTools) {
		g.devTools = !g.devTools
	}

	evs := g.pending
	g.pending = nil
	evs = append(evs, g.session.Step(g.tick, Controls(in))...)

	g.driftRings()
	return core.StepResult{State: g.State(), Events: evs}
}

// Controls maps an input frame onto session controls.
func Controls(in core.InputFrame) simulation.Controls {
	return simulation.Controls{
		Left:    in.Has(core.ActionLeft),
		Right:   in.Has(core.ActionRight),
		Up:      in.Has(core.ActionUp),
		Down:    in.Has(core.ActionDown),
		Confirm: in.Has(core.ActionConfirm),
		Cancel:  in.Has(core.ActionCancel),
	}
}

// driftRings moves the rings outward under positive force and inward under
// negative force.
func (g *Game) driftRings() {
	force := g.session.Gravity().Force
	g.ringPhase = math.Mod(g.ringPhase+force*ringSpeed*g.tick.Seconds(), 1)
	if g.ringPhase < 0 {
		g.ringPhase++
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	level := 0
	if lvl := g.session.Level(); lvl != nil {
		level = lvl.Index
	}
	st := g.session.State()
	return core.GameState{
		Phase:    st.String(),
		Level:    level,
		GameOver: st == simulation.StateGameOver,
		Quit:     g.session.QuitRequested(),
	}
}

// Session exposes the underlying session.
func (g *Game) Session() *simulation.Session {
	return g.session
}

// Register the games with the registry
func init() {
	registry.Register("vetovoima", func() registry.Game {
		return New()
	})
	registry.Register("vetovoima_cycle", func() registry.Game {
		return NewCycle()
	})
}
