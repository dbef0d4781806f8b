package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vetovoima/internal/core"
	"github.com/vovakirdan/vetovoima/internal/events"
	"github.com/vovakirdan/vetovoima/internal/registry"
	"github.com/vovakirdan/vetovoima/internal/storage"
)

// EventSink receives the events of every tick, in order.
type EventSink interface {
	Handle(ev events.Event)
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithSink forwards game events to sink, e.g. the sound manager.
func WithSink(sink EventSink) ModelOption {
	return func(m *Model) { m.sink = sink }
}

// WithLogger sets the logger for storage warnings.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// Embedded makes leaving the game return to the caller's menu instead of
// ending the program.
func Embedded() ModelOption {
	return func(m *Model) { m.embedded = true }
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	sink      EventSink
	logger    *log.Logger
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	input     *InputState
	gameState core.GameState
	runStart  time.Time // Wall time the current run began
	now       func() time.Time

	embedded   bool
	leaving    bool // Leave on the next tick so no tick stays in flight
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		logger:    log.New(io.Discard),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		input:     NewInputState(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The game scales its view to the screen; no reset needed.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		if m.embedded {
			m.leaving = true
			return m, nil
		}
		return m.leave()
	}
	m.input.Press(action, m.now())
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.leaving {
		return m.leave()
	}

	now := m.now()
	result := m.game.Step(m.input.Frame(now))
	m.gameState = result.State

	for _, ev := range result.Events {
		m.handleEvent(ev, now)
	}

	if m.gameState.Quit {
		return m.leave()
	}
	return m, tickCmd(m.config.TickRate)
}

// handleEvent records finished runs and forwards the event to the sink.
func (m *Model) handleEvent(ev events.Event, now time.Time) {
	switch ev := ev.(type) {
	case events.BeginNewGame:
		m.runStart = now
	case events.GameOver:
		m.saveRun(ev.Level, now.Sub(m.runStart))
	}
	if m.sink != nil {
		m.sink.Handle(ev)
	}
}

func (m *Model) saveRun(level int, d time.Duration) {
	if m.store == nil {
		return
	}
	run := storage.RunEntry{
		GameID:   m.game.ID(),
		Level:    level,
		Seed:     m.config.Seed,
		Duration: d,
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "game", run.GameID, "level", level, "err", err)
	}
}

// leave ends the game: back to the menu when embedded, otherwise quit.
func (m Model) leave() (tea.Model, tea.Cmd) {
	m.input.Reset()
	if m.embedded {
		m.backToMenu = true
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".vetovoima", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the embedded game was left.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
