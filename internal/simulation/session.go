package simulation

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vetovoima/internal/config"
	"github.com/vovakirdan/vetovoima/internal/events"
	"github.com/vovakirdan/vetovoima/internal/physics"
	"github.com/vovakirdan/vetovoima/internal/terrain"
)

// State is the phase of a session.
type State int

const (
	StateInit State = iota
	StateInMenu
	StateLoading
	StateInGame
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateInMenu:
		return "Menu"
	case StateLoading:
		return "Loading"
	case StateInGame:
		return "InGame"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Controls are the abstract input signals of one tick.
type Controls struct {
	Left, Right bool
	Up, Down    bool // Up decreases the gravity force, Down increases it
	Confirm     bool
	Cancel      bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRand replaces the seeded random source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// Session runs one player's game: menu, levels and game over.
// It is not safe for concurrent use; the owner steps it from one goroutine.
type Session struct {
	cfg config.Config
	rng *rand.Rand
	log *log.Logger

	state     State
	stateTime time.Duration
	elapsed   time.Duration
	quit      bool

	world      *physics.World
	level      *terrain.Level
	gravity    GravitySource
	countdown  Countdown
	lastSecond int

	player     physics.BodyID
	goal       physics.BodyID
	debounce   CollisionDebounce
	controller PlayerController
	detector   GoalDetector
}

// NewSession validates cfg and creates a session in the Init state.
// An invalid configuration is refused.
func NewSession(cfg config.Config, seed int64, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to start session: %w", err)
	}
	s := &Session{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)),
		log:        log.New(io.Discard),
		state:      StateInit,
		world:      physics.NewWorld(cfg.Physics),
		gravity:    NewGravitySource(cfg.Gravity),
		debounce:   NewCollisionDebounce(cfg.Session.CollisionDebounce),
		controller: NewPlayerController(cfg.Player),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SurfaceReady moves a fresh session into the menu. It does nothing in any
// other state.
func (s *Session) SurfaceReady() []events.Event {
	if s.state != StateInit {
		return nil
	}
	return s.enterMenu(nil)
}

// Step advances the session by dt and returns the events it produced.
func (s *Session) Step(dt time.Duration, in Controls) []events.Event {
	s.elapsed += dt
	s.stateTime += dt

	// Auto-cycling keeps running outside levels; InGame ticks it in order.
	if s.state != StateInGame && s.gravity.AutoCycle {
		s.gravity.Tick(dt, GravityControl{})
	}

	var evs []events.Event
	switch s.state {
	case StateInMenu:
		switch {
		case in.Confirm:
			evs = append(evs, events.BeginNewGame{})
			s.level = nil
			s.enterLoading()
		case in.Cancel:
			s.quit = true
		}

	case StateLoading:
		if s.stateTime >= s.cfg.Session.LoadingDelay {
			s.setState(StateInGame)
			s.lastSecond = s.countdown.Seconds()
			evs = append(evs, events.LevelStarted{Level: s.level.Index})
		}

	case StateInGame:
		evs = s.stepGame(dt, in, evs)

	case StateGameOver:
		if s.stateTime >= s.cfg.Session.GameOverDuration {
			evs = s.enterMenu(evs)
		}
	}

	for _, ev := range evs {
		if _, ok := ev.(events.PlayerCollided); !ok {
			s.log.Debug("event", "name", events.Name(ev))
		}
	}
	return evs
}

// stepGame runs one level tick in its fixed order.
func (s *Session) stepGame(dt time.Duration, in Controls, evs []events.Event) []events.Event {
	if in.Cancel {
		return s.enterMenu(evs)
	}
	if in.Confirm {
		s.gravity.ToggleAutoCycle()
		s.log.Debug("gravity auto-cycle toggled", "enabled", s.gravity.AutoCycle)
	}

	s.gravity.Tick(dt, GravityControl{Increase: in.Down, Decrease: in.Up})
	s.gravity.ApplyForces(s.world)

	player := s.world.Body(s.player)
	if player != nil {
		lin, ang := s.controller.Tick(dt, in.Left, in.Right, player)
		player.Vel = player.Vel.Add(lin)
		player.AngVel = ang
	}

	s.world.Step(dt)
	for _, c := range s.world.DrainContacts() {
		if !c.Involves(s.player) {
			continue
		}
		if ev, ok := s.debounce.Accept(c); ok {
			evs = append(evs, ev)
		}
	}

	if s.detector.Check(s.world, s.world.Body(s.player), s.goal) {
		evs = append(evs, events.GoalReached{Level: s.level.Index})
		s.enterLoading()
		return evs
	}

	s.countdown.Tick(dt)
	if s.countdown.Finished() {
		evs = append(evs, events.GameOver{Level: s.level.Index})
		s.setState(StateGameOver)
		return evs
	}
	if sec := s.countdown.Seconds(); sec != s.lastSecond {
		s.lastSecond = sec
		evs = append(evs, events.CountdownTick{Seconds: sec})
	}
	return evs
}

// enterLoading builds the next level and spawns its bodies.
func (s *Session) enterLoading() {
	prev := 0
	if s.level != nil {
		prev = s.level.Index
	}
	s.level = terrain.Generate(prev, s.cfg, s.rng)
	s.spawn(s.level)

	auto := s.gravity.AutoCycle
	s.gravity = NewGravitySource(s.cfg.Gravity)
	if s.cfg.Session.PreserveAutoCycle {
		s.gravity.AutoCycle = auto
	}
	s.debounce.Reset()
	s.countdown = Countdown{Duration: s.level.Countdown}

	s.log.Debug("level generated",
		"level", s.level.Index,
		"debris", len(s.level.Debris),
		"countdown", s.level.Countdown)
	s.setState(StateLoading)
}

func (s *Session) enterMenu(evs []events.Event) []events.Event {
	s.world.Clear()
	s.player, s.goal = physics.Boundary, physics.Boundary
	s.setState(StateInMenu)
	return append(evs, events.EnterMenu{})
}

func (s *Session) setState(next State) {
	s.log.Debug("state transition", "from", s.state, "to", next)
	s.state = next
	s.stateTime = 0
}

func (s *Session) spawn(lvl *terrain.Level) {
	w := s.world
	w.Clear()
	w.SetBoundary(lvl.Inner)

	w.Insert(physics.Body{
		Kind:        physics.KindFixed,
		Tag:         physics.TagCore,
		Collider:    physics.Circle(s.cfg.World.CoreRadius),
		Restitution: s.cfg.World.CoreRestitution,
	})

	for i, d := range lvl.Debris {
		if d.Fallback {
			s.log.Debug("degenerate hull replaced by circle", "debris", i, "sides", d.Sides)
		}
		w.Insert(physics.Body{
			Kind:        physics.KindDynamic,
			Tag:         physics.TagDebris,
			Class:       int(d.Tier),
			Collider:    d.Collider,
			Pos:         d.Pos,
			Density:     d.Density,
			Restitution: d.Restitution,
			Attractable: true,
		})
	}

	goalHeight := s.cfg.Goal.HeightRatio * s.cfg.World.Radius
	s.goal = w.Insert(physics.Body{
		Kind:     physics.KindSensor,
		Tag:      physics.TagGoal,
		Collider: physics.Cuboid(s.cfg.Goal.Width/2, goalHeight/2),
		Pos:      lvl.Goal.Pos,
		Angle:    lvl.Goal.Angle,
	})

	s.player = w.Insert(physics.Body{
		Kind:        physics.KindDynamic,
		Tag:         physics.TagPlayer,
		Collider:    physics.Cuboid(s.cfg.Player.Width/2, s.cfg.Player.Height/2),
		Pos:         lvl.Player.Pos,
		Angle:       lvl.Player.Angle,
		Mass:        s.cfg.Player.Mass,
		Restitution: s.cfg.Player.Restitution,
		Attractable: true,
	})
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Level returns the current level, or the last one played while in the
// menu or game over. It is nil before the first game.
func (s *Session) Level() *terrain.Level { return s.level }

// Gravity returns a copy of the gravity source.
func (s *Session) Gravity() GravitySource { return s.gravity }

// Countdown returns a copy of the level timer.
func (s *Session) Countdown() Countdown { return s.countdown }

// Bodies returns the bodies of the running level.
func (s *Session) Bodies() []*physics.Body { return s.world.Bodies() }

// PlayerID returns the player body ID, or physics.Boundary when none exists.
func (s *Session) PlayerID() physics.BodyID { return s.player }

// GoalID returns the goal body ID, or physics.Boundary when none exists.
func (s *Session) GoalID() physics.BodyID { return s.goal }

// Player returns the player body, or nil.
func (s *Session) Player() *physics.Body { return s.world.Body(s.player) }

// Elapsed returns the total simulated time.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// StateTime returns the time spent in the current phase.
func (s *Session) StateTime() time.Duration { return s.stateTime }

// QuitRequested reports whether the player chose to leave from the menu.
func (s *Session) QuitRequested() bool { return s.quit }

// Config returns the configuration the session runs with.
func (s *Session) Config() config.Config { return s.cfg }

// SurfaceRadius returns the terrain radius in direction angle, or +Inf when
// no level is loaded.
func (s *Session) SurfaceRadius(angle float64) float64 {
	return s.world.BoundaryRadius(angle)
}
