// Package sounds synthesizes the audio cues of a session and plays them in
// response to its events. Every cue replaces the one playing before it.
package sounds

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/vetovoima/internal/events"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Cue is a sound the game can play.
type Cue int

const (
	CueNone        Cue = iota
	CueSilence         // Stop whatever is playing
	CueDrone           // Level running, pulse on quarter notes
	CueUrgentDrone     // Last twenty seconds, pulse on eighth notes
	CueCountdown       // One of the last five seconds
	CueGoal
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueNone:
		return "none"
	case CueSilence:
		return "silence"
	case CueDrone:
		return "drone"
	case CueUrgentDrone:
		return "urgent-drone"
	case CueCountdown:
		return "countdown"
	case CueGoal:
		return "goal"
	case CueGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// urgentSeconds is the countdown value that switches to the faster drone.
const urgentSeconds = 20

// beepSeconds is the countdown value from which every second beeps.
const beepSeconds = 5

// CueFor picks the cue an event triggers, or CueNone.
func CueFor(ev events.Event) Cue {
	switch ev := ev.(type) {
	case events.CountdownTick:
		switch {
		case ev.Seconds == urgentSeconds:
			return CueUrgentDrone
		case ev.Seconds >= 1 && ev.Seconds <= beepSeconds:
			return CueCountdown
		}
	case events.LevelStarted:
		return CueDrone
	case events.GoalReached:
		return CueGoal
	case events.GameOver:
		return CueGameOver
	case events.EnterMenu:
		return CueSilence
	}
	return CueNone
}

// Streamer builds the sound of a cue. One-shot cues end on their own;
// drones play until replaced. CueNone and CueSilence have no sound.
func Streamer(cue Cue) beep.Streamer {
	ms := func(n int) int { return sampleRate.N(time.Duration(n) * time.Millisecond) }

	switch cue {
	case CueDrone:
		return NewPulseGenerator(sampleRate, 55, 500*time.Millisecond)
	case CueUrgentDrone:
		return NewPulseGenerator(sampleRate, 55, 250*time.Millisecond)
	case CueCountdown:
		return beep.Take(ms(150), NewToneGenerator(sampleRate, 880, 12))
	case CueGoal:
		return beep.Take(ms(400), NewChirpGenerator(sampleRate, 440, 1320, 400*time.Millisecond))
	case CueGameOver:
		return beep.Seq(
			beep.Take(ms(250), NewToneGenerator(sampleRate, 330, 4)),
			beep.Take(ms(250), NewToneGenerator(sampleRate, 262, 4)),
			beep.Take(ms(600), NewToneGenerator(sampleRate, 196, 3)),
		)
	}
	return nil
}

// Manager plays cues through the speaker. All methods are safe to call
// before Initialize or after a failed one; they do nothing then.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	current     *beep.Ctrl
	last        Cue
	initialized bool
	log         *log.Logger
}

// NewManager creates a sound manager. A nil logger discards output.
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		mixer: &beep.Mixer{},
		log:   logger,
	}
}

// Initialize sets up the audio device.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	speaker.Lock()
	m.stopLocked()
	speaker.Unlock()

	m.initialized = false
}

// Handle plays the cue an event triggers, if any.
func (m *Manager) Handle(ev events.Event) {
	if cue := CueFor(ev); cue != CueNone {
		m.Play(cue)
	}
}

// Play stops the current sound and starts cue.
func (m *Manager) Play(cue Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.last = cue
	if !m.initialized {
		return
	}

	speaker.Lock()
	m.stopLocked()
	if s := Streamer(cue); s != nil {
		m.current = &beep.Ctrl{Streamer: s}
		m.mixer.Add(m.current)
	}
	speaker.Unlock()

	m.log.Debug("sound cue", "cue", cue)
}

// Last returns the most recently requested cue.
func (m *Manager) Last() Cue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

func (m *Manager) stopLocked() {
	if m.current != nil {
		m.current.Paused = true
		m.current = nil
	}
	m.mixer.Clear()
}
