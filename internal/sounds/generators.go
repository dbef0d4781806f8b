package sounds

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator generates a sine tone with a soft attack and an
// exponential decay.
type ToneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	decay float64 // Envelope decay rate per second
	pos   int
}

// NewToneGenerator creates a tone generator
func NewToneGenerator(sr beep.SampleRate, freq, decay float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq, decay: decay}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		attack := math.Min(t/0.005, 1.0)
		envelope := attack * math.Exp(-t*g.decay)

		sample := 0.25 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.08 * math.Sin(2*math.Pi*g.freq*2*t)
		sample *= envelope

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// PulseGenerator generates the low drone that runs under a level: a bass
// tone struck once per beat.
type PulseGenerator struct {
	sr   beep.SampleRate
	freq float64
	beat int // Samples per beat
	pos  int
}

// NewPulseGenerator creates a drone pulsing once per beat
func NewPulseGenerator(sr beep.SampleRate, freq float64, beat time.Duration) *PulseGenerator {
	return &PulseGenerator{sr: sr, freq: freq, beat: max(sr.N(beat), 1)}
}

func (g *PulseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		beatT := float64(g.pos%g.beat) / float64(g.sr)

		strike := math.Exp(-beatT * 12)
		sample := 0.06 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.18 * strike * math.Sin(2*math.Pi*g.freq*2*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PulseGenerator) Err() error {
	return nil
}

// ChirpGenerator sweeps linearly from one frequency to another over its
// duration and holds the final pitch afterwards.
type ChirpGenerator struct {
	sr       beep.SampleRate
	from, to float64
	length   int
	phase    float64
	pos      int
}

// NewChirpGenerator creates a rising or falling sweep
func NewChirpGenerator(sr beep.SampleRate, from, to float64, d time.Duration) *ChirpGenerator {
	return &ChirpGenerator{sr: sr, from: from, to: to, length: max(sr.N(d), 1)}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.length), 1.0)
		freq := g.from + (g.to-g.from)*progress

		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}

		envelope := math.Min(float64(g.pos)/float64(g.sr)/0.01, 1.0) * (1 - 0.7*progress)
		sample := 0.25 * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}
