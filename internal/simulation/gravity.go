// Package simulation holds the game rules: the gravity field, the player
// controller, goal detection, the collision debounce and the session state
// machine that ties them together.
package simulation

import (
	"time"

	"github.com/vovakirdan/vetovoima/internal/config"
	"github.com/vovakirdan/vetovoima/internal/core"
	"github.com/vovakirdan/vetovoima/internal/physics"
)

// Cycle is the direction auto-cycling moves the force in.
type Cycle int

const (
	CycleRising  Cycle = iota // Toward the upper bound
	CycleFalling              // Toward the lower bound
)

func (c Cycle) String() string {
	if c == CycleRising {
		return "rising"
	}
	return "falling"
}

// GravityControl carries the manual gravity inputs of one tick.
type GravityControl struct {
	Increase bool // Push bodies harder toward the ring floor
	Decrease bool // Pull bodies toward the core
}

// GravitySource is the signed scalar field at the center of the ring.
// Positive force pushes bodies outward onto the terrain.
type GravitySource struct {
	Force     float64
	Cycle     Cycle
	AutoCycle bool

	cfg config.GravityConfig
}

// NewGravitySource returns a source in its level-start state.
func NewGravitySource(cfg config.GravityConfig) GravitySource {
	cycle := CycleRising
	if cfg.InitialForce >= cfg.ForceMax {
		cycle = CycleFalling
	}
	return GravitySource{
		Force:     cfg.InitialForce,
		Cycle:     cycle,
		AutoCycle: cfg.AutoCycle,
		cfg:       cfg,
	}
}

// Tick updates the force. While auto-cycling the force sweeps between the
// bounds at the configured rate and manual input is ignored; otherwise each
// tick with Decrease or Increase asserted moves it by one manual step.
// Reaching a bound clamps the force and flips the cycle.
func (g *GravitySource) Tick(dt time.Duration, ctl GravityControl) {
	var change float64
	switch {
	case g.AutoCycle:
		step := g.cfg.AutoCycleRate * dt.Seconds()
		if g.Cycle == CycleRising {
			change = step
		} else {
			change = -step
		}
	case ctl.Decrease:
		change = -g.cfg.ManualStep
	case ctl.Increase:
		change = g.cfg.ManualStep
	}

	g.Force += change
	if g.Force >= g.cfg.ForceMax {
		g.Force = g.cfg.ForceMax
		g.Cycle = CycleFalling
	} else if g.Force <= g.cfg.ForceMin {
		g.Force = g.cfg.ForceMin
		g.Cycle = CycleRising
	}
}

// ToggleAutoCycle switches between automatic and manual control.
func (g *GravitySource) ToggleAutoCycle() {
	g.AutoCycle = !g.AutoCycle
}

// Normalized maps the force onto [0, 1], 0 being the lower bound.
func (g GravitySource) Normalized() float64 {
	span := g.cfg.ForceMax - g.cfg.ForceMin
	if span <= 0 {
		return 0
	}
	return (g.Force - g.cfg.ForceMin) / span
}

// ForceAt returns the force on a body at p. The direction is radial and the
// magnitude falls off with the inverse of the distance. It returns false at
// the center, where the direction is undefined.
func (g GravitySource) ForceAt(p core.Vec2) (core.Vec2, bool) {
	dir, ok := p.Normalize()
	if !ok {
		return core.Vec2{}, false
	}
	return dir.Scale(g.cfg.ForceScale * g.Force / (p.Len() / g.cfg.UnitScale)), true
}

// ApplyForces overwrites the external force of every attractable body.
// Bodies at the exact center get no force.
func (g GravitySource) ApplyForces(w *physics.World) {
	for _, b := range w.Bodies() {
		if !b.Attractable {
			continue
		}
		f, ok := g.ForceAt(b.Pos)
		if !ok {
			f = core.Vec2{}
		}
		w.SetForce(b.ID, f)
	}
}
