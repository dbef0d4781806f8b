package physics

import (
	"math"
	"time"

	"github.com/vovakirdan/vetovoima/internal/config"
	"github.com/vovakirdan/vetovoima/internal/core"
)

// BodyID identifies a body inside a World. IDs are never reused within a
// world's lifetime, even across Clear.
type BodyID int

// Boundary is the pseudo body reported in contacts with the terrain.
const Boundary BodyID = 0

// Kind controls how a body takes part in the simulation.
type Kind int

const (
	KindDynamic Kind = iota // Integrated and pushed by contacts
	KindFixed               // Never moves, collides with dynamic bodies
	KindSensor              // Never moves, never collides, only queried
)

// Tag tells collaborators what a body represents.
type Tag int

const (
	TagDebris Tag = iota
	TagPlayer
	TagGoal
	TagCore
)

// Body is a rigid body. Fields may be read freely; use World methods to
// mutate bodies that are already inserted.
type Body struct {
	ID          BodyID
	Kind        Kind
	Tag         Tag
	Class       int // Caller-defined class, such as a density tier
	Collider    Collider
	Pos         core.Vec2
	Angle       float64
	Vel         core.Vec2
	AngVel      float64
	Force       core.Vec2
	Density     float64
	Mass        float64 // Explicit mass; zero derives it from Density
	Restitution float64
	Attractable bool // Receives the central gravity force
}

func (b *Body) invMass() float64 {
	if b.Kind != KindDynamic || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// Contact reports a resolved collision.
type Contact struct {
	A, B      BodyID
	Magnitude float64       // Normal impulse
	At        time.Duration // World time of the contact
}

// Involves reports whether the contact touches id.
func (c Contact) Involves(id BodyID) bool {
	return c.A == id || c.B == id
}

// World owns every body of the current level.
type World struct {
	cfg      config.PhysicsConfig
	bodies   []*Body
	byID     map[BodyID]*Body
	nextID   BodyID
	radii    []float64 // Terrain radius per boundary sample
	now      time.Duration
	contacts []Contact
}

// NewWorld creates an empty world.
func NewWorld(cfg config.PhysicsConfig) *World {
	return &World{
		cfg:    cfg,
		byID:   make(map[BodyID]*Body),
		nextID: Boundary + 1,
	}
}

// Clear removes every body and the boundary. World time keeps running.
func (w *World) Clear() {
	w.bodies = nil
	w.byID = make(map[BodyID]*Body)
	w.radii = nil
	w.contacts = nil
}

// SetBoundary installs the terrain surface bodies are kept inside of.
// Points must be evenly spaced by angle starting on the +X axis, as the
// terrain generator produces them. A closing point equal to the first is
// ignored.
func (w *World) SetBoundary(inner []core.Vec2) {
	n := len(inner)
	if n > 1 && inner[0].Distance(inner[n-1]) < core.Epsilon {
		n--
	}
	w.radii = make([]float64, n)
	for i := 0; i < n; i++ {
		w.radii[i] = inner[i].Len()
	}
}

// BoundaryRadius returns the terrain radius in direction angle.
// It returns +Inf when no boundary is installed.
func (w *World) BoundaryRadius(angle float64) float64 {
	n := len(w.radii)
	if n == 0 {
		return math.Inf(1)
	}
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	f := a / (2 * math.Pi) * float64(n)
	i := int(f) % n
	return core.Lerp(w.radii[i], w.radii[(i+1)%n], f-math.Floor(f))
}

// Insert adds a body and returns its ID.
func (w *World) Insert(b Body) BodyID {
	b.ID = w.nextID
	w.nextID++
	if b.Mass <= 0 {
		b.Mass = b.Density * b.Collider.Area()
	}
	body := &b
	w.bodies = append(w.bodies, body)
	w.byID[b.ID] = body
	return b.ID
}

// Body returns the body with the given ID, or nil.
func (w *World) Body(id BodyID) *Body {
	return w.byID[id]
}

// Bodies returns all bodies in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// SetForce overwrites the external force acting on a body.
func (w *World) SetForce(id BodyID, f core.Vec2) {
	if b := w.byID[id]; b != nil {
		b.Force = f
	}
}

// Time returns the simulated time.
func (w *World) Time() time.Duration {
	return w.now
}

// DrainContacts returns the contacts resolved since the previous call.
func (w *World) DrainContacts() []Contact {
	out := w.contacts
	w.contacts = nil
	return out
}

// Step advances the simulation by dt.
func (w *World) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	substeps := max(w.cfg.Substeps, 1)
	h := dt.Seconds() / float64(substeps)
	sub := dt / time.Duration(substeps)

	for i := 0; i < substeps; i++ {
		w.now += sub
		w.integrate(h)
		w.collideBoundary()
		w.collideBodies()
	}
}

func (w *World) integrate(h float64) {
	linDamp := 1 / (1 + w.cfg.LinearDamping*h)
	angDamp := 1 / (1 + w.cfg.AngularDamping*h)

	for _, b := range w.bodies {
		if b.Kind != KindDynamic {
			continue
		}
		b.Vel = b.Vel.Add(b.Force.Scale(b.invMass() * h)).Scale(linDamp)
		if w.cfg.MaxSpeed > 0 {
			if speed := b.Vel.Len(); speed > w.cfg.MaxSpeed {
				b.Vel = b.Vel.Scale(w.cfg.MaxSpeed / speed)
			}
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(h))
		b.AngVel *= angDamp
		b.Angle += b.AngVel * h
	}
}

// collideBoundary pushes dynamic bodies back inside the terrain surface.
func (w *World) collideBoundary() {
	if len(w.radii) == 0 {
		return
	}
	for _, b := range w.bodies {
		if b.Kind != KindDynamic {
			continue
		}
		n, ok := b.Pos.Normalize()
		if !ok {
			continue
		}
		wall := w.BoundaryRadius(b.Pos.Angle())
		reach := b.Pos.Len() + b.Collider.Extent(n, b.Angle)
		if reach <= wall {
			continue
		}

		b.Pos = b.Pos.Sub(n.Scale(reach - wall))
		vn := b.Vel.Dot(n)
		if vn <= 0 {
			continue
		}
		b.Vel = b.Vel.Sub(n.Scale((1 + b.Restitution) * vn))
		w.contacts = append(w.contacts, Contact{
			A:         b.ID,
			B:         Boundary,
			Magnitude: (1 + b.Restitution) * vn * b.Mass,
			At:        w.now,
		})
	}
}

// collideBodies resolves overlapping bounding circles between bodies.
func (w *World) collideBodies() {
	for i, a := range w.bodies {
		if a.Kind == KindSensor {
			continue
		}
		for _, b := range w.bodies[i+1:] {
			if b.Kind == KindSensor || (a.Kind != KindDynamic && b.Kind != KindDynamic) {
				continue
			}
			w.resolvePair(a, b)
		}
	}
}

func (w *World) resolvePair(a, b *Body) {
	delta := b.Pos.Sub(a.Pos)
	rsum := a.Collider.Radius + b.Collider.Radius
	dist := delta.Len()
	if dist >= rsum {
		return
	}

	n, ok := delta.Normalize()
	if !ok {
		n = core.V(1, 0)
	}
	invA, invB := a.invMass(), b.invMass()
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	pen := rsum - dist
	a.Pos = a.Pos.Sub(n.Scale(pen * invA / invSum))
	b.Pos = b.Pos.Add(n.Scale(pen * invB / invSum))

	vr := b.Vel.Sub(a.Vel).Dot(n)
	if vr >= 0 {
		return
	}
	e := (a.Restitution + b.Restitution) / 2
	j := -(1 + e) * vr / invSum
	a.Vel = a.Vel.Sub(n.Scale(j * invA))
	b.Vel = b.Vel.Add(n.Scale(j * invB))

	w.contacts = append(w.contacts, Contact{A: a.ID, B: b.ID, Magnitude: j, At: w.now})
}
