package physics

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/vetovoima/internal/config"
	"github.com/vovakirdan/vetovoima/internal/core"
)

const tick = time.Second / 60

func testConfig() config.PhysicsConfig {
	return config.PhysicsConfig{Substeps: 1}
}

func ring(radius float64, samples int) []core.Vec2 {
	points := make([]core.Vec2, samples+1)
	for i := range points {
		points[i] = core.FromAngle(float64(i) * 2 * math.Pi / float64(samples)).Scale(radius)
	}
	return points
}

func TestConvexHull(t *testing.T) {
	square := []core.Vec2{
		core.V(0, 0), core.V(1, 0), core.V(1, 1), core.V(0, 1),
		core.V(0.5, 0.5), // interior
	}
	c, err := ConvexHull(square)
	if err != nil {
		t.Fatalf("ConvexHull(square) error: %v", err)
	}
	if len(c.Points) != 4 {
		t.Errorf("hull has %d points, expected 4", len(c.Points))
	}
	if got := c.Area(); math.Abs(got-1) > 1e-9 {
		t.Errorf("Area() = %f, expected 1", got)
	}
	if polygonArea(c.Points) <= 0 {
		t.Error("hull should be counter-clockwise")
	}
}

func TestConvexHullDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []core.Vec2
	}{
		{"empty", nil},
		{"two points", []core.Vec2{core.V(0, 0), core.V(1, 1)}},
		{"collinear", []core.Vec2{core.V(0, 0), core.V(1, 1), core.V(2, 2), core.V(3, 3)}},
		{"coincident", []core.Vec2{core.V(1, 1), core.V(1, 1), core.V(1, 1)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ConvexHull(tc.points); !errors.Is(err, ErrDegenerateHull) {
				t.Errorf("ConvexHull() error = %v, expected ErrDegenerateHull", err)
			}
		})
	}
}

func TestInsertDerivesMass(t *testing.T) {
	w := NewWorld(testConfig())
	id := w.Insert(Body{Collider: Cuboid(1, 0.5), Density: 3})
	if got := w.Body(id).Mass; math.Abs(got-6) > 1e-9 {
		t.Errorf("Mass = %f, expected density × area = 6", got)
	}

	explicit := w.Insert(Body{Collider: Circle(1), Density: 3, Mass: 2})
	if got := w.Body(explicit).Mass; got != 2 {
		t.Errorf("explicit Mass = %f, expected 2", got)
	}
	if id == explicit || id == Boundary {
		t.Error("IDs must be unique and never collide with Boundary")
	}
}

func TestStepAppliesForce(t *testing.T) {
	w := NewWorld(testConfig())
	id := w.Insert(Body{Collider: Circle(0.5), Mass: 2})
	w.SetForce(id, core.V(4, 0))

	w.Step(time.Second)

	b := w.Body(id)
	if math.Abs(b.Vel.X-2) > 1e-9 {
		t.Errorf("Vel.X = %f, expected F/m × dt = 2", b.Vel.X)
	}
	if b.Pos.X <= 0 {
		t.Errorf("Pos.X = %f, expected the body to move", b.Pos.X)
	}
	if w.Time() != time.Second {
		t.Errorf("Time() = %v, expected 1s", w.Time())
	}
}

func TestFixedAndSensorBodiesDoNotMove(t *testing.T) {
	w := NewWorld(testConfig())
	fixed := w.Insert(Body{Kind: KindFixed, Collider: Circle(1), Pos: core.V(3, 0)})
	sensor := w.Insert(Body{Kind: KindSensor, Collider: Circle(1), Pos: core.V(-3, 0)})
	w.SetForce(fixed, core.V(100, 0))
	w.SetForce(sensor, core.V(100, 0))

	w.Step(time.Second)

	if w.Body(fixed).Pos != core.V(3, 0) || w.Body(sensor).Pos != core.V(-3, 0) {
		t.Error("fixed and sensor bodies must not be integrated")
	}
}

func TestBoundaryKeepsBodiesInside(t *testing.T) {
	w := NewWorld(testConfig())
	w.SetBoundary(ring(10, 36))
	id := w.Insert(Body{Collider: Circle(1), Mass: 1, Pos: core.V(8, 0), Vel: core.V(30, 0)})

	for i := 0; i < 30; i++ {
		w.Step(tick)
		b := w.Body(id)
		if reach := b.Pos.Len() + 1; reach > w.BoundaryRadius(b.Pos.Angle())+1e-9 {
			t.Fatalf("body escaped the boundary: reach %f", reach)
		}
	}

	contacts := w.DrainContacts()
	if len(contacts) == 0 {
		t.Fatal("expected a boundary contact")
	}
	if contacts[0].A != id || contacts[0].B != Boundary || contacts[0].Magnitude <= 0 {
		t.Errorf("contact = %+v, expected body vs boundary with positive impulse", contacts[0])
	}
	if len(w.DrainContacts()) != 0 {
		t.Error("DrainContacts should empty the queue")
	}
}

func TestBoundaryRadiusInterpolates(t *testing.T) {
	w := NewWorld(testConfig())
	if !math.IsInf(w.BoundaryRadius(0), 1) {
		t.Error("no boundary should mean an unbounded radius")
	}

	points := []core.Vec2{
		core.FromAngle(0).Scale(10),
		core.FromAngle(math.Pi / 2).Scale(12),
		core.FromAngle(math.Pi).Scale(10),
		core.FromAngle(3 * math.Pi / 2).Scale(12),
		core.FromAngle(0).Scale(10),
	}
	w.SetBoundary(points)

	tests := []struct {
		angle, expected float64
	}{
		{0, 10},
		{math.Pi / 4, 11},
		{math.Pi / 2, 12},
		{-math.Pi / 4, 11},
		{2*math.Pi - 1e-12, 10},
	}
	for _, tc := range tests {
		if got := w.BoundaryRadius(tc.angle); math.Abs(got-tc.expected) > 1e-6 {
			t.Errorf("BoundaryRadius(%f) = %f, expected %f", tc.angle, got, tc.expected)
		}
	}
}

func TestBodiesBounceOffEachOther(t *testing.T) {
	w := NewWorld(testConfig())
	a := w.Insert(Body{Collider: Circle(1), Mass: 1, Restitution: 1, Pos: core.V(-1.05, 0), Vel: core.V(6, 0)})
	b := w.Insert(Body{Collider: Circle(1), Mass: 1, Restitution: 1, Pos: core.V(1.05, 0), Vel: core.V(-6, 0)})

	w.Step(tick)

	if w.Body(a).Vel.X >= 0 || w.Body(b).Vel.X <= 0 {
		t.Errorf("velocities after impact = %v, %v; expected them to separate", w.Body(a).Vel, w.Body(b).Vel)
	}
	contacts := w.DrainContacts()
	if len(contacts) != 1 || !contacts[0].Involves(a) || !contacts[0].Involves(b) {
		t.Errorf("contacts = %+v, expected a single a-b contact", contacts)
	}
}

func TestSensorsNeverCollide(t *testing.T) {
	w := NewWorld(testConfig())
	w.Insert(Body{Kind: KindSensor, Collider: Circle(1)})
	w.Insert(Body{Collider: Circle(1), Mass: 1, Vel: core.V(1, 0)})

	w.Step(tick)

	if got := w.DrainContacts(); len(got) != 0 {
		t.Errorf("sensor produced contacts: %+v", got)
	}
}

func TestIntersects(t *testing.T) {
	w := NewWorld(testConfig())
	goal := w.Insert(Body{Kind: KindSensor, Collider: Cuboid(0.25, 2.8), Pos: core.V(5, 0)})
	other := w.Insert(Body{Collider: Circle(1), Mass: 1, Pos: core.V(0, 0)})
	player := Cuboid(0.4, 0.9)

	if _, ok := w.Intersects(player, core.V(0, 5), 0, nil); ok {
		t.Error("query far from every body should miss")
	}

	id, ok := w.Intersects(player, core.V(5.5, 0), 0, OnlyID(goal))
	if !ok || id != goal {
		t.Errorf("Intersects() = %d, %v; expected goal %d", id, ok, goal)
	}

	if _, ok := w.Intersects(player, core.V(0.5, 0), 0, OnlyID(goal)); ok {
		t.Error("filter should hide overlapping bodies other than the goal")
	}
	if id, ok := w.Intersects(player, core.V(0.5, 0), 0, nil); !ok || id != other {
		t.Errorf("unfiltered query = %d, %v; expected %d", id, ok, other)
	}
}

func TestClearKeepsIDsUnique(t *testing.T) {
	w := NewWorld(testConfig())
	first := w.Insert(Body{Collider: Circle(1)})
	w.Clear()
	if w.Body(first) != nil || len(w.Bodies()) != 0 {
		t.Fatal("Clear should remove every body")
	}
	if second := w.Insert(Body{Collider: Circle(1)}); second == first {
		t.Error("IDs must not be reused after Clear")
	}
}
