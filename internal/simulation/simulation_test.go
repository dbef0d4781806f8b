package simulation

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/vetovoima/internal/config"
	"github.com/vovakirdan/vetovoima/internal/core"
	"github.com/vovakirdan/vetovoima/internal/physics"
)

const tick = time.Second / 60

func TestGravityManualBoundsAndCycle(t *testing.T) {
	cfg := config.DefaultConfig().Gravity
	g := NewGravitySource(cfg)

	if g.Force != 1 || g.Cycle != CycleFalling {
		t.Fatalf("initial source = %+v, expected force 1 falling", g)
	}

	// Already at the upper bound: increasing clamps and keeps falling.
	g.Tick(tick, GravityControl{Increase: true})
	if g.Force != 1 || g.Cycle != CycleFalling {
		t.Errorf("after increase at max: force %f cycle %s", g.Force, g.Cycle)
	}

	g.Tick(tick, GravityControl{Decrease: true})
	if math.Abs(g.Force-0.96) > 1e-9 {
		t.Errorf("one manual step down = %f, expected 0.96", g.Force)
	}

	for i := 0; i < 100; i++ {
		g.Tick(tick, GravityControl{Decrease: true})
	}
	if g.Force != -1 || g.Cycle != CycleRising {
		t.Errorf("after holding decrease: force %f cycle %s, expected -1 rising", g.Force, g.Cycle)
	}

	g.Tick(tick, GravityControl{})
	if g.Force != -1 {
		t.Errorf("no input should keep the force, got %f", g.Force)
	}
}

func TestGravityAutoCycle(t *testing.T) {
	cfg := config.DefaultConfig().Gravity
	cfg.AutoCycle = true
	g := NewGravitySource(cfg)

	// 1.0 per second from the top bound: two seconds reach the bottom.
	g.Tick(500*time.Millisecond, GravityControl{Increase: true})
	if math.Abs(g.Force-0.5) > 1e-9 {
		t.Errorf("force after 0.5s = %f, expected 0.5 (manual input ignored)", g.Force)
	}
	g.Tick(1500*time.Millisecond, GravityControl{})
	if g.Force != -1 || g.Cycle != CycleRising {
		t.Errorf("force %f cycle %s, expected -1 rising", g.Force, g.Cycle)
	}
	g.Tick(250*time.Millisecond, GravityControl{})
	if math.Abs(g.Force+0.75) > 1e-9 {
		t.Errorf("force after flip = %f, expected -0.75", g.Force)
	}

	for i := 0; i < 10000; i++ {
		g.Tick(tick, GravityControl{})
		if g.Force < cfg.ForceMin || g.Force > cfg.ForceMax {
			t.Fatalf("force %f escaped its bounds", g.Force)
		}
	}
}

func TestForceAt(t *testing.T) {
	cfg := config.DefaultConfig().Gravity
	cfg.ForceScale = 10
	g := NewGravitySource(cfg)

	f, ok := g.ForceAt(core.V(5, 0))
	if !ok {
		t.Fatal("ForceAt off-center should succeed")
	}
	if math.Abs(f.X-2) > 1e-9 || f.Y != 0 {
		t.Errorf("ForceAt((5, 0)) = %v, expected (2, 0) pointing outward", f)
	}

	// Inverse-distance falloff
	far, _ := g.ForceAt(core.V(0, 10))
	if math.Abs(far.Len()-1) > 1e-9 || far.Y <= 0 {
		t.Errorf("ForceAt((0, 10)) = %v, expected magnitude 1 outward", far)
	}

	// Linear in force; the sign flips the direction
	g.Force = -0.5
	inward, _ := g.ForceAt(core.V(5, 0))
	if math.Abs(inward.X+1) > 1e-9 {
		t.Errorf("ForceAt with force -0.5 = %v, expected (-1, 0)", inward)
	}

	if _, ok := g.ForceAt(core.Vec2{}); ok {
		t.Error("ForceAt(origin) should report no force")
	}
}

func TestApplyForcesOverwrites(t *testing.T) {
	cfg := config.DefaultConfig().Gravity
	g := NewGravitySource(cfg)
	w := physics.NewWorld(config.PhysicsConfig{Substeps: 1})

	attracted := w.Insert(physics.Body{Collider: physics.Circle(1), Mass: 1, Pos: core.V(10, 0), Attractable: true})
	centered := w.Insert(physics.Body{Collider: physics.Circle(1), Mass: 1, Attractable: true})
	ignored := w.Insert(physics.Body{Collider: physics.Circle(1), Mass: 1, Pos: core.V(10, 0)})

	w.SetForce(attracted, core.V(999, 999))
	w.SetForce(centered, core.V(5, 5))
	g.ApplyForces(w)

	want, _ := g.ForceAt(core.V(10, 0))
	if got := w.Body(attracted).Force; got != want {
		t.Errorf("attractable force = %v, expected overwrite with %v", got, want)
	}
	if got := w.Body(centered).Force; !got.IsZero() {
		t.Errorf("body at the center got force %v", got)
	}
	if got := w.Body(ignored).Force; !got.IsZero() {
		t.Errorf("non-attractable body got force %v", got)
	}
}

func playerAt(pos core.Vec2, angle float64, vel core.Vec2) *physics.Body {
	return &physics.Body{Collider: physics.Cuboid(0.4, 0.9), Pos: pos, Angle: angle, Vel: vel, Mass: 1}
}

func TestPlayerAccelerates(t *testing.T) {
	cfg := config.DefaultConfig().Player
	pc := NewPlayerController(cfg)

	// Standing at the bottom of the ring, facing +X (tangential).
	b := playerAt(core.V(0, -20), 0, core.Vec2{})
	lin, ang := pc.Tick(tick, false, true, b)

	want := cfg.ForwardAcceleration * tick.Seconds()
	if math.Abs(lin.Len()-want) > 1e-9 || lin.X <= 0 {
		t.Errorf("linear delta = %v, expected %f along +X", lin, want)
	}
	if ang != 0 {
		t.Errorf("angular velocity = %f, expected 0 when aligned", ang)
	}

	before := b.Vel.Len()
	b.Vel = b.Vel.Add(lin)
	if after := b.Vel.Len(); after-before != want {
		t.Errorf("speed grew by %f, expected exactly %f", after-before, want)
	}
}

func TestPlayerSpeedCap(t *testing.T) {
	cfg := config.DefaultConfig().Player
	pc := NewPlayerController(cfg)

	b := playerAt(core.V(0, -20), 0, core.V(cfg.MaxForwardSpeed, 0))
	if lin, _ := pc.Tick(tick, false, true, b); !lin.IsZero() {
		t.Errorf("at max speed right should do nothing, got %v", lin)
	}
}

func TestPlayerBraking(t *testing.T) {
	cfg := config.DefaultConfig().Player
	pc := NewPlayerController(cfg)

	tests := []struct {
		name    string
		vel     core.Vec2
		braking bool
	}{
		{"standing still", core.Vec2{}, true},
		{"moving forward", core.V(3, 0), true},
		{"moving backward", core.V(-3, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := playerAt(core.V(0, -20), 0, tc.vel)
			lin, _ := pc.Tick(tick, true, false, b)
			if tc.braking {
				want := cfg.SlowDownAcceleration * tick.Seconds()
				if math.Abs(lin.X-want) > 1e-9 {
					t.Errorf("linear delta = %v, expected %f along forward", lin, want)
				}
			} else if !lin.IsZero() {
				t.Errorf("already reversing: expected no force, got %v", lin)
			}
		})
	}

	// Left wins over right when both are held
	b := playerAt(core.V(0, -20), 0, core.Vec2{})
	if lin, _ := pc.Tick(tick, true, true, b); lin.X >= 0 {
		t.Errorf("left and right held: expected braking, got %v", lin)
	}
}

func TestPlayerAlignment(t *testing.T) {
	cfg := config.DefaultConfig().Player
	pc := NewPlayerController(cfg)
	rate := cfg.MaxAngularVelocity * tick.Seconds()

	tests := []struct {
		name     string
		angle    float64
		expected float64
	}{
		{"tangential", 0, 0},
		{"inside dead zone", 0.04, 0},
		{"leaning outward", -0.3, rate},
		{"leaning inward", 0.3, -rate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// At the bottom of the ring radial is (0, -1), so dot = -sin(angle).
			b := playerAt(core.V(0, -20), tc.angle, core.Vec2{})
			_, ang := pc.Tick(tick, false, false, b)
			if math.Abs(ang-tc.expected) > 1e-9 {
				t.Errorf("angular velocity = %f, expected %f", ang, tc.expected)
			}
		})
	}

	if lin, ang := pc.Tick(tick, true, true, nil); !lin.IsZero() || ang != 0 {
		t.Error("missing player should be a no-op")
	}
}

func TestGoalDetector(t *testing.T) {
	w := physics.NewWorld(config.PhysicsConfig{Substeps: 1})
	goal := w.Insert(physics.Body{Kind: physics.KindSensor, Collider: physics.Cuboid(0.25, 2.8), Pos: core.V(0, -20)})
	var d GoalDetector

	far := playerAt(core.V(0, 20), 0, core.Vec2{})
	if d.Check(w, far, goal) {
		t.Error("player across the ring should not reach the goal")
	}

	near := playerAt(core.V(0.5, -20), 0, core.Vec2{})
	for i := 0; i < 3; i++ {
		if !d.Check(w, near, goal) {
			t.Fatal("overlapping player should reach the goal")
		}
	}

	if d.Check(w, nil, goal) {
		t.Error("missing player should never reach the goal")
	}
	if d.Check(w, near, physics.Boundary) {
		t.Error("missing goal should never be reached")
	}
}

func TestCollisionDebounce(t *testing.T) {
	tests := []struct {
		name     string
		times    []time.Duration
		expected int
	}{
		{"10ms apart", []time.Duration{time.Second, time.Second + 10*time.Millisecond}, 1},
		{"100ms apart", []time.Duration{time.Second, time.Second + 100*time.Millisecond}, 2},
		{"exactly at threshold", []time.Duration{time.Second, time.Second + 50*time.Millisecond}, 1},
		{"first event within threshold of zero", []time.Duration{20 * time.Millisecond}, 0},
		{"burst then impact", []time.Duration{
			time.Second,
			time.Second + 5*time.Millisecond,
			time.Second + 30*time.Millisecond,
			time.Second + 200*time.Millisecond,
		}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewCollisionDebounce(50 * time.Millisecond)
			got := 0
			for _, at := range tc.times {
				if _, ok := d.Accept(physics.Contact{At: at, Magnitude: 1}); ok {
					got++
				}
			}
			if got != tc.expected {
				t.Errorf("accepted %d events, expected %d", got, tc.expected)
			}
		})
	}
}

func TestCollisionDebounceReportsGap(t *testing.T) {
	d := NewCollisionDebounce(50 * time.Millisecond)
	first, ok := d.Accept(physics.Contact{At: 2 * time.Second, Magnitude: 3})
	if !ok || first.Gap != 2*time.Second || first.Magnitude != 3 {
		t.Errorf("first event = %+v, %v; expected gap measured from zero", first, ok)
	}

	second, _ := d.Accept(physics.Contact{At: 2*time.Second + 80*time.Millisecond})
	if second.Gap != 80*time.Millisecond {
		t.Errorf("second gap = %v, expected 80ms", second.Gap)
	}

	d.Reset()
	if ev, ok := d.Accept(physics.Contact{At: 100 * time.Millisecond}); !ok || ev.Gap != 100*time.Millisecond {
		t.Errorf("after reset = %+v, %v; expected gap from zero", ev, ok)
	}
}

func TestCountdown(t *testing.T) {
	c := Countdown{Duration: 2 * time.Second}
	if c.Seconds() != 2 {
		t.Errorf("Seconds() = %d, expected 2", c.Seconds())
	}
	c.Tick(100 * time.Millisecond)
	if c.Seconds() != 2 {
		t.Errorf("Seconds() after 0.1s = %d, expected 2 (rounded up)", c.Seconds())
	}
	c.Tick(time.Second)
	if c.Seconds() != 1 {
		t.Errorf("Seconds() after 1.1s = %d, expected 1", c.Seconds())
	}
	c.Tick(5 * time.Second)
	if !c.Finished() || c.Seconds() != 0 || c.Remaining() != 0 {
		t.Errorf("countdown should saturate: %+v", c)
	}
}
