package vetovoima

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/vetovoima/internal/config"
	"github.com/vovakirdan/vetovoima/internal/core"
	"github.com/vovakirdan/vetovoima/internal/events"
	"github.com/vovakirdan/vetovoima/internal/registry"
	"github.com/vovakirdan/vetovoima/internal/simulation"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     7,
	}
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// play resets g and steps it into the first level.
func play(t *testing.T, g *Game) {
	t.Helper()
	g.Reset(testRuntime())
	g.Step(press(core.ActionConfirm))
	for i := 0; i < 120; i++ {
		if g.State().Phase == "InGame" {
			return
		}
		g.Step(press())
	}
	t.Fatalf("game stuck in %s", g.State().Phase)
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"vetovoima", "vetovoima_cycle"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}
}

func TestResetEntersMenu(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	if st := g.State(); st.Phase != "Menu" || st.Level != 0 || st.GameOver {
		t.Errorf("state after Reset = %+v, expected an empty menu", st)
	}

	res := g.Step(press())
	if len(res.Events) != 1 || res.Events[0] != (events.EnterMenu{}) {
		t.Errorf("first Step events = %v, expected [EnterMenu]", res.Events)
	}
	if res := g.Step(press()); len(res.Events) != 0 {
		t.Errorf("idle menu produced %v", res.Events)
	}
}

func TestStartGame(t *testing.T) {
	g := New()
	play(t, g)

	st := g.State()
	if st.Level != 1 || st.GameOver || st.Quit {
		t.Errorf("state in first level = %+v", st)
	}
	if g.Session().Gravity().AutoCycle {
		t.Error("manual mode should start without auto-cycle")
	}
}

func TestCycleModeStartsCycling(t *testing.T) {
	g := NewCycle()
	play(t, g)

	if !g.Session().Gravity().AutoCycle {
		t.Fatal("cycle mode should start with auto-cycle")
	}
	before := g.Session().Gravity().Force
	for i := 0; i < 10; i++ {
		g.Step(press())
	}
	if g.Session().Gravity().Force == before {
		t.Error("gravity should move on its own in cycle mode")
	}
}

func TestQuitFromMenu(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	res := g.Step(press(core.ActionCancel))
	if !res.State.Quit {
		t.Error("cancel in the menu should request quit")
	}
}

func TestControls(t *testing.T) {
	tests := []struct {
		action core.Action
		want   simulation.Controls
	}{
		{core.ActionLeft, simulation.Controls{Left: true}},
		{core.ActionRight, simulation.Controls{Right: true}},
		{core.ActionUp, simulation.Controls{Up: true}},
		{core.ActionDown, simulation.Controls{Down: true}},
		{core.ActionConfirm, simulation.Controls{Confirm: true}},
		{core.ActionCancel, simulation.Controls{Cancel: true}},
		{core.ActionQuit, simulation.Controls{}},
	}
	for _, tt := range tests {
		if got := Controls(press(tt.action)); got != tt.want {
			t.Errorf("Controls(%s) = %+v, want %+v", tt.action, got, tt.want)
		}
	}
}

func TestDevToolsToggle(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.Step(press(core.ActionDevTools))
	if !g.devTools {
		t.Fatal("F2 should enable the overlay")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "force") {
		t.Error("overlay should show the gravity force")
	}

	g.Step(press(core.ActionDevTools))
	if g.devTools {
		t.Error("second F2 should hide the overlay")
	}
}

func TestRenderMenu(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "V E T O V O I M A") {
		t.Error("menu should show the title")
	}
	if strings.Contains(out, "Last run") {
		t.Error("no run has been played yet")
	}
}

func TestRenderGame(t *testing.T) {
	g := New()
	play(t, g)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	for _, want := range []string{"LEVEL 1", "TIME", "GRAVITY"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q is missing %q", hud, want)
		}
	}

	out := screen.String()
	for _, r := range []rune{SurfaceChar, CoreChar, GoalChar} {
		if !strings.ContainsRune(out, r) {
			t.Errorf("level view is missing %q", r)
		}
	}
}

func TestGravityGauge(t *testing.T) {
	cfg := config.DefaultConfig().Gravity

	full := simulation.NewGravitySource(cfg)
	if got := GravityGauge(full); !strings.Contains(got, strings.Repeat("█", gravityBarWidth)) || !strings.Contains(got, "+1.00") {
		t.Errorf("gauge at full force = %q", got)
	}

	empty := full
	empty.Force = cfg.ForceMin
	empty.AutoCycle = true
	got := GravityGauge(empty)
	if !strings.Contains(got, strings.Repeat("░", gravityBarWidth)) || !strings.HasSuffix(got, "-1.00 AUTO") {
		t.Errorf("gauge at minimum force = %q", got)
	}
}

func TestRingsDriftWithForce(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	before := g.Rings(10)
	for i, r := range before {
		if want := float64(i) / ringCount * 10; math.Abs(r-want) > 1e-9 {
			t.Errorf("ring %d = %f, want %f", i, r, want)
		}
	}

	g.Step(press())
	after := g.Rings(10)
	if after[1] <= before[1] {
		t.Error("rings should drift outward under positive force")
	}
	if g.ringPhase < 0 || g.ringPhase >= 1 {
		t.Errorf("ring phase %f out of [0, 1)", g.ringPhase)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '→'},
		{math.Pi / 2, '↑'},
		{math.Pi, '←'},
		{-math.Pi / 2, '↓'},
		{math.Pi / 4, '↗'},
		{2 * math.Pi, '→'},
	}
	for _, tt := range tests {
		if got := heading(tt.angle); got != tt.want {
			t.Errorf("heading(%f) = %q, want %q", tt.angle, got, tt.want)
		}
	}
}

func TestConvexContains(t *testing.T) {
	square := []core.Vec2{core.V(-1, -1), core.V(1, -1), core.V(1, 1), core.V(-1, 1)}
	if !convexContains(square, core.V(0, 0)) {
		t.Error("center should be inside")
	}
	if convexContains(square, core.V(2, 0)) {
		t.Error("point to the right should be outside")
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	defer func() { difficultyPreset = config.DifficultyNormal }()

	if err := SetDifficultyPreset("hard"); err != nil {
		t.Fatalf("SetDifficultyPreset(hard) error: %v", err)
	}
	if difficultyPreset != config.DifficultyHard {
		t.Errorf("preset = %q, want hard", difficultyPreset)
	}
	if err := SetDifficultyPreset("brutal"); err == nil {
		t.Error("unknown preset should be rejected")
	}
	if difficultyPreset != config.DifficultyHard {
		t.Error("a rejected preset must not change the current one")
	}
}
