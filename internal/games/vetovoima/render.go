package vetovoima

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/vetovoima/internal/core"
	"github.com/vovakirdan/vetovoima/internal/physics"
	"github.com/vovakirdan/vetovoima/internal/simulation"
	"github.com/vovakirdan/vetovoima/internal/terrain"
)

// Visual characters for rendering
const (
	RingChar    = '·'
	TerrainChar = '░'
	SurfaceChar = '▓'
	CoreChar    = '●'
	GoalChar    = '║'
	PlayerChar  = '█'
)

// gravityBarWidth is the number of cells in the HUD force indicator.
const gravityBarWidth = 10

// playerArrows point along the player's heading, counterclockwise from +X.
var playerArrows = []rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// viewport maps world meters onto screen cells. Terminal cells are about
// twice as tall as they are wide, so the horizontal scale is doubled.
type viewport struct {
	cx, cy float64 // Screen position of the world origin
	sx, sy float64 // Cells per meter
}

func newViewport(w, h int, radius float64) viewport {
	top, bottom := 1, 1
	avail := max(h-top-bottom, 1)

	sy := float64(avail) / (2 * radius)
	sx := 2 * sy
	if span := sx * 2 * radius; span > float64(w) {
		sx = float64(w) / (2 * radius)
		sy = sx / 2
	}
	return viewport{
		cx: float64(w-1) / 2,
		cy: float64(top) + float64(avail-1)/2,
		sx: sx,
		sy: sy,
	}
}

func (v viewport) project(p core.Vec2) (int, int) {
	return int(math.Round(v.cx + p.X*v.sx)), int(math.Round(v.cy - p.Y*v.sy))
}

func (v viewport) unproject(x, y int) core.Vec2 {
	return core.V((float64(x)-v.cx)/v.sx, (v.cy-float64(y))/v.sy)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	cfg := g.session.Config()
	vp := newViewport(dst.Width(), dst.Height(), cfg.World.Radius)
	g.drawRings(dst, vp, cfg.World.InnerRadius())

	switch g.session.State() {
	case simulation.StateInMenu:
		g.drawMenu(dst)
	case simulation.StateLoading:
		g.drawLevel(dst, vp)
		g.drawLoading(dst)
	case simulation.StateInGame:
		g.drawLevel(dst, vp)
		g.drawHUD(dst)
		dst.DrawTextCentered(dst.Height()-1, "←/→ move  ↑/↓ gravity  Enter auto-cycle  Esc menu", core.ColorGray)
	case simulation.StateGameOver:
		g.drawLevel(dst, vp)
		g.drawHUD(dst)
		g.drawGameOver(dst)
	}

	if g.devTools {
		g.drawDevTools(dst)
	}
}

// Rings returns the radii of the gravity rings for the current drift, from
// the center outward. They are evenly spaced up to the terrain radius.
func (g *Game) Rings(inner float64) []float64 {
	out := make([]float64, ringCount)
	for i := range out {
		out[i] = (float64(i) + g.ringPhase) / ringCount * inner
	}
	return out
}

// drawRings draws the gravity rings, fading as they near the terrain.
func (g *Game) drawRings(dst *core.Screen, vp viewport, inner float64) {
	for _, r := range g.Rings(inner) {
		if r <= 0 {
			continue
		}
		color := core.Fade(r / inner)
		n := int(2*math.Pi*r*vp.sx) + 8
		for i := 0; i < n; i++ {
			x, y := vp.project(core.FromAngle(2 * math.Pi * float64(i) / float64(n)).Scale(r))
			if dst.Get(x, y) == ' ' {
				dst.SetColor(x, y, RingChar, color)
			}
		}
	}
}

func (g *Game) drawLevel(dst *core.Screen, vp viewport) {
	lvl := g.session.Level()
	if lvl == nil {
		return
	}
	g.drawTerrain(dst, vp, lvl)

	var player *physics.Body
	for _, b := range g.session.Bodies() {
		switch b.Tag {
		case physics.TagCore:
			fillBody(dst, vp, b, CoreChar, core.ColorBrightWhite)
		case physics.TagDebris:
			r, c := debrisStyle(terrain.Tier(b.Class))
			fillBody(dst, vp, b, r, c)
		case physics.TagGoal:
			fillBody(dst, vp, b, GoalChar, core.ColorBrightGreen)
		case physics.TagPlayer:
			player = b
		}
	}

	if player != nil {
		fillBody(dst, vp, player, PlayerChar, core.ColorBrightYellow)
		x, y := vp.project(player.Pos)
		dst.SetColor(x, y, heading(player.Angle), core.ColorBrightYellow)
	}
}

// drawTerrain fills the band between the terrain surface and the rim.
func (g *Game) drawTerrain(dst *core.Screen, vp viewport, lvl *terrain.Level) {
	rim := g.session.Config().World.Radius
	for y := 1; y < dst.Height()-1; y++ {
		for x := 0; x < dst.Width(); x++ {
			p := vp.unproject(x, y)
			r := p.Len()
			if r > rim {
				continue
			}
			if r >= g.session.SurfaceRadius(p.Angle()) {
				dst.SetColor(x, y, TerrainChar, core.ColorGray)
			}
		}
	}

	for i := 1; i < len(lvl.Inner); i++ {
		x0, y0 := vp.project(lvl.Inner[i-1])
		x1, y1 := vp.project(lvl.Inner[i])
		dst.DrawLine(x0, y0, x1, y1, SurfaceChar, core.ColorWhite)
	}
}

func debrisStyle(t terrain.Tier) (rune, core.Color) {
	switch t {
	case terrain.TierLight:
		return '▫', core.ColorCyan
	case terrain.TierHeavy:
		return '█', core.ColorRed
	default:
		return '■', core.ColorYellow
	}
}

// heading picks the arrow closest to the body's forward direction.
func heading(angle float64) rune {
	n := len(playerArrows)
	i := int(math.Round(angle/(2*math.Pi/float64(n)))) % n
	if i < 0 {
		i += n
	}
	return playerArrows[i]
}

// fillBody paints every cell whose center lies inside the body's shape.
// The cell under the body's center is always painted so small bodies
// stay visible.
func fillBody(dst *core.Screen, vp viewport, b *physics.Body, r rune, c core.Color) {
	pts := b.Collider.WorldPoints(b.Pos, b.Angle)
	rad := b.Collider.Radius

	x0, y0 := vp.project(b.Pos.Add(core.V(-rad, rad)))
	x1, y1 := vp.project(b.Pos.Add(core.V(rad, -rad)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := vp.unproject(x, y)
			inside := p.Distance(b.Pos) <= rad
			if pts != nil {
				inside = convexContains(pts, p)
			}
			if inside {
				dst.SetColor(x, y, r, c)
			}
		}
	}
	cx, cy := vp.project(b.Pos)
	dst.SetColor(cx, cy, r, c)
}

// convexContains reports whether p lies inside the counterclockwise convex
// polygon pts.
func convexContains(pts []core.Vec2, p core.Vec2) bool {
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		if b.Sub(a).Cross(p.Sub(a)) < 0 {
			return false
		}
	}
	return true
}

func (g *Game) drawHUD(dst *core.Screen) {
	level := 0
	if lvl := g.session.Level(); lvl != nil {
		level = lvl.Index
	}
	dst.DrawTextColor(1, 0, fmt.Sprintf("LEVEL %d", level), core.ColorBrightWhite)

	secs := g.session.Countdown().Seconds()
	timeColor := core.ColorBrightWhite
	switch {
	case secs <= 5:
		timeColor = core.ColorBrightRed
	case secs <= 20:
		timeColor = core.ColorBrightYellow
	}
	dst.DrawTextCentered(0, fmt.Sprintf("TIME %d", secs), timeColor)

	gauge := GravityGauge(g.session.Gravity())
	dst.DrawTextColor(dst.Width()-utf8.RuneCountInString(gauge)-1, 0, gauge, core.ColorCyan)
}

// GravityGauge formats the force as an indicator bar with its value.
func GravityGauge(src simulation.GravitySource) string {
	filled := int(math.Round(src.Normalized() * gravityBarWidth))
	filled = core.Clamp(filled, 0, gravityBarWidth)

	var b strings.Builder
	b.WriteString("GRAVITY ")
	b.WriteString(strings.Repeat("█", filled))
	b.WriteString(strings.Repeat("░", gravityBarWidth-filled))
	fmt.Fprintf(&b, " %+.2f", src.Force)
	if src.AutoCycle {
		b.WriteString(" AUTO")
	}
	return b.String()
}

func (g *Game) drawMenu(dst *core.Screen) {
	lines := []string{"Enter to start  ·  Esc to quit"}
	if lvl := g.session.Level(); lvl != nil {
		lines = append(lines, fmt.Sprintf("Last run reached level %d", lvl.Index))
	}
	drawCenteredMessage(dst, "V E T O V O I M A", core.ColorBrightCyan, lines...)
	dst.DrawTextCentered(dst.Height()-1, "←/→ move  ↑/↓ gravity  Enter auto-cycle", core.ColorGray)
}

func (g *Game) drawLoading(dst *core.Screen) {
	lvl := g.session.Level()
	drawCenteredMessage(dst, fmt.Sprintf("LEVEL %d", lvl.Index), core.ColorBrightWhite,
		fmt.Sprintf("Reach the goal in %d s", int(lvl.Countdown.Seconds())))
}

func (g *Game) drawGameOver(dst *core.Screen) {
	drawCenteredMessage(dst, "GAME OVER", core.ColorBrightRed,
		fmt.Sprintf("Reached level %d", g.session.Level().Index))
}

func (g *Game) drawDevTools(dst *core.Screen) {
	grav := g.session.Gravity()
	lines := []string{
		fmt.Sprintf("force %+.3f %s auto=%v", grav.Force, grav.Cycle, grav.AutoCycle),
		fmt.Sprintf("bodies %d  ticks %d  t=%s", len(g.session.Bodies()), g.ticks,
			g.session.Elapsed().Truncate(10*time.Millisecond)),
	}
	if p := g.session.Player(); p != nil {
		lines = append(lines, fmt.Sprintf("player (%.1f, %.1f) v=%.2f", p.Pos.X, p.Pos.Y, p.Vel.Len()))
	}
	for i, line := range lines {
		dst.DrawTextColor(1, dst.Height()-1-len(lines)+i, line, core.ColorMagenta)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, c core.Color, lines ...string) {
	boxW := utf8.RuneCountInString(title)
	for _, l := range lines {
		boxW = max(boxW, utf8.RuneCountInString(l))
	}
	boxW += 4
	boxH := 4 + len(lines)
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, c)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+3+i, l, core.ColorWhite)
	}
}
