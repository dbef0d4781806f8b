// Package terrain generates levels: the ring geometry, the debris
// population and the spawn points of the player and the goal.
// Generation is a pure function of the previous level index, the
// configuration and the random source.
package terrain

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/vetovoima/internal/config"
	"github.com/vovakirdan/vetovoima/internal/core"
)

// maxDeviations bounds the terrain noise, in standard deviations.
const maxDeviations = 4

// Level is the geometry and population of one level.
type Level struct {
	Index     int
	Countdown time.Duration

	Outer []core.Vec2 // Rim, S+1 points on the world radius
	Inner []core.Vec2 // Terrain surface, S+1 points, the collision boundary
	Fill  []core.Vec2 // Inner followed by Outer, for drawing the terrain band

	Debris []Debris
	Goal   Placement
	Player Placement
}

// Placement is a spawn position and orientation.
type Placement struct {
	Pos   core.Vec2
	Angle float64
}

// Generate builds the level that follows prevIndex.
func Generate(prevIndex int, cfg config.Config, rng *rand.Rand) *Level {
	index := prevIndex + 1
	outer, inner := Boundaries(cfg.World, rng)

	fill := make([]core.Vec2, 0, len(inner)+len(outer))
	fill = append(fill, inner...)
	fill = append(fill, outer...)

	lvl := &Level{
		Index:     index,
		Countdown: cfg.Countdown.DurationFor(index),
		Outer:     outer,
		Inner:     inner,
		Fill:      fill,
		Debris:    Populate(prevIndex, cfg, rng),
	}
	lvl.Goal, lvl.Player = Place(inner, cfg, rng)
	return lvl
}

// Boundaries samples the rim and the terrain surface.
// Both have Samples+1 points and the last point equals the first. The
// terrain elevation is normally distributed around InnerMean, except at the
// seam where it is exactly InnerMean so the polygon closes cleanly.
func Boundaries(w config.WorldConfig, rng *rand.Rand) (outer, inner []core.Vec2) {
	s := w.Samples
	outer = make([]core.Vec2, s+1)
	inner = make([]core.Vec2, s+1)

	lo := max(w.InnerMean-maxDeviations*w.InnerStdDev, 0)
	hi := w.InnerMean + maxDeviations*w.InnerStdDev

	for i := 0; i < s; i++ {
		dir := core.FromAngle(float64(i) * 2 * math.Pi / float64(s))
		elevation := w.InnerMean
		if i > 0 {
			elevation = core.ClampF(w.InnerMean+rng.NormFloat64()*w.InnerStdDev, lo, hi)
		}
		outer[i] = dir.Scale(w.Radius)
		inner[i] = dir.Scale(w.Radius - elevation)
	}
	outer[s] = outer[0]
	inner[s] = inner[0]
	return outer, inner
}

// Place picks the goal anchor at a random terrain vertex and the player
// anchor at the first vertex far enough from it, then stands both upright.
func Place(inner []core.Vec2, cfg config.Config, rng *rand.Rand) (goal, player Placement) {
	if len(inner) == 0 {
		return Placement{}, Placement{}
	}
	goalAnchor := inner[rng.Intn(len(inner))]

	minDist := cfg.Goal.MinPlayerDistance * cfg.World.Radius
	playerAnchor := core.V(0, -0.5*cfg.World.Radius)
	for _, v := range inner {
		if v.Distance(goalAnchor) > minDist {
			playerAnchor = v
			break
		}
	}

	goal = StandUpright(goalAnchor, cfg.Goal.HeightRatio*cfg.World.Radius)
	player = StandUpright(playerAnchor, cfg.Player.Height)
	return goal, player
}

// StandUpright places an object of the given height on the terrain at
// anchor. Its local +Y axis points toward the center of the ring and it is
// lifted by half its height so its base rests on the anchor.
func StandUpright(anchor core.Vec2, height float64) Placement {
	up, ok := anchor.Neg().Normalize()
	if !ok {
		up = core.V(0, 1)
	}
	return Placement{
		Pos:   anchor.Add(up.Scale(height / 2)),
		Angle: up.Angle() - math.Pi/2,
	}
}
