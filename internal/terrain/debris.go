package terrain

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/vetovoima/internal/config"
	"github.com/vovakirdan/vetovoima/internal/core"
	"github.com/vovakirdan/vetovoima/internal/physics"
)

// Tier is the density class of a debris body.
type Tier int

const (
	TierLight Tier = iota
	TierMedium
	TierHeavy
)

func (t Tier) String() string {
	switch t {
	case TierLight:
		return "light"
	case TierMedium:
		return "medium"
	case TierHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// Shape is the geometric class of a debris body.
type Shape int

const (
	ShapePolygon Shape = iota
	ShapeCircle
)

// Debris describes one generated body.
type Debris struct {
	Tier        Tier
	Shape       Shape
	Sides       int // Polygon side count, zero for circles
	Scale       float64
	Density     float64
	Restitution float64
	Pos         core.Vec2
	Collider    physics.Collider
	// Fallback is set when the polygon hull was degenerate and a bounding
	// circle replaced it.
	Fallback bool
}

// Populate generates the debris for the level that follows prevIndex.
// Body i of N sits at angle i×2π/N, at a distance drawn from its tier's band.
func Populate(prevIndex int, cfg config.Config, rng *rand.Rand) []Debris {
	d := cfg.Debris
	n := d.Population(prevIndex)
	out := make([]Debris, 0, n)

	for i := 1; i <= n; i++ {
		tier := drawTier(d, rng.Float64())
		tc := tierConfig(d, tier)

		shape := ShapePolygon
		if rng.Float64() > d.CircleAbove {
			shape = ShapeCircle
		}

		band := tc.BandLow + rng.Float64()*(tc.BandHigh-tc.BandLow)
		jitter := d.ScaleJitterMin + rng.Float64()*(d.ScaleJitterMax-d.ScaleJitterMin)
		scale := max(tc.Scale+tc.Scale*jitter, d.MinScale)
		angle := float64(i) * 2 * math.Pi / float64(n)

		body := Debris{
			Tier:    tier,
			Shape:   shape,
			Scale:   scale,
			Density: tc.Density,
			Pos:     core.FromAngle(angle).Scale(band * cfg.World.Radius),
		}

		radius := scale / 2
		if shape == ShapeCircle {
			body.Collider = physics.Circle(radius)
			body.Restitution = d.CircleRestitution
		} else {
			body.Sides = d.MinSides + rng.Intn(d.MaxSides-d.MinSides+1)
			body.Collider, body.Fallback = hullOrCircle(physics.RegularPolygon(body.Sides, radius), radius)
			body.Restitution = d.PolygonRestitution
		}
		out = append(out, body)
	}
	return out
}

// hullOrCircle returns the convex hull of points, or a circle of the given
// radius when the hull is degenerate.
func hullOrCircle(points []core.Vec2, radius float64) (physics.Collider, bool) {
	c, err := physics.ConvexHull(points)
	if err != nil {
		return physics.Circle(radius), true
	}
	return c, false
}

func drawTier(d config.DebrisConfig, u float64) Tier {
	switch {
	case u < d.LightBelow:
		return TierLight
	case u > d.HeavyAbove:
		return TierHeavy
	default:
		return TierMedium
	}
}

func tierConfig(d config.DebrisConfig, t Tier) config.TierConfig {
	switch t {
	case TierLight:
		return d.Light
	case TierHeavy:
		return d.Heavy
	default:
		return d.Medium
	}
}
