// Package config provides YAML-based game configuration loading,
// validation and difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all tunable parameters of the game.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Gravity   GravityConfig   `yaml:"gravity"`
	Player    PlayerConfig    `yaml:"player"`
	Goal      GoalConfig      `yaml:"goal"`
	Debris    DebrisConfig    `yaml:"debris"`
	Countdown CountdownConfig `yaml:"countdown"`
	Session   SessionConfig   `yaml:"session"`
	Physics   PhysicsConfig   `yaml:"physics"`
}

// WorldConfig defines the ring geometry. Lengths are in meters.
type WorldConfig struct {
	Radius          float64 `yaml:"radius"`           // Outer ring radius
	Samples         int     `yaml:"samples"`          // Angular samples per boundary
	InnerMean       float64 `yaml:"inner_mean"`       // Mean terrain elevation above the rim
	InnerStdDev     float64 `yaml:"inner_std_dev"`    // Terrain elevation noise
	CoreRadius      float64 `yaml:"core_radius"`      // Radius of the fixed gravity core body
	CoreRestitution float64 `yaml:"core_restitution"` // Bounciness of the gravity core
	GravityRings    int     `yaml:"gravity_rings"`    // Number of drifting visualization rings
}

// GravityConfig defines the central gravity field.
type GravityConfig struct {
	ForceMin      float64 `yaml:"force_min"`
	ForceMax      float64 `yaml:"force_max"`
	InitialForce  float64 `yaml:"initial_force"`
	ForceScale    float64 `yaml:"force_scale"`     // Newtons at unit distance and force 1
	UnitScale     float64 `yaml:"unit_scale"`      // Distance unit used for the falloff
	AutoCycle     bool    `yaml:"auto_cycle"`      // Auto-cycle enabled at level start
	AutoCycleRate float64 `yaml:"auto_cycle_rate"` // Force change per second while cycling
	ManualStep    float64 `yaml:"manual_step"`     // Force change per tick while a key is held
}

// PlayerConfig defines the player body and its controller.
type PlayerConfig struct {
	Width                float64 `yaml:"width"`
	Height               float64 `yaml:"height"`
	Mass                 float64 `yaml:"mass"`
	Restitution          float64 `yaml:"restitution"`
	ForwardAcceleration  float64 `yaml:"forward_acceleration"`
	MaxForwardSpeed      float64 `yaml:"max_forward_speed"`
	SlowDownAcceleration float64 `yaml:"slow_down_acceleration"` // Negative: brakes and reverses
	MaxAngularVelocity   float64 `yaml:"max_angular_velocity"`
	AlignmentThreshold   float64 `yaml:"alignment_threshold"` // Dead zone around tangential facing
}

// GoalConfig defines the goal marker.
type GoalConfig struct {
	Width       float64 `yaml:"width"`
	HeightRatio float64 `yaml:"height_ratio"` // Height as a fraction of the world radius
	// MinPlayerDistance is how far, as a multiple of the world radius, the
	// player spawn must be from the goal.
	MinPlayerDistance float64 `yaml:"min_player_distance"`
}

// DebrisConfig defines the generated debris population.
type DebrisConfig struct {
	Base     int `yaml:"base"`      // Bodies on the first level
	PerLevel int `yaml:"per_level"` // Extra bodies per completed level
	Max      int `yaml:"max"`

	LightBelow  float64 `yaml:"light_below"`  // Draws below this are Light
	HeavyAbove  float64 `yaml:"heavy_above"`  // Draws above this are Heavy
	CircleAbove float64 `yaml:"circle_above"` // Draws above this are circles

	MinSides int `yaml:"min_sides"`
	MaxSides int `yaml:"max_sides"`

	ScaleJitterMin float64 `yaml:"scale_jitter_min"`
	ScaleJitterMax float64 `yaml:"scale_jitter_max"`
	MinScale       float64 `yaml:"min_scale"`

	PolygonRestitution float64 `yaml:"polygon_restitution"`
	CircleRestitution  float64 `yaml:"circle_restitution"`

	Light  TierConfig `yaml:"light"`
	Medium TierConfig `yaml:"medium"`
	Heavy  TierConfig `yaml:"heavy"`
}

// TierConfig defines one density tier of debris.
type TierConfig struct {
	BandLow  float64 `yaml:"band_low"`  // Placement band, fraction of the world radius
	BandHigh float64 `yaml:"band_high"` // Placement band, fraction of the world radius
	Scale    float64 `yaml:"scale"`     // Base size in meters
	Density  float64 `yaml:"density"`   // Mass per square meter
}

// CountdownConfig defines the level time budget.
type CountdownConfig struct {
	Tiers []CountdownTier `yaml:"tiers"`
}

// CountdownTier grants Duration to every level up to and including
// MaxLevel. A MaxLevel of zero matches every level.
type CountdownTier struct {
	MaxLevel int           `yaml:"max_level"`
	Duration time.Duration `yaml:"duration"`
}

// SessionConfig defines the state machine timing.
type SessionConfig struct {
	LoadingDelay      time.Duration `yaml:"loading_delay"`
	GameOverDuration  time.Duration `yaml:"game_over_duration"`
	CollisionDebounce time.Duration `yaml:"collision_debounce"`
	// PreserveAutoCycle keeps the player's auto-cycle choice across levels
	// instead of resetting it with the rest of the gravity source.
	PreserveAutoCycle bool `yaml:"preserve_auto_cycle"`
}

// PhysicsConfig defines the integrator used by the built-in solver.
type PhysicsConfig struct {
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`
	Substeps       int     `yaml:"substeps"`
	MaxSpeed       float64 `yaml:"max_speed"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the invariants the simulation relies on.
// A configuration that fails validation must not be used to start a session.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	g := c.Gravity
	check(g.ForceMin < g.ForceMax, "gravity.force_min (%g) must be below gravity.force_max (%g)", g.ForceMin, g.ForceMax)
	check(g.ForceScale > 0, "gravity.force_scale must be positive, got %g", g.ForceScale)
	check(g.UnitScale > 0, "gravity.unit_scale must be positive, got %g", g.UnitScale)
	check(g.InitialForce >= g.ForceMin && g.InitialForce <= g.ForceMax,
		"gravity.initial_force (%g) must be within [%g, %g]", g.InitialForce, g.ForceMin, g.ForceMax)
	check(g.AutoCycleRate >= 0, "gravity.auto_cycle_rate must not be negative")
	check(g.ManualStep >= 0, "gravity.manual_step must not be negative")

	w := c.World
	check(w.Radius > 0, "world.radius must be positive, got %g", w.Radius)
	check(w.Samples >= 3, "world.samples must be at least 3, got %d", w.Samples)
	check(w.InnerMean >= 0 && w.InnerMean < w.Radius, "world.inner_mean must be within [0, radius)")
	check(w.InnerStdDev >= 0, "world.inner_std_dev must not be negative")
	check(w.CoreRadius >= 0 && w.CoreRadius < w.Radius-w.InnerMean, "world.core_radius must fit inside the terrain")

	p := c.Player
	check(p.Width > 0 && p.Height > 0, "player dimensions must be positive")
	check(p.Mass > 0, "player.mass must be positive")
	check(p.MaxForwardSpeed > 0, "player.max_forward_speed must be positive")
	check(p.AlignmentThreshold >= 0 && p.AlignmentThreshold < 1, "player.alignment_threshold must be within [0, 1)")

	check(c.Goal.Width > 0 && c.Goal.HeightRatio > 0, "goal dimensions must be positive")

	d := c.Debris
	check(d.Base >= 0 && d.PerLevel >= 0 && d.Max >= 0, "debris counts must not be negative")
	check(d.MinSides >= 3 && d.MaxSides >= d.MinSides, "debris sides must satisfy 3 <= min_sides <= max_sides")
	check(d.ScaleJitterMin <= d.ScaleJitterMax, "debris.scale_jitter_min must not exceed scale_jitter_max")
	tiers := []struct {
		name string
		tier TierConfig
	}{{"light", d.Light}, {"medium", d.Medium}, {"heavy", d.Heavy}}
	for _, t := range tiers {
		check(t.tier.BandLow > 0 && t.tier.BandLow <= t.tier.BandHigh && t.tier.BandHigh < 1,
			"debris.%s band must satisfy 0 < band_low <= band_high < 1", t.name)
		check(t.tier.Scale > 0 && t.tier.Density > 0, "debris.%s scale and density must be positive", t.name)
	}

	check(len(c.Countdown.Tiers) > 0, "countdown.tiers must not be empty")
	for i, tier := range c.Countdown.Tiers {
		check(tier.Duration > 0, "countdown.tiers[%d].duration must be positive", i)
	}

	check(c.Session.LoadingDelay >= 0, "session.loading_delay must not be negative")
	check(c.Session.GameOverDuration >= 0, "session.game_over_duration must not be negative")
	check(c.Physics.Substeps >= 1, "physics.substeps must be at least 1")

	return errors.Join(errs...)
}

// InnerRadius returns the nominal radius of the terrain surface.
func (w WorldConfig) InnerRadius() float64 {
	return w.Radius - w.InnerMean
}
