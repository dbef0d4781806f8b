package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/vetovoima.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded configuration.
// It mirrors defaults/vetovoima.yaml and is used when the embedded file
// cannot be parsed.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Radius:          28,
			Samples:         180,
			InnerMean:       1.6,
			InnerStdDev:     2.2 / 12,
			CoreRadius:      2.5,
			CoreRestitution: 0.1,
			GravityRings:    6,
		},
		Gravity: GravityConfig{
			ForceMin:      -1,
			ForceMax:      1,
			InitialForce:  1,
			ForceScale:    750,
			UnitScale:     1,
			AutoCycle:     false,
			AutoCycleRate: 1.0,
			ManualStep:    0.04,
		},
		Player: PlayerConfig{
			Width:                0.8,
			Height:               1.8,
			Mass:                 1.5,
			Restitution:          0.1,
			ForwardAcceleration:  8,
			MaxForwardSpeed:      8,
			SlowDownAcceleration: -16,
			MaxAngularVelocity:   90,
			AlignmentThreshold:   0.05,
		},
		Goal: GoalConfig{
			Width:             0.5,
			HeightRatio:       0.2,
			MinPlayerDistance: 1.8,
		},
		Debris: DebrisConfig{
			Base:               16,
			PerLevel:           2,
			Max:                60,
			LightBelow:         0.3,
			HeavyAbove:         0.85,
			CircleAbove:        0.8,
			MinSides:           3,
			MaxSides:           8,
			ScaleJitterMin:     -0.2,
			ScaleJitterMax:     0.4,
			MinScale:           1.0,
			PolygonRestitution: 0.2,
			CircleRestitution:  1.0,
			Light:              TierConfig{BandLow: 0.2, BandHigh: 0.4, Scale: 1.0, Density: 0.75},
			Medium:             TierConfig{BandLow: 0.4, BandHigh: 0.6, Scale: 2.0, Density: 1.0},
			Heavy:              TierConfig{BandLow: 0.8, BandHigh: 0.8, Scale: 3.2, Density: 10.0},
		},
		Countdown: CountdownConfig{
			Tiers: []CountdownTier{
				{MaxLevel: 4, Duration: 60 * time.Second},
				{MaxLevel: 9, Duration: 45 * time.Second},
				{MaxLevel: 25, Duration: 30 * time.Second},
				{MaxLevel: 0, Duration: 20 * time.Second},
			},
		},
		Session: SessionConfig{
			LoadingDelay:      time.Second,
			GameOverDuration:  5 * time.Second,
			CollisionDebounce: 50 * time.Millisecond,
			PreserveAutoCycle: false,
		},
		Physics: PhysicsConfig{
			LinearDamping:  0.2,
			AngularDamping: 2.0,
			Substeps:       2,
			MaxSpeed:       40,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
