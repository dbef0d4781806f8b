package config

import (
	"fmt"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value into a preset.
// An empty string selects the normal preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy stretches every countdown and thins the debris; hard does the opposite.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	var timeFactor float64
	switch preset {
	case DifficultyEasy:
		timeFactor = 1.5
		cfg.Debris.Base = max(cfg.Debris.Base-4, 0)
		cfg.Debris.PerLevel = 1
	case DifficultyHard:
		timeFactor = 0.75
		cfg.Debris.Base += 4
		cfg.Debris.PerLevel = 3
	default:
		return
	}

	tiers := make([]CountdownTier, len(cfg.Countdown.Tiers))
	for i, tier := range cfg.Countdown.Tiers {
		tier.Duration = time.Duration(float64(tier.Duration) * timeFactor).Round(time.Second)
		tiers[i] = tier
	}
	cfg.Countdown.Tiers = tiers
}

// DurationFor returns the countdown granted to a level.
// Tiers are tried in order; the first whose MaxLevel is zero or at least
// level wins. Levels past every tier reuse the last tier.
func (c CountdownConfig) DurationFor(level int) time.Duration {
	if len(c.Tiers) == 0 {
		return 0
	}
	for _, tier := range c.Tiers {
		if tier.MaxLevel == 0 || level <= tier.MaxLevel {
			return tier.Duration
		}
	}
	return c.Tiers[len(c.Tiers)-1].Duration
}

// Population returns the number of debris bodies generated for the level
// that follows prevIndex.
func (d DebrisConfig) Population(prevIndex int) int {
	return max(min(d.Base+d.PerLevel*max(prevIndex, 0), d.Max), 0)
}
