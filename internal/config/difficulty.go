package config

import "math"

// DifficultyManager scales enemy aggression with score or elapsed ticks.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// SpawnInterval shortens the enemy spawn interval as difficulty rises.
func (d *DifficultyManager) SpawnInterval(base int, score int, ticks int) int {
	level := d.Level(score, ticks)
	result := base - int(level*d.cfg.Scaling.SpawnReduction*float64(base))
	return max(result, 30)
}

// FireChance raises the enemy fire chance as difficulty rises.
func (d *DifficultyManager) FireChance(base int, score int, ticks int) int {
	level := d.Level(score, ticks)
	return min(base+int(math.Round(level*float64(d.cfg.Scaling.FireBoost))), 100)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
