// Package config loads the tunable battle settings from YAML.
package config

import (
	"errors"
	"fmt"
)

// BattleConfig holds every tunable of a battle.
type BattleConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Hero       HeroConfig       `yaml:"hero"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Bullet     BulletConfig     `yaml:"bullet"`
	Effects    EffectsConfig    `yaml:"effects"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig defines the map geometry in pixels.
type ArenaConfig struct {
	Cols     int `yaml:"cols"`
	Rows     int `yaml:"rows"`
	TileSize int `yaml:"tile_size"`
	Border   int `yaml:"border"`
	TankSize int `yaml:"tank_size"`
}

// HeroConfig defines player tank parameters.
type HeroConfig struct {
	Lives         int `yaml:"lives"`
	Speed         int `yaml:"speed"`
	RespawnShield int `yaml:"respawn_shield"` // ticks
	StunTicks     int `yaml:"stun_ticks"`     // teammate hit
}

// EnemyConfig defines enemy spawning and behavior.
type EnemyConfig struct {
	MaxAlive      int                        `yaml:"max_alive"`
	SpawnInterval int                        `yaml:"spawn_interval"` // ticks between spawns
	FireChance    int                        `yaml:"fire_chance"`    // percent per tick
	TurnChance    int                        `yaml:"turn_chance"`    // percent per tick
	Kinds         map[string]EnemyKindConfig `yaml:"kinds"`
}

// EnemyKindConfig defines one enemy kind.
type EnemyKindConfig struct {
	Speed       int  `yaml:"speed"`
	Armor       int  `yaml:"armor"`
	Points      int  `yaml:"points"`
	FastBullets bool `yaml:"fast_bullets"`
}

// BulletConfig defines projectile parameters.
type BulletConfig struct {
	Size           int `yaml:"size"`
	Splash         int `yaml:"splash"`
	Speed          int `yaml:"speed"`
	FastSpeed      int `yaml:"fast_speed"`
	ExplosionTicks int `yaml:"explosion_ticks"`
}

// EffectsConfig defines treasure effect durations in ticks.
type EffectsConfig struct {
	ShieldTicks      int `yaml:"shield_ticks"`
	WallBreakTicks   int `yaml:"wall_break_ticks"`
	TimeStopTicks    int `yaml:"time_stop_ticks"`
	BaseDefenseTicks int `yaml:"base_defense_ticks"`
	TreasureSize     int `yaml:"treasure_size"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a battle.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines how difficulty affects enemies.
type ScalingConfig struct {
	SpawnReduction float64 `yaml:"spawn_reduction"` // fraction of the spawn interval removed at max level
	FireBoost      int     `yaml:"fire_boost"`      // extra fire chance percent at max level
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Validate reports settings that would break the simulation.
func (c BattleConfig) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	positive("arena.cols", c.Arena.Cols)
	positive("arena.rows", c.Arena.Rows)
	positive("arena.tile_size", c.Arena.TileSize)
	positive("arena.tank_size", c.Arena.TankSize)
	positive("hero.lives", c.Hero.Lives)
	positive("hero.speed", c.Hero.Speed)
	positive("enemy.max_alive", c.Enemy.MaxAlive)
	positive("enemy.spawn_interval", c.Enemy.SpawnInterval)
	positive("bullet.size", c.Bullet.Size)
	positive("bullet.speed", c.Bullet.Speed)
	positive("effects.treasure_size", c.Effects.TreasureSize)
	if c.Arena.Border < 0 {
		errs = append(errs, fmt.Errorf("arena.border must not be negative, got %d", c.Arena.Border))
	}
	if c.Bullet.Speed >= c.Arena.TileSize {
		errs = append(errs, fmt.Errorf("bullet.speed %d would skip tiles of size %d", c.Bullet.Speed, c.Arena.TileSize))
	}
	if c.Bullet.FastSpeed >= c.Arena.TileSize {
		errs = append(errs, fmt.Errorf("bullet.fast_speed %d would skip tiles of size %d", c.Bullet.FastSpeed, c.Arena.TileSize))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
