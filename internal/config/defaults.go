package config

import (
	_ "embed"
)

//go:embed defaults/battle.yaml
var defaultBattleYAML []byte

// DefaultBattleConfig returns the built-in battle configuration.
func DefaultBattleConfig() BattleConfig {
	return BattleConfig{
		Arena: ArenaConfig{
			Cols:     26,
			Rows:     26,
			TileSize: 16,
			Border:   16,
			TankSize: 32,
		},
		Hero: HeroConfig{
			Lives:         3,
			Speed:         2,
			RespawnShield: 180,
			StunTicks:     120,
		},
		Enemy: EnemyConfig{
			MaxAlive:      4,
			SpawnInterval: 180,
			FireChance:    2,
			TurnChance:    1,
			Kinds: map[string]EnemyKindConfig{
				"basic": {Speed: 1, Armor: 1, Points: 100},
				"fast":  {Speed: 3, Armor: 1, Points: 200},
				"power": {Speed: 2, Armor: 1, Points: 300, FastBullets: true},
				"armor": {Speed: 1, Armor: 4, Points: 400},
			},
		},
		Bullet: BulletConfig{
			Size:           8,
			Splash:         8,
			Speed:          4,
			FastSpeed:      6,
			ExplosionTicks: 6,
		},
		Effects: EffectsConfig{
			ShieldTicks:      600,
			WallBreakTicks:   600,
			TimeStopTicks:    600,
			BaseDefenseTicks: 1200,
			TreasureSize:     32,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 10800, // 3 minutes at 60 ticks per second
			},
			Scaling: ScalingConfig{
				SpawnReduction: 0.5,
				FireBoost:      3,
			},
		},
	}
}
