package battle

import (
	"github.com/Ikbal01/tanks-game/internal/battle/level"
	"github.com/Ikbal01/tanks-game/internal/battle/sprite"
	"github.com/Ikbal01/tanks-game/internal/battle/world"
	"github.com/Ikbal01/tanks-game/internal/config"
	"github.com/Ikbal01/tanks-game/internal/core"
)

// rulesFromConfig converts the loaded YAML settings into the numbers the
// sprites read. Enemy kinds missing from the config keep their defaults.
func rulesFromConfig(cfg config.BattleConfig) sprite.Rules {
	r := sprite.DefaultRules()

	r.Border = cfg.Arena.Border
	r.TileSize = cfg.Arena.TileSize
	r.TankSize = cfg.Arena.TankSize

	r.HeroLives = cfg.Hero.Lives
	r.HeroSpeed = cfg.Hero.Speed
	r.RespawnShield = cfg.Hero.RespawnShield
	r.StunTicks = cfg.Hero.StunTicks

	r.BulletSize = cfg.Bullet.Size
	r.Splash = cfg.Bullet.Splash
	r.BulletSpeed = cfg.Bullet.Speed
	r.FastBulletSpeed = cfg.Bullet.FastSpeed
	r.ExplosionTicks = cfg.Bullet.ExplosionTicks

	r.ShieldTicks = cfg.Effects.ShieldTicks
	r.WallBreakTicks = cfg.Effects.WallBreakTicks
	r.TreasureSize = cfg.Effects.TreasureSize

	for k := range sprite.EnemyKindCount {
		kc, ok := cfg.Enemy.Kinds[k.String()]
		if !ok {
			continue
		}
		r.EnemySpeed[k] = kc.Speed
		r.EnemyArmor[k] = kc.Armor
		r.EnemyPoints[k] = kc.Points
		r.EnemyFastBullets[k] = kc.FastBullets
	}
	return r
}

// worldOptions sizes the world after the map, which is always level.Cols by
// level.Rows tiles.
func worldOptions(cfg config.BattleConfig) world.Options {
	return world.Options{
		Cols:             level.Cols,
		Rows:             level.Rows,
		TimeStopTicks:    cfg.Effects.TimeStopTicks,
		BaseDefenseTicks: cfg.Effects.BaseDefenseTicks,
	}
}

// heroSpawn returns the pixel spawn point of a player on the bottom row,
// player one left of the fortress and player two right of it.
func heroSpawn(r *sprite.Rules, p core.PlayerID) (x, y int) {
	col := level.Cols/2 - 5
	if p == core.Player2 {
		col = level.Cols/2 + 3
	}
	return r.Border + col*r.TileSize, r.Border + (level.Rows-2)*r.TileSize
}

// enemySpawns returns the three enemy spawn points along the top edge.
func enemySpawns(r *sprite.Rules) [][2]int {
	cols := []int{0, level.Cols/2 - 1, level.Cols - 2}
	points := make([][2]int, len(cols))
	for i, c := range cols {
		points[i] = [2]int{r.Border + c*r.TileSize, r.Border}
	}
	return points
}
