package battle

import (
	"github.com/Ikbal01/tanks-game/internal/battle/level"
	"github.com/Ikbal01/tanks-game/internal/battle/world"
	"github.com/Ikbal01/tanks-game/internal/core"
)

// spawner releases a stage's enemy queue onto the map.
type spawner struct {
	lvl      *level.Level
	points   [][2]int
	next     int // index into lvl.Enemies
	point    int // spawn point for the next enemy
	cooldown int
	maxAlive int
}

func newSpawner(lvl *level.Level, points [][2]int, maxAlive int) *spawner {
	return &spawner{lvl: lvl, points: points, maxAlive: maxAlive}
}

// Remaining returns how many enemies are still waiting to spawn.
func (s *spawner) Remaining() int {
	return len(s.lvl.Enemies) - s.next
}

// Update spawns the next queued enemy when the interval has passed, fewer
// than maxAlive enemies are fighting and a spawn point is clear. A blocked
// spawn is retried every tick.
func (s *spawner) Update(w *world.World, interval int) {
	if s.cooldown > 0 {
		s.cooldown--
		return
	}
	if s.Remaining() == 0 || w.AliveEnemies() >= s.maxAlive {
		return
	}

	size := w.Rules().TankSize
	for range s.points {
		p := s.points[s.point]
		s.point = (s.point + 1) % len(s.points)
		if w.Occupied(core.NewRect(p[0], p[1], size, size)) {
			continue
		}
		w.AddEnemy(s.lvl.Enemies[s.next], p[0], p[1], s.lvl.IsBonus(s.next))
		s.next++
		s.cooldown = interval
		return
	}
}
