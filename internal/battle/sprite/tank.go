package sprite

import (
	"fmt"

	"github.com/Ikbal01/tanks-game/internal/battle/collision"
	"github.com/Ikbal01/tanks-game/internal/core"
)

// TankState is the lifecycle of a tank.
type TankState int

const (
	TankActive TankState = iota
	TankWallBreaking
	TankExploding
	TankDestroyed
)

func (s TankState) String() string {
	switch s {
	case TankActive:
		return "ACTIVE"
	case TankWallBreaking:
		return "WALL_BREAKING"
	case TankExploding:
		return "EXPLODING"
	case TankDestroyed:
		return "DESTROYED"
	default:
		return "UNKNOWN"
	}
}

// EnemyKind selects an enemy's speed, armor and score value.
type EnemyKind int

const (
	EnemyBasic EnemyKind = iota
	EnemyFast
	EnemyPower
	EnemyArmor

	EnemyKindCount // number of enemy kinds
)

var enemyKindNames = [EnemyKindCount]string{"basic", "fast", "power", "armor"}

func (k EnemyKind) String() string {
	if k >= 0 && k < EnemyKindCount {
		return enemyKindNames[k]
	}
	return "unknown"
}

// ParseEnemyKind converts a lower-case kind name.
func ParseEnemyKind(s string) (EnemyKind, error) {
	for i, name := range enemyKindNames {
		if name == s {
			return EnemyKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown enemy kind %q", s)
}

// Tank is a hero or enemy tank.
type Tank struct {
	ID     int
	Player core.PlayerID // zero for enemies
	Kind   EnemyKind     // enemies only
	Bonus  bool          // destroying it drops a treasure

	X, Y    int
	Dir     core.Direction
	Blocked bool // last move was reverted
	Lives   int
	Tier    int // hero upgrade level, 0..3
	Armor   int

	faction      collision.Faction
	state        TankState
	prevX, prevY int
	spawnX       int
	spawnY       int
	explodedAt   int

	shieldUntil    int
	wallBreakUntil int
	stunUntil      int
	frozenUntil    int

	bullet *Bullet
	rules  *Rules
}

// NewHero creates a player tank at its spawn point, shielded from tick.
func NewHero(id int, player core.PlayerID, x, y, tick int, rules *Rules) *Tank {
	t := &Tank{
		ID:      id,
		Player:  player,
		X:       x,
		Y:       y,
		Dir:     core.DirUp,
		Lives:   rules.HeroLives,
		faction: collision.FactionHero,
		spawnX:  x,
		spawnY:  y,
		rules:   rules,
	}
	t.prevX, t.prevY = x, y
	t.shieldUntil = tick + rules.RespawnShield
	return t
}

// NewEnemy creates an enemy tank facing down.
func NewEnemy(id int, kind EnemyKind, x, y int, bonus bool, rules *Rules) *Tank {
	return &Tank{
		ID:      id,
		Kind:    kind,
		Bonus:   bonus,
		X:       x,
		Y:       y,
		Dir:     core.DirDown,
		Armor:   rules.EnemyArmor[kind],
		faction: collision.FactionEnemy,
		prevX:   x,
		prevY:   y,
		spawnX:  x,
		spawnY:  y,
		rules:   rules,
	}
}

func (t *Tank) Bounds() core.Rect {
	return core.NewRect(t.X, t.Y, t.rules.TankSize, t.rules.TankSize)
}

func (t *Tank) Position() (int, int)       { return t.X, t.Y }
func (t *Tank) Size() int                  { return t.rules.TankSize }
func (t *Tank) Faction() collision.Faction { return t.faction }
func (t *Tank) State() TankState           { return t.state }
func (t *Tank) IsHero() bool               { return t.faction == collision.FactionHero }
func (t *Tank) WallBreaking() bool         { return t.state == TankWallBreaking }
func (t *Tank) Shot() *Bullet              { return t.bullet }
func (t *Tank) Shielded(tick int) bool     { return tick < t.shieldUntil }
func (t *Tank) Stunned(tick int) bool      { return tick < t.stunUntil }
func (t *Tank) Frozen(tick int) bool       { return tick < t.frozenUntil }
func (t *Tank) Points() int                { return t.rules.EnemyPoints[t.Kind] }
func (t *Tank) Spawn() (x, y int)          { return t.spawnX, t.spawnY }

// Alive reports whether the tank still takes part in collisions.
func (t *Tank) Alive() bool {
	return t.state == TankActive || t.state == TankWallBreaking
}

// Bullet returns the tank's bullet until it is done.
func (t *Tank) Bullet() (collision.Bullet, bool) {
	if t.bullet == nil || t.bullet.Done() {
		return nil, false
	}
	return t.bullet, true
}

// Hero exposes upgrade hooks on player tanks.
func (t *Tank) Hero() (collision.Hero, bool) {
	if !t.IsHero() {
		return nil, false
	}
	return t, true
}

// BeginTick records the current position as the fallback for a blocked
// move and advances the timed state transitions. Blocked survives until the
// next Move so steering code can react to it.
func (t *Tank) BeginTick(tick int) {
	t.prevX, t.prevY = t.X, t.Y

	switch t.state {
	case TankWallBreaking:
		if tick >= t.wallBreakUntil {
			t.state = TankActive
		}
	case TankExploding:
		if tick-t.explodedAt >= t.rules.ExplosionTicks {
			t.state = TankDestroyed
		}
	}
}

// Move steps the tank one tick in dir. Turning onto the other axis snaps the
// tank to the half-tile grid so it lines up with corridors.
func (t *Tank) Move(dir core.Direction, tick int) {
	if !t.Alive() || t.Stunned(tick) || t.Frozen(tick) {
		return
	}
	if dir.Horizontal() != t.Dir.Horizontal() {
		half := t.rules.TileSize / 2
		if dir.Horizontal() {
			t.Y = core.Snap(t.Y, t.rules.Border, half)
		} else {
			t.X = core.Snap(t.X, t.rules.Border, half)
		}
	}
	t.Dir = dir
	t.Blocked = false
	dx, dy := dir.Delta()
	speed := t.speed()
	t.X += dx * speed
	t.Y += dy * speed
}

// Turn faces dir without moving.
func (t *Tank) Turn(dir core.Direction) {
	if t.Alive() {
		t.Dir = dir
	}
}

func (t *Tank) speed() int {
	if t.IsHero() {
		return t.rules.HeroSpeed
	}
	return t.rules.EnemySpeed[t.Kind]
}

// Fire launches a bullet from the tank's muzzle. A tank owns at most one
// bullet, so Fire fails while the previous one is still in play.
func (t *Tank) Fire(tick int) (*Bullet, bool) {
	if !t.Alive() || t.bullet != nil || t.Stunned(tick) || t.Frozen(tick) {
		return nil, false
	}

	size := t.rules.BulletSize
	cx, cy := t.Bounds().Center()
	x, y := cx-size/2, cy-size/2
	switch t.Dir {
	case core.DirUp:
		y = t.Y - size/2
	case core.DirDown:
		y = t.Y + t.rules.TankSize - size/2
	case core.DirLeft:
		x = t.X - size/2
	case core.DirRight:
		x = t.X + t.rules.TankSize - size/2
	}

	speed := t.rules.BulletSpeed
	power := false
	if t.IsHero() {
		if t.Tier >= 1 {
			speed = t.rules.FastBulletSpeed
		}
		power = t.Tier >= 3
	} else if t.rules.EnemyFastBullets[t.Kind] {
		speed = t.rules.FastBulletSpeed
	}

	t.bullet = newBullet(t, x, y, t.Dir, speed, power)
	return t.bullet, true
}

// ReleaseBullet frees the bullet slot once the bullet is done.
func (t *Tank) ReleaseBullet() {
	t.bullet = nil
}

// Destroy starts the explosion of a living tank.
func (t *Tank) Destroy(tick int) {
	if !t.Alive() {
		return
	}
	t.state = TankExploding
	t.explodedAt = tick
}

// Freeze stops the tank from moving and shooting until the given tick.
func (t *Tank) Freeze(until int) {
	t.frozenUntil = max(t.frozenUntil, until)
}

// RespondWallCollision undoes this tick's move.
func (t *Tank) RespondWallCollision(collision.World) {
	t.revert()
}

// RespondTankCollision undoes this tick's move; tanks never push each other.
// Tanks that already overlapped before moving, such as a hero respawning on
// top of an enemy, are left free to drive apart.
func (t *Tank) RespondTankCollision(_ collision.World, other collision.Tank) {
	prev := core.NewRect(t.prevX, t.prevY, t.rules.TankSize, t.rules.TankSize)
	if prev.Overlaps(other.Bounds()) {
		return
	}
	t.revert()
}

func (t *Tank) revert() {
	t.X, t.Y = t.prevX, t.prevY
	t.Blocked = true
}

// RespondBulletCollision applies a bullet hit. Friendly enemy fire is
// harmless and friendly hero fire stuns.
func (t *Tank) RespondBulletCollision(w collision.World, b collision.Bullet) {
	if !t.Alive() {
		return
	}
	tick := w.Tick()
	shooter := b.Shooter()

	if shooter != nil && shooter.Faction() == t.faction {
		if t.IsHero() {
			t.stunUntil = tick + t.rules.StunTicks
		}
		return
	}
	if t.Shielded(tick) {
		return
	}

	if t.IsHero() {
		t.Lives--
		t.Tier = 0
		if t.Lives > 0 {
			t.respawn(tick)
			return
		}
		t.Destroy(tick)
		return
	}

	t.Armor--
	if t.Armor > 0 {
		return
	}
	t.Destroy(tick)
	w.AwardKill(t, shooter)
}

func (t *Tank) respawn(tick int) {
	t.state = TankActive
	t.X, t.Y = t.spawnX, t.spawnY
	t.prevX, t.prevY = t.spawnX, t.spawnY
	t.Dir = core.DirUp
	t.stunUntil = 0
	t.shieldUntil = tick + t.rules.RespawnShield
}

// AddExtraLife grants one more life.
func (t *Tank) AddExtraLife() {
	t.Lives++
}

// AddWallBreaking lets the tank drive through bricks for a while.
func (t *Tank) AddWallBreaking(w collision.World) {
	if !t.Alive() {
		return
	}
	t.state = TankWallBreaking
	t.wallBreakUntil = w.Tick() + t.rules.WallBreakTicks
}

// Improve raises the tier, up to 3.
func (t *Tank) Improve() {
	if t.Tier < 3 {
		t.Tier++
	}
}

// AddShield makes the tank immune to enemy bullets for a while.
func (t *Tank) AddShield(w collision.World) {
	t.shieldUntil = max(t.shieldUntil, w.Tick()+t.rules.ShieldTicks)
}
