package sprite

import (
	"github.com/Ikbal01/tanks-game/internal/battle/collision"
	"github.com/Ikbal01/tanks-game/internal/core"
)

// BulletState is the lifecycle of a bullet.
type BulletState int

const (
	BulletFlying BulletState = iota
	BulletExploding
	BulletDone
)

func (s BulletState) String() string {
	switch s {
	case BulletFlying:
		return "FLYING"
	case BulletExploding:
		return "EXPLODING"
	default:
		return "DONE"
	}
}

// Bullet is a projectile fired by a tank.
type Bullet struct {
	X, Y  int
	Dir   core.Direction
	Speed int

	power      bool
	state      BulletState
	explodedAt int
	shooter    *Tank
	rules      *Rules
}

func newBullet(shooter *Tank, x, y int, dir core.Direction, speed int, power bool) *Bullet {
	return &Bullet{
		X:       x,
		Y:       y,
		Dir:     dir,
		Speed:   speed,
		power:   power,
		shooter: shooter,
		rules:   shooter.rules,
	}
}

func (b *Bullet) Bounds() core.Rect {
	return core.NewRect(b.X, b.Y, b.rules.BulletSize, b.rules.BulletSize)
}

// BigBounds widens the bullet across its direction of travel.
func (b *Bullet) BigBounds() core.Rect {
	if b.Dir.Horizontal() {
		return b.Bounds().Expand(0, b.rules.Splash)
	}
	return b.Bounds().Expand(b.rules.Splash, 0)
}

func (b *Bullet) Position() (int, int) { return b.X, b.Y }
func (b *Bullet) Size() int            { return b.rules.BulletSize }
func (b *Bullet) State() BulletState   { return b.state }
func (b *Bullet) Flying() bool         { return b.state == BulletFlying }
func (b *Bullet) Exploding() bool      { return b.state == BulletExploding }
func (b *Bullet) Done() bool           { return b.state == BulletDone }
func (b *Bullet) Power() bool          { return b.power }
func (b *Bullet) Owner() *Tank         { return b.shooter }

// Shooter returns the tank that fired the bullet.
func (b *Bullet) Shooter() collision.Tank {
	return b.shooter
}

// Advance moves a flying bullet and finishes an explosion that has run its
// course.
func (b *Bullet) Advance(tick int) {
	switch b.state {
	case BulletFlying:
		dx, dy := b.Dir.Delta()
		b.X += dx * b.Speed
		b.Y += dy * b.Speed
	case BulletExploding:
		if tick-b.explodedAt >= b.rules.ExplosionTicks {
			b.state = BulletDone
		}
	}
}

func (b *Bullet) explode(tick int) {
	if b.state != BulletFlying {
		return
	}
	b.state = BulletExploding
	b.explodedAt = tick
}

// RespondWallCollision explodes the bullet against the map edge or an obstacle.
func (b *Bullet) RespondWallCollision(w collision.World) {
	b.explode(w.Tick())
}

// RespondTankCollision explodes the bullet on the tank it hit.
func (b *Bullet) RespondTankCollision(w collision.World, _ collision.Tank) {
	b.explode(w.Tick())
}

// RespondBulletCollision cancels both bullets without an explosion.
func (b *Bullet) RespondBulletCollision(collision.World, collision.Bullet) {
	b.state = BulletDone
}
