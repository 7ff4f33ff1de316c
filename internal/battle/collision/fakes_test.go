package collision_test

import (
	"fmt"

	"github.com/Ikbal01/tanks-game/internal/battle/collision"
	"github.com/Ikbal01/tanks-game/internal/core"
)

// recorder collects hook invocations in call order.
type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

func nameOf(v any) string {
	switch e := v.(type) {
	case *fakeTank:
		return e.name
	case *fakeBullet:
		return e.name
	default:
		return "?"
	}
}

type fakeTank struct {
	name     string
	rec      *recorder
	x, y     int
	faction  collision.Faction
	dead     bool
	breaking bool
	hero     bool
	bullet   *fakeBullet

	extraLives int
	improved   int
	shields    int
	breakers   int
}

func (t *fakeTank) Bounds() core.Rect          { return core.NewRect(t.x, t.y, 32, 32) }
func (t *fakeTank) Position() (int, int)       { return t.x, t.y }
func (t *fakeTank) Size() int                  { return 32 }
func (t *fakeTank) Faction() collision.Faction { return t.faction }
func (t *fakeTank) Alive() bool                { return !t.dead }
func (t *fakeTank) WallBreaking() bool         { return t.breaking }
func (t *fakeTank) RespondWallCollision(collision.World) {
	t.rec.add("%s:wall", t.name)
}

func (t *fakeTank) Bullet() (collision.Bullet, bool) {
	if t.bullet == nil {
		return nil, false
	}
	return t.bullet, true
}

func (t *fakeTank) Hero() (collision.Hero, bool) {
	if !t.hero {
		return nil, false
	}
	return t, true
}

func (t *fakeTank) RespondTankCollision(_ collision.World, other collision.Tank) {
	t.rec.add("%s:tank(%s)", t.name, nameOf(other))
}

func (t *fakeTank) RespondBulletCollision(_ collision.World, b collision.Bullet) {
	t.rec.add("%s:bullet(%s)", t.name, nameOf(b))
}

func (t *fakeTank) AddExtraLife()                   { t.extraLives++ }
func (t *fakeTank) AddWallBreaking(collision.World) { t.breakers++ }
func (t *fakeTank) Improve()                        { t.improved++ }
func (t *fakeTank) AddShield(collision.World)       { t.shields++ }

type fakeBullet struct {
	name      string
	rec       *recorder
	x, y      int
	dir       core.Direction
	exploding bool
	power     bool
	shooter   *fakeTank
}

func (b *fakeBullet) Bounds() core.Rect    { return core.NewRect(b.x, b.y, 8, 8) }
func (b *fakeBullet) Position() (int, int) { return b.x, b.y }
func (b *fakeBullet) Size() int            { return 8 }
func (b *fakeBullet) Flying() bool         { return !b.exploding }
func (b *fakeBullet) Exploding() bool      { return b.exploding }
func (b *fakeBullet) Power() bool          { return b.power }
func (b *fakeBullet) Shooter() collision.Tank {
	return b.shooter
}

func (b *fakeBullet) BigBounds() core.Rect {
	if b.dir.Horizontal() {
		return b.Bounds().Expand(0, 8)
	}
	return b.Bounds().Expand(8, 0)
}

func (b *fakeBullet) RespondWallCollision(collision.World) {
	b.rec.add("%s:wall", b.name)
}

func (b *fakeBullet) RespondTankCollision(_ collision.World, t collision.Tank) {
	b.rec.add("%s:tank(%s)", b.name, nameOf(t))
}

func (b *fakeBullet) RespondBulletCollision(_ collision.World, other collision.Bullet) {
	b.rec.add("%s:bullet(%s)", b.name, nameOf(other))
}

// fakeStatic models brick, steel and fortress by kind.
type fakeStatic struct {
	name string
	kind string
	rec  *recorder
	rect core.Rect
}

func (s *fakeStatic) Bounds() core.Rect { return s.rect }

func (s *fakeStatic) Blocks(t collision.Tank) bool {
	return !(s.kind == "brick" && t.WallBreaking())
}

func (s *fakeStatic) RespondTankCollision(_ collision.World, t collision.Tank) {
	s.rec.add("%s:tank(%s)", s.name, nameOf(t))
}

func (s *fakeStatic) RespondBulletCollision(_ collision.World, b collision.Bullet) {
	s.rec.add("%s:bullet(%s)", s.name, nameOf(b))
}

type fakePickup struct {
	rec  *recorder
	kind collision.TreasureType
	rect core.Rect
}

func (p *fakePickup) Bounds() core.Rect            { return p.rect }
func (p *fakePickup) Type() collision.TreasureType { return p.kind }
func (p *fakePickup) RespondTankCollision(_ collision.World, hero collision.Tank) {
	p.rec.add("pickup:tank(%s)", nameOf(hero))
}

type fakeRegistry struct {
	tanks   []*fakeTank
	statics []*fakeStatic
	base    *fakeStatic
	pickup  *fakePickup
	reads   int
}

func (r *fakeRegistry) Tanks() []collision.Tank {
	r.reads++
	out := make([]collision.Tank, len(r.tanks))
	for i, t := range r.tanks {
		out[i] = t
	}
	return out
}

func (r *fakeRegistry) Statics() []collision.Static {
	out := make([]collision.Static, len(r.statics))
	for i, s := range r.statics {
		out[i] = s
	}
	return out
}

func (r *fakeRegistry) Base() (collision.Base, bool) {
	if r.base == nil {
		return nil, false
	}
	return r.base, true
}

func (r *fakeRegistry) Treasure() (collision.Pickup, bool) {
	if r.pickup == nil {
		return nil, false
	}
	return r.pickup, true
}

func (r *fakeRegistry) Arena() collision.Arena {
	return collision.Arena{Width: 416, Height: 416, Border: 16}
}

// tile returns the rect of a 16 px map tile.
func tile(col, row int) core.Rect {
	return core.NewRect(16+col*16, 16+row*16, 16, 16)
}
