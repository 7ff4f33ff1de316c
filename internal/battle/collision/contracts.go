// Package collision detects overlaps between battle entities once per tick
// and dispatches the response hooks for every contact it finds.
//
// The package owns the capability interfaces entities implement. It never
// imports a concrete entity type: tanks, bullets, obstacles and pickups are
// reached only through the interfaces below.
package collision

//go:generate go tool mockgen -destination=./mocks/world_mock.go -package=mocks . World

import "github.com/Ikbal01/tanks-game/internal/core"

// Faction separates player-controlled tanks from enemies.
type Faction int

const (
	FactionHero Faction = iota
	FactionEnemy
)

func (f Faction) String() string {
	if f == FactionHero {
		return "hero"
	}
	return "enemy"
}

// TreasureType enumerates pickup effects.
type TreasureType int

const (
	TreasureEnemyKiller TreasureType = iota
	TreasureTimeStopper
	TreasureExtraLife
	TreasureWallBreaker
	TreasureBaseDefender
	TreasureTankImprover
	TreasureShield

	TreasureTypeCount // number of treasure types
)

// String returns the canonical upper-case name of the treasure type.
func (t TreasureType) String() string {
	switch t {
	case TreasureEnemyKiller:
		return "ENEMY_KILLER"
	case TreasureTimeStopper:
		return "TIME_STOPPER"
	case TreasureExtraLife:
		return "EXTRA_LIFE"
	case TreasureWallBreaker:
		return "WALL_BREAKER"
	case TreasureBaseDefender:
		return "BASE_DEFENDER"
	case TreasureTankImprover:
		return "TANK_IMPROVER"
	case TreasureShield:
		return "SHIELD"
	default:
		return "UNKNOWN"
	}
}

// Arena describes the playfield: a Width x Height map framed by a border.
type Arena struct {
	Width  int
	Height int
	Border int
}

// Inside reports whether a size x size entity at (x, y) lies fully within the
// playfield.
func (a Arena) Inside(x, y, size int) bool {
	return x >= a.Border && y >= a.Border &&
		x <= a.Width+a.Border-size && y <= a.Height+a.Border-size
}

// World is the context handed to every response hook. It exposes the
// game-level side effects that a single contact may trigger.
type World interface {
	// Tick returns the current simulation tick.
	Tick() int
	// KillEnemies destroys every living enemy tank.
	KillEnemies()
	// StopTime freezes every enemy for the configured duration.
	StopTime()
	// DefendBase reinforces the fortress surroundings.
	DefendBase()
	// GameOver ends the battle. Calling it more than once has no extra effect.
	GameOver()
	// AwardKill credits killer with the destruction of victim.
	AwardKill(victim, killer Tank)
}

// Body is anything with an axis-aligned bounding box.
type Body interface {
	Bounds() core.Rect
}

// Dynamic is a moving entity that can hit the map edge or an obstacle.
type Dynamic interface {
	Body
	Position() (x, y int)
	Size() int
	RespondWallCollision(w World)
}

// Tank is a hero or enemy tank.
type Tank interface {
	Dynamic
	Faction() Faction
	// Alive reports whether the tank is ACTIVE or WALL_BREAKING.
	Alive() bool
	WallBreaking() bool
	// Bullet returns the tank's bullet while one exists.
	Bullet() (Bullet, bool)
	// Hero returns the hero capabilities of a player tank.
	Hero() (Hero, bool)
	RespondTankCollision(w World, other Tank)
	RespondBulletCollision(w World, b Bullet)
}

// Hero holds the upgrades a pickup can grant.
type Hero interface {
	AddExtraLife()
	AddWallBreaking(w World)
	Improve()
	AddShield(w World)
}

// Bullet is a projectile owned by exactly one tank.
type Bullet interface {
	Dynamic
	// BigBounds is the bullet rect widened perpendicular to its travel.
	BigBounds() core.Rect
	Flying() bool
	Exploding() bool
	// Power reports whether the bullet breaks steel.
	Power() bool
	Shooter() Tank
	RespondTankCollision(w World, t Tank)
	RespondBulletCollision(w World, other Bullet)
}

// Static is an obstacle that never moves: brick, steel or fortress.
type Static interface {
	Body
	// Blocks reports whether the obstacle stops the given tank.
	Blocks(t Tank) bool
	RespondTankCollision(w World, t Tank)
	RespondBulletCollision(w World, b Bullet)
}

// Base is the fortress the heroes defend.
type Base interface {
	Body
	RespondBulletCollision(w World, b Bullet)
}

// Pickup is the active treasure on the map.
type Pickup interface {
	Body
	Type() TreasureType
	RespondTankCollision(w World, hero Tank)
}

// Registry is the read side of the world used during detection.
//
// Tanks and Statics return entities in insertion order and that order is
// stable between ticks: heroes first, then enemies in spawn order. Detection
// follows it, so the first entity in registry order wins every contested
// contact.
type Registry interface {
	Tanks() []Tank
	Statics() []Static
	Base() (Base, bool)
	Treasure() (Pickup, bool)
	Arena() Arena
}
