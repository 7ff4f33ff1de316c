package collision

import (
	"io"

	"github.com/charmbracelet/log"
)

// effectKind tags a queued response.
type effectKind int

const (
	effectWall         effectKind = iota // dyn hit the map edge or a blocking static
	effectStaticTank                     // static touched by tank
	effectStaticBullet                   // static hit by bullet
	effectTankTank                       // tank bumped into other
	effectTankBullet                     // tank hit by bullet
	effectBulletTank                     // bullet hit tank
	effectBulletBullet                   // bullet met peer
	effectPickup                         // hero collected pickup
	effectBase                           // bullet reached the fortress
)

var effectNames = [...]string{
	effectWall:         "wall",
	effectStaticTank:   "static-tank",
	effectStaticBullet: "static-bullet",
	effectTankTank:     "tank-tank",
	effectTankBullet:   "tank-bullet",
	effectBulletTank:   "bullet-tank",
	effectBulletBullet: "bullet-bullet",
	effectPickup:       "pickup",
	effectBase:         "base",
}

func (k effectKind) String() string {
	if int(k) < len(effectNames) {
		return effectNames[k]
	}
	return "unknown"
}

// effect is one deferred hook call. Only the fields relevant to kind are set.
type effect struct {
	kind   effectKind
	dyn    Dynamic
	tank   Tank
	other  Tank
	hero   Hero
	bullet Bullet
	peer   Bullet
	static Static
	base   Base
	pickup Pickup
}

// System runs collision detection and response once per tick.
//
// Update works in two phases. Detection walks the registry snapshot and only
// records contacts; nothing is mutated while iterating. The apply phase then
// invokes the recorded hooks in detection order.
type System struct {
	reg    Registry
	world  World
	logger *log.Logger

	queue []effect

	// Per-tick claims. Entities are compared by identity.
	walled      map[Dynamic]bool
	contacted   map[Tank]bool
	spent       map[Bullet]bool
	pickupTaken bool
	baseHit     bool
}

// New creates a collision system reading from reg and passing w to every
// response hook. A nil logger discards output.
func New(reg Registry, w World, logger *log.Logger) *System {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &System{
		reg:       reg,
		world:     w,
		logger:    logger,
		walled:    make(map[Dynamic]bool),
		contacted: make(map[Tank]bool),
		spent:     make(map[Bullet]bool),
	}
}

// Update detects every contact of the current tick and applies the responses.
func (s *System) Update() {
	tanks := s.reg.Tanks()
	statics := s.reg.Statics()
	base, hasBase := s.reg.Base()
	pickup, hasPickup := s.reg.Treasure()
	arena := s.reg.Arena()

	s.reset()

	for _, t := range tanks {
		if t.Alive() {
			s.checkTankBounds(t, arena)
			s.checkTankStatics(t, statics)
			s.checkTankTanks(t, tanks)
			if hasPickup {
				s.checkPickup(t, pickup)
			}
		}

		b, ok := t.Bullet()
		if !ok {
			continue
		}
		// A bullet already consumed as another bullet's peer is skipped.
		if b.Flying() && !s.spent[b] {
			s.checkBulletBounds(b, arena)
			s.checkBulletStatics(b, statics, base, hasBase)
			s.checkBulletBullets(b, tanks)
			s.checkBulletTanks(b, tanks)
		}
		if hasBase {
			s.checkBase(b, base)
		}
	}

	s.apply()
}

// Pending returns the number of responses recorded during the last Update.
func (s *System) Pending() int {
	return len(s.queue)
}

func (s *System) reset() {
	s.queue = s.queue[:0]
	clear(s.walled)
	clear(s.contacted)
	clear(s.spent)
	s.pickupTaken = false
	s.baseHit = false
}

func (s *System) push(e effect) {
	s.queue = append(s.queue, e)
	s.logger.Debug("contact", "tick", s.world.Tick(), "kind", e.kind)
}

// wall queues a wall response unless dyn already has one this tick.
func (s *System) wall(dyn Dynamic) {
	if s.walled[dyn] {
		return
	}
	s.walled[dyn] = true
	s.push(effect{kind: effectWall, dyn: dyn})
}

func (s *System) checkTankBounds(t Tank, arena Arena) {
	x, y := t.Position()
	if !arena.Inside(x, y, t.Size()) {
		s.wall(t)
	}
}

// checkTankStatics notifies the first static the tank overlaps. The tank is
// stopped when any overlapped static blocks it, so a wall-breaking tank
// crossing a brick still halts at steel or the fortress.
func (s *System) checkTankStatics(t Tank, statics []Static) {
	bounds := t.Bounds()
	notified := false
	for _, st := range statics {
		if !bounds.Overlaps(st.Bounds()) {
			continue
		}
		if !notified {
			notified = true
			s.push(effect{kind: effectStaticTank, static: st, tank: t})
		}
		if st.Blocks(t) {
			s.wall(t)
			return
		}
	}
}

func (s *System) checkTankTanks(t Tank, tanks []Tank) {
	if s.contacted[t] {
		return
	}
	bounds := t.Bounds()
	for _, other := range tanks {
		if other == t || !other.Alive() {
			continue
		}
		if !bounds.Overlaps(other.Bounds()) {
			continue
		}
		s.contacted[t] = true
		s.push(effect{kind: effectTankTank, tank: t, other: other})
		if !s.contacted[other] {
			s.contacted[other] = true
			s.push(effect{kind: effectTankTank, tank: other, other: t})
		}
		return
	}
}

func (s *System) checkPickup(t Tank, p Pickup) {
	if s.pickupTaken {
		return
	}
	hero, ok := t.Hero()
	if !ok || !t.Bounds().Overlaps(p.Bounds()) {
		return
	}
	s.pickupTaken = true
	s.push(effect{kind: effectPickup, tank: t, hero: hero, pickup: p})
}

func (s *System) checkBulletBounds(b Bullet, arena Arena) {
	x, y := b.Position()
	if arena.Inside(x, y, b.Size()) {
		return
	}
	s.spent[b] = true
	s.wall(b)
}

// checkBulletStatics gates on a primary-bounds contact, then hits every
// static inside the big bounds so a shot clears a two-tile wide gap. The
// fortress is left to checkBase, which only counts primary-bounds hits.
func (s *System) checkBulletStatics(b Bullet, statics []Static, base Base, hasBase bool) {
	primary := b.Bounds()
	touching := false
	for _, st := range statics {
		if primary.Overlaps(st.Bounds()) {
			touching = true
			break
		}
	}
	if !touching {
		return
	}

	area := b.BigBounds()
	for _, st := range statics {
		if hasBase && Base(st) == base {
			continue
		}
		if !area.Overlaps(st.Bounds()) {
			continue
		}
		s.push(effect{kind: effectStaticBullet, static: st, bullet: b})
	}
	s.spent[b] = true
	s.wall(b)
}

func (s *System) checkBulletBullets(b Bullet, tanks []Tank) {
	if s.spent[b] {
		return
	}
	bounds := b.Bounds()
	for _, t := range tanks {
		peer, ok := t.Bullet()
		if !ok || peer == b || !peer.Flying() || s.spent[peer] {
			continue
		}
		if !bounds.Overlaps(peer.Bounds()) {
			continue
		}
		s.spent[b] = true
		s.spent[peer] = true
		s.push(effect{kind: effectBulletBullet, bullet: b, peer: peer})
		s.push(effect{kind: effectBulletBullet, bullet: peer, peer: b})
		return
	}
}

func (s *System) checkBulletTanks(b Bullet, tanks []Tank) {
	if s.spent[b] {
		return
	}
	bounds := b.Bounds()
	shooter := b.Shooter()
	for _, t := range tanks {
		if t == shooter || !t.Alive() {
			continue
		}
		if !bounds.Overlaps(t.Bounds()) {
			continue
		}
		s.spent[b] = true
		s.push(effect{kind: effectTankBullet, tank: t, bullet: b})
		s.push(effect{kind: effectBulletTank, bullet: b, tank: t})
		return
	}
}

func (s *System) checkBase(b Bullet, base Base) {
	if s.baseHit || !(b.Flying() || b.Exploding()) {
		return
	}
	if !b.Bounds().Overlaps(base.Bounds()) {
		return
	}
	s.baseHit = true
	s.push(effect{kind: effectBase, base: base, bullet: b})
}

func (s *System) apply() {
	w := s.world
	for _, e := range s.queue {
		switch e.kind {
		case effectWall:
			e.dyn.RespondWallCollision(w)
		case effectStaticTank:
			e.static.RespondTankCollision(w, e.tank)
		case effectStaticBullet:
			e.static.RespondBulletCollision(w, e.bullet)
		case effectTankTank:
			e.tank.RespondTankCollision(w, e.other)
		case effectTankBullet:
			e.tank.RespondBulletCollision(w, e.bullet)
		case effectBulletTank:
			e.bullet.RespondTankCollision(w, e.tank)
		case effectBulletBullet:
			e.bullet.RespondBulletCollision(w, e.peer)
		case effectPickup:
			s.grant(e.pickup.Type(), e.hero)
			e.pickup.RespondTankCollision(w, e.tank)
		case effectBase:
			e.base.RespondBulletCollision(w, e.bullet)
		}
	}
}

// grant applies the effect of a collected treasure.
func (s *System) grant(tt TreasureType, hero Hero) {
	w := s.world
	switch tt {
	case TreasureEnemyKiller:
		w.KillEnemies()
	case TreasureTimeStopper:
		w.StopTime()
	case TreasureExtraLife:
		hero.AddExtraLife()
	case TreasureWallBreaker:
		hero.AddWallBreaking(w)
	case TreasureBaseDefender:
		w.DefendBase()
	case TreasureTankImprover:
		hero.Improve()
	case TreasureShield:
		hero.AddShield(w)
	default:
		s.logger.Warn("unknown treasure type", "type", int(tt))
	}
}
