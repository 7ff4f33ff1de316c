package battle

import (
	"github.com/Ikbal01/tanks-game/internal/battle/sprite"
	"github.com/Ikbal01/tanks-game/internal/battle/world"
	"github.com/Ikbal01/tanks-game/internal/core"
)

// driveEnemies steers every enemy for one tick. An enemy keeps its heading
// until it is blocked or a random turn fires, and shoots at random.
// All randomness comes from the world RNG so runs replay exactly.
func driveEnemies(w *world.World, turnChance, fireChance int) {
	rng := w.RNG()
	tick := w.Tick()
	for _, e := range w.Enemies() {
		if !e.Alive() || e.Frozen(tick) {
			continue
		}
		if e.Blocked || rng.Chance(turnChance) {
			e.Turn(pickHeading(rng))
		}
		e.Move(e.Dir, tick)
		if rng.Chance(fireChance) {
			w.Fire(e)
		}
	}
}

// pickHeading favors heading down toward the fortress.
func pickHeading(rng *world.RNG) core.Direction {
	switch n := rng.Intn(10); {
	case n < 4:
		return core.DirDown
	case n < 6:
		return core.DirLeft
	case n < 8:
		return core.DirRight
	default:
		return core.DirUp
	}
}

// controlHero applies one player's input: move first, then fire.
func controlHero(w *world.World, h *sprite.Tank, in core.InputFrame) {
	if !h.Alive() {
		return
	}
	if dir, ok := in.Direction(); ok {
		h.Move(dir, w.Tick())
	}
	if in.Has(core.ActionFire) {
		w.Fire(h)
	}
}
