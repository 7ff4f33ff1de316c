// Package world keeps every entity of a running battle. It is the collision
// registry, the context handed to response hooks, and the place where
// terminal entities are swept at the end of each tick.
package world

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Ikbal01/tanks-game/internal/battle/collision"
	"github.com/Ikbal01/tanks-game/internal/battle/sprite"
	"github.com/Ikbal01/tanks-game/internal/core"
)

// Options configures world-level timed effects.
type Options struct {
	Cols, Rows       int // map size in tiles
	TimeStopTicks    int // enemy freeze after TIME_STOPPER
	BaseDefenseTicks int // steel ring lifetime after BASE_DEFENDER
}

// DefaultOptions returns the classic 26x26 map with 10 s and 20 s effects.
func DefaultOptions() Options {
	return Options{Cols: 26, Rows: 26, TimeStopTicks: 600, BaseDefenseTicks: 1200}
}

// cell is a map tile coordinate.
type cell struct{ col, row int }

// World holds the entities of one battle.
type World struct {
	rules  *sprite.Rules
	opts   Options
	rng    *RNG
	logger *log.Logger

	tick     int
	nextID   int
	heroes   []*sprite.Tank
	enemies  []*sprite.Tank
	bullets  []*sprite.Bullet
	blocks   []sprite.Obstacle
	fortress *sprite.Fortress
	treasure *sprite.Treasure
	dropped  *sprite.Treasure // waits for Commit

	over          bool
	timeStopUntil int
	defendUntil   int
	ring          []cell // tiles reinforced by the base defense

	scores map[core.PlayerID]int
	kills  map[core.PlayerID]int

	// Registry views, rebuilt on Commit.
	tankView   []collision.Tank
	staticView []collision.Static
}

// New creates an empty world. A nil logger discards output.
func New(rules *sprite.Rules, opts Options, rng *RNG, logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &World{
		rules:  rules,
		opts:   opts,
		rng:    rng,
		logger: logger,
		scores: make(map[core.PlayerID]int),
		kills:  make(map[core.PlayerID]int),
	}
}

// Registry

// Tanks returns heroes then enemies in spawn order, as of the last Commit.
func (w *World) Tanks() []collision.Tank { return w.tankView }

// Statics returns bricks and steel in placement order, then the fortress.
func (w *World) Statics() []collision.Static { return w.staticView }

// Base returns the fortress, if the map has one.
func (w *World) Base() (collision.Base, bool) {
	if w.fortress == nil {
		return nil, false
	}
	return w.fortress, true
}

// Treasure returns the pickup on the map until it is collected.
func (w *World) Treasure() (collision.Pickup, bool) {
	if w.treasure == nil || w.treasure.Consumed() {
		return nil, false
	}
	return w.treasure, true
}

// Arena returns the playfield framed by the map border.
func (w *World) Arena() collision.Arena {
	return collision.Arena{
		Width:  w.opts.Cols * w.rules.TileSize,
		Height: w.opts.Rows * w.rules.TileSize,
		Border: w.rules.Border,
	}
}

// Context

// Tick returns the current simulation tick.
func (w *World) Tick() int { return w.tick }

// KillEnemies destroys every living enemy. No score is awarded.
func (w *World) KillEnemies() {
	for _, e := range w.enemies {
		e.Destroy(w.tick)
	}
	w.logger.Debug("enemies destroyed", "tick", w.tick)
}

// StopTime freezes all current enemies and any that spawn while it lasts.
func (w *World) StopTime() {
	w.timeStopUntil = w.tick + w.opts.TimeStopTicks
	for _, e := range w.enemies {
		e.Freeze(w.timeStopUntil)
	}
	w.logger.Debug("time stopped", "tick", w.tick, "until", w.timeStopUntil)
}

// DefendBase replaces the bricks around the fortress with steel until the
// defense runs out. Tiles under a tank are left alone.
func (w *World) DefendBase() {
	if w.fortress == nil {
		return
	}
	w.fortress.Defended = true
	w.defendUntil = w.tick + w.opts.BaseDefenseTicks

	w.ring = w.ring[:0]
	for _, c := range w.fortressRing() {
		if w.tankOn(c) {
			continue
		}
		w.removeBlock(c)
		s := sprite.NewSteel(c.col, c.row, w.rules)
		s.Temporary = true
		w.blocks = append(w.blocks, s)
		w.ring = append(w.ring, c)
	}
	w.logger.Debug("base defended", "tick", w.tick, "tiles", len(w.ring))
}

// GameOver ends the battle once.
func (w *World) GameOver() {
	if w.over {
		return
	}
	w.over = true
	w.logger.Info("game over", "tick", w.tick)
}

// AwardKill scores an enemy for the hero that shot it and drops a treasure
// for bonus enemies.
func (w *World) AwardKill(victim, killer collision.Tank) {
	enemy, ok := victim.(*sprite.Tank)
	if !ok {
		return
	}
	if hero, ok := killer.(*sprite.Tank); ok && hero.IsHero() {
		w.scores[hero.Player] += enemy.Points()
		w.kills[hero.Player]++
	}
	if enemy.Bonus {
		w.dropTreasure()
	}
	w.logger.Debug("enemy destroyed", "tick", w.tick, "kind", enemy.Kind, "bonus", enemy.Bonus)
}

// dropTreasure queues a random treasure at a random spot clear of the
// fortress.
func (w *World) dropTreasure() {
	kind := collision.TreasureType(w.rng.Intn(int(collision.TreasureTypeCount)))
	size := w.rules.TreasureSize
	tile := w.rules.TileSize

	x, y := w.rules.Border+(w.opts.Cols/2-1)*tile, w.rules.Border+(w.opts.Rows/2-1)*tile
	for range 32 {
		cx := w.rules.Border + w.rng.Intn(w.opts.Cols-1)*tile
		cy := w.rules.Border + w.rng.Intn(w.opts.Rows-1)*tile
		r := core.NewRect(cx, cy, size, size)
		if w.fortress != nil && r.Overlaps(w.fortress.Bounds()) {
			continue
		}
		x, y = cx, cy
		break
	}
	w.dropped = sprite.NewTreasure(kind, x, y, w.rules)
}

// Population

// AddHero places a player tank at its spawn point.
func (w *World) AddHero(player core.PlayerID, x, y int) *sprite.Tank {
	w.nextID++
	t := sprite.NewHero(w.nextID, player, x, y, w.tick, w.rules)
	w.heroes = append(w.heroes, t)
	w.rebuild()
	return t
}

// AddEnemy spawns an enemy. Enemies spawned during a time stop start frozen.
func (w *World) AddEnemy(kind sprite.EnemyKind, x, y int, bonus bool) *sprite.Tank {
	w.nextID++
	t := sprite.NewEnemy(w.nextID, kind, x, y, bonus, w.rules)
	if w.tick < w.timeStopUntil {
		t.Freeze(w.timeStopUntil)
	}
	w.enemies = append(w.enemies, t)
	w.rebuild()
	return t
}

// AddBrick places a brick tile.
func (w *World) AddBrick(col, row int) {
	w.blocks = append(w.blocks, sprite.NewBrick(col, row, w.rules))
	w.rebuild()
}

// AddSteel places a steel tile.
func (w *World) AddSteel(col, row int) {
	w.blocks = append(w.blocks, sprite.NewSteel(col, row, w.rules))
	w.rebuild()
}

// SetFortress places the fortress with its top-left tile at (col, row).
func (w *World) SetFortress(col, row int) {
	w.fortress = sprite.NewFortress(col, row, w.rules)
	w.rebuild()
}

// PlaceTreasure puts a treasure on the map immediately, replacing any other.
func (w *World) PlaceTreasure(kind collision.TreasureType, x, y int) *sprite.Treasure {
	w.treasure = sprite.NewTreasure(kind, x, y, w.rules)
	return w.treasure
}

// Fire shoots t's bullet and registers it.
func (w *World) Fire(t *sprite.Tank) bool {
	b, ok := t.Fire(w.tick)
	if !ok {
		return false
	}
	w.bullets = append(w.bullets, b)
	return true
}

// Tick lifecycle

// BeginTick advances the clock and the timed states of every entity.
func (w *World) BeginTick() {
	w.tick++
	for _, t := range w.heroes {
		t.BeginTick(w.tick)
	}
	for _, t := range w.enemies {
		t.BeginTick(w.tick)
	}
	if w.fortress != nil && w.fortress.Defended && w.tick >= w.defendUntil {
		w.liftDefense()
	}
}

// AdvanceBullets moves flying bullets and ages explosions.
func (w *World) AdvanceBullets() {
	for _, b := range w.bullets {
		b.Advance(w.tick)
	}
}

// Commit sweeps terminal entities and refreshes the registry views.
// It runs after the collision pass, never during it.
func (w *World) Commit() {
	bullets := w.bullets[:0]
	for _, b := range w.bullets {
		if b.Done() {
			b.Owner().ReleaseBullet()
			continue
		}
		bullets = append(bullets, b)
	}
	clear(w.bullets[len(bullets):])
	w.bullets = bullets

	blocks := w.blocks[:0]
	for _, o := range w.blocks {
		if !o.Destroyed() {
			blocks = append(blocks, o)
		}
	}
	clear(w.blocks[len(blocks):])
	w.blocks = blocks

	// A destroyed enemy stays until its last bullet is gone.
	enemies := w.enemies[:0]
	for _, e := range w.enemies {
		if e.State() == sprite.TankDestroyed && e.Shot() == nil {
			continue
		}
		enemies = append(enemies, e)
	}
	clear(w.enemies[len(enemies):])
	w.enemies = enemies

	if w.treasure != nil && w.treasure.Consumed() {
		w.treasure = nil
	}
	if w.dropped != nil {
		w.treasure = w.dropped
		w.dropped = nil
	}

	w.rebuild()
}

func (w *World) rebuild() {
	w.tankView = make([]collision.Tank, 0, len(w.heroes)+len(w.enemies))
	for _, t := range w.heroes {
		w.tankView = append(w.tankView, t)
	}
	for _, t := range w.enemies {
		w.tankView = append(w.tankView, t)
	}

	w.staticView = make([]collision.Static, 0, len(w.blocks)+1)
	for _, o := range w.blocks {
		w.staticView = append(w.staticView, o)
	}
	if w.fortress != nil {
		w.staticView = append(w.staticView, w.fortress)
	}
}

// Validate checks the registry invariants.
func (w *World) Validate() error {
	var errs []error

	active := make(map[*sprite.Bullet]bool, len(w.bullets))
	for _, b := range w.bullets {
		active[b] = true
	}
	for _, t := range w.AllTanks() {
		b := t.Shot()
		if b == nil {
			continue
		}
		if !active[b] {
			errs = append(errs, fmt.Errorf("tank %d: bullet not registered", t.ID))
		}
		if b.Owner() != t {
			errs = append(errs, fmt.Errorf("tank %d: bullet owned by another tank", t.ID))
		}
	}
	for _, o := range w.blocks {
		if r := o.Bounds(); r.W <= 0 || r.H <= 0 {
			col, row := o.Cell()
			errs = append(errs, fmt.Errorf("obstacle at %d,%d: non-positive size %dx%d", col, row, r.W, r.H))
		}
	}
	if w.fortress == nil {
		errs = append(errs, errors.New("no fortress"))
	}
	return errors.Join(errs...)
}

// Defense helpers

// fortressRing lists the in-map tiles bordering the fortress.
func (w *World) fortressRing() []cell {
	f := w.fortress
	var ring []cell
	for row := f.Row - 1; row <= f.Row+2; row++ {
		for col := f.Col - 1; col <= f.Col+2; col++ {
			inside := col >= f.Col && col <= f.Col+1 && row >= f.Row && row <= f.Row+1
			if inside || col < 0 || row < 0 || col >= w.opts.Cols || row >= w.opts.Rows {
				continue
			}
			ring = append(ring, cell{col, row})
		}
	}
	return ring
}

func (w *World) liftDefense() {
	w.fortress.Defended = false
	for _, c := range w.ring {
		if w.removeBlock(c) {
			w.blocks = append(w.blocks, sprite.NewBrick(c.col, c.row, w.rules))
		}
	}
	w.ring = w.ring[:0]
	w.rebuild()
	w.logger.Debug("base defense lifted", "tick", w.tick)
}

// removeBlock drops the obstacle at c and reports whether one was there.
func (w *World) removeBlock(c cell) bool {
	for i, o := range w.blocks {
		col, row := o.Cell()
		if col == c.col && row == c.row {
			w.blocks = append(w.blocks[:i], w.blocks[i+1:]...)
			return true
		}
	}
	return false
}

func (w *World) tankOn(c cell) bool {
	size := w.rules.TileSize
	r := core.NewRect(w.rules.Border+c.col*size, w.rules.Border+c.row*size, size, size)
	for _, t := range w.AllTanks() {
		if t.State() != sprite.TankDestroyed && r.Overlaps(t.Bounds()) {
			return true
		}
	}
	return false
}

// Queries

// AllTanks returns heroes followed by enemies.
func (w *World) AllTanks() []*sprite.Tank {
	out := make([]*sprite.Tank, 0, len(w.heroes)+len(w.enemies))
	out = append(out, w.heroes...)
	return append(out, w.enemies...)
}

func (w *World) Heroes() []*sprite.Tank           { return w.heroes }
func (w *World) Enemies() []*sprite.Tank          { return w.enemies }
func (w *World) Bullets() []*sprite.Bullet        { return w.bullets }
func (w *World) Obstacles() []sprite.Obstacle     { return w.blocks }
func (w *World) Fortress() *sprite.Fortress       { return w.fortress }
func (w *World) ActiveTreasure() *sprite.Treasure { return w.treasure }
func (w *World) Over() bool                       { return w.over }
func (w *World) TimeStopped() bool                { return w.tick < w.timeStopUntil }
func (w *World) Score(p core.PlayerID) int        { return w.scores[p] }
func (w *World) Kills(p core.PlayerID) int        { return w.kills[p] }
func (w *World) Rules() *sprite.Rules             { return w.rules }
func (w *World) RNG() *RNG                        { return w.rng }

// AliveEnemies counts enemies still fighting.
func (w *World) AliveEnemies() int {
	n := 0
	for _, e := range w.enemies {
		if e.Alive() {
			n++
		}
	}
	return n
}

// HeroesDefeated reports whether every hero has run out of lives.
func (w *World) HeroesDefeated() bool {
	for _, h := range w.heroes {
		if h.State() != sprite.TankDestroyed {
			return false
		}
	}
	return len(w.heroes) > 0
}

// Occupied reports whether any tank that is not yet destroyed overlaps r.
func (w *World) Occupied(r core.Rect) bool {
	for _, t := range w.AllTanks() {
		if t.State() != sprite.TankDestroyed && r.Overlaps(t.Bounds()) {
			return true
		}
	}
	return false
}
