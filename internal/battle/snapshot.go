package battle

import "github.com/Ikbal01/tanks-game/internal/battle/sprite"

// Snapshot contains the observable battle state.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick       uint64
	WorldTick  int
	Stage      int
	State      string
	Score      int
	Remaining  int // enemies still queued
	Fortress   int // 0=intact, 1=defended, 2=fallen
	TimeStop   bool
	HeroLives  []int
	HeroTiers  []int
	TankCount  int
	TankData   []int // each tank is 7 ints: ID, X, Y, Dir, State, Armor, Bonus
	BulletData []int // each bullet is 5 ints: X, Y, Dir, State, Power
	BlockData  []int // each obstacle is 3 ints: Col, Row, Kind (0=brick, 1=steel)

	// Treasure is 4 ints: Active, Kind, X, Y
	Treasure [4]int

	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	snap := Snapshot{
		Tick:      uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		WorldTick: w.Tick(),
		Stage:     g.stage,
		State:     g.state,
		Score:     g.Score(),
		Remaining: g.spawner.Remaining(),
		TimeStop:  w.TimeStopped(),
		RNGState:  g.rng.State(),
	}

	if f := w.Fortress(); f != nil {
		switch {
		case f.Fallen():
			snap.Fortress = 2
		case f.Defended:
			snap.Fortress = 1
		}
	}

	for _, p := range g.players {
		lives, tier := 0, 0
		if h := g.hero(p); h != nil {
			lives, tier = h.Lives, h.Tier
		}
		snap.HeroLives = append(snap.HeroLives, lives)
		snap.HeroTiers = append(snap.HeroTiers, tier)
	}

	tanks := w.AllTanks()
	snap.TankCount = len(tanks)
	snap.TankData = make([]int, 0, len(tanks)*7)
	for _, t := range tanks {
		snap.TankData = append(snap.TankData, t.ID, t.X, t.Y, int(t.Dir), int(t.State()), t.Armor, boolInt(t.Bonus))
	}

	snap.BulletData = make([]int, 0, len(w.Bullets())*5)
	for _, b := range w.Bullets() {
		snap.BulletData = append(snap.BulletData, b.X, b.Y, int(b.Dir), int(b.State()), boolInt(b.Power()))
	}

	snap.BlockData = make([]int, 0, len(w.Obstacles())*3)
	for _, o := range w.Obstacles() {
		col, row := o.Cell()
		kind := 0
		if _, ok := o.(*sprite.Steel); ok {
			kind = 1
		}
		snap.BlockData = append(snap.BlockData, col, row, kind)
	}

	if t := w.ActiveTreasure(); t != nil && !t.Consumed() {
		snap.Treasure = [4]int{1, int(t.Kind), t.X, t.Y}
	}

	return snap
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.WorldTick)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Stage)             //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)             //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Remaining)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Fortress)          //#nosec G115 -- hash computation
	h = h*31 + uint64(boolInt(snap.TimeStop)) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.TankCount)         //#nosec G115 -- hash computation

	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}

	for _, v := range snap.HeroLives {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.HeroTiers {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.TankData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.BulletData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.BlockData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.Treasure {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}
