package world

// RNG is a deterministic linear congruential generator. Every random choice
// in a battle draws from one RNG so a seed replays the same game.
type RNG struct {
	state uint64
}

// NewRNG creates a generator from a seed. Zero is remapped to one.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// Next advances the generator.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a value in [0, n). It returns 0 for n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// Chance reports true with probability percent/100.
func (r *RNG) Chance(percent int) bool {
	return r.Intn(100) < percent
}

// State exposes the generator state for snapshots.
func (r *RNG) State() uint64 {
	return r.state
}
