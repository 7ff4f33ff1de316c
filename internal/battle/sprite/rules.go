// Package sprite implements the battle entities: tanks, bullets, map
// obstacles and treasures. Every entity satisfies the matching capability
// interface of the collision package and owns its own state machine.
package sprite

// Rules holds the tunable numbers entities read while playing.
// All durations are in ticks and all distances in pixels.
type Rules struct {
	Border     int // playfield offset from the screen origin
	TileSize   int
	TankSize   int
	BulletSize int
	Splash     int // big-bounds growth on each side, perpendicular to travel

	HeroSpeed        int
	HeroLives        int
	BulletSpeed      int
	FastBulletSpeed  int
	ExplosionTicks   int
	RespawnShield    int
	ShieldTicks      int
	WallBreakTicks   int
	StunTicks        int
	TreasureSize     int
	EnemySpeed       [EnemyKindCount]int
	EnemyArmor       [EnemyKindCount]int
	EnemyPoints      [EnemyKindCount]int
	EnemyFastBullets [EnemyKindCount]bool
}

// DefaultRules returns the classic battle tunables at 60 ticks per second.
func DefaultRules() Rules {
	return Rules{
		Border:           16,
		TileSize:         16,
		TankSize:         32,
		BulletSize:       8,
		Splash:           8,
		HeroSpeed:        2,
		HeroLives:        3,
		BulletSpeed:      4,
		FastBulletSpeed:  6,
		ExplosionTicks:   6,
		RespawnShield:    180,
		ShieldTicks:      600,
		WallBreakTicks:   600,
		StunTicks:        120,
		TreasureSize:     32,
		EnemySpeed:       [EnemyKindCount]int{1, 3, 2, 1},
		EnemyArmor:       [EnemyKindCount]int{1, 1, 1, 4},
		EnemyPoints:      [EnemyKindCount]int{100, 200, 300, 400},
		EnemyFastBullets: [EnemyKindCount]bool{false, false, true, false},
	}
}
