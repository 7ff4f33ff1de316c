package sprite

import "github.com/Ikbal01/tanks-game/internal/battle/collision"

var (
	_ collision.Tank   = (*Tank)(nil)
	_ collision.Hero   = (*Tank)(nil)
	_ collision.Bullet = (*Bullet)(nil)
	_ Obstacle         = (*Brick)(nil)
	_ Obstacle         = (*Steel)(nil)
	_ collision.Static = (*Fortress)(nil)
	_ collision.Base   = (*Fortress)(nil)
	_ collision.Pickup = (*Treasure)(nil)
)
