package sprite

import (
	"github.com/Ikbal01/tanks-game/internal/battle/collision"
	"github.com/Ikbal01/tanks-game/internal/core"
)

// Treasure is a pickup lying on the map.
type Treasure struct {
	Kind collision.TreasureType
	X, Y int

	size     int
	consumed bool
}

// NewTreasure places a treasure of the given kind at (x, y).
func NewTreasure(kind collision.TreasureType, x, y int, rules *Rules) *Treasure {
	return &Treasure{Kind: kind, X: x, Y: y, size: rules.TreasureSize}
}

func (t *Treasure) Bounds() core.Rect {
	return core.NewRect(t.X, t.Y, t.size, t.size)
}

func (t *Treasure) Type() collision.TreasureType { return t.Kind }
func (t *Treasure) Consumed() bool               { return t.consumed }

// RespondTankCollision marks the treasure as collected.
func (t *Treasure) RespondTankCollision(collision.World, collision.Tank) {
	t.consumed = true
}
