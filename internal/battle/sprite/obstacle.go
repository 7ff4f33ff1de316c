package sprite

import (
	"github.com/Ikbal01/tanks-game/internal/battle/collision"
	"github.com/Ikbal01/tanks-game/internal/core"
)

// Obstacle is a map tile the world can sweep once destroyed.
type Obstacle interface {
	collision.Static
	Destroyed() bool
	Cell() (col, row int)
}

// tile is the shared part of single-tile obstacles.
type tile struct {
	col, row  int
	rect      core.Rect
	destroyed bool
}

func newTile(col, row int, rules *Rules) tile {
	size := rules.TileSize
	return tile{
		col:  col,
		row:  row,
		rect: core.NewRect(rules.Border+col*size, rules.Border+row*size, size, size),
	}
}

func (t *tile) Bounds() core.Rect { return t.rect }
func (t *tile) Destroyed() bool   { return t.destroyed }
func (t *tile) Cell() (int, int)  { return t.col, t.row }

// Brick is a destructible wall tile.
type Brick struct {
	tile
}

// NewBrick creates an intact brick at the given map cell.
func NewBrick(col, row int, rules *Rules) *Brick {
	return &Brick{tile: newTile(col, row, rules)}
}

// Blocks stops every tank except one in wall-breaking mode.
func (b *Brick) Blocks(t collision.Tank) bool {
	return !t.WallBreaking()
}

// RespondTankCollision crumbles the brick under a wall-breaking tank.
func (b *Brick) RespondTankCollision(_ collision.World, t collision.Tank) {
	if t.WallBreaking() {
		b.destroyed = true
	}
}

func (b *Brick) RespondBulletCollision(collision.World, collision.Bullet) {
	b.destroyed = true
}

// Steel is an armored wall tile. Only power bullets break it.
type Steel struct {
	tile
	// Temporary marks steel laid by a base defense.
	Temporary bool
}

// NewSteel creates a steel tile at the given map cell.
func NewSteel(col, row int, rules *Rules) *Steel {
	return &Steel{tile: newTile(col, row, rules)}
}

func (s *Steel) Blocks(collision.Tank) bool { return true }

func (s *Steel) RespondTankCollision(collision.World, collision.Tank) {}

func (s *Steel) RespondBulletCollision(_ collision.World, b collision.Bullet) {
	if b.Power() {
		s.destroyed = true
	}
}

// Fortress is the 2x2 tile base the heroes defend.
type Fortress struct {
	Col, Row int
	Defended bool

	rect   core.Rect
	fallen bool
}

// NewFortress creates the fortress with its top-left tile at (col, row).
func NewFortress(col, row int, rules *Rules) *Fortress {
	size := rules.TileSize
	return &Fortress{
		Col:  col,
		Row:  row,
		rect: core.NewRect(rules.Border+col*size, rules.Border+row*size, 2*size, 2*size),
	}
}

func (f *Fortress) Bounds() core.Rect          { return f.rect }
func (f *Fortress) Fallen() bool               { return f.fallen }
func (f *Fortress) Blocks(collision.Tank) bool { return true }

func (f *Fortress) RespondTankCollision(collision.World, collision.Tank) {}

// RespondBulletCollision makes the fortress fall and ends the battle.
func (f *Fortress) RespondBulletCollision(w collision.World, _ collision.Bullet) {
	f.fallen = true
	w.GameOver()
}
