package battle

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Ikbal01/tanks-game/internal/battle/collision"
	"github.com/Ikbal01/tanks-game/internal/battle/level"
	"github.com/Ikbal01/tanks-game/internal/battle/sprite"
	"github.com/Ikbal01/tanks-game/internal/core"
)

// Terminal cells are roughly twice as tall as wide, so one column covers
// half as many pixels as one row.
const (
	pxPerCol = 8
	pxPerRow = 16
	hudWidth = 24
)

// Visual characters for rendering
const (
	BrickChar     = '▓'
	SteelChar     = '█'
	BulletChar    = '•'
	ExplosionChar = '✶'
)

var (
	tankGlyphs = [4][2]string{
		core.DirUp:    {"▗▲▲▖", "▐██▌"},
		core.DirRight: {"▐██▶", "▐██▶"},
		core.DirDown:  {"▐██▌", "▝▼▼▘"},
		core.DirLeft:  {"◀██▌", "◀██▌"},
	}
	explosionGlyph = [2]string{"✶✶✶✶", "✶✶✶✶"}
	fortressGlyph  = [2]string{"▗▄▄▖", "▐██▌"}
	fallenGlyph    = [2]string{"▚▞▚▞", "▞▚▞▚"}
)

// treasureLetter labels each treasure type on the map and in the HUD.
var treasureLetter = [collision.TreasureTypeCount]rune{
	collision.TreasureEnemyKiller:  'K',
	collision.TreasureTimeStopper:  'T',
	collision.TreasureExtraLife:    '+',
	collision.TreasureWallBreaker:  'W',
	collision.TreasureBaseDefender: 'D',
	collision.TreasureTankImprover: '*',
	collision.TreasureShield:       'S',
}

// boardSize returns the map box size in cells, frame included.
func (g *Game) boardSize() (w, h int) {
	return level.Cols*g.rules.TileSize/pxPerCol + 2, level.Rows*g.rules.TileSize/pxPerRow + 2
}

// toCell converts world pixels to a screen cell.
func (g *Game) toCell(px, py int) (x, y int) {
	return 1 + floorDiv(px-g.rules.Border, pxPerCol), 1 + floorDiv(py-g.rules.Border, pxPerRow)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	bw, bh := g.boardSize()
	dst.DrawBox(core.NewRect(0, 0, bw, bh), core.ColorBorder)

	g.renderObstacles(dst)
	g.renderFortress(dst)
	g.renderTreasure(dst)
	g.renderTanks(dst)
	g.renderBullets(dst)
	g.renderHUD(dst, bw+1)
	g.renderOverlay(dst)
}

// drawGlyph draws rows of text at a world position, clipped to the board.
func (g *Game) drawGlyph(dst *core.Screen, px, py int, rows []string, c core.Color) {
	bw, bh := g.boardSize()
	x0, y0 := g.toCell(px, py)
	for dy, row := range rows {
		y := y0 + dy
		if y < 1 || y >= bh-1 {
			continue
		}
		dx := 0
		for _, r := range row {
			if x := x0 + dx; x >= 1 && x < bw-1 {
				dst.SetColored(x, y, r, c)
			}
			dx++
		}
	}
}

// fill draws a rectangle of one rune covering the given world bounds.
func (g *Game) fill(dst *core.Screen, b core.Rect, r rune, c core.Color) {
	cols := max(b.W/pxPerCol, 1)
	rows := max(b.H/pxPerRow, 1)
	line := strings.Repeat(string(r), cols)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	g.drawGlyph(dst, b.X, b.Y, lines, c)
}

func (g *Game) renderObstacles(dst *core.Screen) {
	for _, o := range g.world.Obstacles() {
		switch o.(type) {
		case *sprite.Brick:
			g.fill(dst, o.Bounds(), BrickChar, core.ColorBrick)
		case *sprite.Steel:
			g.fill(dst, o.Bounds(), SteelChar, core.ColorSteel)
		}
	}
}

func (g *Game) renderFortress(dst *core.Screen) {
	f := g.world.Fortress()
	if f == nil {
		return
	}
	b := f.Bounds()
	switch {
	case f.Fallen():
		g.drawGlyph(dst, b.X, b.Y, fallenGlyph[:], core.ColorExplosion)
	case f.Defended:
		g.drawGlyph(dst, b.X, b.Y, fortressGlyph[:], core.ColorSteel)
	default:
		g.drawGlyph(dst, b.X, b.Y, fortressGlyph[:], core.ColorFortress)
	}
}

func (g *Game) renderTreasure(dst *core.Screen) {
	t := g.world.ActiveTreasure()
	if t == nil || t.Consumed() {
		return
	}
	// Blink so it stands out from the terrain.
	if (g.tickCount/15)%4 == 3 {
		return
	}
	l := string(treasureLetter[t.Kind])
	rows := []string{"┌" + l + l + "┐", "└" + l + l + "┘"}
	g.drawGlyph(dst, t.X, t.Y, rows, core.ColorTreasure)
}

func (g *Game) renderTanks(dst *core.Screen) {
	w := g.world
	for _, t := range w.AllTanks() {
		switch t.State() {
		case sprite.TankDestroyed:
			continue
		case sprite.TankExploding:
			g.drawGlyph(dst, t.X, t.Y, explosionGlyph[:], core.ColorExplosion)
			continue
		}
		g.drawGlyph(dst, t.X, t.Y, tankGlyphs[t.Dir][:], g.tankColor(t))
	}
}

func (g *Game) tankColor(t *sprite.Tank) core.Color {
	tick := g.world.Tick()
	blink := (tick/8)%2 == 0
	switch {
	case t.IsHero() && t.Shielded(tick) && blink:
		return core.ColorShield
	case t.IsHero() && t.Player == core.Player2:
		return core.ColorHero2
	case t.IsHero():
		return core.ColorHero1
	case t.Bonus && blink:
		return core.ColorBonus
	default:
		return core.ColorEnemy
	}
}

func (g *Game) renderBullets(dst *core.Screen) {
	for _, b := range g.world.Bullets() {
		switch {
		case b.Flying():
			g.drawGlyph(dst, b.X, b.Y, []string{string(BulletChar)}, core.ColorBullet)
		case b.Exploding():
			g.drawGlyph(dst, b.X, b.Y, []string{string(ExplosionChar)}, core.ColorExplosion)
		}
	}
}

// renderHUD draws the stage, enemy count, player stats and active effects
// in the column right of the board.
func (g *Game) renderHUD(dst *core.Screen, x int) {
	w := g.world
	y := 0
	line := func(text string, c core.Color) {
		dst.DrawTextColored(x+1, y, text, c)
		y++
	}

	line(strings.ToUpper(g.Title()), core.ColorHUD)
	line(fmt.Sprintf("Stage %d/%d", g.stage, g.stageCount()), core.ColorHUD)
	line(g.lvl.Name, core.ColorDefault)
	y++

	left := g.spawner.Remaining() + w.AliveEnemies()
	line(fmt.Sprintf("Enemies: %d", left), core.ColorEnemy)
	icons := strings.Repeat("◆", min(left, 2*(hudWidth-4)))
	for len(icons) > 0 {
		n := min(utf8.RuneCountInString(icons), hudWidth-4)
		line(string([]rune(icons)[:n]), core.ColorEnemy)
		icons = string([]rune(icons)[n:])
	}
	y++

	for _, p := range g.players {
		color := core.ColorHero1
		if p == core.Player2 {
			color = core.ColorHero2
		}
		line(fmt.Sprintf("P%d  %d", p, g.PlayerScore(p)), color)
		h := g.hero(p)
		if h == nil || h.State() == sprite.TankDestroyed {
			line("    out", core.ColorDefault)
			y++
			continue
		}
		line(fmt.Sprintf("    Lives %d  %s", h.Lives, strings.Repeat("*", h.Tier)), core.ColorDefault)
		var status []string
		if h.WallBreaking() {
			status = append(status, "WALL")
		}
		if h.Shielded(w.Tick()) {
			status = append(status, "SHIELD")
		}
		if h.Stunned(w.Tick()) {
			status = append(status, "STUN")
		}
		line("    "+strings.Join(status, " "), core.ColorShield)
	}

	if w.TimeStopped() {
		line("TIME STOP", core.ColorTreasure)
	}
	if f := w.Fortress(); f != nil && f.Defended {
		line("BASE DEFENDED", core.ColorSteel)
	}

	help := []string{"Arrows/WASD move", "Space fire  P pause", "Q quit"}
	if len(g.players) > 1 {
		help = []string{"P1 WASD  Space", "P2 Arrows  Enter", "P pause  Q quit"}
	}
	for i, text := range help {
		dst.DrawText(x+1, dst.Height()-len(help)+i, text)
	}
}

// hero returns the tank of player p in the current stage.
func (g *Game) hero(p core.PlayerID) *sprite.Tank {
	for _, h := range g.world.Heroes() {
		if h.Player == p {
			return h
		}
	}
	return nil
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateStageClear:
		subtitle := fmt.Sprintf("Score: %d", g.Score())
		g.drawCenteredBox(dst, fmt.Sprintf("STAGE %d CLEAR", g.stage), subtitle)

	case StateGameOver:
		title := "GAME OVER"
		if f := g.world.Fortress(); f != nil && f.Fallen() {
			title = "FORTRESS DESTROYED"
		}
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.Score())
		g.drawCenteredBox(dst, title, subtitle)

	case StateWin:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", g.Score())
		g.drawCenteredBox(dst, "VICTORY!", subtitle)
	}
}

// drawCenteredBox draws a message box centered on the board.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w, h := g.boardSize()
	tw := utf8.RuneCountInString(title)
	sw := utf8.RuneCountInString(subtitle)

	boxW := max(tw, sw) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorHUD)
	dst.DrawTextColored(boxX+(boxW-tw)/2, boxY+1, title, core.ColorHUD)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}
