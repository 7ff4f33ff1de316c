package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Ikbal01/tanks-game/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorBrick:     lipgloss.NewStyle().Foreground(lipgloss.Color("166")),
	core.ColorSteel:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorFortress:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorHero1:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorHero2:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorEnemy:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBonus:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBullet:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorExplosion: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	core.ColorTreasure:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	core.ColorShield:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorHUD:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorBorder:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
