package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// palette holds the ANSI color code for each core.Color.
var palette = map[core.Color]string{
	core.ColorAlienBasic:   "10",
	core.ColorAlienFast:    "14",
	core.ColorAlienHeavy:   "208",
	core.ColorAlienSpecial: "13",
	core.ColorBoss:         "9",
	core.ColorShip1:        "11",
	core.ColorShip2:        "12",
	core.ColorPlayerShot:   "15",
	core.ColorEnemyShot:    "1",
	core.ColorHUD:          "15",
	core.ColorHealth:       "9",
	core.ColorTitle:        "11",
	core.ColorFrame:        "7",
	core.ColorDim:          "245",
}

var colorStyles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
	}
	for c, code := range palette {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells sharing a color are emitted as one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		writeRow(&sb, s, y)
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, s *core.Screen, y int) {
	var run strings.Builder
	current := s.GetCell(0, y).Color

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if current == core.ColorDefault {
			sb.WriteString(run.String())
		} else {
			sb.WriteString(styleFor(current).Render(run.String()))
		}
		run.Reset()
	}

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != current {
			flush()
			current = cell.Color
		}
		run.WriteRune(cell.Rune)
	}
	flush()
}
