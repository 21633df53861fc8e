package invaders

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Minimum terminal size the board can be drawn in.
const (
	MinScreenW = 40
	MinScreenH = 16
)

// PlaceholderGlyph stands in for any entity without a sprite.
const PlaceholderGlyph = "?"

// sprite is a two-frame glyph with its color.
type sprite struct {
	frames [2]string
	color  core.Color
}

var alienSprites = map[AlienType]sprite{
	AlienBasic:   {frames: [2]string{"<o>", ">o<"}, color: core.ColorAlienBasic},
	AlienFast:    {frames: [2]string{`\v/`, `/v\`}, color: core.ColorAlienFast},
	AlienHeavy:   {frames: [2]string{"[#]", "]#["}, color: core.ColorAlienHeavy},
	AlienSpecial: {frames: [2]string{"{*}", "}*{"}, color: core.ColorAlienSpecial},
	AlienBoss:    {frames: [2]string{"<=@@=>", ">=@@=<"}, color: core.ColorBoss},
}

var shipSprites = [core.MaxPlayers]sprite{
	{frames: [2]string{"/^\\", "/^\\"}, color: core.ColorShip1},
	{frames: [2]string{"/A\\", "/A\\"}, color: core.ColorShip2},
}

// glyphFor returns the text and color of an entity. Unknown entities get
// the placeholder.
func glyphFor(e EntityView) (string, core.Color) {
	switch e.Kind {
	case KindAlien:
		if sp, ok := alienSprites[e.Alien]; ok {
			return sp.frames[e.Frame&1], sp.color
		}
	case KindShip:
		if e.Player >= 0 && int(e.Player) < len(shipSprites) {
			sp := shipSprites[e.Player]
			return sp.frames[0], sp.color
		}
	case KindShot:
		if e.Side == SideEnemy {
			return "!", core.ColorEnemyShot
		}
		return "|", core.ColorPlayerShot
	}
	return PlaceholderGlyph, core.ColorDim
}

// Render draws the current game state into dst.
func (g *Game) Render(dst *core.Screen) {
	snap := g.Snapshot()
	RenderSnapshot(dst, &snap)
}

// RenderSnapshot draws a snapshot. The play field is scaled to fit between
// the HUD row and the help row.
func RenderSnapshot(dst *core.Screen, snap *Snapshot) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	renderHUD(dst, snap)

	field := core.NewRect(0, 1, dst.Width(), dst.Height()-2)
	switch snap.Flow {
	case FlowPlaying, FlowPaused:
		renderField(dst, snap, field)
	}

	renderOverlay(dst, snap)
}

// renderHUD draws score, stage, health and items.
func renderHUD(dst *core.Screen, snap *Snapshot) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorHUD)
	dst.DrawTextCentered(0, fmt.Sprintf("Stage %d/%d", snap.Stage, snap.FinalStage))

	var hp []string
	for i, p := range snap.Players {
		if !p.Active {
			continue
		}
		hp = append(hp, fmt.Sprintf("P%d %s", i+1, hearts(p.Health, p.MaxHealth)))
	}
	right := strings.Join(hp, "  ")
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(right)-1, 0, right, core.ColorHealth)

	var items []string
	for i, it := range snap.Items {
		label := fmt.Sprintf("%d:%s x%d", i+1, it.Name, it.Count)
		if it.Remaining > 0 {
			label += fmt.Sprintf(" (%ds)", int(math.Ceil(it.Remaining.Seconds())))
		}
		items = append(items, label)
	}
	footer := strings.Join(items, "  ")
	if snap.Invincible {
		footer = "INVINCIBLE  " + footer
	}
	dst.DrawTextColored(1, dst.Height()-1, footer, core.ColorDim)
}

func hearts(health, maxHealth int) string {
	health = core.Clamp(health, 0, maxHealth)
	return strings.Repeat("♥", health) + strings.Repeat("·", maxHealth-health)
}

// renderField scales world coordinates into the field rectangle.
func renderField(dst *core.Screen, snap *Snapshot, field core.Rect) {
	if snap.WorldW <= 0 || snap.WorldH <= 0 {
		return
	}
	sx := float64(field.W) / snap.WorldW
	sy := float64(field.H) / snap.WorldH

	for _, e := range snap.Entities {
		text, color := glyphFor(e)
		cx := field.X + int(math.Round((e.X+e.W/2)*sx))
		cy := field.Y + int(math.Round((e.Y+e.H/2)*sy))
		x := cx - utf8.RuneCountInString(text)/2

		if cy < field.Y || cy >= field.Bottom() {
			continue
		}
		dst.DrawTextColored(x, cy, text, color)
	}

	dst.DrawHLine(field.X, field.Bottom()-1, field.W, '─', core.ColorDim)
}

// renderOverlay draws the non-playing screens.
func renderOverlay(dst *core.Screen, snap *Snapshot) {
	switch snap.Flow {
	case FlowWaitingForKeyPress:
		title := "SPACE INVADERS"
		if snap.Message != "" {
			title = snap.Message
		}
		drawCenteredBox(dst, title, "Press any key to start  |  Esc to quit")
		if snap.FinalScore > 0 {
			dst.DrawTextCentered(dst.Height()/2+3, fmt.Sprintf("Final score: %d", snap.FinalScore))
		}

	case FlowStageSelect:
		title := "SELECT STAGE"
		if snap.Message != "" {
			title = fmt.Sprintf("%s  Score: %d", snap.Message, snap.FinalScore)
		}
		drawCenteredBox(dst, title, stageRow(snap))
		dst.DrawTextCentered(dst.Height()/2+3, "←/→ choose  Enter start  Esc quit")
		dst.DrawTextCentered(dst.Height()/2+4, fmt.Sprintf("Points: %d", snap.Points))

	case FlowPaused:
		drawCenteredBox(dst, "PAUSED", "Space to resume  |  Esc to quit and bank score")
	}
}

// stageRow marks the selected stage and locks stages past the limit.
func stageRow(snap *Snapshot) string {
	var parts []string
	for stage := 1; stage <= snap.FinalStage; stage++ {
		switch {
		case stage == snap.SelectedStage:
			parts = append(parts, fmt.Sprintf("[%d]", stage))
		case stage > snap.StageLimit:
			parts = append(parts, " x ")
		default:
			parts = append(parts, fmt.Sprintf(" %d ", stage))
		}
	}
	return strings.Join(parts, " ")
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	titleW := utf8.RuneCountInString(title)
	subW := utf8.RuneCountInString(subtitle)

	boxW := core.Min(core.Max(titleW, subW)+4, dst.Width())
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorFrame)
	dst.DrawTextColored(boxX+(boxW-titleW)/2, boxY+1, title, core.ColorTitle)
	dst.DrawText(boxX+(boxW-subW)/2, boxY+3, subtitle)
}
