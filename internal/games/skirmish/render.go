package skirmish

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vovakirdan/quick-skirmish/internal/core"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"
)

const (
	cellWidth  = 5 // including the left border
	cellHeight = 2 // including the top border
	hudHeight  = 3
	panelGap   = 2
	panelWidth = 28
	logLines   = 4

	obstacleFill = '▓'
	moveMark     = '·'
)

// layoutSize returns the minimum screen size for a board.
func layoutSize(boardSize int) (int, int) {
	boardW := boardSize*cellWidth + 1
	boardH := boardSize*cellHeight + 1
	return 1 + boardW + panelGap + panelWidth, hudHeight + boardH + 1 + logLines
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	size := g.eng.BoardSize()
	boardX, boardY := 1, hudHeight
	boardW := size*cellWidth + 1
	boardH := size*cellHeight + 1

	g.renderHUD(dst, boardX)
	g.renderGrid(dst, boardX, boardY, size)
	g.renderCells(dst, boardX, boardY, size)
	if g.hasSel {
		g.renderFrame(dst, boardX, boardY, g.selected, core.ColorCyan)
	}
	g.renderFrame(dst, boardX, boardY, g.cursor, core.ColorBrightYellow)
	g.renderPanel(dst, boardX+boardW+panelGap, boardY)
	g.renderLog(dst, boardX, boardY+boardH+1)

	if g.eng.GameOver() {
		g.renderGameOver(dst, boardX+boardW/2, boardY+boardH/2)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := layoutSize(g.eng.BoardSize())
	y := g.runtime.ScreenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h), core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, x int) {
	dst.DrawTextColored(x, 0, "QUICK SKIRMISH", core.ColorBrightWhite)
	dst.DrawTextColored(x+16, 0, strings.ToUpper(string(g.Difficulty())), core.ColorGray)

	round := min(g.eng.TurnCount()+1, g.eng.MaxTurns())
	dst.DrawText(x, 1, fmt.Sprintf("Round %d/%d", round, g.eng.MaxTurns()))

	turn, color := "BLUE", core.ColorBrightBlue
	if g.eng.CurrentTeam() == engine.Red {
		turn, color = "RED", core.ColorBrightRed
	}
	dst.DrawText(x+16, 1, "Turn:")
	dst.DrawTextColored(x+22, 1, turn, color)
	dst.DrawText(x+30, 1, fmt.Sprintf("Score: %d", Score(g.eng)))
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY, size int) {
	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == size:
				corner = '┐'
			case y == size && x == 0:
				corner = '└'
			case y == size && x == size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderCells draws units, obstacles and move highlights.
func (g *Game) renderCells(dst *core.Screen, boardX, boardY, size int) {
	for y := range size {
		for x := range size {
			pos := engine.Pos(x, y)
			cx := boardX + x*cellWidth + 1
			cy := boardY + y*cellHeight + 1

			if g.eng.IsObstacle(pos) {
				dst.DrawTextColored(cx, cy, strings.Repeat(string(obstacleFill), cellWidth-1), core.ColorGray)
				continue
			}
			if u, ok := g.eng.UnitAt(pos); ok {
				dst.DrawTextColored(cx, cy, unitLabel(u), g.unitColor(u))
				continue
			}
			if g.hasSel && slices.Contains(g.highlights.Moves, pos) {
				dst.DrawTextColored(cx+1, cy, strings.Repeat(string(moveMark), cellWidth-3), core.ColorGreen)
			}
		}
	}
}

// unitLabel is the type symbol followed by health, e.g. "T 70".
func unitLabel(u engine.Unit) string {
	return fmt.Sprintf("%c%3d", u.Type.Symbol(), u.Health)
}

func (g *Game) unitColor(u engine.Unit) core.Color {
	if u.Team == engine.Red {
		if g.hasSel && slices.Contains(g.highlights.Attacks, u.Position) {
			return core.ColorBrightYellow
		}
		return core.ColorBrightRed
	}
	if u.HasMoved && u.HasAttacked {
		return core.ColorBlue
	}
	return core.ColorBrightBlue
}

// renderFrame outlines one cell.
func (g *Game) renderFrame(dst *core.Screen, boardX, boardY int, pos engine.Position, c core.Color) {
	dst.DrawBox(core.NewRect(boardX+pos.X*cellWidth, boardY+pos.Y*cellHeight, cellWidth+1, cellHeight+1), c)
}

// renderPanel draws unit counts and details of the cell under the cursor.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	dst.DrawTextColored(x, y, fmt.Sprintf("Blue units: %d", g.eng.Count(engine.Blue)), core.ColorBrightBlue)
	dst.DrawTextColored(x, y+1, fmt.Sprintf("Red units:  %d", g.eng.Count(engine.Red)), core.ColorBrightRed)

	dst.DrawText(x, y+3, "Cursor "+g.cursor.String())
	switch u, ok := g.eng.UnitAt(g.cursor); {
	case ok:
		color := core.ColorBrightBlue
		if u.Team == engine.Red {
			color = core.ColorBrightRed
		}
		dst.DrawTextColored(x, y+4, fmt.Sprintf("%s %s", strings.ToUpper(u.Team.String()), u.Type), color)
		dst.DrawText(x, y+5, fmt.Sprintf("HP  %d/%d", u.Health, u.MaxHealth))
		dst.DrawText(x, y+6, fmt.Sprintf("ATK %d  MOV %d  RNG %d", u.AttackPower, u.MovementRange, u.AttackRange))
		dst.DrawTextColored(x, y+7, fmt.Sprintf("Moved: %s  Attacked: %s", yesNo(u.HasMoved), yesNo(u.HasAttacked)), core.ColorGray)
	case g.eng.IsObstacle(g.cursor):
		dst.DrawTextColored(x, y+4, "Obstacle", core.ColorGray)
	default:
		dst.DrawTextColored(x, y+4, "Empty", core.ColorGray)
	}

	if g.hasSel {
		dst.DrawTextColored(x, y+9, fmt.Sprintf("Selected %s: %d moves, %d targets",
			g.selected, len(g.highlights.Moves), len(g.highlights.Attacks)), core.ColorCyan)
	}
	dst.DrawTextColored(x, y+11, "S Soldier  T Tank  H Heli", core.ColorGray)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// renderLog draws the most recent combat log entries.
func (g *Game) renderLog(dst *core.Screen, x, y int) {
	events := g.eng.Events()
	start := max(0, len(events)-logLines)
	for i, ev := range events[start:] {
		dst.DrawTextColored(x, y+i, ev.String(), eventColor(ev))
	}
}

func eventColor(ev engine.Event) core.Color {
	switch ev.Kind {
	case engine.EventKill, engine.EventGameOver:
		return core.ColorYellow
	case engine.EventEndTurn:
		return core.ColorGray
	}
	if ev.Team == engine.Red {
		return core.ColorRed
	}
	return core.ColorBlue
}

func (g *Game) renderGameOver(dst *core.Screen, centerX, centerY int) {
	title := "DRAW"
	switch g.eng.Winner() {
	case engine.WinnerBlue:
		title = "VICTORY"
	case engine.WinnerRed:
		title = "DEFEAT"
	}
	r := g.Result()
	drawOverlay(dst, centerX, centerY,
		title,
		fmt.Sprintf("Rounds: %d  Survivors: %d vs %d", r.Rounds, r.BlueSurvivors, r.RedSurvivors),
		fmt.Sprintf("Score: %d", r.Score),
		"Press R to restart",
	)
}

// drawOverlay draws a boxed, centered block of text.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}
