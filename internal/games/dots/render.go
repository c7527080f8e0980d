package dots

import (
	"fmt"
	"math"

	"github.com/vovakirdan/dotpop/internal/board"
	"github.com/vovakirdan/dotpop/internal/core"
)

const (
	cellWidth = 3 // Columns per board cell; the token sits in the middle
	hudHeight = 3
	dotRune   = '●'
)

// tokenColors maps board colors to screen colors.
var tokenColors = map[board.Color]core.Color{
	board.ColorRed:    core.ColorRed,
	board.ColorGreen:  core.ColorGreen,
	board.ColorBlue:   core.ColorBlue,
	board.ColorYellow: core.ColorYellow,
	board.ColorPurple: core.ColorPurple,
	board.ColorOrange: core.ColorOrange,
}

// TokenColor returns the screen color a board color is drawn in.
func TokenColor(c board.Color) core.Color {
	if sc, ok := tokenColors[c]; ok {
		return sc
	}
	return core.ColorDefault
}

// geometry places the framed board on screen.
type geometry struct {
	frame core.Rect // Border around the cells
	cells core.Rect // Area covered by board cells
	minW  int
	minH  int
}

func computeGeometry(w, h, screenW int) geometry {
	frame := core.NewRect(0, hudHeight, w*cellWidth+2, h+2).CenterX(screenW)

	return geometry{
		frame: frame,
		cells: frame.Inset(1),
		minW:  max(frame.W, 34),
		minH:  frame.Bottom() + 1,
	}
}

// screenPos returns where the token of a board cell is drawn. row may be
// fractional or above the board while a sprite is in flight.
func (g *Game) screenPos(x int, row float32) (int, int) {
	sx := g.geo.cells.X + x*cellWidth + cellWidth/2
	sy := g.geo.cells.Y + (g.height - 1 - int(math.Round(float64(row))))
	return sx, sy
}

// CellAt maps a screen position to the board cell drawn there.
func (g *Game) CellAt(sx, sy int) (board.Coord, bool) {
	if !g.geo.cells.Contains(sx, sy) {
		return board.Coord{}, false
	}
	x := (sx - g.geo.cells.X) / cellWidth
	y := g.height - 1 - (sy - g.geo.cells.Y)
	return board.C(x, y), true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	dst.DrawBox(g.geo.frame, core.ColorFrame)
	g.renderBoard(dst)
	g.renderSprites(dst)
	g.renderCursor(dst)

	if g.paused {
		g.drawOverlay(dst, "PAUSED", "Press P to resume")
	}

	hint := g.Controls()
	dst.DrawTextColored((g.screenW-len(hint))/2, g.geo.frame.Bottom(), hint, core.ColorFrame)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.geo.minW, g.geo.minH))
}

func (g *Game) renderHUD(dst *core.Screen) {
	left := g.geo.frame.X

	title := g.Title()
	dst.DrawTextColored(left+(g.geo.frame.W-len([]rune(title)))/2, 0, title, core.ColorHighlight)

	st := g.State()
	stats := fmt.Sprintf("Popped: %d  Moves: %d  Best: %d  Avg: %.1f", st.Removed, st.Selections, st.Largest, st.Average())
	dst.DrawText(left, 1, stats)

	if !g.last.NoOp() {
		last := fmt.Sprintf("Last: %d %s", g.last.Removed.Len(), g.last.Color)
		dst.DrawTextColored(left, 2, last, tokenColors[g.last.Color])
	}
}

func (g *Game) renderBoard(dst *core.Screen) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			c := board.C(x, y)
			if g.transition != nil && g.transition.hidden(c) {
				continue
			}
			color, ok := g.board.ColorAt(x, y)
			if !ok {
				continue
			}
			sx, sy := g.screenPos(x, float32(y))
			dst.SetColored(sx, sy, dotRune, tokenColors[color])
		}
	}
}

func (g *Game) renderSprites(dst *core.Screen) {
	t := g.transition
	if t == nil {
		return
	}

	if t.phase == PhasePop {
		r := popRune(t.scale)
		for _, c := range t.popping {
			sx, sy := g.screenPos(c.X, float32(c.Y))
			dst.SetColored(sx, sy, r, tokenColors[t.color])
		}
	}

	for _, s := range t.sprites {
		if s.done {
			continue
		}
		sx, sy := g.screenPos(s.x, s.row)
		// Tokens above the board are not drawn yet.
		if sy < g.geo.cells.Y {
			continue
		}
		dst.SetColored(sx, sy, dotRune, tokenColors[s.color])
	}
}

// popRune shrinks a token as its pop scale goes from 1 to 0.
func popRune(scale float32) rune {
	switch {
	case scale > 0.66:
		return '◉'
	case scale > 0.33:
		return '•'
	default:
		return '·'
	}
}

func (g *Game) renderCursor(dst *core.Screen) {
	sx, sy := g.screenPos(g.cursor.X, float32(g.cursor.Y))
	dst.SetColored(sx-1, sy, '[', core.ColorHighlight)
	dst.SetColored(sx+1, sy, ']', core.ColorHighlight)
}

// drawOverlay draws a centered text box over the board.
func (g *Game) drawOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	centerX := g.geo.frame.X + g.geo.frame.W/2
	centerY := g.geo.frame.Y + g.geo.frame.H/2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorText)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space/Click: Pop | R: New | P: Pause | B: Menu"
}
