package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	cellW    = 2  // screen columns per board cell
	sidebarW = 14 // HUD column to the right of the well
	gap      = 1
	preview  = 4 // next-piece preview is a 4x4 cell area
)

// layoutSize returns the screen size needed to draw a board of the given
// dimensions with its sidebar.
func layoutSize(boardW, boardH int) (int, int) {
	return boardW*cellW + 2 + gap + sidebarW, boardH + 2
}

// Render draws the well, the active piece, the sidebar and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		w, h := layoutSize(g.rules.Board.Width, g.rules.Board.Height)
		mid := dst.Height() / 2
		dst.DrawTextCentered(mid-1, "Window too small")
		dst.DrawTextCentered(mid, fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	w, h := layoutSize(g.rules.Board.Width, g.rules.Board.Height)
	area := core.NewRect(0, 0, dst.Width(), dst.Height()).CenteredIn(w, h)
	well := core.NewRect(area.X, area.Y, g.rules.Board.Width*cellW+2, h)
	side := core.NewRect(well.Right()+gap, area.Y, sidebarW, h)

	renderWell(dst, well, g.snap)
	renderSidebar(dst, side, g.snap)

	switch {
	case g.snap.GameOver():
		renderOverlay(dst, well, "GAME OVER", fmt.Sprintf("Score %d", g.snap.Score), "R to restart")
	case g.snap.Paused():
		renderOverlay(dst, well, "PAUSED", "P to resume")
	}
}

// renderWell draws the board border and the locked cells plus the active
// piece. Empty cells get a faint dot so columns are easy to count.
func renderWell(dst *core.Screen, r core.Rect, s Snapshot) {
	dst.DrawBox(r)
	for row, cells := range s.Composite() {
		for col, t := range cells {
			drawCell(dst, r.X+1+col*cellW, r.Y+1+row, t)
		}
	}
}

func drawCell(dst *core.Screen, x, y int, t PieceType) {
	if t == Empty {
		dst.SetCell(x, y, ' ', core.ColorDefault)
		dst.SetCell(x+1, y, '·', core.ColorGray)
		return
	}
	c := t.Color()
	dst.SetCell(x, y, '█', c)
	dst.SetCell(x+1, y, '█', c)
}

// renderSidebar draws the next-piece box and the counters.
func renderSidebar(dst *core.Screen, r core.Rect, s Snapshot) {
	box := core.NewRect(r.X, r.Y, preview*cellW+2, preview+2)
	dst.DrawBox(box)
	dst.DrawText(box.X+2, box.Y, "NEXT")
	if s.HasNext {
		renderPreview(dst, box.X+1, box.Y+1, s.Next.Shape, s.Next.Type)
	}

	y := box.Bottom() + 1
	stats := []struct {
		label string
		value string
	}{
		{"SCORE", fmt.Sprint(s.Score)},
		{"LINES", fmt.Sprint(s.Lines)},
		{"LEVEL", fmt.Sprint(s.Level)},
		{"SPEED", fmt.Sprintf("%dms", s.GravityInterval.Milliseconds())},
	}
	for _, st := range stats {
		if y+1 >= r.Bottom() {
			break
		}
		dst.DrawTextColor(r.X, y, st.label, core.ColorGray)
		dst.DrawText(r.X, y+1, st.value)
		y += 3
	}
}

// renderPreview centers a shape inside the 4x4 preview area.
func renderPreview(dst *core.Screen, x, y int, shape Shape, t PieceType) {
	off := (preview - shape.Size()) / 2
	for _, cell := range shape.Offsets() {
		row, col := cell[0]+off, cell[1]+off
		c := t.Color()
		dst.SetCell(x+col*cellW, y+row, '█', c)
		dst.SetCell(x+col*cellW+1, y+row, '█', c)
	}
}

// renderOverlay draws a framed message centered on r.
func renderOverlay(dst *core.Screen, r core.Rect, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := r.CenteredIn(width+4, len(lines)+2)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawText(x, box.Y+1+i, l)
	}
}
