package tetris

import (
	"fmt"
	"strings"
)

// Default playfield size.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Board is the grid of settled cells. Row 0 is the top.
type Board struct {
	width  int
	height int
	cells  [][]PieceType
}

// NewBoard creates an empty board. Non-positive sizes are a programming error.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("tetris: invalid board size %dx%d", width, height))
	}
	b := &Board{width: width, height: height}
	b.cells = make([][]PieceType, height)
	for row := range b.cells {
		b.cells[row] = make([]PieceType, width)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// At returns the cell at (row, col). Out-of-range indices panic.
func (b *Board) At(row, col int) PieceType {
	return b.cells[row][col]
}

// IsOccupied reports whether a settled piece covers (row, col).
func (b *Board) IsOccupied(row, col int) bool {
	return b.cells[row][col] != Empty
}

// CanPlace reports whether shape fits with its bounding square at (x, y).
// Cells above the top edge are allowed and never checked for occupancy, so
// pieces can spawn partly outside the visible grid.
func (b *Board) CanPlace(shape Shape, x, y int) bool {
	for r := range shape.size {
		for c := range shape.size {
			if !shape.cells[r][c] {
				continue
			}
			row, col := y+r, x+c
			if col < 0 || col >= b.width || row >= b.height {
				return false
			}
			if row >= 0 && b.cells[row][col] != Empty {
				return false
			}
		}
	}
	return true
}

// Lock writes tag into every cell shape covers at (x, y).
// It returns false, writing nothing, if any covered cell is above row 0:
// the piece never fully entered the board and the game is over.
func (b *Board) Lock(shape Shape, x, y int, tag PieceType) bool {
	for r := range shape.size {
		for c := range shape.size {
			if shape.cells[r][c] && y+r < 0 {
				return false
			}
		}
	}
	for r := range shape.size {
		for c := range shape.size {
			if shape.cells[r][c] {
				b.cells[y+r][x+c] = tag
			}
		}
	}
	return true
}

// rowFull reports whether a row has no empty cells.
func rowFull(row []PieceType) bool {
	for _, cell := range row {
		if cell == Empty {
			return false
		}
	}
	return true
}

// ClearFullLines removes every full row in one bottom-up pass and inserts
// the same number of empty rows at the top. Surviving rows keep their
// relative order. Returns the number of rows removed.
func (b *Board) ClearFullLines() int {
	write := b.height - 1
	for read := b.height - 1; read >= 0; read-- {
		if rowFull(b.cells[read]) {
			continue
		}
		if write != read {
			// swap so the full row's slice is recycled as a top row below
			b.cells[write], b.cells[read] = b.cells[read], b.cells[write]
		}
		write--
	}

	cleared := write + 1
	for row := 0; row < cleared; row++ {
		clear(b.cells[row])
	}
	return cleared
}

// Reset empties every cell.
func (b *Board) Reset() {
	for row := range b.cells {
		clear(b.cells[row])
	}
}

// Grid returns a deep copy of the cells, safe to hand to renderers.
func (b *Board) Grid() [][]PieceType {
	out := make([][]PieceType, b.height)
	for row := range b.cells {
		out[row] = append([]PieceType(nil), b.cells[row]...)
	}
	return out
}

// String renders the board one row per line using piece letters.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for row := range b.cells {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range b.cells[row] {
			sb.WriteString(cell.String())
		}
	}
	return sb.String()
}
