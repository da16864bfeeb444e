// Package tetris implements the falling-block puzzle simulation: the piece
// catalog, the board, the active-piece controller, scoring, the fixed-step
// clock and the session state machine. It has no rendering or input
// dependencies; the platform drives it through Session.Apply and
// Session.Advance and paints Snapshot values.
package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// PieceType identifies a tetromino. It doubles as the color tag stored in
// board cells, with Empty marking a free cell.
type PieceType uint8

const (
	Empty PieceType = iota
	PieceI
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// pieceCount is the number of real tetromino types.
const pieceCount = 7

// String returns the single-letter identifier, or "." for Empty.
func (t PieceType) String() string {
	switch t {
	case Empty:
		return "."
	case PieceI:
		return "I"
	case PieceO:
		return "O"
	case PieceT:
		return "T"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	default:
		return "?"
	}
}

// Valid reports whether t is one of the seven tetrominoes.
func (t PieceType) Valid() bool {
	return t >= PieceI && t <= PieceL
}

// Color returns the display color for cells of this type.
func (t PieceType) Color() core.Color {
	switch t {
	case PieceI:
		return core.ColorCyan
	case PieceO:
		return core.ColorYellow
	case PieceT:
		return core.ColorMagenta
	case PieceS:
		return core.ColorGreen
	case PieceZ:
		return core.ColorRed
	case PieceJ:
		return core.ColorBlue
	case PieceL:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// maxShapeSize is the largest bounding square in the catalog (the I piece).
const maxShapeSize = 4

// Shape is an occupancy matrix on a size×size bounding square.
// It is a value type: assignment copies it, so catalog templates can never
// be mutated through an active piece.
type Shape struct {
	size  int
	cells [maxShapeSize][maxShapeSize]bool
}

// shapeOf builds a Shape from rows of '#' (occupied) and '.' (free).
// Malformed rows are a programming error.
func shapeOf(rows ...string) Shape {
	if len(rows) == 0 || len(rows) > maxShapeSize {
		panic(fmt.Sprintf("tetris: shape must have 1..%d rows, got %d", maxShapeSize, len(rows)))
	}
	s := Shape{size: len(rows)}
	for r, row := range rows {
		if len(row) != s.size {
			panic(fmt.Sprintf("tetris: shape row %d has width %d, expected %d", r, len(row), s.size))
		}
		for c := range len(row) {
			switch row[c] {
			case '#':
				s.cells[r][c] = true
			case '.':
			default:
				panic(fmt.Sprintf("tetris: bad shape cell %q", row[c]))
			}
		}
	}
	return s
}

// Size returns the side of the bounding square.
func (s Shape) Size() int {
	return s.size
}

// At reports whether the cell at (row, col) of the bounding square is set.
// Indices outside the square are a programming error.
func (s Shape) At(row, col int) bool {
	if row < 0 || row >= s.size || col < 0 || col >= s.size {
		panic(fmt.Sprintf("tetris: shape index (%d,%d) outside %dx%d", row, col, s.size, s.size))
	}
	return s.cells[row][col]
}

// Rotated returns the shape turned 90° clockwise on its own bounding square:
// transpose, then reverse each row. The square does not move, so the
// rotation pivots on the square rather than on the piece's visual center.
func (s Shape) Rotated() Shape {
	out := Shape{size: s.size}
	n := s.size
	for r := range n {
		for c := range n {
			// transpose puts (c, r) at (r, c); reversing the row maps column c to n-1-c
			out.cells[r][n-1-c] = s.cells[c][r]
		}
	}
	return out
}

// Offsets returns the (row, col) of every occupied cell in row-major order.
func (s Shape) Offsets() [][2]int {
	out := make([][2]int, 0, 4)
	for r := range s.size {
		for c := range s.size {
			if s.cells[r][c] {
				out = append(out, [2]int{r, c})
			}
		}
	}
	return out
}

// Rows renders the shape as '#'/'.' strings, mostly for tests and debugging.
func (s Shape) Rows() []string {
	rows := make([]string, s.size)
	for r := range s.size {
		b := make([]byte, s.size)
		for c := range s.size {
			b[c] = '.'
			if s.cells[r][c] {
				b[c] = '#'
			}
		}
		rows[r] = string(b)
	}
	return rows
}

// Definition is a catalog entry: an identifier and its spawn shape.
type Definition struct {
	Type  PieceType
	Shape Shape
}

// catalog is indexed by PieceType-1, in the canonical I,O,T,S,Z,J,L order.
var catalog = [pieceCount]Definition{
	{Type: PieceI, Shape: shapeOf(
		"....",
		"####",
		"....",
		"....",
	)},
	{Type: PieceO, Shape: shapeOf(
		"##",
		"##",
	)},
	{Type: PieceT, Shape: shapeOf(
		".#.",
		"###",
		"...",
	)},
	{Type: PieceS, Shape: shapeOf(
		".##",
		"##.",
		"...",
	)},
	{Type: PieceZ, Shape: shapeOf(
		"##.",
		".##",
		"...",
	)},
	{Type: PieceJ, Shape: shapeOf(
		"#..",
		"###",
		"...",
	)},
	{Type: PieceL, Shape: shapeOf(
		"..#",
		"###",
		"...",
	)},
}

// Lookup returns the catalog entry for t. Unknown types panic.
func Lookup(t PieceType) Definition {
	if !t.Valid() {
		panic(fmt.Sprintf("tetris: no catalog entry for piece type %d", t))
	}
	return catalog[t-1]
}

// Types returns the seven piece types in catalog order.
func Types() []PieceType {
	out := make([]PieceType, pieceCount)
	for i := range catalog {
		out[i] = catalog[i].Type
	}
	return out
}

// Piece is a live instance of a catalog entry on the board.
// Y may be negative while the piece is still entering from above.
type Piece struct {
	Type  PieceType
	Shape Shape
	X, Y  int
}

// Cells returns the absolute (row, col) board coordinates the piece covers.
func (p *Piece) Cells() [][2]int {
	offsets := p.Shape.Offsets()
	for i := range offsets {
		offsets[i][0] += p.Y
		offsets[i][1] += p.X
	}
	return offsets
}
