package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRow sets every cell of a row, leaving the listed columns empty.
func fillRow(b *Board, row int, holes ...int) {
	for col := range b.Width() {
		b.cells[row][col] = PieceJ
	}
	for _, col := range holes {
		b.cells[row][col] = Empty
	}
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight)
	assert.Equal(t, 10, b.Width())
	assert.Equal(t, 20, b.Height())
	for row := range b.Height() {
		for col := range b.Width() {
			assert.False(t, b.IsOccupied(row, col))
		}
	}
	assert.Panics(t, func() { NewBoard(0, 20) })
}

func TestEverySpawnFitsEmptyBoard(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight)
	for _, typ := range Types() {
		assert.True(t, b.CanPlace(Lookup(typ).Shape, BoardWidth/2-1, 0), "piece %s", typ)
	}
}

func TestCanPlace(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight)
	b.cells[10][5] = PieceT
	o := Lookup(PieceO).Shape

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"open floor", 0, 18, true},
		{"left wall", -1, 0, false},
		{"right wall", 9, 0, false},
		{"below floor", 0, 19, false},
		{"above top is allowed", 0, -1, true},
		{"far above top", 0, -5, true},
		{"overlaps settled cell", 4, 9, false},
		{"touches settled cell", 6, 9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.CanPlace(o, tt.x, tt.y))
		})
	}
}

func TestLockWritesTag(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight)
	require.True(t, b.Lock(Lookup(PieceT).Shape, 3, 18, PieceT))

	assert.Equal(t, PieceT, b.At(18, 4))
	assert.Equal(t, PieceT, b.At(19, 3))
	assert.Equal(t, PieceT, b.At(19, 4))
	assert.Equal(t, PieceT, b.At(19, 5))
	assert.Equal(t, Empty, b.At(18, 3))
}

func TestLockAboveTopWritesNothing(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight)
	before := b.Grid()

	assert.False(t, b.Lock(Lookup(PieceO).Shape, 4, -1, PieceO))
	assert.Equal(t, before, b.Grid(), "a failed lock must leave the board untouched")
}

func TestClearFullLinesNoFullRows(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight)
	fillRow(b, 19, 0)
	fillRow(b, 18, 9)
	before := b.Grid()

	assert.Equal(t, 0, b.ClearFullLines())
	assert.Equal(t, before, b.Grid())
	assert.Equal(t, 0, b.ClearFullLines())
	assert.Equal(t, before, b.Grid())
}

func TestClearBottomTwoRows(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight)
	fillRow(b, 19)
	fillRow(b, 18)
	b.cells[17][3] = PieceS

	assert.Equal(t, 2, b.ClearFullLines())

	assert.Equal(t, PieceS, b.At(19, 3), "row 17 drops by two")
	for col := range b.Width() {
		assert.False(t, b.IsOccupied(0, col))
		assert.False(t, b.IsOccupied(1, col))
		if col != 3 {
			assert.False(t, b.IsOccupied(19, col))
		}
		assert.False(t, b.IsOccupied(18, col))
	}
}

func TestClearNonContiguousRowsKeepsOrder(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight)
	fillRow(b, 19)
	b.cells[18][0] = PieceL // survivor A
	fillRow(b, 17)
	b.cells[16][9] = PieceZ // survivor B

	assert.Equal(t, 2, b.ClearFullLines())
	assert.Equal(t, PieceL, b.At(19, 0))
	assert.Equal(t, PieceZ, b.At(18, 9))
	assert.Equal(t, Empty, b.At(17, 9))
}

func TestClearWholeBoard(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight)
	for row := range b.Height() {
		fillRow(b, row)
	}

	assert.Equal(t, BoardHeight, b.ClearFullLines())
	assert.Equal(t, NewBoard(BoardWidth, BoardHeight).Grid(), b.Grid())
}

func TestGridIsACopy(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight)
	g := b.Grid()
	g[0][0] = PieceI
	assert.Equal(t, Empty, b.At(0, 0))
}

func TestBoardResetAndString(t *testing.T) {
	b := NewBoard(5, 4)
	b.cells[3][0] = PieceI
	assert.Equal(t, ".....\n.....\n.....\nI....", b.String())
	b.Reset()
	assert.Equal(t, ".....\n.....\n.....\n.....", b.String())
}
