package tetris

import "time"

// Snapshot is a read-only copy of a session, taken once per frame for
// rendering. Mutating it has no effect on the session.
type Snapshot struct {
	Board [][]PieceType // [row][col], row 0 at the top

	Active    Piece
	HasActive bool
	Next      Piece
	HasNext   bool

	Score           int
	Lines           int
	Level           int
	GravityInterval time.Duration

	State     State
	Steps     uint64
	RunSeed   int64
	LastClear int // lines removed by the most recent lock
}

// Paused reports whether the session is paused.
func (s Snapshot) Paused() bool { return s.State == StatePaused }

// GameOver reports whether the session has ended.
func (s Snapshot) GameOver() bool { return s.State == StateGameOver }

// Composite returns the board with the active piece drawn in. Cells of the
// piece above the top row are omitted.
func (s Snapshot) Composite() [][]PieceType {
	out := make([][]PieceType, len(s.Board))
	for r := range s.Board {
		out[r] = append([]PieceType(nil), s.Board[r]...)
	}
	if !s.HasActive || s.GameOver() {
		return out
	}
	for _, cell := range s.Active.Cells() {
		row, col := cell[0], cell[1]
		if row < 0 || row >= len(out) || col < 0 || col >= len(out[row]) {
			continue
		}
		out[row][col] = s.Active.Type
	}
	return out
}
