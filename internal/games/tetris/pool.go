package tetris

// piecePool recycles Piece instances between locks. Reuse is invisible to
// callers: snapshots copy pieces by value and every get fully overwrites
// the recycled instance.
type piecePool struct {
	free []*Piece
}

// get returns a piece initialized from def at (x, y).
func (p *piecePool) get(def Definition, x, y int) *Piece {
	var pc *Piece
	if n := len(p.free); n > 0 {
		pc = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		pc = new(Piece)
	}
	*pc = Piece{Type: def.Type, Shape: def.Shape, X: x, Y: y}
	return pc
}

// put returns a piece to the pool. The caller must drop its reference.
func (p *piecePool) put(pc *Piece) {
	if pc == nil {
		return
	}
	p.free = append(p.free, pc)
}
