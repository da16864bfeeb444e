package tetris

// kickOffsets are the horizontal shifts tried, in order, when a rotation
// does not fit in place: one column left, then one column right of the
// original position. There is no vertical kick and no per-piece table.
var kickOffsets = [...]int{0, -1, +1}

// TrySlide moves the piece by (dx, dy) if its current shape fits there.
// The piece is left untouched when the move is blocked.
func (p *Piece) TrySlide(b *Board, dx, dy int) bool {
	if !b.CanPlace(p.Shape, p.X+dx, p.Y+dy) {
		return false
	}
	p.X += dx
	p.Y += dy
	return true
}

// TryRotate turns the piece clockwise, falling back to the wall kicks in
// kickOffsets. If no attempt fits, shape and position stay unchanged.
func (p *Piece) TryRotate(b *Board) bool {
	rotated := p.Shape.Rotated()
	for _, dx := range kickOffsets {
		if b.CanPlace(rotated, p.X+dx, p.Y) {
			p.Shape = rotated
			p.X += dx
			return true
		}
	}
	return false
}

// Drop slides the piece straight down until it rests on something and
// returns the number of rows travelled. Locking is left to the caller.
func (p *Piece) Drop(b *Board) int {
	rows := 0
	for p.TrySlide(b, 0, 1) {
		rows++
	}
	return rows
}

// Fits reports whether the piece is valid at its current position.
func (p *Piece) Fits(b *Board) bool {
	return b.CanPlace(p.Shape, p.X, p.Y)
}
