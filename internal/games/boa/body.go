package boa

// Body is the creature: an ordered chain of cells from tail (index 0) to
// head (last index). It may intersect itself; the step engine detects that
// and ends the game instead of preventing it.
type Body struct {
	cells []Cell
}

// NewBody creates a body from cells listed tail first.
func NewBody(cells ...Cell) *Body {
	b := &Body{cells: make([]Cell, len(cells))}
	copy(b.cells, cells)
	return b
}

// Len returns the number of segments.
func (b *Body) Len() int {
	return len(b.cells)
}

// Head returns the most recently added cell.
func (b *Body) Head() Cell {
	return b.cells[len(b.cells)-1]
}

// Tail returns the oldest cell.
func (b *Body) Tail() Cell {
	return b.cells[0]
}

// At returns the i-th cell counting from the tail.
func (b *Body) At(i int) Cell {
	return b.cells[i]
}

// PushHead grows the body by one cell at the head end.
func (b *Body) PushHead(c Cell) {
	b.cells = append(b.cells, c)
}

// PopTail removes and returns the oldest cell.
// A single-segment body is left intact.
func (b *Body) PopTail() Cell {
	tail := b.cells[0]
	if len(b.cells) <= 1 {
		return tail
	}
	copy(b.cells, b.cells[1:])
	b.cells = b.cells[:len(b.cells)-1]
	return tail
}

// Contains reports whether any segment occupies c.
func (b *Body) Contains(c Cell) bool {
	for _, seg := range b.cells {
		if seg == c {
			return true
		}
	}
	return false
}

// Cells returns a copy of the segments, tail first.
func (b *Body) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}
