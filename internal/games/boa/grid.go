package boa

// Cell is a board position addressed by column and row.
type Cell struct {
	X, Y int
}

// Add returns the component-wise sum of two cells.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Grid is a toroidal W x H board: leaving one edge re-enters on the opposite one.
type Grid struct {
	W, H int
}

// NewGrid creates a grid of the given size.
func NewGrid(w, h int) Grid {
	return Grid{W: w, H: h}
}

// Area returns the number of cells on the board.
func (g Grid) Area() int {
	return g.W * g.H
}

// Contains reports whether c lies in [0,W) x [0,H).
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Wrap reduces any cell onto the board.
func (g Grid) Wrap(c Cell) Cell {
	return Cell{X: mod(c.X, g.W), Y: mod(c.Y, g.H)}
}

// Step moves c by delta and wraps the result.
func (g Grid) Step(c, delta Cell) Cell {
	return g.Wrap(c.Add(delta))
}

// DirectionBetween returns the direction d with Step(a, d.Delta()) == b.
// The second result is false when a and b are not neighbours.
func (g Grid) DirectionBetween(a, b Cell) (Direction, bool) {
	for _, d := range Directions {
		if g.Step(a, d.Delta()) == b {
			return d, true
		}
	}
	return None, false
}

// ValidBody reports whether cells form a chain of on-board neighbours.
func (g Grid) ValidBody(cells []Cell) bool {
	if len(cells) == 0 {
		return false
	}
	for i, c := range cells {
		if !g.Contains(c) {
			return false
		}
		if i == 0 {
			continue
		}
		if _, ok := g.DirectionBetween(cells[i-1], c); !ok {
			return false
		}
	}
	return true
}

// mod is the mathematical modulo: the result is in [0, n) for any sign of a.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
