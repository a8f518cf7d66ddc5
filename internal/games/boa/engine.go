package boa

// State is the phase of the step engine.
type State int

const (
	Running State = iota
	Paused
	GameOver
	Cleared // the creature filled the whole board
)

// String returns the state name used in snapshots and logs.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Terminal reports whether only a reset can leave this state.
func (s State) Terminal() bool {
	return s == GameOver || s == Cleared
}

// Outcome is what a single step did to the board.
type Outcome int

const (
	Moved    Outcome = iota // head advanced, tail dropped
	Ate                     // head advanced onto the target, no tail drop
	Collided                // head would enter the body; nothing changed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case Collided:
		return "collided"
	default:
		return "unknown"
	}
}

// Board is the playfield the step engine mutates: the creature, its
// heading and the target.
type Board struct {
	grid      Grid
	body      *Body
	dir       Direction
	target    Cell
	hasTarget bool
	placer    *Placer
}

// NewBoard creates a board and places the first target.
func NewBoard(grid Grid, body *Body, dir Direction, placer *Placer) *Board {
	b := &Board{
		grid:   grid,
		body:   body,
		dir:    dir,
		placer: placer,
	}
	b.Replace()
	return b
}

// Replace draws a fresh target. The target becomes absent when the board
// is full.
func (b *Board) Replace() {
	b.target, b.hasTarget = b.placer.Place(b.body)
}

// Target returns the target cell and whether one is present.
func (b *Board) Target() (Cell, bool) {
	return b.target, b.hasTarget
}

// Body returns the creature.
func (b *Board) Body() *Body {
	return b.body
}

// Direction returns the current heading.
func (b *Board) Direction() Direction {
	return b.dir
}

// Next returns the cell the head would move to with the current heading.
func (b *Board) Next() Cell {
	return b.grid.Step(b.body.Head(), b.dir.Delta())
}

// Step advances the creature by one cell.
//
// One intent is taken from q; it replaces the heading unless it would turn
// the creature straight back. Eating is checked before self-collision
// because growth skips the tail pop.
func (b *Board) Step(q *Queue) Outcome {
	if d, ok := q.Dequeue(); ok && d.Valid() && d != b.dir.Opposite() {
		b.dir = d
	}

	next := b.Next()

	switch {
	case b.hasTarget && next == b.target:
		b.body.PushHead(next)
		b.Replace()
		return Ate
	case b.body.Contains(next):
		return Collided
	default:
		b.body.PushHead(next)
		b.body.PopTail()
		return Moved
	}
}
