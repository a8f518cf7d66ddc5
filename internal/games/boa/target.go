package boa

import "math/rand"

// Occupancy is anything that covers board cells, typically a Body.
type Occupancy interface {
	Len() int
	Contains(c Cell) bool
}

// samplesPerCell bounds rejection sampling before falling back to a scan.
const samplesPerCell = 4

// Placer picks target cells uniformly among the free cells of a grid.
type Placer struct {
	grid Grid
	rng  *rand.Rand
}

// NewPlacer creates a placer drawing from rng.
func NewPlacer(grid Grid, rng *rand.Rand) *Placer {
	return &Placer{grid: grid, rng: rng}
}

// Place returns a random unoccupied cell. The second result is false when
// the board is full.
func (p *Placer) Place(occupied Occupancy) (Cell, bool) {
	if occupied.Len() >= p.grid.Area() {
		return Cell{}, false
	}

	for range p.grid.Area() * samplesPerCell {
		c := Cell{X: p.rng.Intn(p.grid.W), Y: p.rng.Intn(p.grid.H)}
		if !occupied.Contains(c) {
			return c, true
		}
	}

	// Unlucky streak on a crowded board: pick among the free cells directly.
	var free []Cell
	for y := 0; y < p.grid.H; y++ {
		for x := 0; x < p.grid.W; x++ {
			c := Cell{X: x, Y: y}
			if !occupied.Contains(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return Cell{}, false
	}
	return free[p.rng.Intn(len(free))], true
}
