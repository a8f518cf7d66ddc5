package boa

import "fmt"

// Direction is one of the four cardinal headings. The zero value None means
// "no heading" and is what failed lookups return.
type Direction int

const (
	None Direction = iota
	Left
	Right
	Up
	Down
)

// Directions lists the four real headings.
var Directions = [...]Direction{Left, Right, Up, Down}

var deltas = map[Direction]Cell{
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
}

// Pairs are listed explicitly so reordering the constants cannot break them.
var opposites = map[Direction]Direction{
	Left:  Right,
	Right: Left,
	Up:    Down,
	Down:  Up,
}

// Delta returns the unit vector for the direction, or the zero Cell for None.
func (d Direction) Delta() Cell {
	return deltas[d]
}

// Opposite returns the direction rotated by 180 degrees. None maps to None.
func (d Direction) Opposite() Direction {
	return opposites[d]
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	_, ok := deltas[d]
	return ok
}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// ParseDirection parses the lowercase names produced by String.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return None, fmt.Errorf("boa: unknown direction %q", s)
}
