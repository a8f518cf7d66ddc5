package boa

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/boa/internal/core"
)

// ErrInvalidSettings is wrapped by every Settings validation failure.
var ErrInvalidSettings = errors.New("boa: invalid settings")

// Settings are fixed for the lifetime of a session.
type Settings struct {
	Grid          Grid
	Interval      time.Duration // time between simulation steps
	QueueCapacity int           // 0 = unbounded
	Start         []Cell        // initial body, tail first
	StartDir      Direction
	Seed          int64
}

// DefaultSettings returns the classic 10x10 board.
func DefaultSettings() Settings {
	return Settings{
		Grid:     NewGrid(10, 10),
		Interval: 150 * time.Millisecond,
		Start:    []Cell{{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}},
		StartDir: Left,
	}
}

// Validate checks that a session can be built from s.
func (s Settings) Validate() error {
	if s.Grid.W <= 0 || s.Grid.H <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidSettings, s.Grid.W, s.Grid.H)
	}
	if s.Interval <= 0 {
		return fmt.Errorf("%w: step interval %s", ErrInvalidSettings, s.Interval)
	}
	if s.QueueCapacity < 0 {
		return fmt.Errorf("%w: queue capacity %d", ErrInvalidSettings, s.QueueCapacity)
	}
	if len(s.Start) > s.Grid.Area() {
		return fmt.Errorf("%w: start body of %d cells does not fit the grid", ErrInvalidSettings, len(s.Start))
	}
	if !s.Grid.ValidBody(s.Start) {
		return fmt.Errorf("%w: start body is not a chain of neighbouring cells", ErrInvalidSettings)
	}
	if !s.StartDir.Valid() {
		return fmt.Errorf("%w: start direction %s", ErrInvalidSettings, s.StartDir)
	}
	if n := len(s.Start); n > 1 {
		head := s.Start[n-1]
		if s.Grid.Step(head, s.StartDir.Delta()) == s.Start[n-2] {
			return fmt.Errorf("%w: start direction %s points into the body", ErrInvalidSettings, s.StartDir)
		}
	}
	return nil
}

// Session is the top-level game state: the board plus score, timer, input
// buffer and pause/terminal flags. It is not safe for concurrent use; the
// host drives it from a single loop.
type Session struct {
	settings Settings
	rng      *rand.Rand
	board    *Board
	queue    *Queue
	state    State
	timer    time.Duration // counts down to the next step
	score    int
	steps    uint64
}

// NewSession validates settings and starts a fresh game.
func NewSession(settings Settings) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	settings.Start = append([]Cell(nil), settings.Start...)

	s := &Session{
		settings: settings,
		rng:      rand.New(rand.NewSource(settings.Seed)),
		queue:    NewQueue(settings.QueueCapacity),
	}
	s.Reset()
	return s, nil
}

// Reset reinitializes every field to its starting value. The random stream
// continues, so only the target differs between two consecutive resets.
func (s *Session) Reset() {
	body := NewBody(s.settings.Start...)
	s.board = NewBoard(s.settings.Grid, body, s.settings.StartDir, NewPlacer(s.settings.Grid, s.rng))
	s.queue.Clear()
	s.state = Running
	s.timer = s.settings.Interval
	s.score = 0
	s.steps = 0

	if _, ok := s.board.Target(); !ok {
		s.state = Cleared
	}
}

// Tick advances the clock by dt and runs at most one step when the
// countdown expires. Nothing happens unless the session is running.
func (s *Session) Tick(dt time.Duration) []core.Event {
	if s.state != Running {
		return nil
	}
	if dt > 0 {
		s.timer -= dt
	}
	if s.timer > 0 {
		return nil
	}
	s.timer = s.settings.Interval
	return s.step()
}

func (s *Session) step() []core.Event {
	s.steps++

	switch s.board.Step(s.queue) {
	case Ate:
		s.score++
		events := []core.Event{core.EventStep, core.EventAte}
		if _, ok := s.board.Target(); !ok {
			s.state = Cleared
			events = append(events, core.EventGridFull)
		}
		return events
	case Collided:
		s.state = GameOver
		return []core.Event{core.EventStep, core.EventCollision}
	default:
		return []core.Event{core.EventStep}
	}
}

// SubmitDirection buffers a direction intent. Intents are accepted while
// paused and dropped once the game has ended.
func (s *Session) SubmitDirection(d Direction) {
	if s.state.Terminal() || !d.Valid() {
		return
	}
	s.queue.Enqueue(d)
}

// TogglePause switches between running and paused. It has no effect on a
// finished game.
func (s *Session) TogglePause() {
	switch s.state {
	case Running:
		s.state = Paused
	case Paused:
		s.state = Running
	}
}

// State returns the engine phase.
func (s *Session) State() State {
	return s.state
}

// Body returns the creature cells, tail first.
func (s *Session) Body() []Cell {
	return s.board.Body().Cells()
}

// Head returns the creature's head cell.
func (s *Session) Head() Cell {
	return s.board.Body().Head()
}

// Length returns the number of creature segments.
func (s *Session) Length() int {
	return s.board.Body().Len()
}

// Target returns the target cell and whether one is present.
func (s *Session) Target() (Cell, bool) {
	return s.board.Target()
}

// Direction returns the current heading.
func (s *Session) Direction() Direction {
	return s.board.Direction()
}

// Next returns the cell the head moves to on the next step if no intent
// changes the heading.
func (s *Session) Next() Cell {
	return s.board.Next()
}

// Score returns the number of targets eaten.
func (s *Session) Score() int {
	return s.score
}

// Steps returns how many simulation steps ran since the last reset.
func (s *Session) Steps() uint64 {
	return s.steps
}

// GameOver reports whether the creature ran into itself.
func (s *Session) GameOver() bool {
	return s.state == GameOver
}

// Cleared reports whether the board filled up.
func (s *Session) Cleared() bool {
	return s.state == Cleared
}

// Paused reports whether the simulation is suspended.
func (s *Session) Paused() bool {
	return s.state == Paused
}

// Progress returns the fraction of the current step interval that has
// elapsed, in [0, 1). Renderers use it to interpolate movement.
func (s *Session) Progress() float64 {
	interval := s.settings.Interval
	elapsed := float64(interval-s.timer) / float64(interval)
	return core.ClampF(elapsed, 0, 1-1e-9)
}

// Pending returns the buffered direction intents, oldest first.
func (s *Session) Pending() []Direction {
	return s.queue.Pending()
}

// Grid returns the board dimensions.
func (s *Session) Grid() Grid {
	return s.settings.Grid
}

// Interval returns the time between steps.
func (s *Session) Interval() time.Duration {
	return s.settings.Interval
}

// Settings returns a copy of the settings the session was built with.
func (s *Session) Settings() Settings {
	out := s.settings
	out.Start = append([]Cell(nil), s.settings.Start...)
	return out
}
