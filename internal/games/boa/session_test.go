package boa

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/boa/internal/core"
)

func newTestSession(t *testing.T, s Settings) *Session {
	t.Helper()
	session, err := NewSession(s)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return session
}

// setTarget moves the target to c, bypassing the random placement.
func setTarget(s *Session, c Cell) {
	s.board.target, s.board.hasTarget = c, true
}

func lineSettings() Settings {
	return Settings{
		Grid:     NewGrid(10, 10),
		Interval: 100 * time.Millisecond,
		Start:    []Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		StartDir: Right,
		Seed:     42,
	}
}

func TestGrowthOnTarget(t *testing.T) {
	s := newTestSession(t, lineSettings())
	setTarget(s, Cell{X: 3, Y: 0})

	events := s.Tick(s.Interval())

	want := []Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	if got := s.Body(); !slices.Equal(got, want) {
		t.Errorf("Body() = %v, expected %v", got, want)
	}
	if s.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", s.Score())
	}
	if !slices.Contains(events, core.EventAte) {
		t.Errorf("events %v lack ate", events)
	}

	target, ok := s.Target()
	if !ok {
		t.Fatal("expected a new target")
	}
	if slices.Contains(want, target) {
		t.Errorf("new target %v lies on the body", target)
	}
}

func TestTranslationWithoutGrowth(t *testing.T) {
	s := newTestSession(t, lineSettings())
	setTarget(s, Cell{X: 7, Y: 7})

	events := s.Tick(s.Interval())

	want := []Cell{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	if got := s.Body(); !slices.Equal(got, want) {
		t.Errorf("Body() = %v, expected %v", got, want)
	}
	if s.Length() != 3 || s.Score() != 0 {
		t.Errorf("length %d score %d, expected 3 and 0", s.Length(), s.Score())
	}
	if !slices.Equal(events, []core.Event{core.EventStep}) {
		t.Errorf("events = %v, expected [step]", events)
	}
}

func TestSelfCollision(t *testing.T) {
	start := []Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}}
	s := newTestSession(t, Settings{
		Grid:     NewGrid(10, 10),
		Interval: 100 * time.Millisecond,
		Start:    start,
		StartDir: Up, // head (1,1) moves into (1,0)
	})

	events := s.Tick(s.Interval())

	if !s.GameOver() || s.State() != GameOver {
		t.Fatalf("expected game over, state %s", s.State())
	}
	if !slices.Contains(events, core.EventCollision) {
		t.Errorf("events %v lack collision", events)
	}
	if got := s.Body(); !slices.Equal(got, start) {
		t.Errorf("body changed on collision: %v, expected %v", got, start)
	}

	if ev := s.Tick(time.Hour); ev != nil {
		t.Errorf("finished game should not step, got %v", ev)
	}
	s.SubmitDirection(Left)
	if len(s.Pending()) != 0 {
		t.Error("intents should be ignored after game over")
	}
	s.TogglePause()
	if s.Paused() {
		t.Error("pause should not apply to a finished game")
	}
}

func TestGridFullAtStart(t *testing.T) {
	s := newTestSession(t, Settings{
		Grid:     NewGrid(2, 2),
		Interval: time.Second,
		Start:    []Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		StartDir: Down,
	})

	if _, ok := s.Target(); ok {
		t.Error("full board should have no target")
	}
	if !s.Cleared() {
		t.Errorf("state = %s, expected cleared", s.State())
	}
	if ev := s.Tick(10 * time.Second); ev != nil {
		t.Errorf("cleared board should not step, got %v", ev)
	}
}

func TestGridFullByEating(t *testing.T) {
	s := newTestSession(t, Settings{
		Grid:     NewGrid(3, 1),
		Interval: time.Second,
		Start:    []Cell{{X: 0, Y: 0}, {X: 1, Y: 0}},
		StartDir: Right,
	})

	if target, ok := s.Target(); !ok || target != (Cell{X: 2, Y: 0}) {
		t.Fatalf("Target() = %v %v, expected (2, 0)", target, ok)
	}

	events := s.Tick(time.Second)

	want := []core.Event{core.EventStep, core.EventAte, core.EventGridFull}
	if !slices.Equal(events, want) {
		t.Errorf("events = %v, expected %v", events, want)
	}
	if !s.Cleared() || s.Length() != 3 || s.Score() != 1 {
		t.Errorf("state %s length %d score %d", s.State(), s.Length(), s.Score())
	}
}

func TestBoardStepWithoutTarget(t *testing.T) {
	g := NewGrid(2, 1)
	body := NewBody(Cell{X: 0, Y: 0}, Cell{X: 1, Y: 0})
	b := NewBoard(g, body, Right, NewPlacer(g, rand.New(rand.NewSource(1))))

	if _, ok := b.Target(); ok {
		t.Fatal("full board should have no target")
	}

	before := b.Body().Cells()
	if got := b.Step(NewQueue(0)); got != Collided {
		t.Errorf("Step() = %s, expected collided", got)
	}
	if !slices.Equal(b.Body().Cells(), before) {
		t.Error("collision must leave the body untouched")
	}
}

func TestResetIdempotent(t *testing.T) {
	settings := DefaultSettings()
	settings.Seed = 7
	s := newTestSession(t, settings)

	s.SubmitDirection(Up)
	s.Tick(s.Interval())
	s.TogglePause()
	s.SubmitDirection(Right)

	for i := range 2 {
		s.Reset()
		if got := s.Body(); !slices.Equal(got, settings.Start) {
			t.Errorf("reset %d: Body() = %v, expected %v", i, got, settings.Start)
		}
		if s.Score() != 0 || s.Steps() != 0 {
			t.Errorf("reset %d: score %d steps %d", i, s.Score(), s.Steps())
		}
		if s.Paused() || s.GameOver() || s.State() != Running {
			t.Errorf("reset %d: state %s", i, s.State())
		}
		if s.Direction() != settings.StartDir {
			t.Errorf("reset %d: direction %s", i, s.Direction())
		}
		if len(s.Pending()) != 0 {
			t.Errorf("reset %d: pending %v", i, s.Pending())
		}
		if p := s.Progress(); p != 0 {
			t.Errorf("reset %d: progress %f", i, p)
		}
		if target, ok := s.Target(); !ok || slices.Contains(settings.Start, target) {
			t.Errorf("reset %d: target %v %v", i, target, ok)
		}
	}
}

func TestNoReversal(t *testing.T) {
	s := newTestSession(t, lineSettings())
	setTarget(s, Cell{X: 7, Y: 7})

	s.SubmitDirection(Left)
	s.Tick(s.Interval())

	if s.Direction() != Right {
		t.Errorf("Direction() = %s, expected right", s.Direction())
	}
	if s.Head() != (Cell{X: 3, Y: 0}) {
		t.Errorf("Head() = %v, expected (3, 0)", s.Head())
	}
	if len(s.Pending()) != 0 {
		t.Error("the reversal should have been consumed")
	}
}

func TestQueueOneIntentPerStep(t *testing.T) {
	s := newTestSession(t, lineSettings())
	setTarget(s, Cell{X: 7, Y: 7})

	s.SubmitDirection(Down)
	s.SubmitDirection(Up) // opposite of Down once Down is applied
	s.SubmitDirection(Left)

	steps := []struct {
		dir  Direction
		head Cell
	}{
		{Down, Cell{X: 2, Y: 1}},
		{Down, Cell{X: 2, Y: 2}},
		{Left, Cell{X: 1, Y: 2}},
		{Left, Cell{X: 0, Y: 2}},
	}

	for i, want := range steps {
		s.Tick(s.Interval())
		if s.Direction() != want.dir || s.Head() != want.head {
			t.Errorf("step %d: %s at %v, expected %s at %v", i+1, s.Direction(), s.Head(), want.dir, want.head)
		}
	}
}

func TestTurnAndWrap(t *testing.T) {
	settings := DefaultSettings()
	s := newTestSession(t, settings)
	setTarget(s, Cell{X: 8, Y: 8})

	// Heading left from (1,1): (0,1), then wraps to (9,1).
	s.Tick(s.Interval())
	s.Tick(s.Interval())
	if s.Head() != (Cell{X: 9, Y: 1}) {
		t.Fatalf("Head() = %v, expected (9, 1)", s.Head())
	}

	s.SubmitDirection(Up)
	s.Tick(s.Interval())
	s.Tick(s.Interval())
	if s.Head() != (Cell{X: 9, Y: 9}) {
		t.Errorf("Head() = %v, expected (9, 9)", s.Head())
	}
}

func TestTimerAtMostOneStep(t *testing.T) {
	s := newTestSession(t, lineSettings())
	setTarget(s, Cell{X: 7, Y: 7})
	interval := s.Interval()

	if ev := s.Tick(interval - time.Millisecond); ev != nil {
		t.Fatalf("stepped early: %v", ev)
	}
	if p := s.Progress(); p <= 0.9 || p >= 1 {
		t.Errorf("Progress() = %f, expected just under 1", p)
	}
	if ev := s.Tick(time.Millisecond); len(ev) == 0 {
		t.Fatal("expected a step once the interval elapsed")
	}
	if s.Progress() != 0 {
		t.Errorf("Progress() after a step = %f, expected 0", s.Progress())
	}

	s.Tick(10 * interval)
	if s.Steps() != 2 {
		t.Errorf("Steps() = %d, a long frame should run exactly one step", s.Steps())
	}

	s.Tick(-time.Second)
	if s.Steps() != 2 {
		t.Error("a negative frame time should not advance the clock")
	}
}

func TestZeroFrameTime(t *testing.T) {
	s := newTestSession(t, lineSettings())
	for range 100 {
		s.Tick(0)
	}
	if s.Steps() != 0 {
		t.Errorf("Steps() = %d after zero-length frames", s.Steps())
	}
}

func TestPause(t *testing.T) {
	s := newTestSession(t, lineSettings())
	s.Tick(50 * time.Millisecond)
	progress := s.Progress()

	s.TogglePause()
	if !s.Paused() {
		t.Fatal("expected paused")
	}
	if ev := s.Tick(time.Hour); ev != nil {
		t.Errorf("paused session stepped: %v", ev)
	}
	if s.Progress() != progress {
		t.Error("the timer should not move while paused")
	}

	s.SubmitDirection(Down)
	if got := s.Pending(); !slices.Equal(got, []Direction{Down}) {
		t.Errorf("Pending() = %v, intents should be buffered while paused", got)
	}

	s.TogglePause()
	if s.State() != Running {
		t.Errorf("state = %s, expected running", s.State())
	}
}

func TestDeterminism(t *testing.T) {
	settings := DefaultSettings()
	settings.Seed = 12345

	a := newTestSession(t, settings)
	b := newTestSession(t, settings)

	rng := rand.New(rand.NewSource(99))
	for i := range 400 {
		if i%3 == 0 {
			d := Directions[rng.Intn(len(Directions))]
			a.SubmitDirection(d)
			b.SubmitDirection(d)
		}
		dt := time.Duration(rng.Intn(40)) * time.Millisecond
		a.Tick(dt)
		b.Tick(dt)

		if !a.Snapshot().Equal(b.Snapshot()) {
			t.Fatalf("frame %d: sessions diverged\n%+v\n%+v", i, a.Snapshot(), b.Snapshot())
		}
		if a.State().Terminal() {
			a.Reset()
			b.Reset()
		}
	}
}

func TestInvalidDirectionIgnored(t *testing.T) {
	s := newTestSession(t, lineSettings())
	s.SubmitDirection(None)
	s.SubmitDirection(Direction(42))
	if len(s.Pending()) != 0 {
		t.Errorf("Pending() = %v, expected nothing", s.Pending())
	}
}

func TestBoundedQueueSession(t *testing.T) {
	settings := lineSettings()
	settings.QueueCapacity = 1
	s := newTestSession(t, settings)

	s.SubmitDirection(Down)
	s.SubmitDirection(Left)
	if got := s.Pending(); !slices.Equal(got, []Direction{Down}) {
		t.Errorf("Pending() = %v, expected [down]", got)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
	}{
		{"empty grid", func(s *Settings) { s.Grid = NewGrid(0, 5) }},
		{"zero interval", func(s *Settings) { s.Interval = 0 }},
		{"negative queue", func(s *Settings) { s.QueueCapacity = -1 }},
		{"no body", func(s *Settings) { s.Start = nil }},
		{"broken chain", func(s *Settings) { s.Start = []Cell{{X: 0, Y: 0}, {X: 2, Y: 0}} }},
		{"off board", func(s *Settings) { s.Start = []Cell{{X: 10, Y: 0}} }},
		{"no heading", func(s *Settings) { s.StartDir = None }},
		{"heading into neck", func(s *Settings) { s.StartDir = Left }},
		{"too long", func(s *Settings) { s.Grid = NewGrid(2, 1) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := lineSettings()
			tc.mutate(&s)
			err := s.Validate()
			if !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Validate() = %v, expected ErrInvalidSettings", err)
			}
			if _, err := NewSession(s); err == nil {
				t.Error("NewSession should reject invalid settings")
			}
		})
	}

	if err := lineSettings().Validate(); err != nil {
		t.Errorf("valid settings rejected: %v", err)
	}
}

func TestSettingsCopied(t *testing.T) {
	settings := lineSettings()
	s := newTestSession(t, settings)
	settings.Start[0] = Cell{X: 9, Y: 9}

	s.Reset()
	if s.Body()[0] != (Cell{X: 0, Y: 0}) {
		t.Error("session should keep its own copy of the start body")
	}
}
