package boa

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/boa/internal/config"
	"github.com/vovakirdan/boa/internal/core"
	"github.com/vovakirdan/boa/internal/registry"
)

func newTestGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: seed})
	if err := g.Err(); err != nil {
		t.Fatalf("Reset() reported: %v", err)
	}
	return g
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDClassic, IDDense} {
		if !registry.Exists(id) {
			t.Errorf("game %q is not registered", id)
		}
	}

	g, err := registry.Create(IDDense)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Boa (Dense)" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestVariantSettings(t *testing.T) {
	tests := []struct {
		game     *Game
		w, h     int
		interval time.Duration
	}{
		{New(), 10, 10, 150 * time.Millisecond},
		{NewDense(), 15, 10, 125 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.game.ID(), func(t *testing.T) {
			g := newTestGame(t, tc.game, 1)
			s := g.Settings()
			if s.Grid.W != tc.w || s.Grid.H != tc.h || s.Interval != tc.interval {
				t.Errorf("settings = %dx%d @ %s", s.Grid.W, s.Grid.H, s.Interval)
			}
			if s.Seed != 1 {
				t.Errorf("seed = %d, expected 1", s.Seed)
			}
		})
	}
}

func TestCustomConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boa.yaml")
	data := "variants:\n  classic:\n    width: 12\n    step_interval: 90ms\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	defer SetConfigPath("")

	g := newTestGame(t, New(), 1)
	if s := g.Settings(); s.Grid.W != 12 || s.Interval != 90*time.Millisecond {
		t.Errorf("settings = %dx%d @ %s", s.Grid.W, s.Grid.H, s.Interval)
	}
}

func TestBrokenConfigFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boa.yaml")
	data := "variants:\n  classic:\n    start_body: [{x: 0, y: 0}, {x: 5, y: 5}]\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	defer SetConfigPath("")

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	if g.Err() == nil {
		t.Error("expected Err() to report the broken start body")
	}
	if g.Settings().Grid.W != 10 {
		t.Error("game should fall back to the default board")
	}
}

func TestSettingsFromVariant(t *testing.T) {
	v := config.DefaultBoaConfig().Variants[config.VariantClassic]
	s, err := SettingsFromVariant(v, 5)
	if err != nil {
		t.Fatal(err)
	}
	if s.StartDir != Left || len(s.Start) != 3 || s.Start[2] != (Cell{X: 1, Y: 1}) {
		t.Errorf("settings = %+v", s)
	}

	v.StartDirection = "sideways"
	if _, err := SettingsFromVariant(v, 5); err == nil {
		t.Error("expected an error for an unknown direction")
	}
}

func TestUpdateMapsActions(t *testing.T) {
	g := newTestGame(t, New(), 3)

	g.Update(0, core.NewInputFrame(core.ActionUp, core.ActionRight))
	if got := g.Session().Pending(); len(got) != 2 || got[0] != Up || got[1] != Right {
		t.Errorf("Pending() = %v, expected [up right]", got)
	}

	res := g.Update(0, core.NewInputFrame(core.ActionPause))
	if !res.State.Paused {
		t.Error("pause action should pause the game")
	}

	res = g.Update(0, core.NewInputFrame(core.ActionRestart))
	if !res.Has(core.EventRestart) {
		t.Error("restart should report EventRestart")
	}
	if res.State.Paused || len(g.Session().Pending()) != 0 {
		t.Error("restart should return to a fresh running session")
	}
}

func TestUpdateStepsOnInterval(t *testing.T) {
	g := newTestGame(t, New(), 3)
	frame := 16 * time.Millisecond

	steps := 0
	for range 60 {
		res := g.Update(frame, core.InputFrame{})
		if res.Has(core.EventStep) {
			steps++
		}
		if res.State.Finished() {
			t.Fatal("the default board should not end within a second of straight movement")
		}
	}

	// 60 frames of 16ms = 960ms, one step every 150ms.
	if steps != 6 {
		t.Errorf("steps = %d, expected 6", steps)
	}
}

func TestGameDeterminism(t *testing.T) {
	settings := DefaultSettings()
	a := NewFromSettings(IDClassic, settings)
	b := NewFromSettings(IDClassic, settings)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 777}
	a.Reset(cfg)
	b.Reset(cfg)

	script := map[int]core.Action{10: core.ActionDown, 25: core.ActionRight, 40: core.ActionUp, 70: core.ActionLeft}
	for i := range 200 {
		in := core.NewInputFrame()
		if act, ok := script[i]; ok {
			in.Push(act)
		}
		a.Update(20*time.Millisecond, in)
		b.Update(20*time.Millisecond, in)
	}

	if !a.Snapshot().Equal(b.Snapshot()) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a.Snapshot(), b.Snapshot())
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, New(), 3)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing score: %q", screen.Row(0))
	}
	if !strings.Contains(out, "◆") {
		t.Error("head not drawn")
	}
	if !strings.Contains(out, "●") {
		t.Error("target not drawn")
	}
	if !strings.Contains(out, "┌") {
		t.Error("border not drawn")
	}

	g.Update(0, core.NewInputFrame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("pause overlay not drawn")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, NewDense(), 3)
	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("expected the window-too-small overlay")
	}
}

func TestCrashSpawnsBurst(t *testing.T) {
	settings := Settings{
		Grid:     NewGrid(10, 10),
		Interval: 100 * time.Millisecond,
		Start:    []Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}},
		StartDir: Up,
	}
	g := NewFromSettings(IDClassic, settings)
	g.Reset(core.RuntimeConfig{Seed: 1})

	res := g.Update(100*time.Millisecond, core.InputFrame{})
	if !res.Has(core.EventCollision) || !res.State.GameOver {
		t.Fatalf("expected a collision, got %v", res.Events)
	}
	if !g.burst.Active() {
		t.Error("a crash should spawn particles")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("game over overlay not drawn")
	}
}

func TestDebugState(t *testing.T) {
	g := newTestGame(t, New(), 3)
	out := g.DebugState()
	for _, want := range []string{"Score: 0", "Direction: left", "State: running"} {
		if !strings.Contains(out, want) {
			t.Errorf("DebugState() lacks %q:\n%s", want, out)
		}
	}
}
