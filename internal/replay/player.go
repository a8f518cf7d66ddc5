package replay

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/boa/internal/core"
	"github.com/vovakirdan/boa/internal/games/boa"
)

// ErrDiverged is returned by Verify when playback does not end where the
// recording did.
var ErrDiverged = errors.New("replay: playback diverged from recording")

// Result is the outcome of a headless playback.
type Result struct {
	Final boa.Snapshot
	Trace []TraceRow
}

// Play re-simulates a replay frame by frame. A trace row is kept for every
// frame that had input or produced events.
func Play(r Replay) (Result, error) {
	g := boa.NewFromSettings(r.GameID, r.Settings)
	g.Reset(core.RuntimeConfig{Seed: r.Settings.Seed})
	if err := g.Err(); err != nil {
		return Result{}, fmt.Errorf("replay %s: %w", r.ID, err)
	}

	var (
		trace   []TraceRow
		elapsed time.Duration
	)
	for i, f := range r.Frames {
		elapsed += f.DT
		res := g.Update(f.DT, core.NewInputFrame(f.Actions...))
		if len(f.Actions) == 0 && len(res.Events) == 0 {
			continue
		}
		trace = append(trace, newTraceRow(i, elapsed, f.Actions, res.Events, g.Snapshot()))
	}

	return Result{Final: g.Snapshot(), Trace: trace}, nil
}

// Verify plays r and checks that it ends in the recorded state.
func Verify(r Replay) (Result, error) {
	res, err := Play(r)
	if err != nil {
		return res, err
	}
	if r.FinalState == "" {
		return res, nil
	}
	if res.Final.State.String() != r.FinalState || res.Final.Steps != r.Steps {
		return res, fmt.Errorf("%w: got %s after %d steps, recorded %s after %d",
			ErrDiverged, res.Final.State, res.Final.Steps, r.FinalState, r.Steps)
	}
	return res, nil
}

func newTraceRow(frame int, elapsed time.Duration, actions []core.Action, events []core.Event, s boa.Snapshot) TraceRow {
	row := TraceRow{
		Frame:     frame,
		ElapsedMS: elapsed.Milliseconds(),
		Actions:   joinNames(actions),
		Events:    joinNames(events),
		Step:      s.Steps,
		State:     s.State.String(),
		Score:     s.Score,
		Length:    s.Length,
		HeadX:     s.Head.X,
		HeadY:     s.Head.Y,
		Direction: s.Dir.String(),
		TargetX:   -1,
		TargetY:   -1,
	}
	if s.HasTarget {
		row.TargetX, row.TargetY = s.Target.X, s.Target.Y
	}
	return row
}

func joinNames[T fmt.Stringer](items []T) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.String()
	}
	return strings.Join(names, " ")
}
