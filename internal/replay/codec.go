package replay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/boa/internal/core"
	"github.com/vovakirdan/boa/internal/games/boa"
	"github.com/vovakirdan/boa/internal/storage"
)

// ToRecords converts a replay into its storage form.
func ToRecords(r Replay) (storage.ReplayRecord, []storage.FrameRecord) {
	s := r.Settings
	rec := storage.ReplayRecord{
		ID:            r.ID,
		GameID:        r.GameID,
		Seed:          s.Seed,
		GridW:         s.Grid.W,
		GridH:         s.Grid.H,
		Interval:      s.Interval,
		QueueCapacity: s.QueueCapacity,
		StartBody:     FormatCells(s.Start),
		StartDir:      s.StartDir.String(),
		FinalState:    r.FinalState,
		Steps:         r.Steps,
		FrameCount:    len(r.Frames),
		CreatedAt:     r.CreatedAt,
	}

	frames := make([]storage.FrameRecord, len(r.Frames))
	for i, f := range r.Frames {
		names := make([]string, len(f.Actions))
		for j, a := range f.Actions {
			names[j] = a.String()
		}
		frames[i] = storage.FrameRecord{Seq: i, DT: f.DT, Actions: names}
	}
	return rec, frames
}

// FromRecords rebuilds a replay from storage.
func FromRecords(rec storage.ReplayRecord, frames []storage.FrameRecord) (Replay, error) {
	start, err := ParseCells(rec.StartBody)
	if err != nil {
		return Replay{}, fmt.Errorf("replay %s: %w", rec.ID, err)
	}
	dir, err := boa.ParseDirection(rec.StartDir)
	if err != nil {
		return Replay{}, fmt.Errorf("replay %s: %w", rec.ID, err)
	}

	r := Replay{
		ID:     rec.ID,
		GameID: rec.GameID,
		Settings: boa.Settings{
			Grid:          boa.NewGrid(rec.GridW, rec.GridH),
			Interval:      rec.Interval,
			QueueCapacity: rec.QueueCapacity,
			Start:         start,
			StartDir:      dir,
			Seed:          rec.Seed,
		},
		Frames:     make([]Frame, len(frames)),
		FinalState: rec.FinalState,
		Steps:      rec.Steps,
		CreatedAt:  rec.CreatedAt,
	}
	if err := r.Settings.Validate(); err != nil {
		return Replay{}, fmt.Errorf("replay %s: %w", rec.ID, err)
	}

	for i, f := range frames {
		actions := make([]core.Action, 0, len(f.Actions))
		for _, name := range f.Actions {
			a, ok := core.ParseAction(name)
			if !ok {
				return Replay{}, fmt.Errorf("replay %s: frame %d: unknown action %q", rec.ID, f.Seq, name)
			}
			actions = append(actions, a)
		}
		r.Frames[i] = Frame{DT: f.DT, Actions: actions}
	}
	return r, nil
}

// FormatCells writes cells as space separated "x,y" pairs.
func FormatCells(cells []boa.Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
	}
	return strings.Join(parts, " ")
}

// ParseCells is the inverse of FormatCells.
func ParseCells(s string) ([]boa.Cell, error) {
	fields := strings.Fields(s)
	cells := make([]boa.Cell, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("bad cell %q", f)
		}
		x, err := strconv.Atoi(xs)
		if err != nil {
			return nil, fmt.Errorf("bad cell %q: %w", f, err)
		}
		y, err := strconv.Atoi(ys)
		if err != nil {
			return nil, fmt.Errorf("bad cell %q: %w", f, err)
		}
		cells = append(cells, boa.Cell{X: x, Y: y})
	}
	return cells, nil
}
