// Package replay records the frames a player fed into a game and plays
// them back headless. A session is deterministic given its settings, seed
// and the ordered (frame time, actions) stream, so that is all a replay
// stores.
package replay

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/boa/internal/core"
	"github.com/vovakirdan/boa/internal/games/boa"
)

// Frame is one host frame: the time it covered and the actions pressed.
type Frame struct {
	DT      time.Duration
	Actions []core.Action
}

// Replay is a complete recording.
type Replay struct {
	ID         string
	GameID     string
	Settings   boa.Settings // Settings.Seed is the session seed
	Frames     []Frame
	FinalState string
	Steps      uint64
	CreatedAt  time.Time
}

// Recorder accumulates frames while a game is played.
type Recorder struct {
	replay Replay
}

// NewRecorder starts a recording for a game built from settings.
func NewRecorder(gameID string, settings boa.Settings) *Recorder {
	settings.Start = append([]boa.Cell(nil), settings.Start...)
	return &Recorder{
		replay: Replay{
			ID:        uuid.NewString(),
			GameID:    gameID,
			Settings:  settings,
			CreatedAt: time.Now(),
		},
	}
}

// Record appends a frame. Quit never reaches the game, so it is not kept.
func (r *Recorder) Record(dt time.Duration, in core.InputFrame) {
	var actions []core.Action
	for _, a := range in.Actions() {
		if a != core.ActionQuit {
			actions = append(actions, a)
		}
	}
	r.replay.Frames = append(r.replay.Frames, Frame{DT: dt, Actions: actions})
}

// Finish stores how the recorded session ended.
func (r *Recorder) Finish(s boa.Snapshot) {
	r.replay.FinalState = s.State.String()
	r.replay.Steps = s.Steps
}

// ID returns the replay ID.
func (r *Recorder) ID() string {
	return r.replay.ID
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.replay.Frames)
}

// Replay returns the recording so far.
func (r *Recorder) Replay() Replay {
	return r.replay
}
