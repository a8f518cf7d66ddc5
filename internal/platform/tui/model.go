package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boa/internal/core"
	"github.com/vovakirdan/boa/internal/games/boa"
	"github.com/vovakirdan/boa/internal/registry"
	"github.com/vovakirdan/boa/internal/replay"
	"github.com/vovakirdan/boa/internal/storage"
)

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// Recordable is implemented by games whose sessions can be captured as
// replays.
type Recordable interface {
	registry.Game
	Settings() boa.Settings
	Snapshot() boa.Snapshot
}

// Options configure a run.
type Options struct {
	Logger        *log.Logger
	Store         *storage.Store // replays are saved here when Record is set
	Record        bool
	Playback      *replay.Replay // feed recorded frames instead of the keyboard
	ScreenshotDir string         // default ~/.boa/screenshots
}

// Result summarizes a finished run.
type Result struct {
	State    core.GameState
	ReplayID string // empty unless a replay was saved
	Frames   int
}

// Model is the Bubble Tea model that hosts a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *Renderer
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	inputFrame *core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	quitting   bool
	status     string

	recorder      *replay.Recorder
	playback      *replay.Replay
	playbackIndex *int
	playbackHeld  bool
	screenshotDir string
}

// NewModel creates a Bubble Tea model for the given game and starts a new
// session.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Playback != nil {
		cfg.Seed = opts.Playback.Settings.Seed
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	dir := opts.ScreenshotDir
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".boa", "screenshots")
		}
	}

	game.Reset(cfg)

	m := Model{
		game:          game,
		screen:        core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		renderer:      NewRenderer(),
		config:        cfg,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		logger:        logger,
		inputFrame:    &core.InputFrame{},
		gameState:     game.State(),
		lastTick:      time.Now(),
		playback:      opts.Playback,
		playbackIndex: new(int),
		screenshotDir: dir,
	}

	if rec, ok := game.(Recordable); ok && opts.Record && opts.Playback == nil {
		m.recorder = replay.NewRecorder(game.ID(), rec.Settings())
	}

	if err := gameErr(game); err != nil {
		logger.Warn("using default board", "game", game.ID(), "error", err)
	}
	logger.Debug("session started", "game", game.ID(), "seed", cfg.Seed, "record", m.recorder != nil)

	return m
}

// gameErr reports a settings problem found by the game during Reset.
func gameErr(g registry.Game) error {
	if e, ok := g.(interface{ Err() error }); ok {
		return e.Err()
	}
	return nil
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.status = m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.playback != nil {
		// Recorded input drives the game; space holds playback.
		if key.Matches(msg, m.keys.Pause) {
			m.playbackHeld = !m.playbackHeld
		}
		return m, nil
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		m.inputFrame.Push(action)
	}
	return m, nil
}

// handleResize processes window resize events. The board is redrawn
// centered; the session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the game by the wall time since the previous frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := now.Sub(m.lastTick)
	m.lastTick = now

	if m.playback != nil {
		m.stepPlayback()
		return m, tickCmd(m.config.TickRate)
	}

	in := *m.inputFrame
	result := m.game.Update(dt, in)
	if m.recorder != nil {
		m.recorder.Record(dt, in)
	}
	m.logEvents(result)
	m.gameState = result.State

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// stepPlayback feeds the next recorded frame, using its recorded frame time
// so playback runs at the recorded pace regardless of the tick rate.
func (m *Model) stepPlayback() {
	if m.playbackHeld || *m.playbackIndex >= len(m.playback.Frames) {
		return
	}
	f := m.playback.Frames[*m.playbackIndex]
	*m.playbackIndex++

	result := m.game.Update(f.DT, core.NewInputFrame(f.Actions...))
	m.gameState = result.State
	if *m.playbackIndex == len(m.playback.Frames) {
		m.status = "replay finished"
	}
}

func (m Model) logEvents(result core.StepResult) {
	for _, e := range result.Events {
		switch e {
		case core.EventCollision:
			m.logger.Info("game over", "game", m.game.ID(), "score", result.State.Score)
		case core.EventGridFull:
			m.logger.Info("board cleared", "game", m.game.ID(), "score", result.State.Score)
		case core.EventRestart:
			m.logger.Debug("restart", "game", m.game.ID())
		}
	}
}

// saveScreenshot writes the current screen as plain text and returns a
// status line.
func (m Model) saveScreenshot() string {
	m.game.Render(m.screen)

	if m.screenshotDir == "" {
		return "screenshot failed: no home directory"
	}
	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Error("cannot create screenshot directory", "dir", m.screenshotDir, "error", err)
		return "screenshot failed"
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(m.screenshotDir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("cannot save screenshot", "path", path, "error", err)
		return "screenshot failed"
	}
	m.logger.Debug("screenshot saved", "path", path)
	return "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = statusStyle.Render(m.status)
	}
	if m.playback != nil && m.status == "" {
		footer = statusStyle.Render(fmt.Sprintf("replay %d/%d  space: hold  q: quit",
			*m.playbackIndex, len(m.playback.Frames)))
	}

	return m.renderer.Render(m.screen) + "\n" + footer
}

// finish records how the session ended and saves the replay.
func (m Model) finish(store *storage.Store) Result {
	res := Result{State: m.game.State()}
	if m.recorder == nil {
		return res
	}
	res.Frames = m.recorder.Len()

	if rec, ok := m.game.(Recordable); ok {
		m.recorder.Finish(rec.Snapshot())
	}
	if store == nil {
		m.logger.Warn("replay not saved, no database")
		return res
	}

	header, frames := replay.ToRecords(m.recorder.Replay())
	if err := store.SaveReplay(header, frames); err != nil {
		m.logger.Error("cannot save replay", "error", err)
		return res
	}
	res.ReplayID = header.ID
	m.logger.Info("replay saved", "id", header.ID, "frames", len(frames))
	return res
}

// Run starts the Bubble Tea program for the given game and blocks until the
// player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (Result, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	if fm, ok := final.(Model); ok {
		model = fm
	}
	return model.finish(opts.Store), nil
}
