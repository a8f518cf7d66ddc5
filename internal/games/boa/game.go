package boa

import (
	"fmt"
	"math"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/boa/internal/config"
	"github.com/vovakirdan/boa/internal/core"
	"github.com/vovakirdan/boa/internal/fx"
	"github.com/vovakirdan/boa/internal/registry"
)

// Registered game IDs.
const (
	IDClassic = "boa"
	IDDense   = "boa_dense"
)

// Layout constants in screen characters.
const (
	hudHeight = 2
	cellWidth = 2
)

var (
	targetLow  = colorful.Color{R: 0.85, G: 0.1, B: 0.1}
	targetHigh = colorful.Color{R: 1, G: 0.8, B: 0.2}
)

// configPath is the custom config file set by the CLI before games are created.
var configPath string

// SetConfigPath sets the custom config file path for subsequently reset games.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts a Session to the host: it maps actions to session calls,
// drives the clock with frame time and draws the board into a Screen.
type Game struct {
	id      string
	variant string

	settings Settings
	fixed    bool // settings came from NewFromSettings and are not reloaded
	effects  config.EffectsConfig
	session  *Session
	err      error // last settings problem, nil when the variant loaded cleanly

	hue     *fx.HueCycle
	burst   *fx.Burst
	elapsed time.Duration
	frames  uint64
}

// New creates the classic 10x10 game.
func New() *Game {
	return &Game{id: IDClassic, variant: config.VariantClassic}
}

// NewDense creates the wider, faster game.
func NewDense() *Game {
	return &Game{id: IDDense, variant: config.VariantDense}
}

// NewFromSettings creates a game that always uses settings instead of the
// configured variant. Replays use it to rebuild a recorded board.
func NewFromSettings(id string, settings Settings) *Game {
	return &Game{
		id:       id,
		settings: settings,
		fixed:    true,
		effects:  config.DefaultBoaConfig().Effects,
	}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDDense, func() registry.Game {
		return NewDense()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.id == IDDense {
		return "Boa (Dense)"
	}
	return "Boa"
}

// SettingsFromVariant converts a configured variant into session settings.
func SettingsFromVariant(v config.VariantConfig, seed int64) (Settings, error) {
	dir, err := ParseDirection(v.StartDirection)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	start := make([]Cell, len(v.StartBody))
	for i, p := range v.StartBody {
		start[i] = Cell{X: p.X, Y: p.Y}
	}
	s := Settings{
		Grid:          NewGrid(v.Width, v.Height),
		Interval:      v.StepInterval,
		QueueCapacity: v.QueueCapacity,
		Start:         start,
		StartDir:      dir,
		Seed:          seed,
	}
	return s, s.Validate()
}

// Reset loads the variant settings and starts a new session seeded from cfg.
// A broken config falls back to the built-in defaults; Err reports why.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.err = nil
	if !g.fixed {
		g.settings, g.effects, g.err = g.loadSettings()
	}
	g.settings.Seed = cfg.Seed

	session, err := NewSession(g.settings)
	if err != nil {
		g.err = err
		g.settings = DefaultSettings()
		g.settings.Seed = cfg.Seed
		session, _ = NewSession(g.settings)
	}
	g.session = session

	g.hue = fx.NewHueCycle(g.effects.HueSpeed)
	g.burst = fx.NewBurst(cfg.Seed, g.effects.BurstLifetime)
	g.elapsed = 0
	g.frames = 0
}

func (g *Game) loadSettings() (Settings, config.EffectsConfig, error) {
	defaults := config.DefaultBoaConfig()

	cfg, err := config.LoadBoa(configPath)
	if err != nil {
		cfg = defaults
	}
	v, verr := cfg.Variant(g.variant)
	if verr != nil {
		err = verr
		cfg = defaults
		v, _ = defaults.Variant(g.variant)
	}
	s, serr := SettingsFromVariant(v, 0)
	if serr != nil {
		return DefaultSettings(), cfg.Effects, serr
	}
	return s, cfg.Effects, err
}

// Err returns the problem found while loading settings on the last Reset.
func (g *Game) Err() error {
	return g.err
}

// Settings returns the settings of the running session.
func (g *Game) Settings() Settings {
	return g.session.Settings()
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

var actionDirections = map[core.Action]Direction{
	core.ActionUp:    Up,
	core.ActionDown:  Down,
	core.ActionLeft:  Left,
	core.ActionRight: Right,
}

// Update applies the frame's actions in order and then advances the clock.
func (g *Game) Update(dt time.Duration, in core.InputFrame) core.StepResult {
	g.frames++
	if dt > 0 {
		g.elapsed += dt
	}
	g.hue.Advance(dt)
	g.burst.Advance(dt)

	var events []core.Event
	for _, a := range in.Actions() {
		if d, ok := actionDirections[a]; ok {
			g.session.SubmitDirection(d)
			continue
		}
		switch a {
		case core.ActionPause:
			g.session.TogglePause()
		case core.ActionRestart:
			g.session.Reset()
			g.burst.Clear()
			events = append(events, core.EventRestart)
		}
	}

	stepEvents := g.session.Tick(dt)
	for _, e := range stepEvents {
		if e == core.EventCollision && g.effects.BurstParticles > 0 {
			head := g.session.Head()
			g.burst.Spawn(float64(head.X)+0.5, float64(head.Y)+0.5, g.effects.BurstParticles)
		}
	}
	events = append(events, stepEvents...)

	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.GameOver(),
		Cleared:  g.session.Cleared(),
		Paused:   g.session.Paused(),
	}
}

// Snapshot returns the session snapshot for determinism checks.
func (g *Game) Snapshot() Snapshot {
	return g.session.Snapshot()
}

// boardRect returns where the bordered board sits on a w x h screen and
// whether it fits.
func (g *Game) boardRect(w, h int) (core.Rect, bool) {
	grid := g.session.Grid()
	bw := grid.W*cellWidth + 2
	bh := grid.H + 2
	if w < bw || h < bh+hudHeight {
		return core.Rect{}, false
	}
	r := core.CenteredRect(w, h-hudHeight, bw, bh)
	r.Y += hudHeight
	return r, true
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	board, ok := g.boardRect(dst.Width(), dst.Height())
	if !ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(board)
	g.renderFloor(dst, board)
	if t, ok := g.session.Target(); ok {
		g.renderTarget(dst, board, t)
	}
	g.renderBody(dst, board)
	g.renderParticles(dst, board)

	switch g.session.State() {
	case Cleared:
		g.renderOverlay(dst, "Board cleared!", fmt.Sprintf("Length %d - press R to play again", g.session.Length()))
	case GameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d - press R to restart", g.session.Score()))
	case Paused:
		g.renderOverlay(dst, "Paused", "Press Space to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s | Score: %d  Length: %d", g.Title(), g.session.Score(), g.session.Length())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// cellPos maps a board cell to the screen column and row of its left half.
func cellPos(board core.Rect, c Cell) (int, int) {
	return board.X + 1 + c.X*cellWidth, board.Y + 1 + c.Y
}

// renderFloor dots every other cell, like a checkerboard.
func (g *Game) renderFloor(dst *core.Screen, board core.Rect) {
	grid := g.session.Grid()
	for y := range grid.H {
		for x := range grid.W {
			if (x+y)%2 == 0 {
				continue
			}
			sx, sy := cellPos(board, Cell{X: x, Y: y})
			dst.SetColored(sx, sy, '·', core.ColorGray)
		}
	}
}

func (g *Game) renderTarget(dst *core.Screen, board core.Rect, t Cell) {
	phase := (math.Sin(g.elapsed.Seconds()*2*math.Pi) + 1) / 2
	sx, sy := cellPos(board, t)
	dst.SetColored(sx, sy, '●', fx.Pulse(targetLow, targetHigh, phase))
}

// renderBody draws segments head first so the head wins when the body
// overlaps itself after a crash. The second column of a cell is filled when
// the chain continues to the right, which keeps horizontal runs unbroken.
func (g *Game) renderBody(dst *core.Screen, board core.Rect) {
	cells := g.session.Body()
	grid := g.session.Grid()
	n := len(cells)

	if g.session.State() == Running {
		g.renderLead(dst, board)
	}

	drawn := make(map[Cell]bool, n)
	for k := range n {
		i := n - 1 - k
		c := cells[i]
		if drawn[c] {
			continue
		}
		drawn[c] = true

		color := g.hue.ANSI(float64(k) * g.effects.SegmentHueStep)
		glyph := '█'
		if k == 0 {
			glyph = '◆'
			if g.session.GameOver() {
				color = core.ColorBrightRed
			}
		}

		sx, sy := cellPos(board, c)
		dst.SetColored(sx, sy, glyph, color)

		right := grid.Step(c, Right.Delta())
		if right.X == 0 {
			continue // no joiner across the wrap seam
		}
		if (i > 0 && cells[i-1] == right) || (i < n-1 && cells[i+1] == right) {
			dst.SetColored(sx+1, sy, '█', color)
		}
	}
}

// renderLead shades the cell the head is about to enter, darker early in
// the step interval and lighter as the step approaches.
func (g *Game) renderLead(dst *core.Screen, board core.Rect) {
	p := g.session.Progress()
	var shade rune
	switch {
	case p < 0.34:
		return
	case p < 0.67:
		shade = '░'
	default:
		shade = '▒'
	}
	sx, sy := cellPos(board, g.session.Next())
	if dst.Get(sx, sy) == '●' {
		return
	}
	dst.SetColored(sx, sy, shade, g.hue.ANSI(0))
}

func (g *Game) renderParticles(dst *core.Screen, board core.Rect) {
	inner := core.NewRect(board.X+1, board.Y+1, board.W-2, board.H-2)
	for _, p := range g.burst.Particles() {
		sx := inner.X + int(p.X*cellWidth)
		sy := inner.Y + int(p.Y)
		if !inner.Contains(sx, sy) {
			continue
		}
		glyph, color := '*', core.ColorBrightYellow
		if g.burst.Fade(p) < 0.5 {
			glyph, color = '·', core.ColorOrange
		}
		dst.SetColored(sx, sy, glyph, color)
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), width, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	s := g.session
	var b strings.Builder
	fmt.Fprintf(&b, "Frame: %d, Step: %d, Score: %d, State: %s\n", g.frames, s.Steps(), s.Score(), s.State())
	fmt.Fprintf(&b, "Length: %d, Direction: %s, Pending: %v\n", s.Length(), s.Direction(), s.Pending())
	head := s.Head()
	if t, ok := s.Target(); ok {
		fmt.Fprintf(&b, "Head: (%d, %d), Target: (%d, %d)\n", head.X, head.Y, t.X, t.Y)
	} else {
		fmt.Fprintf(&b, "Head: (%d, %d), Target: none\n", head.X, head.Y)
	}
	fmt.Fprintf(&b, "Progress: %.2f\n", s.Progress())
	return b.String()
}
