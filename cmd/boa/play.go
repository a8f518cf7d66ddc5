package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/boa/internal/core"
	"github.com/vovakirdan/boa/internal/games/boa"
	"github.com/vovakirdan/boa/internal/platform/tui"
	"github.com/vovakirdan/boa/internal/registry"
	"github.com/vovakirdan/boa/internal/storage"
)

var (
	flagConfig string
	flagRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a board",
	Long: `Start playing the specified board (default: boa).

Controls:
  Arrows/WASD  - Steer
  Space/P      - Pause
  R            - Restart
  Ctrl+S       - Save a screenshot
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Every game is recorded and can be re-simulated with 'boa replay <id>'.

Examples:
  boa play
  boa play boa_dense
  boa play --seed 42
  boa play --config ./my-boa.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	playCmd.Flags().BoolVar(&flagRecord, "record", true, "Record the game for replay")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := boa.IDClassic
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'boa list' to see available boards.")
		os.Exit(1)
	}

	logger, closer, err := newLogger()
	if err != nil {
		exitErr("%v", err)
	}
	defer closer.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Must be set before the game is created
	boa.SetConfigPath(flagConfig)

	game, err := registry.Create(gameID)
	if err != nil {
		exitErr("creating board: %v", err)
	}

	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			// Continue without storage - game still works
			logger.Warn("could not open replay database", "path", flagDBPath, "error", err)
			store = nil
		}
	}

	res, runErr := tui.Run(game, cfg, tui.Options{
		Logger: logger,
		Store:  store,
		Record: flagRecord,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitErr("running game: %v", runErr)
	}

	fmt.Printf("%s  score %d\n", outcome(res.State), res.State.Score)
	if res.ReplayID != "" {
		fmt.Printf("Replay saved: %s (%d frames)\n", res.ReplayID, res.Frames)
	}
}

func outcome(s core.GameState) string {
	switch {
	case s.Cleared:
		return "Board cleared"
	case s.GameOver:
		return "Game over"
	}
	return "Quit"
}
