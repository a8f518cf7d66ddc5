package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/boa/internal/core"
	"github.com/vovakirdan/boa/internal/games/boa"
	"github.com/vovakirdan/boa/internal/platform/tui"
	"github.com/vovakirdan/boa/internal/replay"
	"github.com/vovakirdan/boa/internal/storage"
)

var (
	flagLimit  int
	flagTrace  string
	flagWatch  bool
	flagDelete bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded games",
	Long: `Display the most recently recorded games, newest first.

Examples:
  boa replays
  boa replays --limit 50`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded game",
	Long: `Re-simulate a recorded game from its seed and input and check that it
ends where the recording did.

Examples:
  boa replay 2f1c0d9e-...
  boa replay 2f1c0d9e-... --trace run.csv
  boa replay 2f1c0d9e-... --watch
  boa replay 2f1c0d9e-... --delete`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of replays to show")

	replayCmd.Flags().StringVar(&flagTrace, "trace", "", "Write a CSV trace of the playback to this file")
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Watch the replay in the terminal")
	replayCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the replay")
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening replay database: %v", err)
	}
	return store
}

func runReplays(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	recs, err := store.RecentReplays(flagLimit)
	if err != nil {
		store.Close()
		exitErr("retrieving replays: %v", err)
	}

	if len(recs) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'boa play' to record one!")
		return
	}

	fmt.Printf("  %-36s  %-10s  %-9s  %7s  %7s  %s\n", "ID", "Board", "State", "Steps", "Frames", "Date")
	fmt.Printf("  %-36s  %-10s  %-9s  %7s  %7s  %s\n", "--", "-----", "-----", "-----", "------", "----")
	for _, r := range recs {
		fmt.Printf("  %-36s  %-10s  %-9s  %7d  %7d  %s\n",
			r.ID, r.GameID, r.FinalState, r.Steps, r.FrameCount, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runReplay(cmd *cobra.Command, args []string) {
	id := args[0]

	store := openStore()
	defer store.Close()

	if flagDelete {
		ok, err := store.DeleteReplay(id)
		if err != nil {
			store.Close()
			exitErr("deleting replay: %v", err)
		}
		if !ok {
			store.Close()
			exitErr("replay %q not found", id)
		}
		fmt.Printf("Deleted replay %s\n", id)
		return
	}

	header, frames, err := store.Replay(id)
	if err != nil {
		store.Close()
		exitErr("loading replay: %v", err)
	}
	if header == nil {
		store.Close()
		exitErr("replay %q not found", id)
	}

	r, err := replay.FromRecords(*header, frames)
	if err != nil {
		store.Close()
		exitErr("%v", err)
	}

	if flagWatch {
		watchReplay(r)
		return
	}

	res, err := replay.Verify(r)
	if err != nil {
		store.Close()
		exitErr("%v", err)
	}

	if flagTrace != "" {
		if err := replay.WriteTraceFile(flagTrace, res.Trace); err != nil {
			store.Close()
			exitErr("writing trace: %v", err)
		}
		fmt.Printf("Trace written to %s (%d rows)\n", flagTrace, len(res.Trace))
	}

	printSnapshot(r, res.Final)
}

func watchReplay(r replay.Replay) {
	logger, closer, err := newLogger()
	if err != nil {
		exitErr("%v", err)
	}
	defer closer.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	game := boa.NewFromSettings(r.GameID, r.Settings)
	cfg := core.RuntimeConfig{ScreenW: width, ScreenH: height, TickRate: flagFPS, Seed: r.Settings.Seed}
	if _, err := tui.Run(game, cfg, tui.Options{Logger: logger, Playback: &r}); err != nil {
		exitErr("running replay: %v", err)
	}
}

func printSnapshot(r replay.Replay, s boa.Snapshot) {
	fmt.Printf("Replay %s (%s, seed %d)\n", r.ID, r.GameID, r.Settings.Seed)
	fmt.Printf("  Board:     %dx%d every %s\n", r.Settings.Grid.W, r.Settings.Grid.H, r.Settings.Interval)
	fmt.Printf("  Frames:    %d\n", len(r.Frames))
	fmt.Printf("  State:     %s after %d steps\n", s.State, s.Steps)
	fmt.Printf("  Score:     %d  Length: %d\n", s.Score, s.Length)
	fmt.Printf("  Head:      (%d, %d) heading %s\n", s.Head.X, s.Head.Y, s.Dir)
	if s.HasTarget {
		fmt.Printf("  Target:    (%d, %d)\n", s.Target.X, s.Target.Y)
	} else {
		fmt.Println("  Target:    none")
	}
}
