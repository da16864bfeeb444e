package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagReplayGame  string
	flagReplayLimit int
	flagPruneKeep   int
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Inspect and verify recorded runs",
	Long: `Every finished run is stored as a journal: the seed, the rules and
each accepted command with the simulation step it landed on. Replaying a
journal re-runs the game headlessly and must reproduce the recorded
score, lines and level.

Examples:
  tetris replay list
  tetris replay list --game tetris_bag --limit 5
  tetris replay browse
  tetris replay verify 12
  tetris replay export 12 > run.yaml
  tetris replay prune --keep 100`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	Run:   runReplayList,
}

var replayBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse recorded runs interactively",
	Args:  cobra.NoArgs,
	Run:   runReplayBrowse,
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-simulate a run and compare it with the recorded outcome",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayVerify,
}

var replayExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Print a run's journal as YAML",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayExport,
}

var replayPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest runs",
	Args:  cobra.NoArgs,
	Run:   runReplayPrune,
}

func init() {
	replayListCmd.Flags().StringVar(&flagReplayGame, "game", "", "Only list runs of this mode")
	replayListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of runs to list")
	replayPruneCmd.Flags().IntVar(&flagPruneKeep, "keep", 50, "Number of newest runs to keep")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayBrowseCmd)
	replayCmd.AddCommand(replayVerifyCmd)
	replayCmd.AddCommand(replayExportCmd)
	replayCmd.AddCommand(replayPruneCmd)
}

// mustOpenStore opens the replay database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", arg)
		os.Exit(1)
	}
	return id
}

func runReplayList(cmd *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	replays, err := store.RecentReplays(flagReplayGame, flagReplayLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Finish a game with 'tetris play' to record one.")
		return
	}

	fmt.Printf("  %-5s  %-10s  %-8s  %-5s  %-3s  %-6s  %s\n", "ID", "Mode", "Score", "Lines", "Lvl", "Time", "Date")
	fmt.Printf("  %-5s  %-10s  %-8s  %-5s  %-3s  %-6s  %s\n", "--", "----", "-----", "-----", "---", "----", "----")
	for _, r := range replays {
		fmt.Printf("  %-5d  %-10s  %-8d  %-5d  %-3d  %-6s  %s\n",
			r.ID, r.GameID, r.Score, r.Lines, r.Level, formatDuration(r.Steps), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// formatDuration shows a step count as play time at 60 steps per second.
func formatDuration(steps uint64) string {
	secs := steps / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func runReplayBrowse(cmd *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	cfg := terminalConfig()
	if _, err := tui.RunReplays(store, cfg.ScreenW, cfg.ScreenH); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func runReplayVerify(cmd *cobra.Command, args []string) {
	id := parseID(args[0])
	logger := stderrLogger()

	store := mustOpenStore()
	res, err := replay.Verify(store, id)
	store.Close()

	switch {
	case errors.Is(err, storage.ErrNotFound):
		fmt.Fprintf(os.Stderr, "Error: replay %d not found\n", id)
		os.Exit(1)
	case errors.Is(err, replay.ErrMismatch):
		logger.Error("replay diverged", "id", id,
			"score", res.Got.Score, "want_score", res.Replay.Score,
			"lines", res.Got.Lines, "want_lines", res.Replay.Lines,
			"level", res.Got.Level, "want_level", res.Replay.Level)
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("replay verified", "id", id, "mode", res.Replay.GameID,
		"steps", res.Replay.Steps, "score", res.Got.Score, "lines", res.Got.Lines, "level", res.Got.Level)
}

func runReplayExport(cmd *cobra.Command, args []string) {
	id := parseID(args[0])

	store := mustOpenStore()
	defer store.Close()

	rec, err := store.ReplayByID(id)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(rec.Journal)
}

func runReplayPrune(cmd *cobra.Command, args []string) {
	if flagPruneKeep < 0 {
		fmt.Fprintln(os.Stderr, "Error: --keep must not be negative")
		os.Exit(1)
	}
	logger := stderrLogger()

	store := mustOpenStore()
	defer store.Close()

	n, err := store.PruneReplays(flagPruneKeep)
	if err != nil {
		logger.Error("prune failed", "error", err)
		return
	}
	logger.Info("pruned replays", "deleted", n, "kept", flagPruneKeep)
}
