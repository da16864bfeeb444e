package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagShowFPS bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game",
	Long: `Start playing. The mode defaults to "tetris" (uniform random pieces);
"tetris_bag" deals pieces from a shuffled bag of all seven.

Controls:
  Left/Right/A/D  - Move
  Down/S          - Soft drop
  Up/W            - Rotate clockwise
  Space           - Hard drop
  P/Esc           - Pause
  R               - Restart
  ?               - Toggle help
  Q/Ctrl+C        - Quit

Every finished run is saved to the replay database.

Examples:
  tetris play
  tetris play tetris_bag
  tetris play --seed 42 --fps 30
  tetris play --config ./my-rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagShowFPS, "show-fps", false, "Show the measured frame rate in the status line")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available modes.")
		os.Exit(1)
	}

	logger, closer := openFileLogger()
	defer closer.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)

	runErr := tui.Run(game, store, terminalConfig(), tui.Options{
		Logger:  logger,
		ShowFPS: flagShowFPS,
	})
	reportConfigErr(game, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openFileLogger returns the file logger, or a discarding one if the log
// file cannot be opened. The terminal is about to switch to the alternate
// screen, so the failure is reported on stderr first.
func openFileLogger() (*log.Logger, io.Closer) {
	logger, closer, err := fileLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return log.New(io.Discard), nopCloser{}
	}
	return logger, closer
}

// openStore opens the replay database. Runs are still playable without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		return nil
	}
	return store
}

// reportConfigErr surfaces a rules file that failed to load. The game fell
// back to the defaults, so this is a warning.
func reportConfigErr(game registry.Game, logger *log.Logger) {
	tg, ok := game.(*tetris.Game)
	if !ok {
		return
	}
	if err := tg.ConfigErr(); err != nil {
		logger.Warn("rules config ignored, using defaults", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: %v (using default rules)\n", err)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
