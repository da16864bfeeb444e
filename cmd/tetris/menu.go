package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Browse recorded replays
  Q            - Quit

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --db ./replays.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closer := openFileLogger()
	defer closer.Close()

	store := openStore(logger)
	cfg := terminalConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsReplays {
			if store == nil {
				fmt.Fprintln(os.Stderr, "Replay database unavailable.")
				continue
			}
			goBack, rErr := tui.RunReplays(store, cfg.ScreenW, cfg.ScreenH)
			if rErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", rErr)
			}
			if goBack {
				continue // Back to menu
			}
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh seed per run unless one was pinned on the command line
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg, tui.Options{Logger: logger}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		reportConfigErr(game, logger)
	}

	if store != nil {
		store.Close()
	}
}
