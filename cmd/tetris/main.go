// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris list                 - List available modes
//	tetris play [mode]          - Play (default mode: tetris)
//	tetris menu                 - Pick a mode interactively
//	tetris replay list          - List recorded runs
//	tetris replay verify <id>   - Re-simulate a run and check its outcome
//	tetris config show          - Print the rules in effect
//
// Global flags:
//
//	--fps <rate>         - Host frame rate (default: 60)
//	--seed <value>       - RNG seed for reproducible runs
//	--db <path>          - Replay database (default: ~/.tetris/replays.db)
//	--config <path>      - Rules file (YAML or TOML)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log destination while the TUI is running
//
// Each global flag defaults to the matching TETRIS_* environment variable.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris in your terminal",
	Long: `A falling-block puzzle game for the terminal.

Every finished run is recorded as a journal and can be replayed
deterministically to verify its outcome.

Examples:
  tetris play
  tetris play tetris_bag --seed 42
  tetris menu
  tetris replay list
  tetris replay verify 3
  tetris config show`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		tetris.SetConfigPath(flagConfig)
		return nil
	},
}

func init() {
	// TETRIS_* environment variables provide the flag defaults
	host, err := config.LoadHost()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", host.FPS, "Host frame rate (frames per second) [TETRIS_FPS]")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", host.Seed, "RNG seed, 0 = random based on time [TETRIS_SEED]")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", host.DBPath, "Path to replay database [TETRIS_DB]")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", host.Rules, "Path to rules YAML or TOML (default: search ~/.tetris/configs, ./configs) [TETRIS_CONFIG]")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", host.LogLevel, "Log level: debug, info, warn, error [TETRIS_LOG_LEVEL]")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", host.LogFile, "Log file used while the game is on screen [TETRIS_LOG_FILE]")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
