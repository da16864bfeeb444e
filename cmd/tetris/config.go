package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var flagConfigFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show game rules",
	Long: `Rules are loaded from the first file found:
  --config <path>
  ~/.tetris/configs/tetris.{yaml,yml,toml}
  ./configs/tetris.{yaml,yml,toml}
  built-in defaults

Examples:
  tetris config show
  tetris config show --config ./my-rules.yaml
  tetris config default > ~/.tetris/configs/tetris.yaml
  tetris config show --format toml > ~/.tetris/configs/tetris.toml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the rules in effect",
	Args:  cobra.NoArgs,
	Run:   runConfigShow,
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the built-in rules file",
	Args:  cobra.NoArgs,
	Run:   runConfigDefault,
}

func init() {
	configShowCmd.Flags().StringVar(&flagConfigFormat, "format", "yaml", "Output format: yaml or toml")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configDefaultCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	rules, err := config.LoadTetris(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var data []byte
	switch flagConfigFormat {
	case "yaml":
		data, err = config.MarshalTetris(rules)
	case "toml":
		data, err = config.MarshalTetrisTOML(rules)
	default:
		err = fmt.Errorf("unknown format %q", flagConfigFormat)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}

func runConfigDefault(cmd *cobra.Command, args []string) {
	os.Stdout.Write(config.GetDefaultYAML("tetris"))
}
