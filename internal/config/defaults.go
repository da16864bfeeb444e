package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in rules, matching defaults/tetris.yaml.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: TetrisBoard{
			Width:  10,
			Height: 20,
		},
		Gravity: TetrisGravity{
			BaseMs:  1000,
			StepMs:  100,
			FloorMs: 100,
		},
		Scoring: TetrisScoring{
			LineRewards:   []int{0, 100, 300, 500, 800},
			LinesPerLevel: 10,
		},
		Clock: TetrisClock{
			StepsPerSecond: 60,
			MaxFrameMs:     250,
		},
		Randomizer: RandomizerUniform,
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris", "tetris_bag":
		return defaultTetrisYAML
	default:
		return nil
	}
}
