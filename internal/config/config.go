// Package config loads the falling-block game rules from YAML or TOML
// files and the host settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Randomizer names accepted in TetrisConfig.Randomizer.
const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// MaxStepsPerSecond bounds the simulation rate. The timestep must stay a
// whole, non-zero number of nanoseconds.
const MaxStepsPerSecond = 1000

// TetrisConfig contains all rule parameters for the falling-block game.
type TetrisConfig struct {
	Board      TetrisBoard   `yaml:"board" toml:"board"`
	Gravity    TetrisGravity `yaml:"gravity" toml:"gravity"`
	Scoring    TetrisScoring `yaml:"scoring" toml:"scoring"`
	Clock      TetrisClock   `yaml:"clock" toml:"clock"`
	Randomizer string        `yaml:"randomizer" toml:"randomizer"` // "uniform" or "bag"
}

// TetrisBoard defines the playfield dimensions in cells.
type TetrisBoard struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

// TetrisGravity defines the level-based drop interval curve:
// interval = max(floor, base - (level-1)*step).
type TetrisGravity struct {
	BaseMs  int `yaml:"base_ms" toml:"base_ms"`
	StepMs  int `yaml:"step_ms" toml:"step_ms"`
	FloorMs int `yaml:"floor_ms" toml:"floor_ms"`
}

// TetrisScoring defines the line-clear reward table and level pacing.
type TetrisScoring struct {
	LineRewards   []int `yaml:"line_rewards" toml:"line_rewards"`       // Indexed by lines cleared in one lock
	LinesPerLevel int   `yaml:"lines_per_level" toml:"lines_per_level"` // Lines needed per level increment
}

// TetrisClock defines the fixed simulation timestep.
type TetrisClock struct {
	StepsPerSecond int `yaml:"steps_per_second" toml:"steps_per_second"`
	MaxFrameMs     int `yaml:"max_frame_ms" toml:"max_frame_ms"` // Frame delta clamp for catch-up after stalls
}

// Timestep returns the duration of one logical simulation step.
func (c TetrisClock) Timestep() time.Duration {
	return time.Second / time.Duration(c.StepsPerSecond)
}

// MaxFrame returns the largest frame delta the clock will accept.
func (c TetrisClock) MaxFrame() time.Duration {
	return time.Duration(c.MaxFrameMs) * time.Millisecond
}

// Validate checks that the configuration describes a playable game.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Width < 5 || c.Board.Height < 4:
		// narrower boards cannot spawn the I piece at the centered origin
		return fmt.Errorf("%w: board must be at least 5 wide and 4 tall, got %dx%d", ErrInvalid, c.Board.Width, c.Board.Height)
	case c.Gravity.BaseMs <= 0:
		return fmt.Errorf("%w: gravity.base_ms must be positive", ErrInvalid)
	case c.Gravity.StepMs < 0:
		return fmt.Errorf("%w: gravity.step_ms must not be negative", ErrInvalid)
	case c.Gravity.FloorMs <= 0 || c.Gravity.FloorMs > c.Gravity.BaseMs:
		return fmt.Errorf("%w: gravity.floor_ms must be in (0, base_ms]", ErrInvalid)
	case len(c.Scoring.LineRewards) == 0:
		return fmt.Errorf("%w: scoring.line_rewards is empty", ErrInvalid)
	case c.Scoring.LinesPerLevel <= 0:
		return fmt.Errorf("%w: scoring.lines_per_level must be positive", ErrInvalid)
	case c.Clock.StepsPerSecond <= 0 || c.Clock.StepsPerSecond > MaxStepsPerSecond:
		return fmt.Errorf("%w: clock.steps_per_second must be in [1, %d], got %d", ErrInvalid, MaxStepsPerSecond, c.Clock.StepsPerSecond)
	case c.Clock.MaxFrameMs <= 0:
		return fmt.Errorf("%w: clock.max_frame_ms must be positive", ErrInvalid)
	}

	for i, r := range c.Scoring.LineRewards {
		if r < 0 {
			return fmt.Errorf("%w: scoring.line_rewards[%d] is negative", ErrInvalid, i)
		}
	}

	switch c.Randomizer {
	case "", RandomizerUniform, RandomizerBag:
	default:
		return fmt.Errorf("%w: unknown randomizer %q", ErrInvalid, c.Randomizer)
	}
	return nil
}
