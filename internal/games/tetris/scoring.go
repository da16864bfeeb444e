package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// Scoring applies the reward table and level curve from the rules.
type Scoring struct {
	rewards       []int
	linesPerLevel int
	base          time.Duration
	step          time.Duration
	floor         time.Duration
}

// NewScoring builds the scoring tables from validated rules.
func NewScoring(cfg config.TetrisConfig) Scoring {
	return Scoring{
		rewards:       append([]int(nil), cfg.Scoring.LineRewards...),
		linesPerLevel: cfg.Scoring.LinesPerLevel,
		base:          time.Duration(cfg.Gravity.BaseMs) * time.Millisecond,
		step:          time.Duration(cfg.Gravity.StepMs) * time.Millisecond,
		floor:         time.Duration(cfg.Gravity.FloorMs) * time.Millisecond,
	}
}

// Reward returns the points for clearing `cleared` lines in one lock at
// `level`. Counts past the end of the table earn the last entry.
func (s Scoring) Reward(cleared, level int) int {
	if cleared <= 0 {
		return 0
	}
	idx := min(cleared, len(s.rewards)-1)
	return s.rewards[idx] * level
}

// LevelFor returns the level earned by a total line count.
func (s Scoring) LevelFor(lines int) int {
	return lines/s.linesPerLevel + 1
}

// GravityInterval returns the time between automatic drops at level.
func (s Scoring) GravityInterval(level int) time.Duration {
	return max(s.floor, s.base-time.Duration(level-1)*s.step)
}
