package tetris

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

const journalVersion = 1

// ErrBadJournal is wrapped by every journal decoding failure.
var ErrBadJournal = errors.New("tetris: bad journal")

// JournalEvent is one accepted piece command and the logical step it was
// applied at.
type JournalEvent struct {
	Step    uint64  `yaml:"step"`
	Command Command `yaml:"cmd"`
}

// Journal is everything needed to re-simulate a run exactly: the rules,
// the run seed, and the piece commands in order. Pause and restart are not
// recorded; paused time never advances the step counter.
type Journal struct {
	Version int                 `yaml:"version"`
	RunSeed int64               `yaml:"run_seed"`
	Rules   config.TetrisConfig `yaml:"rules"`
	Steps   uint64              `yaml:"steps"`
	Events  []JournalEvent      `yaml:"events"`
}

func (j *Journal) record(step uint64, cmd Command) {
	j.Events = append(j.Events, JournalEvent{Step: step, Command: cmd})
}

// EncodeJournal serializes a journal as YAML.
func EncodeJournal(j Journal) ([]byte, error) {
	data, err := yaml.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("tetris: encode journal: %w", err)
	}
	return data, nil
}

// DecodeJournal parses and validates a YAML journal.
func DecodeJournal(data []byte) (Journal, error) {
	var j Journal
	if err := yaml.Unmarshal(data, &j); err != nil {
		return Journal{}, fmt.Errorf("%w: %v", ErrBadJournal, err)
	}
	if j.Version != journalVersion {
		return Journal{}, fmt.Errorf("%w: unsupported version %d", ErrBadJournal, j.Version)
	}
	if err := j.Rules.Validate(); err != nil {
		return Journal{}, fmt.Errorf("%w: %v", ErrBadJournal, err)
	}
	var last uint64
	for i, ev := range j.Events {
		if ev.Step < last {
			return Journal{}, fmt.Errorf("%w: event %d goes back in time (step %d < %d)", ErrBadJournal, i, ev.Step, last)
		}
		if ev.Command == CmdNone || ev.Command == CmdTogglePause || ev.Command == CmdRestart {
			return Journal{}, fmt.Errorf("%w: event %d has non-piece command %s", ErrBadJournal, i, ev.Command)
		}
		last = ev.Step
	}
	if j.Steps < last {
		return Journal{}, fmt.Errorf("%w: final step %d before last event %d", ErrBadJournal, j.Steps, last)
	}
	return j, nil
}

// Replay re-simulates a journal headlessly and returns the final snapshot.
// The same journal always produces the same snapshot.
func Replay(j Journal) Snapshot {
	s := NewSession(j.Rules, 0)
	s.StartSeeded(j.RunSeed)
	for _, ev := range j.Events {
		s.runUntil(ev.Step)
		s.Apply(ev.Command)
	}
	s.runUntil(j.Steps)
	return s.Snapshot()
}
