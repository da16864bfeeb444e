package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode selects the piece randomizer.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeBag     Mode = "bag"
)

// configPath is the rules file chosen on the command line ("" = search).
var configPath string

// SetConfigPath sets the rules file used by subsequent Reset calls.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts a Session to the registry.Game contract.
type Game struct {
	mode    Mode
	rules   config.TetrisConfig
	loadErr error
	session *Session
	snap    Snapshot

	tickRate int
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game that draws pieces uniformly at random.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewBag creates a game that deals pieces from shuffled 7-bags.
func NewBag() *Game {
	return &Game{mode: ModeBag}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
	registry.Register("tetris_bag", func() registry.Game {
		return NewBag()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeBag {
		return "tetris_bag"
	}
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeBag {
		return "Tetris (7-bag)"
	}
	return "Tetris"
}

// Reset loads the rules and starts a new run.
// A broken rules file falls back to the built-in defaults; see ConfigErr.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rules, g.loadErr = config.LoadTetris(configPath)
	if g.loadErr != nil {
		g.rules = config.DefaultTetrisConfig()
	}
	if g.mode == ModeBag {
		g.rules.Randomizer = config.RandomizerBag
	}

	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}

	g.session = NewSession(g.rules, cfg.Seed)
	g.session.Start()
	g.snap = g.session.Snapshot()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// ConfigErr returns the error from the last rules load, if any.
func (g *Game) ConfigErr() error {
	return g.loadErr
}

// Rules returns the rules in effect.
func (g *Game) Rules() config.TetrisConfig {
	return g.rules
}

// Resize records the new screen size. The run continues; while the screen
// is too small the game only shows a message and time does not advance.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	w, h := layoutSize(g.rules.Board.Width, g.rules.Board.Height)
	g.tooSmall = width < w || height < h
}

// Step applies the frame's actions in order, then advances the clock.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions {
		if cmd, ok := commandFor(a); ok {
			g.session.Apply(cmd)
		}
	}

	elapsed := in.Elapsed
	if elapsed == 0 {
		elapsed = time.Second / time.Duration(g.tickRate)
	}
	g.snap = g.session.Advance(elapsed)

	return core.StepResult{State: g.State()}
}

// commandFor maps a host action to a session command.
func commandFor(a core.Action) (Command, bool) {
	switch a {
	case core.ActionLeft:
		return CmdMoveLeft, true
	case core.ActionRight:
		return CmdMoveRight, true
	case core.ActionSoftDrop:
		return CmdSoftDrop, true
	case core.ActionRotate:
		return CmdRotate, true
	case core.ActionHardDrop:
		return CmdHardDrop, true
	case core.ActionPause:
		return CmdTogglePause, true
	case core.ActionRestart:
		return CmdRestart, true
	default:
		return CmdNone, false
	}
}

// State returns the platform-facing view of the current run.
func (g *Game) State() core.GameState {
	return stateOf(g.snap)
}

func stateOf(s Snapshot) core.GameState {
	return core.GameState{
		Score:    s.Score,
		Lines:    s.Lines,
		Level:    s.Level,
		GameOver: s.GameOver(),
		Paused:   s.Paused(),
	}
}

// Snapshot returns the snapshot taken at the end of the last Step.
func (g *Game) Snapshot() Snapshot {
	return g.snap
}

// Journal encodes the current run's journal.
func (g *Game) Journal() ([]byte, error) {
	return EncodeJournal(g.session.Journal())
}

// RunInfo returns the run seed and step count of the current run.
func (g *Game) RunInfo() registry.RunInfo {
	return registry.RunInfo{Seed: g.snap.RunSeed, Steps: g.snap.Steps}
}

// Replay decodes and re-simulates a journal produced by any tetris mode.
func (g *Game) Replay(data []byte) (core.GameState, error) {
	j, err := DecodeJournal(data)
	if err != nil {
		return core.GameState{}, err
	}
	return stateOf(Replay(j)), nil
}
