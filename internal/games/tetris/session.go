package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// State is a session lifecycle state.
type State int

const (
	StateReady State = iota
	StateRunning
	StatePaused
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Session owns one game: the board, the active and next pieces, the
// counters and the clock. All mutation goes through Apply and Advance, so
// a host can run any number of independent sessions.
type Session struct {
	rules   config.TetrisConfig
	scoring Scoring
	seeds   *rand.Rand // draws a fresh run seed on every (re)start
	runSeed int64
	pieces  Randomizer

	board  *Board
	active *Piece
	next   *Piece
	pool   piecePool
	clock  Clock

	score     int
	lines     int
	level     int
	lastClear int
	steps     uint64
	state     State

	journal Journal
}

// NewSession creates a session in the Ready state. rules must already be
// validated; seed makes the sequence of runs reproducible.
func NewSession(rules config.TetrisConfig, seed int64) *Session {
	return &Session{
		rules:   rules,
		scoring: NewScoring(rules),
		seeds:   rand.New(rand.NewSource(seed)),
		clock:   NewClock(rules.Clock.Timestep(), rules.Clock.MaxFrame()),
		board:   NewBoard(rules.Board.Width, rules.Board.Height),
		level:   1,
		state:   StateReady,
	}
}

// Start (re)initializes the session with a new run seed and begins play.
func (s *Session) Start() {
	s.StartSeeded(s.seeds.Int63())
}

// StartSeeded (re)initializes the session so that the piece sequence is
// fully determined by runSeed, then enters Running.
func (s *Session) StartSeeded(runSeed int64) {
	s.state = StateReady
	s.runSeed = runSeed
	s.pieces = NewRandomizer(s.rules.Randomizer, runSeed)
	s.board = NewBoard(s.rules.Board.Width, s.rules.Board.Height)
	s.clock.Reset()

	s.pool.put(s.active)
	s.pool.put(s.next)
	s.active = s.spawn()
	s.next = s.spawn()

	s.score = 0
	s.lines = 0
	s.level = 1
	s.lastClear = 0
	s.steps = 0
	s.journal = Journal{Version: journalVersion, RunSeed: runSeed, Rules: s.rules}

	s.state = StateRunning
	if !s.active.Fits(s.board) {
		s.state = StateGameOver
	}
}

// spawn generates the next random piece at the spawn origin.
func (s *Session) spawn() *Piece {
	def := Lookup(s.pieces.Next())
	return s.pool.get(def, s.board.Width()/2-1, 0)
}

// Apply executes a discrete command and reports whether it changed the
// session. Piece commands are ignored unless Running; TogglePause only
// works between Running and Paused; Restart is always accepted.
func (s *Session) Apply(cmd Command) bool {
	switch cmd {
	case CmdRestart:
		s.Start()
		return true
	case CmdTogglePause:
		switch s.state {
		case StateRunning:
			s.state = StatePaused
			return true
		case StatePaused:
			s.state = StateRunning
			return true
		}
		return false
	}

	if s.state != StateRunning {
		return false
	}

	var changed bool
	switch cmd {
	case CmdMoveLeft:
		changed = s.active.TrySlide(s.board, -1, 0)
	case CmdMoveRight:
		changed = s.active.TrySlide(s.board, 1, 0)
	case CmdSoftDrop:
		changed = s.active.TrySlide(s.board, 0, 1)
	case CmdRotate:
		changed = s.active.TryRotate(s.board)
	case CmdHardDrop:
		s.journal.record(s.steps, cmd)
		s.active.Drop(s.board)
		s.lockActive()
		return true
	default:
		return false
	}

	if changed {
		s.journal.record(s.steps, cmd)
	}
	return changed
}

// Advance feeds one frame's elapsed real time into the fixed-step clock,
// runs every step that became due, and returns the resulting snapshot.
// Nothing accumulates while the session is not Running.
func (s *Session) Advance(delta time.Duration) Snapshot {
	if s.state == StateRunning {
		due := s.clock.Accumulate(delta)
		for range due {
			s.step()
			if s.state != StateRunning {
				break
			}
		}
	}
	return s.Snapshot()
}

// step runs one logical timestep: advance the drop timer and, when it
// fires, pull the piece down one row or lock it.
func (s *Session) step() {
	s.steps++
	if !s.clock.Tick(s.scoring.GravityInterval(s.level)) {
		return
	}
	if !s.active.TrySlide(s.board, 0, 1) {
		s.lockActive()
	}
}

// runUntil steps the simulation until the step counter reaches target or
// the session stops running.
func (s *Session) runUntil(target uint64) {
	for s.state == StateRunning && s.steps < target {
		s.step()
	}
}

// lockActive commits the active piece, clears lines, scores, and promotes
// the next piece. A piece locked above the board, or a new piece that does
// not fit, ends the game.
func (s *Session) lockActive() {
	p := s.active
	if !s.board.Lock(p.Shape, p.X, p.Y, p.Type) {
		s.state = StateGameOver
		return
	}

	s.lastClear = s.board.ClearFullLines()
	if s.lastClear > 0 {
		s.score += s.scoring.Reward(s.lastClear, s.level)
		s.lines += s.lastClear
		s.level = max(s.level, s.scoring.LevelFor(s.lines))
	}

	s.pool.put(p)
	s.active = s.next
	s.next = s.spawn()

	if !s.active.Fits(s.board) {
		s.state = StateGameOver
	}
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Rules returns the rules the session was created with.
func (s *Session) Rules() config.TetrisConfig {
	return s.rules
}

// Journal returns a copy of the current run's journal.
func (s *Session) Journal() Journal {
	j := s.journal
	j.Steps = s.steps
	j.Events = append([]JournalEvent(nil), s.journal.Events...)
	return j
}

// Snapshot returns a copy of everything a renderer needs. It never
// aliases session memory.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Board:           s.board.Grid(),
		Score:           s.score,
		Lines:           s.lines,
		Level:           s.level,
		GravityInterval: s.scoring.GravityInterval(s.level),
		State:           s.state,
		Steps:           s.steps,
		RunSeed:         s.runSeed,
		LastClear:       s.lastClear,
	}
	if s.active != nil {
		snap.Active = *s.active
		snap.HasActive = true
	}
	if s.next != nil {
		snap.Next = *s.next
		snap.HasNext = true
	}
	return snap
}
