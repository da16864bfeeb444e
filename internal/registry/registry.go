// Package registry maps game IDs to factories. Game packages register
// themselves in init(), so hosts (the TUI, the replay CLI) can create a
// game by name without importing it directly.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ErrNotReplayable is returned when a game cannot journal or replay runs.
var ErrNotReplayable = errors.New("registry: game does not support replays")

// Game is the contract between a game and its host.
// Games contain pure logic with no Bubble Tea dependency; the host maps
// keys to actions, measures frame time, and paints the screen.
type Game interface {
	// ID returns a unique identifier (e.g., "tetris").
	// Used for CLI commands and journal storage.
	ID() string

	// Title returns a human-readable name (e.g., "Tetris").
	Title() string

	// Reset starts a fresh run. Called once at start; the RuntimeConfig
	// provides screen dimensions, tick rate and the RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Resize tells the game the screen changed size without ending the run.
	Resize(width, height int)

	// Step consumes one host frame: the actions pressed since the previous
	// frame and the real time that elapsed. Games decide how many fixed
	// simulation steps that time is worth.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst. dst is cleared beforehand.
	Render(dst *core.Screen)

	// State returns score, lines, level and the paused/game-over flags.
	State() core.GameState
}

// Replayable is implemented by games that journal their runs and can
// re-simulate a journal headlessly.
type Replayable interface {
	Game

	// Journal returns the encoded journal of the current run.
	Journal() ([]byte, error)

	// Replay decodes a journal, re-simulates it and returns the final state.
	Replay(journal []byte) (core.GameState, error)

	// RunInfo identifies the current run.
	RunInfo() RunInfo
}

// RunInfo identifies a recorded run: the seed that fixed its piece
// sequence and how many logical steps it lasted.
type RunInfo struct {
	Seed  int64
	Steps uint64
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory. Panics if the ID is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	// Title comes from a throwaway instance
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// CreateReplayable instantiates a game by ID and checks it supports replays.
func CreateReplayable(id string) (Replayable, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	r, ok := g.(Replayable)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotReplayable, id)
	}
	return r, nil
}

// Exists reports whether a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
