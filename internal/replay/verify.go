// Package replay checks stored runs by re-simulating their journals.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// ErrMismatch is returned when a journal does not reproduce the outcome
// recorded with it.
var ErrMismatch = errors.New("replay: outcome does not match recorded run")

// Result is the outcome of verifying one stored replay.
type Result struct {
	Replay storage.Replay
	Got    core.GameState
}

// OK reports whether the re-simulated outcome matches the recording.
func (r Result) OK() bool {
	return r.Got.Score == r.Replay.Score &&
		r.Got.Lines == r.Replay.Lines &&
		r.Got.Level == r.Replay.Level
}

// Loader is the part of the store Verify needs.
type Loader interface {
	ReplayByID(id int64) (*storage.Replay, error)
}

// Verify loads replay id and re-simulates it with the game that recorded
// it. A mismatch returns the result together with an error wrapping
// ErrMismatch.
func Verify(store Loader, id int64) (Result, error) {
	rec, err := store.ReplayByID(id)
	if err != nil {
		return Result{}, err
	}
	return Check(*rec)
}

// Check re-simulates an already loaded replay.
func Check(rec storage.Replay) (Result, error) {
	game, err := registry.CreateReplayable(rec.GameID)
	if err != nil {
		return Result{Replay: rec}, fmt.Errorf("replay %d: %w", rec.ID, err)
	}

	got, err := game.Replay(rec.Journal)
	if err != nil {
		return Result{Replay: rec}, fmt.Errorf("replay %d: %w", rec.ID, err)
	}

	res := Result{Replay: rec, Got: got}
	if !res.OK() {
		return res, fmt.Errorf("%w: replay %d: got score=%d lines=%d level=%d, recorded score=%d lines=%d level=%d",
			ErrMismatch, rec.ID, got.Score, got.Lines, got.Level, rec.Score, rec.Lines, rec.Level)
	}
	return res, nil
}
