package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type stubGame struct {
	id string
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Resize(int, int) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

type stubReplayable struct {
	stubGame
}

func (g *stubReplayable) Journal() ([]byte, error) { return []byte("j"), nil }
func (g *stubReplayable) Replay([]byte) (core.GameState, error) {
	return core.GameState{Score: 42}, nil
}
func (g *stubReplayable) RunInfo() RunInfo { return RunInfo{Seed: 7, Steps: 3} }

// withEmptyRegistry swaps in a fresh registry for the duration of a test.
func withEmptyRegistry(t *testing.T) {
	t.Helper()
	mu.Lock()
	saved := entries
	entries = make(map[string]entry)
	mu.Unlock()

	t.Cleanup(func() {
		mu.Lock()
		entries = saved
		mu.Unlock()
	})
}

func TestRegisterAndCreate(t *testing.T) {
	withEmptyRegistry(t)

	Register("zeta", func() Game { return &stubGame{id: "zeta"} })
	Register("alpha", func() Game { return &stubGame{id: "alpha"} })

	if !Exists("alpha") || !Exists("zeta") {
		t.Fatal("registered games should exist")
	}
	if Exists("missing") {
		t.Error("unregistered game should not exist")
	}

	list := List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d games, expected 2", len(list))
	}
	if list[0].ID != "alpha" || list[1].ID != "zeta" {
		t.Errorf("List() not sorted by ID: %v", list)
	}
	if list[0].Title != "Stub alpha" {
		t.Errorf("Title = %q, expected %q", list[0].Title, "Stub alpha")
	}

	g, err := Create("zeta")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "zeta" {
		t.Errorf("Create returned game %q", g.ID())
	}

	g2, _ := Create("zeta")
	if g == g2 {
		t.Error("Create should return a new instance each time")
	}
}

func TestCreateUnknown(t *testing.T) {
	withEmptyRegistry(t)

	if _, err := Create("nope"); err == nil {
		t.Error("Create of unknown game should fail")
	}
	if _, err := CreateReplayable("nope"); err == nil {
		t.Error("CreateReplayable of unknown game should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	withEmptyRegistry(t)

	Register("dup", func() Game { return &stubGame{id: "dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup", func() Game { return &stubGame{id: "dup"} })
}

func TestCreateReplayable(t *testing.T) {
	withEmptyRegistry(t)

	Register("plain", func() Game { return &stubGame{id: "plain"} })
	Register("rec", func() Game { return &stubReplayable{stubGame{id: "rec"}} })

	if _, err := CreateReplayable("plain"); !errors.Is(err, ErrNotReplayable) {
		t.Errorf("expected ErrNotReplayable, got %v", err)
	}

	r, err := CreateReplayable("rec")
	if err != nil {
		t.Fatalf("CreateReplayable failed: %v", err)
	}
	got, err := r.Replay(nil)
	if err != nil || got.Score != 42 {
		t.Errorf("Replay() = %+v, %v", got, err)
	}
	if info := r.RunInfo(); info.Seed != 7 || info.Steps != 3 {
		t.Errorf("RunInfo() = %+v", info)
	}
}
