package tetris

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"tetris", "tetris_bag"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
		if _, err := registry.CreateReplayable(id); err != nil {
			t.Errorf("CreateReplayable(%q): %v", id, err)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	frames := make([]core.InputFrame, 300)
	for i := range frames {
		frames[i] = core.NewInputFrame()
		if i%11 == 0 {
			frames[i].Set(core.ActionRotate)
		}
		if i%13 == 0 {
			frames[i].Set(core.ActionLeft)
		}
		if i%30 == 29 {
			frames[i].Set(core.ActionHardDrop)
		}
	}

	run := func() Snapshot {
		g := New()
		g.Reset(testRuntime(12345))
		for _, in := range frames {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Score != s2.Score || s1.Steps != s2.Steps || s1.RunSeed != s2.RunSeed {
		t.Errorf("runs differ: score %d/%d steps %d/%d", s1.Score, s2.Score, s1.Steps, s2.Steps)
	}
	if s1.Board == nil || len(s1.Board) != len(s2.Board) {
		t.Fatal("missing board in snapshot")
	}
	for row := range s1.Board {
		for col := range s1.Board[row] {
			if s1.Board[row][col] != s2.Board[row][col] {
				t.Fatalf("boards differ at (%d,%d)", row, col)
			}
		}
	}
}

func TestStepWithoutElapsedUsesTickRate(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	for range 61 {
		g.Step(core.NewInputFrame())
	}
	snap := g.Snapshot()
	if snap.Steps != 61 {
		t.Errorf("Steps = %d, want 61", snap.Steps)
	}
	if snap.Active.Y != 1 {
		t.Errorf("Active.Y = %d, want 1 after the first gravity drop", snap.Active.Y)
	}
}

func TestStepAppliesActionsInOrder(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	x := g.Snapshot().Active.X

	in := core.InputFrame{Elapsed: time.Millisecond}
	in.Set(core.ActionLeft)
	in.Set(core.ActionLeft)
	in.Set(core.ActionRight)
	g.Step(in)

	if got := g.Snapshot().Active.X; got != x-1 {
		t.Errorf("Active.X = %d, want %d", got, x-1)
	}
}

func TestPauseAndRestartActions(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	if st := g.Step(in).State; !st.Paused {
		t.Fatal("expected paused state")
	}
	steps := g.Snapshot().Steps
	g.Step(core.InputFrame{Elapsed: time.Second})
	if g.Snapshot().Steps != steps {
		t.Error("time advanced while paused")
	}

	in = core.NewInputFrame()
	in.Set(core.ActionRestart)
	st := g.Step(in).State
	if st.Paused || st.GameOver || st.Score != 0 || st.Level != 1 {
		t.Errorf("unexpected state after restart: %+v", st)
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	cfg := testRuntime(1)
	cfg.ScreenW = 20
	g.Reset(cfg)

	g.Step(core.InputFrame{Elapsed: time.Second})
	if g.Snapshot().Steps != 0 {
		t.Error("time advanced on a too-small screen")
	}

	screen := core.NewScreen(20, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}

	g.Resize(80, 24)
	g.Step(core.InputFrame{Elapsed: 100 * time.Millisecond})
	if g.Snapshot().Steps == 0 {
		t.Error("time did not advance after resize")
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"NEXT", "SCORE", "LINES", "LEVEL", "1000ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	// the active piece is drawn in its own color
	snap := g.Snapshot()
	cells := snap.Active.Cells()
	var row, col int
	for _, c := range cells {
		if c[0] >= 0 {
			row, col = c[0], c[1]
			break
		}
	}
	w, h := layoutSize(BoardWidth, BoardHeight)
	area := core.NewRect(0, 0, 80, 24).CenteredIn(w, h)
	cell := screen.GetCell(area.X+1+col*cellW, area.Y+1+row)
	if cell.Rune != '█' || cell.Color != snap.Active.Type.Color() {
		t.Errorf("active cell = %+v, want colored block", cell)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("expected pause overlay")
	}
}

func TestGameJournalReplay(t *testing.T) {
	g := New()
	g.Reset(testRuntime(77))
	for i := range 500 {
		in := core.InputFrame{Elapsed: 25 * time.Millisecond}
		switch i % 6 {
		case 1:
			in.Set(core.ActionRight)
		case 3:
			in.Set(core.ActionRotate)
		case 5:
			in.Set(core.ActionSoftDrop)
		}
		if i%45 == 44 {
			in.Set(core.ActionHardDrop)
		}
		g.Step(in)
	}

	data, err := g.Journal()
	if err != nil {
		t.Fatalf("Journal: %v", err)
	}

	replayer := New()
	got, err := replayer.Replay(data)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if got != g.State() {
		t.Errorf("Replay state = %+v, want %+v", got, g.State())
	}

	if _, err := replayer.Replay([]byte("version: 9")); err == nil {
		t.Error("expected error for bad journal")
	}
}

func TestBagModeRules(t *testing.T) {
	g := NewBag()
	g.Reset(testRuntime(1))
	if g.Rules().Randomizer != config.RandomizerBag {
		t.Errorf("Randomizer = %q, want bag", g.Rules().Randomizer)
	}
	if g.Title() != "Tetris (7-bag)" {
		t.Errorf("Title = %q", g.Title())
	}
}

func TestConfigPath(t *testing.T) {
	t.Cleanup(func() { SetConfigPath("") })

	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("board:\n  width: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)

	g := New()
	g.Reset(testRuntime(1))
	if g.ConfigErr() != nil {
		t.Fatalf("ConfigErr: %v", g.ConfigErr())
	}
	if g.Rules().Board.Width != 12 || len(g.Snapshot().Board[0]) != 12 {
		t.Errorf("board width = %d, want 12", g.Rules().Board.Width)
	}

	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	g.Reset(testRuntime(1))
	if g.ConfigErr() == nil {
		t.Error("expected error for missing config file")
	}
	if g.Rules().Board.Width != BoardWidth {
		t.Errorf("fallback width = %d, want %d", g.Rules().Board.Width, BoardWidth)
	}
}
