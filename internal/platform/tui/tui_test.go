package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGameKeyMapActions(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		key  string
		want core.Action
	}{
		{"left", core.ActionLeft},
		{"a", core.ActionLeft},
		{"d", core.ActionRight},
		{"s", core.ActionSoftDrop},
		{"up", core.ActionRotate},
		{"w", core.ActionRotate},
		{" ", core.ActionHardDrop},
		{"p", core.ActionPause},
		{"esc", core.ActionPause},
		{"r", core.ActionRestart},
		{"q", core.ActionQuit},
		{"ctrl+c", core.ActionQuit},
		{"z", core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.Action(keyMsg(tt.key)); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func testModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5}
	m := NewModel(tetris.New(), store, cfg, Options{})
	m.Init()
	return m
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelQueuesActionsUntilTick(t *testing.T) {
	m := testModel(t, nil)

	m = step(t, m, keyMsg("p"))
	if m.State().Paused {
		t.Fatal("action applied before the tick")
	}

	m = step(t, m, TickMsg(time.Now()))
	if !m.State().Paused {
		t.Error("pause not applied on tick")
	}
	if len(m.inputFrame.Actions) != 0 {
		t.Error("input frame not cleared after tick")
	}
}

func TestModelElapsedFromTicks(t *testing.T) {
	m := testModel(t, nil)
	g := m.game.(*tetris.Game)

	start := time.Now()
	m = step(t, m, TickMsg(start))
	first := g.Snapshot().Steps

	m = step(t, m, TickMsg(start.Add(100*time.Millisecond)))
	if got := g.Snapshot().Steps - first; got != 6 {
		t.Errorf("100ms advanced %d steps, want 6", got)
	}
}

func TestModelViewHasHelpLine(t *testing.T) {
	m := testModel(t, nil)
	m = step(t, m, TickMsg(time.Now()))

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 24 {
		t.Errorf("view has %d lines, want 24", len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "rotate") {
		t.Errorf("last line should be help, got %q", lines[len(lines)-1])
	}

	m = step(t, m, keyMsg("?"))
	if m.screen.Height() != 24-fullHelpLines {
		t.Errorf("screen height = %d with full help", m.screen.Height())
	}
}

func TestModelQuit(t *testing.T) {
	m := testModel(t, nil)
	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestModelSavesReplayOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	m := testModel(t, store)
	now := time.Now()
	for i := 0; i < 500 && !m.State().GameOver; i++ {
		m = step(t, m, keyMsg(" "))
		now = now.Add(16 * time.Millisecond)
		m = step(t, m, TickMsg(now))
	}
	if !m.State().GameOver {
		t.Fatal("hard dropping every frame should end the game")
	}
	// more ticks must not store the run twice
	m = step(t, m, TickMsg(now.Add(time.Second)))

	replays, err := store.RecentReplays("", 10)
	if err != nil {
		t.Fatalf("RecentReplays: %v", err)
	}
	if len(replays) != 1 {
		t.Fatalf("stored %d replays, want 1", len(replays))
	}
	if replays[0].Score != m.State().Score || replays[0].GameID != "tetris" {
		t.Errorf("unexpected replay %+v", replays[0])
	}
}

func TestMenuSelection(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if len(m.items) < 2 {
		t.Fatalf("expected both modes, got %d items", len(m.items))
	}

	next, _ := m.Update(keyMsg("j"))
	next, _ = next.Update(keyMsg("enter"))
	res := next.(MenuModel).result()
	if res.GameID != m.items[1].ID {
		t.Errorf("selected %q, want %q", res.GameID, m.items[1].ID)
	}

	next, _ = m.Update(keyMsg("tab"))
	if !next.(MenuModel).result().WantsReplays {
		t.Error("tab should open replays")
	}

	next, _ = m.Update(keyMsg("q"))
	if !next.(MenuModel).result().Quit {
		t.Error("q should quit")
	}
}

func TestReplayBrowserVerify(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	g := tetris.New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})
	for range 200 {
		g.Step(core.InputFrame{Elapsed: 20 * time.Millisecond})
	}
	journal, err := g.Journal()
	if err != nil {
		t.Fatalf("Journal: %v", err)
	}
	st := g.State()
	info := g.RunInfo()
	if _, err := store.SaveReplay(storage.Replay{
		GameID: g.ID(), RunSeed: info.Seed, Steps: info.Steps,
		Score: st.Score, Lines: st.Lines, Level: st.Level, Journal: journal,
	}); err != nil {
		t.Fatalf("SaveReplay: %v", err)
	}

	m := NewReplayModel(store, 100, 30)
	if len(m.replays) != 1 {
		t.Fatalf("listed %d replays, want 1", len(m.replays))
	}
	next, _ := m.Update(keyMsg("enter"))
	if status := next.(ReplayModel).status; !strings.HasPrefix(status, "✓") {
		t.Errorf("status = %q, want verified", status)
	}

	next, _ = next.Update(keyMsg("x"))
	if n := len(next.(ReplayModel).replays); n != 0 {
		t.Errorf("%d replays left after delete", n)
	}
}

func TestFormatSteps(t *testing.T) {
	if got := formatSteps(60 * 75); got != "1:15" {
		t.Errorf("formatSteps = %q", got)
	}
}

func TestFPSMeter(t *testing.T) {
	var f fpsMeter
	start := time.Now()
	for i := range 31 {
		f.tick(start.Add(time.Duration(i) * time.Second / 30))
	}
	if f.FPS() < 29.9 || f.FPS() > 30.1 {
		t.Errorf("FPS = %.2f, want 30", f.FPS())
	}
}
