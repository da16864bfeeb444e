package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// fullHelpLines is the height of the expanded help (the longest column).
const fullHelpLines = 5

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that hosts a running game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	keys       GameKeyMap
	help       help.Model
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	fps        *fpsMeter
	showFPS    bool
	quitting   bool
	runSaved   bool // journal already stored for the current game over
}

// Options tweaks the host.
type Options struct {
	Logger  *log.Logger // nil discards log output
	ShowFPS bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil, in which case finished runs are not recorded.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(0, cfg.ScreenH-1)),
		store:      store,
		logger:     logger,
		keys:       DefaultGameKeyMap(),
		help:       h,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		fps:        &fpsMeter{},
		showFPS:    opts.ShowFPS,
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenH = m.screen.Height()
	m.game.Reset(cfg)
	m.logger.Info("run started", "game", m.game.ID(), "seed", cfg.Seed, "fps", cfg.TickRate)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues the key's action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeScreen()
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case msg.String() == "f":
		m.showFPS = !m.showFPS
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.logger.Info("quit", "score", m.gameState.Score, "game_over", m.gameState.GameOver)
		return m, tea.Quit
	}
	m.inputFrame.Set(action)
	return m, nil
}

// handleResize resizes the screen buffer. The run keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.resizeScreen()
	return m, nil
}

// resizeScreen gives the game everything above the help lines.
func (m *Model) resizeScreen() {
	helpLines := 1
	if m.help.ShowAll {
		helpLines = fullHelpLines
	}
	h := max(0, m.config.ScreenH-helpLines)
	m.screen.Resize(m.config.ScreenW, h)
	m.game.Resize(m.config.ScreenW, h)
}

// handleTick feeds the queued actions and the real time since the last
// tick into the game.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastTick.IsZero() {
		m.inputFrame.Elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now

	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.logTransitions(prev, m.gameState)

	switch {
	case m.gameState.GameOver && !m.runSaved:
		m.saveRun()
		m.runSaved = true
	case !m.gameState.GameOver:
		m.runSaved = false
	}

	m.inputFrame.Clear()
	m.fps.tick(now)

	return m, tickCmd(m.config.TickRate)
}

// logTransitions reports the notable changes between two frames.
func (m Model) logTransitions(prev, cur core.GameState) {
	switch {
	case cur.GameOver && !prev.GameOver:
		m.logger.Info("game over", "score", cur.Score, "lines", cur.Lines, "level", cur.Level)
	case prev.GameOver && !cur.GameOver, cur.Score < prev.Score:
		m.logger.Info("run restarted")
	case cur.Level > prev.Level && prev.Level > 0:
		m.logger.Info("level up", "level", cur.Level, "lines", cur.Lines)
	}
	if cur.Paused != prev.Paused {
		m.logger.Debug("pause toggled", "paused", cur.Paused)
	}
}

// saveRun stores the finished run's journal. Failures are logged; the
// game continues regardless.
func (m Model) saveRun() {
	if m.store == nil {
		return
	}
	rg, ok := m.game.(registry.Replayable)
	if !ok {
		return
	}

	journal, err := rg.Journal()
	if err != nil {
		m.logger.Error("encode journal", "error", err)
		return
	}
	info := rg.RunInfo()
	id, err := m.store.SaveReplay(storage.Replay{
		GameID:  m.game.ID(),
		RunSeed: info.Seed,
		Steps:   info.Steps,
		Score:   m.gameState.Score,
		Lines:   m.gameState.Lines,
		Level:   m.gameState.Level,
		Journal: journal,
	})
	if err != nil {
		m.logger.Error("save replay", "error", err)
		return
	}
	m.logger.Info("replay saved", "id", id, "steps", info.Steps)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game screen followed by the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	status := m.help.View(m.keys)
	if m.showFPS {
		status = fmt.Sprintf("%5.1f fps  ", m.fps.FPS()) + status
	}
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(status)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
