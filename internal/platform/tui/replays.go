package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

const maxReplays = 100

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Verify  key.Binding
	Delete  key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.NextTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Verify, k.Delete, k.Back, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayModel is the Bubble Tea model for browsing and verifying stored runs.
type ReplayModel struct {
	tabs      []registry.GameInfo // first entry is "all modes"
	tab       int
	store     *storage.Store
	replays   []storage.Replay
	table     table.Model
	help      help.Model
	keys      ReplayKeyMap
	status    string
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewReplayModel creates the replay browser.
func NewReplayModel(store *storage.Store, width, height int) ReplayModel {
	tabs := append([]registry.GameInfo{{ID: "", Title: "All"}}, registry.List()...)

	h := help.New()
	h.Width = width

	m := ReplayModel{
		tabs:   tabs,
		store:  store,
		keys:   DefaultReplayKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable builds the table for the current size.
func (m *ReplayModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Mode", Width: 11},
		{Title: "Score", Width: 8},
		{Title: "Lines", Width: 6},
		{Title: "Lvl", Width: 4},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // title, tabs, status and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the replays for the current tab.
func (m *ReplayModel) load() {
	m.replays = nil
	if m.store != nil {
		replays, err := m.store.RecentReplays(m.tabs[m.tab].ID, maxReplays)
		if err != nil {
			m.status = err.Error()
		}
		m.replays = replays
	}
	m.updateRows()
}

// updateRows refreshes the table rows from m.replays.
func (m *ReplayModel) updateRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			fmt.Sprint(r.ID),
			r.GameID,
			fmt.Sprint(r.Score),
			fmt.Sprint(r.Lines),
			fmt.Sprint(r.Level),
			formatSteps(r.Steps),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatSteps renders a step count at 60 steps/s as m:ss.
func formatSteps(steps uint64) string {
	secs := steps / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// selected returns the highlighted replay, if any.
func (m ReplayModel) selected() (storage.Replay, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.Replay{}, false
	}
	return m.replays[i], true
}

// Init initializes the replay model.
func (m ReplayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.status = ""
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + len(m.tabs) - 1) % len(m.tabs)
			m.status = ""
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Verify):
			if r, ok := m.selected(); ok && m.store != nil {
				m.status = verifyStatus(m.store, r.ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.selected(); ok && m.store != nil {
				if err := m.store.DeleteReplay(r.ID); err != nil {
					m.status = err.Error()
				} else {
					m.status = fmt.Sprintf("deleted replay %d", r.ID)
				}
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// verifyStatus re-simulates a replay and describes the outcome.
func verifyStatus(store replay.Loader, id int64) string {
	res, err := replay.Verify(store, id)
	if err != nil {
		return "✗ " + err.Error()
	}
	return fmt.Sprintf("✓ replay %d reproduces score %d", id, res.Got.Score)
}

// View renders the replay browser.
func (m ReplayModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("REPLAYS"), m.width))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, len(m.tabs))
	for i, g := range m.tabs {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(centerText(tableStyle.Render(emptyStyle.Render("No replays recorded yet.\nFinished runs are saved automatically.")), m.width))
	} else {
		b.WriteString(centerText(tableStyle.Render(m.table.View()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if the user asked to return to the menu.
func (m ReplayModel) IsGoingBack() bool {
	return m.goingBack
}

// RunReplays runs the replay browser.
// Returns true if the user wants to go back to the menu, false if quitting.
func RunReplays(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewReplayModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ReplayModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
