package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items       []registry.GameInfo
	cursor      int
	config      core.RuntimeConfig
	keys        MenuKeyMap
	help        help.Model
	quitting    bool
	selected    *registry.GameInfo
	wantReplays bool
}

// NewMenuModel creates a menu listing every registered game mode.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	h := help.New()
	h.Width = cfg.ScreenW
	return MenuModel{
		items:  registry.List(),
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				selected := m.items[m.cursor]
				m.selected = &selected
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Replays):
			m.wantReplays = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("T E T R I S"), width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(statusStyle.Render(m.help.View(m.keys)), width))
	b.WriteString("\n")
	return b.String()
}

// MenuResult holds the outcome of the menu.
type MenuResult struct {
	GameID       string
	Config       core.RuntimeConfig // updated by resizes while the menu was open
	WantsReplays bool
	Quit         bool
}

// result converts the final model state.
func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.config}
	switch {
	case m.wantReplays:
		res.WantsReplays = true
	case m.selected != nil:
		res.GameID = m.selected.ID
	default:
		res.Quit = true
	}
	return res
}

// RunMenu runs the menu and returns the selection.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
