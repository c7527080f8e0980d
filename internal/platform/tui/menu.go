package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dotpop/internal/board"
	"github.com/vovakirdan/dotpop/internal/core"
	"github.com/vovakirdan/dotpop/internal/games/dots"
	"github.com/vovakirdan/dotpop/internal/registry"
	"github.com/vovakirdan/dotpop/internal/storage"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuBestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true)
)

// MenuItem represents a selectable board in the menu.
type MenuItem struct {
	GameID  string
	Title   string
	Palette board.Palette // Shown as a row of colored dots
	Best    int           // Best removed count on record, 0 if none
}

// MenuModel is the Bubble Tea model for the board picker menu.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *MenuItem // Set when user selects a board
	openHistory bool      // True if user pressed Tab for history
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	var stats map[string]*storage.GameStats
	if store != nil {
		//nolint:errcheck // Menu works without stats
		stats, _ = store.AllGamesStats()
	}

	for _, g := range games {
		item := MenuItem{
			GameID: g.ID,
			Title:  g.Title,
		}
		if p, ok := dots.Preset(g.ID); ok {
			//nolint:errcheck // Presets were validated by Configure
			item.Palette, _ = p.BoardPalette()
		}
		if s, ok := stats[g.ID]; ok {
			item.Best = s.BestRemoved
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
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
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionHistory:
		m.openHistory = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  D O T P O P  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a board", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("(no boards configured)", m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		b.WriteString(centerText(m.itemLine(i, item), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: History  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) itemLine(i int, item MenuItem) string {
	title := fmt.Sprintf("%-16s ", item.Title)
	cursor := "  "
	if i == m.cursor {
		cursor = "> "
		title = menuPickStyle.Render(title)
	}

	var swatch strings.Builder
	for _, c := range item.Palette {
		swatch.WriteString(styleFor(dots.TokenColor(c)).Render("●"))
	}

	line := cursor + title + swatch.String()
	if item.Best > 0 {
		line += menuBestStyle.Render(fmt.Sprintf("  [best %d]", item.Best))
	}
	return line
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the session history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text to sit centered in width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID       string
	Config       core.RuntimeConfig
	WantsHistory bool
	Quit         bool
}

// Result summarizes how the menu was left.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config()}

	switch {
	case m.WantsHistory():
		result.WantsHistory = true
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}

	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.Result(), nil
}
