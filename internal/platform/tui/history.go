package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dotpop/internal/registry"
	"github.com/vovakirdan/dotpop/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show board list sidebar
	sidebarWidth       = 20  // Width of board list sidebar
	maxSessions        = 100 // Max sessions to load
)

// HistoryView selects which sessions the history table lists.
type HistoryView int

const (
	HistoryBest HistoryView = iota
	HistoryRecent
)

func (v HistoryView) String() string {
	if v == HistoryRecent {
		return "RECENT"
	}
	return "BEST"
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBoard key.Binding
	PrevBoard key.Binding
	Toggle    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBoard, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBoard, k.PrevBoard},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextBoard: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next board"),
		),
		PrevBoard: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev board"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the session history screen.
type HistoryModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	view        HistoryView
	sessions    []storage.Session
	stats       *storage.GameStats
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a new history model, starting on gameID when it
// names a registered board.
func NewHistoryModel(store *storage.Store, width, height int, gameID string) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		games:       registry.List(),
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	for i, g := range m.games {
		if g.ID == gameID {
			m.gameCursor = i
		}
	}

	m.table = m.createTable()
	m.reload()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Popped", Width: 7},
		{Title: "Moves", Width: 6},
		{Title: "Largest", Width: 8},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 13},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Give spare room to the player column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := tableWidth - used; extra > 0 {
		columns[4].Width += min(extra, 14)
	}

	height := m.height - 10 // Title, stats line, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// currentID returns the ID of the board being shown, or "" if none.
func (m HistoryModel) currentID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// reload fetches sessions and stats for the current board and view.
func (m *HistoryModel) reload() {
	m.sessions = nil
	m.stats = nil

	id := m.currentID()
	if m.store != nil && id != "" {
		var sessions []storage.Session
		var err error
		if m.view == HistoryRecent {
			sessions, err = m.store.RecentSessions(id, maxSessions)
		} else {
			sessions, err = m.store.BestSessions(id, maxSessions)
		}
		if err == nil {
			m.sessions = sessions
		}
		if stats, err := m.store.GameStats(id); err == nil {
			m.stats = stats
		}
	}

	m.table.SetRows(historyRows(m.sessions))
	m.table.GotoTop()
}

// historyRows formats sessions as table rows.
func historyRows(sessions []storage.Session) []table.Row {
	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", s.Removed),
			fmt.Sprintf("%d", s.Selections),
			fmt.Sprintf("%d", s.Largest),
			s.Player,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextBoard):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevBoard):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.view == HistoryBest {
				m.view = HistoryRecent
			} else {
				m.view = HistoryBest
			}
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(historyRows(m.sessions))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("%s SESSIONS", m.view)
	if len(m.games) > 0 {
		title = fmt.Sprintf("%s SESSIONS - %s", m.view, m.games[m.gameCursor].Title)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes all stored sessions for the current board.
func (m HistoryModel) statsLine() string {
	if m.stats == nil || m.stats.SessionCount == 0 {
		return "no sessions yet"
	}
	return fmt.Sprintf("%d sessions | best %d | avg %.1f | largest region %d",
		m.stats.SessionCount, m.stats.BestRemoved, m.stats.AvgRemoved, m.stats.Largest)
}

// renderWideLayout renders the history with a sidebar for board selection.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Boards\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := g.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the history with board tabs above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.games) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.games[m.gameCursor].Title), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nPop some dots first!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int, gameID string) (goBack bool, err error) {
	model := NewHistoryModel(store, width, height, gameID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
