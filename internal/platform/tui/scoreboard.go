package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ikbal01/tanks-game/internal/registry"
	"github.com/Ikbal01/tanks-game/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the board list sidebar
	sidebarWidth       = 22  // Width of board list sidebar
	maxScores          = 100 // Max rows to load
	recentBoardID      = ""  // Board of recent battles rather than a score table
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBoard key.Binding
	PrevBoard key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBoard, k.PrevBoard, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBoard, k.PrevBoard},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
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

// board is one page of the scoreboard: a mode's high scores, or the log of
// recent battles.
type board struct {
	ID    string
	Title string
}

func scoreboardBoards() []board {
	var boards []board
	for _, g := range registry.List() {
		boards = append(boards, board{ID: g.ID, Title: g.Title})
	}
	return append(boards, board{ID: recentBoardID, Title: "Recent battles"})
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	boards      []board
	cursor      int
	store       *storage.Store
	scores      []storage.ScoreEntry
	battles     []storage.BattleRecord
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	standalone  bool // quit the program on back
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		boards:      scoreboardBoards(),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

func (m ScoreboardModel) current() board {
	return m.boards[m.cursor]
}

// createTable creates a table with the columns of the current board.
func (m *ScoreboardModel) createTable() table.Model {
	var columns []table.Column
	if m.current().ID == recentBoardID {
		columns = []table.Column{
			{Title: "Date", Width: 13},
			{Title: "Mode", Width: 13},
			{Title: "Result", Width: 20},
			{Title: "Stage", Width: 5},
			{Title: "P1", Width: 7},
			{Title: "P2", Width: 7},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Stage", Width: 6},
			{Title: "Date", Width: 14},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// load reads the rows of the current board from the store.
func (m *ScoreboardModel) load() {
	m.scores, m.battles, m.loadErr = nil, nil, nil
	m.table = m.createTable()

	if m.store != nil {
		if id := m.current().ID; id == recentBoardID {
			m.battles, m.loadErr = m.store.RecentBattles(maxScores)
		} else {
			m.scores, m.loadErr = m.store.TopScores(id, maxScores)
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded rows.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	for i, s := range m.scores {
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Stage),
			s.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	for _, b := range m.battles {
		rows = append(rows, table.Row{
			b.CreatedAt.Format("Jan 02 15:04"),
			b.Mode,
			b.EndReason,
			fmt.Sprintf("%d", b.Stage),
			fmt.Sprintf("%d", b.Score1),
			fmt.Sprintf("%d", b.Score2),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextBoard):
			m.cursor = (m.cursor + 1) % len(m.boards)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevBoard):
			m.cursor = (m.cursor + len(m.boards) - 1) % len(m.boards)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scoreBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	scoreHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES - " + m.current().Title
	if m.current().ID == recentBoardID {
		title = "RECENT BATTLES"
	}
	b.WriteString(centerText(scoreTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", scoreBoxStyle.Render(m.renderTableContent())))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.current().Title), m.width))
		b.WriteString("\n\n")
		b.WriteString(scoreBoxStyle.Render(m.renderTableContent()))
	}

	b.WriteString("\n")
	b.WriteString(scoreHelpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderSidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Boards\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, bd := range m.boards {
		cursor := "  "
		line := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			line = line.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sb.WriteString(line.Render(cursor + bd.Title))
		sb.WriteString("\n")
	}
	return style.Render(sb.String())
}

// renderTableContent renders the table or an explanation of why it is empty.
func (m ScoreboardModel) renderTableContent() string {
	switch {
	case m.store == nil:
		return scoreEmptyStyle.Render("Score database unavailable.")
	case m.loadErr != nil:
		return scoreEmptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.scores) == 0 && len(m.battles) == 0:
		return scoreEmptyStyle.Render("Nothing recorded yet.\nWin a battle to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in the current terminal.
func RunScoreboard(store *storage.Store, width, height int) error {
	model := NewScoreboardModel(store, width, height)
	model.standalone = true

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
