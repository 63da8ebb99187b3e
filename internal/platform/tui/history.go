package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/quick-skirmish/internal/storage"
)

// History layout constants
const (
	historyRows = 50 // max rows to load per view
	chromeLines = 9  // title, tabs, summary, help and borders
)

// HistoryView selects what the history screen shows.
type HistoryView int

const (
	ViewRecentMatches HistoryView = iota
	ViewPlayerMatches
	ViewTopScores
)

func (v HistoryView) String() string {
	switch v {
	case ViewPlayerMatches:
		return "My matches"
	case ViewTopScores:
		return "Top scores"
	default:
		return "Recent matches"
	}
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
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
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
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

// HistoryModel is the Bubble Tea model for match history and top scores.
type HistoryModel struct {
	store     *storage.Store
	player    string
	views     []HistoryView
	view      int
	stats     *storage.MatchStats
	rowCount  int
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a history model. The "My matches" view is shown
// only when player is set.
func NewHistoryModel(store *storage.Store, player string, width, height int) HistoryModel {
	views := []HistoryView{ViewRecentMatches}
	if player != "" {
		views = append(views, ViewPlayerMatches)
	}
	views = append(views, ViewTopScores)

	m := HistoryModel{
		store:  store,
		player: player,
		views:  views,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.load()
	return m
}

// CurrentView returns the view currently shown.
func (m HistoryModel) CurrentView() HistoryView {
	return m.views[m.view]
}

func (m *HistoryModel) load() {
	m.loadErr = nil
	m.stats = nil
	if m.store == nil {
		m.table = m.newTable(m.columns(), nil)
		m.rowCount = 0
		return
	}

	if stats, err := m.store.MatchStats(); err == nil {
		m.stats = stats
	}

	var rows []table.Row
	switch m.CurrentView() {
	case ViewTopScores:
		scores, err := m.store.TopScores(skirmish.GameID, historyRows)
		m.loadErr = err
		for i, s := range scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				s.Player,
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	default:
		var matches []storage.MatchRecord
		var err error
		if m.CurrentView() == ViewPlayerMatches {
			matches, err = m.store.PlayerMatches(m.player, historyRows)
		} else {
			matches, err = m.store.RecentMatches(historyRows)
		}
		m.loadErr = err
		for _, r := range matches {
			rows = append(rows, matchRow(r))
		}
	}

	m.table = m.newTable(m.columns(), rows)
	m.rowCount = len(rows)
}

func matchRow(r storage.MatchRecord) table.Row {
	outcome := "Draw"
	switch r.Winner {
	case "blue":
		outcome = "Victory"
	case "red":
		outcome = "Defeat"
	}
	return table.Row{
		r.CreatedAt.Format("Jan 02 15:04"),
		r.Player,
		r.Difficulty,
		outcome,
		fmt.Sprintf("%d/%d", r.Rounds, r.MaxTurns),
		fmt.Sprintf("%d-%d", r.BlueSurvivors, r.RedSurvivors),
		fmt.Sprintf("%d", r.Score),
	}
}

func (m HistoryModel) columns() []table.Column {
	if m.CurrentView() == ViewTopScores {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Player", Width: 16},
			{Title: "Date", Width: 14},
		}
	}
	return []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Player", Width: 12},
		{Title: "Level", Width: 7},
		{Title: "Result", Width: 8},
		{Title: "Rounds", Width: 7},
		{Title: "Alive", Width: 6},
		{Title: "Score", Width: 6},
	}
}

func (m HistoryModel) newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-chromeLines)),
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

		case key.Matches(msg, m.keys.NextView):
			m.view = (m.view + 1) % len(m.views)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.view = (m.view + len(m.views) - 1) % len(m.views)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(3, m.height-chromeLines))
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

	b.WriteString(centerText(titleStyle.Render("MATCH HISTORY"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")
	if m.stats != nil {
		b.WriteString(centerText(hintStyle.Render(formatStats(*m.stats)), m.width))
	}
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := tabStyle.
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	tabs := make([]string, len(m.views))
	for i, v := range m.views {
		if i == m.view {
			tabs[i] = activeTabStyle.Render(v.String())
		} else {
			tabs[i] = tabStyle.Render(v.String())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m HistoryModel) renderTableContent() string {
	if m.rowCount > 0 {
		return m.table.View()
	}

	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.store == nil:
		return emptyStyle.Render("No database open.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load history:\n" + m.loadErr.Error())
	default:
		return emptyStyle.Render("Nothing recorded yet.\nFinish a match to see it here!")
	}
}

// formatStats renders a one-line summary of all matches.
func formatStats(s storage.MatchStats) string {
	return fmt.Sprintf("Played %d  |  Won %d  Lost %d  Drawn %d  |  Avg rounds %.1f  |  Best %d",
		s.Played, s.BlueWins, s.RedWins, s.Draws, s.AvgRounds, s.BestScore)
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
func RunHistory(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewHistoryModel(store, player, width, height),
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
