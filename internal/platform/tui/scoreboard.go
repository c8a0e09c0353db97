package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sub-arcade/internal/registry"
	"github.com/vovakirdan/sub-arcade/internal/scoreboard"
	"github.com/vovakirdan/sub-arcade/internal/storage"
)

// High-score screen layout. Below wideLayoutWidth the stats panel moves under
// the table.
const (
	statsPanelWidth = 26
	wideLayoutWidth = 78
)

// ScoreboardKeyMap defines the key bindings for the high-score screen.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next variant")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev variant")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var boardFrameStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("24")).
	Padding(0, 1)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	activeTabStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("17")).Background(lipgloss.Color("45")).Padding(0, 1)
	statLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ScoreboardModel shows the top entries of each variant next to the run
// history summary.
type ScoreboardModel struct {
	env      *Env
	variants []registry.GameInfo
	current  int

	scores []scoreboard.Entry
	stats  *storage.Stats // nil without a store

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates the high-score screen, starting on the first
// registered variant.
func NewScoreboardModel(env *Env, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		env:      env,
		variants: registry.List(),
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
		width:    width,
		height:   height,
	}
	m.table = m.newTable()
	m.selectVariant(0)
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= wideLayoutWidth
}

// newTable sizes the score table to the terminal.
func (m ScoreboardModel) newTable() table.Model {
	nameWidth := maxNameLen
	if !m.wide() {
		nameWidth = max(min(m.width-34, maxNameLen), 6)
	}
	rows := m.height - 9
	if !m.wide() {
		rows -= 7 // Stats panel sits below the table
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Name", Width: nameWidth},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(max(rows, 3)),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("24")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("17")).Background(lipgloss.Color("45")).Bold(false)
	t.SetStyles(st)
	return t
}

// selectVariant wraps i into range and loads that variant's board and stats.
func (m *ScoreboardModel) selectVariant(i int) {
	if len(m.variants) == 0 {
		return
	}
	m.current = (i%len(m.variants) + len(m.variants)) % len(m.variants)
	id := m.variants[m.current].ID

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	m.scores = m.env.Board(id).Load(ctx)
	m.stats = m.env.Stats(id)
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, 0, len(m.scores))
	for i, e := range m.scores {
		rows = append(rows, table.Row{strconv.Itoa(i + 1), e.Name, strconv.Itoa(e.Score), e.Date})
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
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.selectVariant(m.current + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectVariant(m.current - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	board := boardFrameStyle.Render(m.boardContent())
	stats := boardFrameStyle.Width(statsPanelWidth).Render(m.statsContent())

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, board, " ", stats)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, board, stats)
	}

	center := func(s string) string {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		center(boardTitleStyle.Render("~ HIGH SCORES ~")),
		"",
		center(m.tabs()),
		"",
		center(body),
		"",
		center(mutedStyle.Render(m.help.View(m.keys))),
	)
}

// tabs renders one tab per variant, the selected one highlighted.
func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			tabs[i] = activeTabStyle.Render(v.Title)
		} else {
			tabs[i] = tabStyle.Render(v.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) boardContent() string {
	if len(m.scores) == 0 {
		return mutedStyle.Italic(true).Padding(1, 2).Render("No scores recorded yet.\nDive in to set the first one!")
	}
	return m.table.View()
}

// statsContent summarises the run history of the selected variant.
func (m ScoreboardModel) statsContent() string {
	if m.stats == nil {
		return statLabelStyle.Render("Run history needs\nthe scores database.")
	}
	if m.stats.Runs == 0 {
		return statLabelStyle.Render("No runs yet.")
	}

	lines := []struct{ label, value string }{
		{"Runs", strconv.Itoa(m.stats.Runs)},
		{"Best", strconv.Itoa(m.stats.HighScore)},
		{"Average", fmt.Sprintf("%.0f", m.stats.AvgScore)},
		{"Pearls", strconv.Itoa(m.stats.Bonuses)},
		{"Ticks", strconv.FormatInt(m.stats.TotalTicks, 10)},
		{"Last dive", m.stats.LastPlayed.Format("Jan 02 15:04")},
	}
	var b strings.Builder
	b.WriteString(boardTitleStyle.Render("Run history"))
	for _, l := range lines {
		fmt.Fprintf(&b, "\n%s %s", statLabelStyle.Render(fmt.Sprintf("%-10s", l.label)), l.value)
	}
	return b.String()
}

// Scores returns the entries shown for the selected variant.
func (m ScoreboardModel) Scores() []scoreboard.Entry {
	return m.scores
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(env *Env, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(env, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
