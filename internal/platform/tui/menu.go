package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sub-arcade/internal/core"
	"github.com/vovakirdan/sub-arcade/internal/registry"
)

// MenuItem is one line of the variant picker.
type MenuItem struct {
	GameID string
	Title  string
	Best   *int // Top board score, nil when the board is empty
	Scores bool // Opens the high-score screen instead of a game
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuBestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// menuWaves is drawn under the title.
const menuWaves = "≈≈≈≈≈≈≈≈≈≈≈≈≈≈≈≈≈≈≈≈≈≈≈≈"

// MenuModel picks a variant or opens the high scores.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	quitting   bool
	selected   *MenuItem
	wantScores bool
}

// NewMenuModel lists every registered variant with its best score, followed
// by the high-score entry.
func NewMenuModel(env *Env, cfg core.RuntimeConfig) MenuModel {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	variants := registry.List()
	items := make([]MenuItem, 0, len(variants)+1)
	for _, v := range variants {
		item := MenuItem{GameID: v.ID, Title: v.Title}
		if entries := env.Board(v.ID).Load(ctx); len(entries) > 0 {
			best := entries[0].Score
			item.Best = &best
		}
		items = append(items, item)
	}
	items = append(items, MenuItem{Title: "High Scores", Scores: true})

	return MenuModel{
		items:     items,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and records the choice.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
		case MenuActionDown:
			m.cursor = (m.cursor + 1) % len(m.items)
		case MenuActionScoreboard:
			m.wantScores = true
			return m, tea.Quit
		case MenuActionSelect:
			item := m.items[m.cursor]
			if item.Scores {
				m.wantScores = true
			} else {
				m.selected = &item
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	width := 0
	for _, item := range m.items {
		width = max(width, lipgloss.Width(item.Title))
	}

	items := make([]string, len(m.items))
	for i, item := range m.items {
		line := fmt.Sprintf("%-*s", width, item.Title)
		if item.Best != nil {
			line += menuBestStyle.Render(fmt.Sprintf("  best %d", *item.Best))
		}
		if i == m.cursor {
			line = menuCursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		items[i] = line
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		menuTitleStyle.Render("~ S U B R U N ~"),
		mutedStyle.Render(menuWaves),
		"Dive, dodge, collect pearls",
		"",
		lipgloss.JoinVertical(lipgloss.Left, items...),
		"",
		mutedStyle.Render("↑/↓ move  |  Enter select  |  Tab scores  |  Q quit"),
	)
	return "\n" + lipgloss.PlaceHorizontal(m.config.ScreenW, lipgloss.Center, content) + "\n"
}

// Selected returns the chosen variant, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the player left the menu.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the high scores were requested.
func (m MenuModel) WantsScoreboard() bool {
	return m.wantScores
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
