package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sub-arcade/internal/assets"
	"github.com/vovakirdan/sub-arcade/internal/core"
	"github.com/vovakirdan/sub-arcade/internal/registry"
	"github.com/vovakirdan/sub-arcade/internal/scoreboard"
	"github.com/vovakirdan/sub-arcade/internal/storage"
)

// assetLoadTimeout bounds the sprite preload.
const assetLoadTimeout = 5 * time.Second

// maxNameLen is the longest name accepted at the score prompt.
const maxNameLen = 16

// AssetsLoadedMsg delivers the preloaded sprites to the loop that asked for them.
type AssetsLoadedMsg struct {
	Loop int64
	Set  *assets.Set
	Err  error
}

// loadAssetsCmd preloads the game's sprites off the UI goroutine.
func loadAssetsCmd(loader *assets.Loader, loop int64, names []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), assetLoadTimeout)
		defer cancel()
		set, err := loader.Load(ctx, names...)
		return AssetsLoadedMsg{Loop: loop, Set: set, Err: err}
	}
}

// gameView is what the game screen currently shows.
type gameView int

const (
	viewPlay   gameView = iota
	viewPrompt          // Name entry after game over
	viewBoard           // Leaderboard after submission
)

// GameModel runs one game variant: preload, tick loop, game-over handling,
// score submission and back-to-menu.
type GameModel struct {
	env        *Env
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	loop       int64

	view       gameView
	nameInput  textinput.Model
	entries    []scoreboard.Entry
	submitted  int // Index of the submitted entry in entries, -1 if it did not place
	submitErr  error
	qualifies  bool
	runSaved   bool // Whether the current game over has been recorded
	scoreSent  bool // Whether the current game over has been submitted
	playerName string

	ticking    bool // Whether a tick for loop is pending
	standalone bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. playerName pre-fills the score prompt.
func NewGameModel(game registry.Game, env *Env, cfg core.RuntimeConfig, playerName string) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ti := textinput.New()
	ti.Placeholder = scoreboard.AnonymousName
	ti.CharLimit = maxNameLen
	ti.Width = maxNameLen + 1
	ti.Prompt = "Name: "

	return GameModel{
		env:        env,
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		loop:       nextLoopID(),
		nameInput:  ti,
		submitted:  -1,
		playerName: playerName,
		ticking:    true,
	}
}

// Init resets the game, starts the sprite preload and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(
		loadAssetsCmd(m.env.Assets, m.loop, m.game.Assets()),
		tickCmd(m.loop, m.config.TickRate),
	)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case AssetsLoadedMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		if msg.Err != nil {
			m.env.Logger.Warn("sprite preload failed, drawing placeholders", "game", m.game.ID(), "error", msg.Err)
		} else if missing := msg.Set.Missing(); len(missing) > 0 {
			m.env.Logger.Info("some sprites missing", "game", m.game.ID(), "missing", strings.Join(missing, ","))
		}
		m.game.AttachAssets(msg.Set)
		m.gameState = m.game.State()
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	if m.view == viewPrompt {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.view {
	case viewPrompt:
		return m.handlePromptKey(msg)
	case viewBoard:
		return m.handleBoardKey(msg)
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		return m.quit()

	case action == core.ActionBack:
		if m.gameState.Phase != core.PhaseRunning {
			return m.back()
		}
		// Esc while running pauses
		m.inputFrame.Set(core.ActionPause)

	case action == core.ActionConfirm:
		if m.gameState.GameOver && !m.scoreSent {
			return m.openPrompt()
		}

	case action != core.ActionNone:
		m.inputFrame.Set(action)
		return m, m.resume()
	}

	return m, nil
}

// handlePromptKey edits the name and submits on Enter.
func (m GameModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.submitScore(m.nameInput.Value())
		m.nameInput.Blur()
		m.view = viewBoard
		return m, nil
	case "esc":
		m.nameInput.Blur()
		m.view = viewPlay
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleBoardKey lets the player restart, go back or quit from the leaderboard.
func (m GameModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		return m.quit()
	case action == core.ActionBack:
		return m.back()
	case action == core.ActionRestart:
		m.view = viewPlay
		m.inputFrame.Set(core.ActionRestart)
		return m, m.resume()
	case action == core.ActionConfirm:
		m.view = viewPlay
	}
	return m, nil
}

func (m GameModel) openPrompt() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	m.qualifies = m.env.Board(m.game.ID()).Qualifies(ctx, m.gameState.Score)

	m.view = viewPrompt
	m.nameInput.SetValue(m.playerName)
	m.nameInput.CursorEnd()
	return m, m.nameInput.Focus()
}

func (m GameModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m GameModel) back() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

// resume restarts the tick loop after it went idle.
func (m *GameModel) resume() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tickCmd(m.loop, m.config.TickRate)
}

// idle reports whether the loop may stop: the run is over and either a score
// panel is open or the restart grace has passed. Input re-arms it.
func (m GameModel) idle() bool {
	return m.gameState.GameOver && (m.view != viewPlay || !m.gameState.RestartGrace)
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.view != viewPlay {
		m.ticking = false
		return m, nil
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if wasOver && !m.gameState.GameOver {
		// A new run started
		m.runSaved = false
		m.scoreSent = false
		m.submitted = -1
		m.entries = nil
		m.submitErr = nil
	}

	if result.Has(core.EventCrashed) {
		m.env.Logger.Debug("run ended", "game", m.game.ID(), "score", m.gameState.Score, "ticks", m.gameState.Ticks)
	}

	if m.gameState.GameOver && !m.runSaved {
		if m.gameState.Score > 0 {
			m.env.SaveRun(storage.Run{
				Variant: m.game.ID(),
				Score:   m.gameState.Score,
				Ticks:   m.gameState.Ticks,
				Bonuses: m.gameState.Bonuses,
			})
		}
		m.runSaved = true
	}

	if m.idle() {
		m.ticking = false
		return m, nil
	}
	return m, tickCmd(m.loop, m.config.TickRate)
}

// submitScore stores the final score on the variant's board.
func (m *GameModel) submitScore(name string) {
	m.scoreSent = true
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		m.playerName = trimmed
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	entries, rank, err := m.env.Board(m.game.ID()).Submit(ctx, name, m.gameState.Score)
	m.entries = entries
	m.submitted = rank
	m.submitErr = err
	if err != nil {
		m.env.Logger.Warn("score not persisted", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.env.Logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".subrun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.env.Logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.env.Logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.env.Logger.Info("screenshot saved", "path", path)
}

// Panel styles for the prompt and leaderboard views.
var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("12")).
	Padding(1, 3)

var panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

var highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

var mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewPrompt:
		return m.place(m.promptView())
	case viewBoard:
		return m.place(m.boardView())
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

func (m GameModel) place(content string) string {
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, content)
}

func (m GameModel) promptView() string {
	var b strings.Builder
	title := "SUBMIT SCORE"
	if m.qualifies {
		title = "NEW HIGH SCORE!"
	}
	b.WriteString(panelTitleStyle.Render(title))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Score: %d\n\n", m.gameState.Score)
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Enter: submit  |  Esc: cancel"))
	return panelStyle.Render(b.String())
}

func (m GameModel) boardView() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("HIGH SCORES - " + m.game.Title()))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(mutedStyle.Render("No scores recorded yet."))
		b.WriteString("\n")
	}
	for i, e := range m.entries {
		line := fmt.Sprintf("%2d. %-*s %8d  %s", i+1, maxNameLen, e.Name, e.Score, e.Date)
		if i == m.submitted {
			line = highlightStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.submitted < 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d did not make the top %d.", m.gameState.Score, len(m.entries))))
		b.WriteString("\n")
	}
	if m.submitErr != nil {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Score could not be saved."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("R: restart  |  Enter: back to game  |  B: menu  |  Q: quit"))
	return panelStyle.Render(b.String())
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays a single game until the player quits or leaves.
func Run(game registry.Game, env *Env, cfg core.RuntimeConfig, playerName string) error {
	model := NewGameModel(game, env, cfg, playerName)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
