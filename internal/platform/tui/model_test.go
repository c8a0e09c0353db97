package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sub-arcade/internal/core"
	"github.com/vovakirdan/sub-arcade/internal/games/submarine"
	"github.com/vovakirdan/sub-arcade/internal/registry"
	"github.com/vovakirdan/sub-arcade/internal/storage"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

func newLoadingModel(t *testing.T, env *Env) GameModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	game, err := registry.Create(submarine.Standard.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	m := NewGameModel(game, env, testRuntime, "ada")
	m.Init()
	return m
}

// newReadyModel returns a model whose sprites have been delivered.
func newReadyModel(t *testing.T, env *Env) GameModel {
	t.Helper()
	m := newLoadingModel(t, env)

	set, err := env.Assets.Load(context.Background(), m.game.Assets()...)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return send(t, m, AssetsLoadedMsg{Loop: m.loop, Set: set})
}

func send(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, expected GameModel", next)
	}
	return gm
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	return send(t, m, TickMsg{Loop: m.loop, At: time.Now()})
}

// crash starts a run and ticks without jumping until it ends.
func crash(t *testing.T, m GameModel) GameModel {
	t.Helper()
	m = send(t, m, keyMsg(" "))
	for range 1000 {
		m = tick(t, m)
		if m.State().GameOver {
			return m
		}
	}
	t.Fatal("Run did not end within 1000 ticks")
	return m
}

func TestGameModelWaitsForAssets(t *testing.T) {
	env := NewEnv(nil, nil, nil)
	m := newLoadingModel(t, env)

	m = send(t, m, AssetsLoadedMsg{Loop: m.loop + 1})
	m = send(t, m, keyMsg(" "))
	m = tick(t, m)
	if m.State().Phase != core.PhaseLoading {
		t.Fatalf("Phase = %v, expected loading while sprites are pending", m.State().Phase)
	}

	set, err := env.Assets.Load(context.Background(), m.game.Assets()...)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m = send(t, m, AssetsLoadedMsg{Loop: m.loop, Set: set})
	if m.State().Phase != core.PhaseReady {
		t.Fatalf("Phase = %v, expected ready after sprites arrive", m.State().Phase)
	}
}

func TestGameModelIgnoresStaleTicks(t *testing.T) {
	m := newReadyModel(t, NewEnv(nil, nil, nil))

	m = send(t, m, keyMsg(" "))
	m = send(t, m, TickMsg{Loop: m.loop - 1})
	if m.State().Phase != core.PhaseReady {
		t.Fatalf("Stale tick advanced the game to %v", m.State().Phase)
	}

	m = tick(t, m)
	if m.State().Phase != core.PhaseRunning {
		t.Fatalf("Phase = %v, expected running", m.State().Phase)
	}
}

func TestGameModelBackPausesThenLeaves(t *testing.T) {
	m := newReadyModel(t, NewEnv(nil, nil, nil))
	m = send(t, m, keyMsg(" "))
	m = tick(t, m)

	m = send(t, m, keyMsg("esc"))
	m = tick(t, m)
	if !m.State().Paused {
		t.Fatal("Esc while running should pause")
	}
	if m.BackToMenu() {
		t.Fatal("Esc while running should not leave the game")
	}

	m = send(t, m, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("Esc while paused should leave the game")
	}
}

func TestGameModelBackBeforeStart(t *testing.T) {
	env := NewEnv(nil, nil, nil)

	loading := send(t, newLoadingModel(t, env), keyMsg("esc"))
	if !loading.BackToMenu() {
		t.Error("Esc while loading should leave the game")
	}

	ready := send(t, newReadyModel(t, env), keyMsg("b"))
	if !ready.BackToMenu() {
		t.Error("B on the ready screen should leave the game")
	}
}

func TestGameModelTickLoopIdlesAfterCrash(t *testing.T) {
	m := crash(t, newReadyModel(t, NewEnv(nil, nil, nil)))

	idleAfter := -1
	for i := range 100 {
		next, cmd := m.Update(TickMsg{Loop: m.loop, At: time.Now()})
		m = next.(GameModel)
		if cmd == nil {
			idleAfter = i
			break
		}
	}
	if idleAfter < 0 {
		t.Fatal("Tick loop kept rescheduling after the run ended")
	}
	if !m.State().GameOver || m.State().RestartGrace {
		t.Fatalf("Loop went idle in the wrong state: %+v", m.State())
	}

	next, cmd := m.Update(keyMsg(" "))
	m = next.(GameModel)
	if cmd == nil {
		t.Fatal("Jump after the grace should re-arm the tick loop")
	}
	m = tick(t, m)
	if m.State().Phase != core.PhaseRunning {
		t.Errorf("Phase = %v, expected a new run", m.State().Phase)
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newReadyModel(t, NewEnv(nil, nil, nil))

	m = send(t, m, keyMsg("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestGameModelSubmitScore(t *testing.T) {
	env := NewEnv(nil, nil, nil)
	m := crash(t, newReadyModel(t, env))
	score := m.State().Score

	m = send(t, m, keyMsg("enter"))
	if m.view != viewPrompt {
		t.Fatalf("Enter at game over should open the prompt, view = %v", m.view)
	}
	if !m.qualifies {
		t.Error("First score on an empty board should qualify")
	}
	if m.nameInput.Value() != "ada" {
		t.Errorf("Prompt should be pre-filled, got %q", m.nameInput.Value())
	}

	m = send(t, m, keyMsg("enter"))
	if m.view != viewBoard {
		t.Fatalf("Submitting should show the board, view = %v", m.view)
	}
	if len(m.entries) != 1 || m.entries[0].Name != "ada" || m.entries[0].Score != score {
		t.Fatalf("Entries = %+v, expected one entry for ada with %d", m.entries, score)
	}
	if m.submitted != 0 {
		t.Errorf("Submitted index = %d, expected 0", m.submitted)
	}

	stored := env.Board(submarine.Standard.ID).Load(context.Background())
	if len(stored) != 1 {
		t.Fatalf("Board holds %d entries, expected 1", len(stored))
	}

	// Back to the game; a second Enter must not submit again
	m = send(t, m, keyMsg("enter"))
	m = send(t, m, keyMsg("enter"))
	if m.view != viewPlay {
		t.Errorf("Score should be submitted once per run, view = %v", m.view)
	}
}

func TestGameModelSubmitTieBelowCutoff(t *testing.T) {
	env := NewEnv(nil, nil, nil)
	m := crash(t, newReadyModel(t, env))
	score := m.State().Score

	board := env.Board(submarine.Standard.ID)
	for range board.Capacity() {
		if _, _, err := board.Submit(context.Background(), "ada", score); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	m = send(t, m, keyMsg("enter"))
	if m.qualifies {
		t.Error("A score tying the cutoff of a full board should not qualify")
	}
	m = send(t, m, keyMsg("enter"))

	if m.submitted != -1 {
		t.Errorf("Submitted index = %d, expected -1 for an entry that did not place", m.submitted)
	}
	if !strings.Contains(m.View(), "did not make the top") {
		t.Error("Board should say the score did not place")
	}
}

func TestGameModelPromptCancel(t *testing.T) {
	m := crash(t, newReadyModel(t, NewEnv(nil, nil, nil)))

	m = send(t, m, keyMsg("enter"))
	m = send(t, m, keyMsg("esc"))
	if m.view != viewPlay {
		t.Fatalf("Esc should close the prompt, view = %v", m.view)
	}
	if m.scoreSent {
		t.Error("Cancelled prompt should not count as submitted")
	}
}

func TestGameModelBoardRestart(t *testing.T) {
	m := crash(t, newReadyModel(t, NewEnv(nil, nil, nil)))
	m = send(t, m, keyMsg("enter"))
	m = send(t, m, keyMsg("enter"))

	m = send(t, m, keyMsg("r"))
	m = tick(t, m)
	if m.State().Phase != core.PhaseRunning {
		t.Fatalf("R on the board should restart, phase = %v", m.State().Phase)
	}
	if m.scoreSent || m.entries != nil {
		t.Error("A new run should reset submission state")
	}
}

func TestGameModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	env := NewEnv(store, nil, nil)
	m := crash(t, newReadyModel(t, env))
	for range 10 {
		m = tick(t, m)
	}

	runs, err := store.TopRuns(context.Background(), submarine.Standard.ID, 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Recorded %d runs, expected 1", len(runs))
	}
	if runs[0].Score != m.State().Score || runs[0].Ticks != m.State().Ticks {
		t.Errorf("Run = %+v, expected score %d ticks %d", runs[0], m.State().Score, m.State().Ticks)
	}
}
