package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sub-arcade/internal/platform/tui"
	"github.com/vovakirdan/sub-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: submarine).

Controls:
  Space/Up   - Start, then jump
  P/Esc      - Pause
  Enter      - Submit score (after game over)
  R          - Restart (after game over)
  B          - Leave (after game over or while paused)
  Ctrl+S     - Save a screenshot to ~/.subrun/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Levels come twice as slowly
  normal - Standard progression from level 0
  hard   - Start at level 2
  fixed  - No progression, stays at the config's initial level

Examples:
  subrun play
  subrun play submarine_classic
  subrun play --difficulty hard
  subrun play --config ./my-sub.yaml --sprites ./art`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "submarine"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'subrun list' to see available variants", gameID)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closeLog := newLogger(nil, "")
	defer closeLog()

	env, closeEnv := openEnv(logger)
	defer closeEnv()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger.Info("starting game", "game", gameID, "fps", flagFPS, "seed", flagSeed)
	if err := tui.Run(game, env, runtimeConfig(), playerName()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
