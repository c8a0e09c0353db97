package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sub-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Leaving a game (B after game over) returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  subrun menu
  subrun menu --fps 30
  subrun menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closeLog := newLogger(nil, "")
	defer closeLog()

	env, closeEnv := openEnv(logger)
	defer closeEnv()

	if err := tui.RunSession(env, runtimeConfig(), playerName()); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
