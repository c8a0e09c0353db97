package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/sub-arcade/internal/assets"
	"github.com/vovakirdan/sub-arcade/internal/config"
	"github.com/vovakirdan/sub-arcade/internal/core"
	"github.com/vovakirdan/sub-arcade/internal/games/submarine"
	"github.com/vovakirdan/sub-arcade/internal/platform/tui"
	"github.com/vovakirdan/sub-arcade/internal/storage"
)

// newLogger builds the root logger. Interactive commands own the terminal,
// so they log to ~/.subrun/subrun.log; w overrides the destination.
func newLogger(w io.Writer, prefix string) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.WarnLevel
	}

	closer := func() {}
	if w == nil {
		w = io.Discard
		if path, ok := logFilePath(); ok {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
				w = f
				closer = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer
}

func logFilePath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	dir := filepath.Join(home, ".subrun")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false
	}
	return filepath.Join(dir, "subrun.log"), true
}

// applyGameFlags hands --config and --difficulty to the game package.
func applyGameFlags() error {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	if flagConfig != "" {
		if _, err := config.LoadSubmarine(flagConfig); err != nil {
			return err
		}
	}
	submarine.SetConfigPath(flagConfig)
	submarine.SetDifficultyPreset(flagDifficulty)
	return nil
}

// openEnv opens the score database and builds the shared services.
// A database failure is logged and the game runs without persistence.
func openEnv(logger *log.Logger) (*tui.Env, func()) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not persist", "path", flagDBPath, "error", err)
	}

	var loader *assets.Loader
	if flagSprites != "" {
		loader = assets.NewLoader(logger, os.DirFS(flagSprites))
	} else {
		loader = assets.NewLoader(logger)
	}

	env := tui.NewEnv(store, loader, logger)
	return env, func() {
		if store != nil {
			store.Close()
		}
	}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// playerName pre-fills the score prompt.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return ""
}
