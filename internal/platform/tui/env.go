package tui

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sub-arcade/internal/assets"
	"github.com/vovakirdan/sub-arcade/internal/scoreboard"
	"github.com/vovakirdan/sub-arcade/internal/storage"
)

// storeTimeout bounds every database call made from the UI loop.
const storeTimeout = 2 * time.Second

// Env carries the services shared by every screen and, over SSH, by every
// connected session. The store may be nil; boards then live in memory.
type Env struct {
	Store  *storage.Store
	Assets *assets.Loader
	Logger *log.Logger

	mu     sync.Mutex
	kv     scoreboard.KV
	boards map[string]*scoreboard.Board
}

// NewEnv creates an environment. A nil loader uses the embedded sprites; a nil
// logger discards output.
func NewEnv(store *storage.Store, loader *assets.Loader, logger *log.Logger) *Env {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if loader == nil {
		loader = assets.NewLoader(logger)
	}

	var kv scoreboard.KV = scoreboard.NewMemoryKV()
	if store != nil {
		kv = store
	}

	return &Env{
		Store:  store,
		Assets: loader,
		Logger: logger,
		kv:     kv,
		boards: make(map[string]*scoreboard.Board),
	}
}

// Board returns the shared high-score board of a variant.
func (e *Env) Board(variant string) *scoreboard.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.boards[variant]
	if !ok {
		b = scoreboard.New(e.kv, variant, scoreboard.WithLogger(e.Logger))
		e.boards[variant] = b
	}
	return b
}

// SaveRun records a finished session in the run history. Best effort: a
// failure is logged and the game continues.
func (e *Env) SaveRun(run storage.Run) {
	if e.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	id, err := e.Store.SaveRun(ctx, run)
	if err != nil {
		e.Logger.Warn("could not save run", "variant", run.Variant, "error", err)
		return
	}
	e.Logger.Debug("run saved", "id", id, "variant", run.Variant, "score", run.Score)
}

// Stats returns aggregated run statistics, or nil without a store.
func (e *Env) Stats(variant string) *storage.Stats {
	if e.Store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	st, err := e.Store.VariantStats(ctx, variant)
	if err != nil {
		e.Logger.Warn("could not load stats", "variant", variant, "error", err)
		return nil
	}
	return st
}
