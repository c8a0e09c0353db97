// Package submarine implements Submarine Adventure, an endless runner where
// a submarine hops over sea-floor hazards and collects pearls.
package submarine

import (
	"github.com/vovakirdan/sub-arcade/internal/assets"
	"github.com/vovakirdan/sub-arcade/internal/config"
	"github.com/vovakirdan/sub-arcade/internal/core"
	"github.com/vovakirdan/sub-arcade/internal/registry"
)

// Sprite names shared with the asset loader.
const (
	SpritePlayer  = "player"
	SpritePowerUp = "powerup"
)

// restartGrace is how many ticks after a crash the jump key is ignored, so a
// held key does not immediately start the next run.
const restartGrace = 30

// Variant describes one registered flavour of the game.
type Variant struct {
	ID       string
	Title    string
	PowerUps bool // Pearls spawn and award bonus points
	Classic  bool // Only the first obstacle variant is used
}

// Registered variants.
var (
	Standard = Variant{ID: "submarine", Title: "Submarine Adventure", PowerUps: true}
	Classic  = Variant{ID: "submarine_classic", Title: "Submarine Classic", Classic: true}
)

// Game adapts a Session to the registry.Game contract: it owns the phase
// machine, maps input to session calls and renders.
type Game struct {
	variant Variant
	runtime core.RuntimeConfig
	cfg     config.SubmarineConfig
	sprites *assets.Set
	loaded  bool

	session    *Session
	phase      core.Phase
	restarts   int
	overTicks  int // Ticks spent in PhaseOver
	configured bool
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names use the config default.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.Title
}

// Config returns the active tuning.
func (g *Game) Config() config.SubmarineConfig {
	return g.cfg
}

// Reset loads configuration and prepares a fresh session.
// The game waits in PhaseLoading until sprites are attached.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadSubmarine(configPath)
	if err != nil {
		cfg = config.DefaultSubmarineConfig()
	}
	if difficultyPreset != "" {
		config.ApplySubmarinePreset(&cfg, difficultyPreset)
	}
	g.cfg = applyVariant(cfg, g.variant)
	g.configured = true

	g.restarts = 0
	g.newSession()
	if g.loaded {
		g.phase = core.PhaseReady
	} else {
		g.phase = core.PhaseLoading
	}
}

// applyVariant narrows the config to what the variant plays with.
func applyVariant(cfg config.SubmarineConfig, v Variant) config.SubmarineConfig {
	cfg.PowerUps.Enabled = cfg.PowerUps.Enabled && v.PowerUps
	if v.Classic && len(cfg.Obstacles.Variants) > 1 {
		cfg.Obstacles.Variants = cfg.Obstacles.Variants[:1]
	}
	return cfg
}

// newSession discards the current session and starts a new one.
// Each restart gets a distinct but reproducible seed.
func (g *Game) newSession() {
	g.session = NewSession(&g.cfg, g.runtime.TickDuration(), g.runtime.Seed+int64(g.restarts))
	g.overTicks = 0
}

// Assets lists the sprites this variant draws.
func (g *Game) Assets() []string {
	cfg := g.cfg
	if !g.configured {
		cfg = applyVariant(config.DefaultSubmarineConfig(), g.variant)
	}
	names := []string{SpritePlayer}
	for _, v := range cfg.Obstacles.Variants {
		names = append(names, v.Name)
	}
	if cfg.PowerUps.Enabled {
		names = append(names, SpritePowerUp)
	}
	return names
}

// AttachAssets stores the loaded sprites and unlocks the start command.
func (g *Game) AttachAssets(set *assets.Set) {
	g.sprites = set
	g.loaded = true
	if g.phase == core.PhaseLoading {
		g.phase = core.PhaseReady
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var events []core.Event

	switch g.phase {
	case core.PhaseLoading:
		// Nothing may start before the sprites arrive

	case core.PhaseReady:
		if in.Has(core.ActionJump) {
			g.phase = core.PhaseRunning
			events = append(events, core.EventStarted)
		}

	case core.PhasePaused:
		if in.Has(core.ActionPause) {
			g.phase = core.PhaseRunning
		}

	case core.PhaseRunning:
		if in.Has(core.ActionPause) {
			g.phase = core.PhasePaused
			break
		}
		if in.Has(core.ActionJump) && g.session.Jump() {
			events = append(events, core.EventJumped)
		}
		events = append(events, g.tick()...)

	case core.PhaseOver:
		g.overTicks++
		if in.Has(core.ActionRestart) || (in.Has(core.ActionJump) && g.overTicks > restartGrace) {
			g.restarts++
			g.newSession()
			g.phase = core.PhaseRunning
			events = append(events, core.EventStarted)
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// tick runs one session tick and converts the outcome into events.
func (g *Game) tick() []core.Event {
	var events []core.Event
	res := g.session.Tick()
	if g.session.Over() {
		g.phase = core.PhaseOver
		return append(events, core.EventCrashed)
	}
	if res.Collected > 0 {
		events = append(events, core.EventCollected)
	}
	if res.LevelUp {
		events = append(events, core.EventLevelUp)
	}
	return events
}

// Session returns the active session.
func (g *Game) Session() *Session {
	return g.session
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{Phase: g.phase}
	if g.session != nil {
		st.Score = g.session.Score()
		st.Level = g.session.Level()
		st.Ticks = g.session.Ticks()
		st.Bonuses = g.session.Bonuses()
	}
	st.GameOver = g.phase == core.PhaseOver
	st.Paused = g.phase == core.PhasePaused
	st.RestartGrace = st.GameOver && g.overTicks <= restartGrace
	return st
}

// Register both variants with the registry
func init() {
	for _, v := range []Variant{Standard, Classic} {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}
