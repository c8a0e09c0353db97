package submarine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/sub-arcade/internal/config"
	"github.com/vovakirdan/sub-arcade/internal/core"
)

// Player is the submarine. Its X never changes; only Y moves under gravity.
type Player struct {
	X, Y    float64 // Top-left corner in world units
	VelY    float64 // Vertical velocity, negative = up
	Width   float64
	Height  float64
	Jumping bool
	hitbox  core.Box
}

// Bounds returns the full sprite rectangle.
func (p Player) Bounds() core.Box {
	return core.NewBox(p.X, p.Y, p.Width, p.Height)
}

// Hitbox returns the inner collision rectangle.
func (p Player) Hitbox() core.Box {
	return p.Bounds().Offset(p.hitbox)
}

// TickResult reports what happened during one Session.Tick.
type TickResult struct {
	Crashed   bool // Collision ended the session this tick
	Collected int  // Power-ups collected this tick
	LevelUp   bool // Difficulty level increased this tick
}

// Session owns all entity state of one run: created on start, mutated once
// per tick, discarded when the run ends.
type Session struct {
	cfg        *config.SubmarineConfig
	difficulty *config.Difficulty
	tick       time.Duration
	groundTop  float64 // Player Y when resting on the sea floor

	player    Player
	obstacles *ObstacleField
	powerups  *PowerUpField // nil when the variant has no power-ups

	elapsed time.Duration
	ticks   int
	score   int
	bonuses int
	over    bool
}

// NewSession creates a running session. tick is the simulated duration of
// one step; seed drives obstacle variants and power-up heights.
func NewSession(cfg *config.SubmarineConfig, tick time.Duration, seed int64) *Session {
	rng := rand.New(rand.NewSource(seed))
	groundTop := cfg.World.GroundY - cfg.Player.Height

	s := &Session{
		cfg:        cfg,
		difficulty: config.NewDifficulty(*cfg),
		tick:       tick,
		groundTop:  groundTop,
		player: Player{
			X:      cfg.Player.X,
			Y:      groundTop,
			Width:  cfg.Player.Width,
			Height: cfg.Player.Height,
			hitbox: cfg.Player.Hitbox.Box(),
		},
		obstacles: NewObstacleField(cfg, rng),
	}
	if cfg.PowerUps.Enabled {
		s.powerups = NewPowerUpField(cfg, rng)
	}
	return s
}

// Jump starts a jump with the level-scaled impulse.
// Returns false (and changes nothing) while airborne or after the session ended.
func (s *Session) Jump() bool {
	if s.over || s.player.Jumping {
		return false
	}
	s.player.VelY = s.difficulty.JumpImpulse(s.score)
	s.player.Jumping = true
	return true
}

// Tick advances the session by one step.
func (s *Session) Tick() TickResult {
	var res TickResult
	if s.over {
		return res
	}

	s.ticks++
	s.elapsed += s.tick

	speed := s.difficulty.Speed(s.score)
	interval := s.difficulty.SpawnInterval(s.score)

	s.applyPhysics()

	s.obstacles.Update(s.elapsed, interval, speed)
	if s.powerups != nil {
		s.powerups.Update(s.elapsed, speed)
	}

	hit := s.player.Hitbox()
	if s.obstacles.Collides(hit) {
		s.over = true
		res.Crashed = true
		return res
	}

	levelBefore := s.difficulty.Level(s.score)
	if s.powerups != nil {
		if n := s.powerups.Collect(hit); n > 0 {
			s.score += n * s.cfg.PowerUps.Bonus
			s.bonuses += n
			res.Collected = n
		}
	}

	s.score++
	res.LevelUp = s.difficulty.Level(s.score) > levelBefore

	return res
}

// applyPhysics integrates gravity while airborne and lands on the floor.
func (s *Session) applyPhysics() {
	if !s.player.Jumping {
		return
	}

	s.player.VelY += s.cfg.Physics.Gravity
	s.player.Y += s.player.VelY

	if s.player.Y >= s.groundTop {
		s.player.Y = s.groundTop
		s.player.VelY = 0
		s.player.Jumping = false
	}
}

// Player returns a copy of the submarine state.
func (s *Session) Player() Player {
	return s.player
}

// Obstacles returns the live obstacles.
func (s *Session) Obstacles() []Obstacle {
	return s.obstacles.Obstacles()
}

// PowerUps returns the live power-ups (empty when disabled).
func (s *Session) PowerUps() []PowerUp {
	if s.powerups == nil {
		return nil
	}
	return s.powerups.PowerUps()
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Level returns the difficulty level for the current score.
func (s *Session) Level() int {
	return s.difficulty.Level(s.score)
}

// Speed returns the current scroll speed.
func (s *Session) Speed() float64 {
	return s.difficulty.Speed(s.score)
}

// Ticks returns the number of ticks simulated.
func (s *Session) Ticks() int {
	return s.ticks
}

// Bonuses returns the number of power-ups collected.
func (s *Session) Bonuses() int {
	return s.bonuses
}

// Over reports whether a collision ended the session.
func (s *Session) Over() bool {
	return s.over
}
