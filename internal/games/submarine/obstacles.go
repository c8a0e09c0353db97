package submarine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/sub-arcade/internal/config"
	"github.com/vovakirdan/sub-arcade/internal/core"
)

// Obstacle is a sea-floor hazard scrolling toward the submarine.
type Obstacle struct {
	ID      int     // Spawn sequence number
	X, Y    float64 // Top-left corner in world units
	Width   float64
	Height  float64
	Variant int // Index into the configured obstacle variants
	hitbox  core.Box
}

// Bounds returns the full sprite rectangle.
func (o Obstacle) Bounds() core.Box {
	return core.NewBox(o.X, o.Y, o.Width, o.Height)
}

// Hitbox returns the inner collision rectangle.
func (o Obstacle) Hitbox() core.Box {
	return o.Bounds().Offset(o.hitbox)
}

// ObstacleField handles spawning, movement, and removal of obstacles.
type ObstacleField struct {
	obstacles []Obstacle
	variants  []config.ObstacleVariant
	rng       *rand.Rand
	worldW    float64
	groundY   float64
	lastSpawn time.Duration // Session time of the most recent spawn
	nextID    int
}

// NewObstacleField creates an empty field. Spawn timing starts at session time zero.
func NewObstacleField(cfg *config.SubmarineConfig, rng *rand.Rand) *ObstacleField {
	return &ObstacleField{
		obstacles: make([]Obstacle, 0, 8),
		variants:  cfg.Obstacles.Variants,
		rng:       rng,
		worldW:    cfg.World.Width,
		groundY:   cfg.World.GroundY,
	}
}

// Update spawns an obstacle if more than interval has passed since the last
// spawn, moves every obstacle left by speed, and drops those whose right edge
// is no longer inside the track. Returns whether a spawn happened.
func (f *ObstacleField) Update(now, interval time.Duration, speed float64) bool {
	spawned := false
	if now-f.lastSpawn > interval {
		f.spawn()
		f.lastSpawn = now
		spawned = true
	}

	for i := range f.obstacles {
		f.obstacles[i].X -= speed
	}

	kept := f.obstacles[:0]
	for _, o := range f.obstacles {
		if o.X+o.Width > 0 {
			kept = append(kept, o)
		}
	}
	f.obstacles = kept

	return spawned
}

// spawn places a random variant at the right edge, resting on the sea floor.
func (f *ObstacleField) spawn() {
	idx := 0
	if len(f.variants) > 1 {
		idx = f.rng.Intn(len(f.variants))
	}
	v := f.variants[idx]

	f.nextID++
	f.obstacles = append(f.obstacles, Obstacle{
		ID:      f.nextID,
		X:       f.worldW,
		Y:       f.groundY - v.Height,
		Width:   v.Width,
		Height:  v.Height,
		Variant: idx,
		hitbox:  v.Hitbox.Box(),
	})
}

// Collides reports whether hit overlaps any obstacle hitbox.
// Stops at the first match.
func (f *ObstacleField) Collides(hit core.Box) bool {
	for _, o := range f.obstacles {
		if hit.Overlaps(o.Hitbox()) {
			return true
		}
	}
	return false
}

// Obstacles returns the current obstacles, oldest first.
func (f *ObstacleField) Obstacles() []Obstacle {
	return f.obstacles
}
