package submarine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/sub-arcade/internal/config"
	"github.com/vovakirdan/sub-arcade/internal/core"
)

// PowerUp is a floating pearl worth a fixed bonus when touched.
type PowerUp struct {
	ID        int
	X, Y      float64
	Width     float64
	Height    float64
	Collected bool
}

// Bounds returns the pearl rectangle. Pearls use their full bounds as hitbox.
func (p PowerUp) Bounds() core.Box {
	return core.NewBox(p.X, p.Y, p.Width, p.Height)
}

// PowerUpField spawns pearls on a fixed period, independent of obstacles.
type PowerUpField struct {
	powerups  []PowerUp
	cfg       config.PowerUpConfig
	period    time.Duration
	rng       *rand.Rand
	worldW    float64
	lastSpawn time.Duration
	nextID    int
}

// NewPowerUpField creates an empty field.
func NewPowerUpField(cfg *config.SubmarineConfig, rng *rand.Rand) *PowerUpField {
	return &PowerUpField{
		powerups: make([]PowerUp, 0, 4),
		cfg:      cfg.PowerUps,
		period:   config.Millis(cfg.PowerUps.PeriodMs),
		rng:      rng,
		worldW:   cfg.World.Width,
	}
}

// Update spawns on the fixed period, moves pearls left and prunes them
// once off-screen. Returns whether a spawn happened.
func (f *PowerUpField) Update(now time.Duration, speed float64) bool {
	spawned := false
	if now-f.lastSpawn > f.period {
		f.spawn()
		f.lastSpawn = now
		spawned = true
	}

	for i := range f.powerups {
		f.powerups[i].X -= speed
	}
	f.prune()

	return spawned
}

// spawn places a pearl at the right edge at a random height within the band.
func (f *PowerUpField) spawn() {
	y := f.cfg.MinY
	if band := f.cfg.MaxY - f.cfg.MinY; band > 0 {
		y += f.rng.Float64() * band
	}

	f.nextID++
	f.powerups = append(f.powerups, PowerUp{
		ID:     f.nextID,
		X:      f.worldW,
		Y:      y,
		Width:  f.cfg.Width,
		Height: f.cfg.Height,
	})
}

// Collect marks every pearl overlapping hit as collected, removes them and
// returns how many were taken.
func (f *PowerUpField) Collect(hit core.Box) int {
	n := 0
	for i := range f.powerups {
		if !f.powerups[i].Collected && hit.Overlaps(f.powerups[i].Bounds()) {
			f.powerups[i].Collected = true
			n++
		}
	}
	if n > 0 {
		f.prune()
	}
	return n
}

// prune drops collected pearls and those past the left edge.
func (f *PowerUpField) prune() {
	kept := f.powerups[:0]
	for _, p := range f.powerups {
		if !p.Collected && p.X+p.Width > 0 {
			kept = append(kept, p)
		}
	}
	f.powerups = kept
}

// PowerUps returns the live pearls.
func (f *PowerUpField) PowerUps() []PowerUp {
	return f.powerups
}
