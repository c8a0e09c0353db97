package submarine

import (
	"math"
	"testing"

	"github.com/vovakirdan/sub-arcade/internal/config"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestSession(t *testing.T, seed int64) (*Session, config.SubmarineConfig) {
	t.Helper()
	cfg := config.DefaultSubmarineConfig()
	return NewSession(&cfg, tick60, seed), cfg
}

func TestSessionStartsGrounded(t *testing.T) {
	s, cfg := newTestSession(t, 1)
	p := s.Player()

	if p.Y != cfg.World.GroundY-cfg.Player.Height {
		t.Errorf("player Y = %v, expected resting on floor at %v", p.Y, cfg.World.GroundY-cfg.Player.Height)
	}
	if p.Jumping || p.VelY != 0 {
		t.Errorf("new player should be grounded and still, got jumping=%v vel=%v", p.Jumping, p.VelY)
	}
	if s.Score() != 0 || s.Ticks() != 0 || s.Over() {
		t.Error("new session should have zero score, zero ticks and not be over")
	}
}

func TestSessionGravityAndLanding(t *testing.T) {
	s, cfg := newTestSession(t, 1)
	groundTop := cfg.World.GroundY - cfg.Player.Height
	startX := s.Player().X

	if !s.Jump() {
		t.Fatal("jump from the floor should succeed")
	}
	if v := s.Player().VelY; v != cfg.Physics.JumpImpulse {
		t.Fatalf("VelY after jump = %v, expected %v", v, cfg.Physics.JumpImpulse)
	}

	landed := false
	for i := 0; i < 100; i++ {
		before := s.Player()
		s.Tick()
		after := s.Player()

		if after.X != startX {
			t.Fatalf("player X changed from %v to %v", startX, after.X)
		}
		if !after.Jumping {
			if after.Y != groundTop || after.VelY != 0 {
				t.Errorf("landing should clamp to %v with zero velocity, got Y=%v VelY=%v", groundTop, after.Y, after.VelY)
			}
			landed = true
			break
		}
		if !approxEqual(after.VelY-before.VelY, cfg.Physics.Gravity) {
			t.Fatalf("tick %d: velocity changed by %v, expected gravity %v", i, after.VelY-before.VelY, cfg.Physics.Gravity)
		}
		if !approxEqual(after.Y-before.Y, after.VelY) {
			t.Fatalf("tick %d: position changed by %v, expected post-increment velocity %v", i, after.Y-before.Y, after.VelY)
		}
	}
	if !landed {
		t.Fatal("player never landed")
	}
}

func TestSessionJumpWhileAirborneIsNoop(t *testing.T) {
	s, _ := newTestSession(t, 1)
	s.Jump()
	s.Tick()
	s.Tick()

	before := s.Player()
	if s.Jump() {
		t.Error("jump while airborne should be refused")
	}
	after := s.Player()
	if after.VelY != before.VelY || after.Jumping != before.Jumping {
		t.Errorf("airborne jump changed state: before %+v, after %+v", before, after)
	}
}

// Every default obstacle variant reaches the player's hitbox on the same tick:
// first spawn at tick 91, overlap 117 ticks later at speed 6.
func TestSessionCrashEndsSession(t *testing.T) {
	s, _ := newTestSession(t, 5)

	var crashTick int
	for i := 1; i <= 1000; i++ {
		res := s.Tick()
		if res.Crashed {
			crashTick = i
			break
		}
	}

	if crashTick != 208 {
		t.Fatalf("crash at tick %d, expected 208", crashTick)
	}
	if !s.Over() {
		t.Error("session should be over after a crash")
	}
	if s.Score() != 207 {
		t.Errorf("score = %d, expected 207 (no increment on the losing tick)", s.Score())
	}

	s.Tick()
	if s.Score() != 207 || s.Ticks() != 208 {
		t.Errorf("ended session should be frozen, got score=%d ticks=%d", s.Score(), s.Ticks())
	}
	if s.Jump() {
		t.Error("jump after the session ended should be refused")
	}
}

func TestSessionPowerUpBonus(t *testing.T) {
	cfg := config.DefaultSubmarineConfig()
	// Pearls float right through the grounded player; obstacles stay away
	cfg.PowerUps.MinY = 215
	cfg.PowerUps.MaxY = 215
	cfg.PowerUps.PeriodMs = 100
	cfg.Obstacles.BaseIntervalMs = 60000

	s := NewSession(&cfg, tick60, 1)

	collectedAt := 0
	for i := 1; i <= 300; i++ {
		res := s.Tick()
		if res.Crashed {
			t.Fatalf("unexpected crash at tick %d", i)
		}
		if res.Collected > 0 && collectedAt == 0 {
			collectedAt = i
		}
		if want := s.Ticks() + cfg.PowerUps.Bonus*s.Bonuses(); s.Score() != want {
			t.Fatalf("tick %d: score = %d, expected ticks + bonus = %d", i, s.Score(), want)
		}
	}

	if collectedAt == 0 {
		t.Fatal("no pearl was collected")
	}
	for _, p := range s.PowerUps() {
		if p.Collected {
			t.Error("collected pearls should be removed")
		}
		if p.X+p.Width <= 0 {
			t.Error("off-screen pearls should be pruned")
		}
	}
}

func TestSessionWithoutPowerUps(t *testing.T) {
	cfg := config.DefaultSubmarineConfig()
	cfg.PowerUps.Enabled = false
	s := NewSession(&cfg, tick60, 1)

	for i := 0; i < 400 && !s.Over(); i++ {
		s.Tick()
	}
	if len(s.PowerUps()) != 0 || s.Bonuses() != 0 {
		t.Error("disabled power-ups should never spawn")
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() (int, []int) {
		s, _ := newTestSession(t, 12345)
		var variants []int
		lastID := 0
		for i := 1; i <= 3000 && !s.Over(); i++ {
			if i%37 == 0 {
				s.Jump()
			}
			s.Tick()
			for _, o := range s.Obstacles() {
				if o.ID > lastID {
					lastID = o.ID
					variants = append(variants, o.Variant)
				}
			}
		}
		return s.Score(), variants
	}

	score1, v1 := run()
	score2, v2 := run()

	if score1 != score2 {
		t.Errorf("determinism failed: scores differ, %d vs %d", score1, score2)
	}
	if len(v1) != len(v2) {
		t.Fatalf("determinism failed: %d vs %d obstacles", len(v1), len(v2))
	}
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("determinism failed: obstacle %d variant %d vs %d", i, v1[i], v2[i])
		}
	}
}

func TestSessionLevelUp(t *testing.T) {
	cfg := config.DefaultSubmarineConfig()
	cfg.Difficulty.LevelStep = 50
	cfg.Obstacles.BaseIntervalMs = 600000
	cfg.PowerUps.Enabled = false
	s := NewSession(&cfg, tick60, 1)

	ups := 0
	for i := 0; i < 120; i++ {
		if s.Tick().LevelUp {
			ups++
		}
	}
	if ups != 2 {
		t.Errorf("expected 2 level-ups at scores 50 and 100, got %d", ups)
	}
	if s.Level() != 2 {
		t.Errorf("Level() = %d, expected 2", s.Level())
	}
	if !approxEqual(s.Speed(), cfg.Physics.BaseSpeed+2*cfg.Difficulty.SpeedPerLevel) {
		t.Errorf("Speed() = %v, expected base + 2 levels", s.Speed())
	}
}
