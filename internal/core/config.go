package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means seed from the clock
	}
}

// TickDuration returns the simulated duration of one tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// Phase is the lifecycle stage of a game session.
type Phase int

const (
	PhaseLoading Phase = iota // Assets not yet attached; start is refused
	PhaseReady                // Waiting for the start command
	PhaseRunning
	PhasePaused
	PhaseOver // Collision ended the session; score is frozen
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int   // Current score
	Level    int   // Current difficulty level
	Ticks    int   // Ticks simulated in the current session
	Bonuses  int   // Power-ups collected in the current session
	Phase    Phase // Lifecycle stage
	GameOver bool  // Whether the session has ended
	Paused   bool  // Whether the session is paused

	// RestartGrace is set after a game over while the jump key cannot yet
	// start a new run.
	RestartGrace bool
}

// Event is something notable that happened during a tick.
type Event int

const (
	EventStarted Event = iota + 1
	EventJumped
	EventCollected
	EventLevelUp
	EventCrashed
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventJumped:
		return "jumped"
	case EventCollected:
		return "collected"
	case EventLevelUp:
		return "level_up"
	case EventCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the given event occurred during the tick.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
