package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the host (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended by collision
	Cleared  bool // Whether the board filled up completely
	Paused   bool // Whether the game is paused
}

// Finished reports whether the game reached a terminal state.
func (s GameState) Finished() bool {
	return s.GameOver || s.Cleared
}

// Event is a discrete occurrence reported by a game during one frame.
type Event int

const (
	EventNone      Event = iota
	EventStep            // The simulation advanced one step
	EventAte             // A target was consumed
	EventCollision       // The creature ran into itself
	EventGridFull        // No free cell is left for a new target
	EventRestart         // The session was reinitialized
)

// String returns a lowercase name for the event.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventStep:
		return "step"
	case EventAte:
		return "ate"
	case EventCollision:
		return "collision"
	case EventGridFull:
		return "grid_full"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// StepResult is returned by Game.Update() after each frame.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the frame produced the given event.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
