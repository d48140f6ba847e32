package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Input polls per second (default 30)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState represents the current state of a game.
// Returned by State() to communicate status to the platform.
type GameState struct {
	Level    int  // Current level, 1-indexed
	Moves    int  // Player steps taken in the current level
	Pushes   int  // Box steps taken in the current level
	Finished bool // Every level of the pack has been cleared
	Failed   bool // A level could not be loaded; only navigation is accepted
	MusicOn  bool // Whether background music should be playing
}

// EventKind identifies something notable that happened during a step.
type EventKind int

const (
	// EventLevelCleared fires when the last box reaches a goal.
	EventLevelCleared EventKind = iota + 1
	// EventLevelLoaded fires after a level transition or restart.
	EventLevelLoaded
)

// Event describes a notable step outcome for the platform (records, sounds).
type Event struct {
	Kind   EventKind
	Level  int    // 1-indexed level the event refers to
	Name   string // Level name as known by the level source
	Moves  int
	Pushes int
}

// StepResult is returned by Step() after each processed input frame.
type StepResult struct {
	State  GameState
	Events []Event
}
