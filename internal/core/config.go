package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Ticks     uint64 // Completed simulation ticks
	Transfers uint64 // Tag transfers so far
	Paused    bool   // Whether the simulation is paused
	TooSmall  bool   // Whether the screen cannot fit the world
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State  GameState
	Tagged bool // Whether the tag changed hands this frame
}

// RunSummary describes one simulation run for logging and statistics.
type RunSummary struct {
	Scenario  string
	Width     int
	Height    int
	Agents    int
	Seed      int64
	Ticks     uint64
	Transfers uint64
}

// MeanTicksPerTag returns the average number of ticks between tag
// transfers, or zero before the first transfer.
func (r RunSummary) MeanTicksPerTag() float64 {
	if r.Transfers == 0 {
		return 0
	}
	return float64(r.Ticks) / float64(r.Transfers)
}
