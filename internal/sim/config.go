package sim

import "math"

// Default tuning constants.
const (
	DefaultViewDistance uint32  = 8
	DefaultTagRadius    uint32  = 2
	DefaultMaxVelocity  int32   = 1
	DefaultTurnChance   float64 = 0.1
)

// Config holds the parameters of one simulation instance.
type Config struct {
	Width  int // Grid columns
	Height int // Grid rows
	Agents int // Number of agents, at most Width*Height

	ViewDistance uint32  // Radius of the circular view window around the tagged agent
	TagRadius    uint32  // Half-width of the square capture window
	MaxVelocity  int32   // Per-axis velocity bound
	TurnChance   float64 // Per-tick probability of a random velocity nudge

	// Cooldown excludes the most recently demoted agent from immediate
	// re-capture. Disabling it allows two adjacent agents to swap the tag
	// back and forth every tick.
	Cooldown bool
}

// DefaultConfig returns a Config with the standard tuning for the given world.
func DefaultConfig(width, height, agents int) Config {
	return Config{
		Width:        width,
		Height:       height,
		Agents:       agents,
		ViewDistance: DefaultViewDistance,
		TagRadius:    DefaultTagRadius,
		MaxVelocity:  DefaultMaxVelocity,
		TurnChance:   DefaultTurnChance,
		Cooldown:     true,
	}
}

// Cells returns the number of grid cells.
func (c Config) Cells() int {
	return c.Width * c.Height
}

// Validate checks that the configuration can produce a valid world.
// Every failure is a *ConfigurationError.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return configErr("width", "must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return configErr("height", "must be positive, got %d", c.Height)
	}
	if uint64(c.Width) > math.MaxUint32 || uint64(c.Height) > math.MaxUint32 ||
		uint64(c.Width)*uint64(c.Height) >= math.MaxUint32 {
		return configErr("grid", "%dx%d exceeds the addressable cell count", c.Width, c.Height)
	}
	if c.Agents <= 0 {
		return configErr("agents", "need at least one agent to hold the tag, got %d", c.Agents)
	}
	if c.Agents > c.Cells() {
		return configErr("agents", "%d agents do not fit on a %dx%d grid", c.Agents, c.Width, c.Height)
	}
	if c.MaxVelocity < 0 {
		return configErr("max velocity", "must not be negative, got %d", c.MaxVelocity)
	}
	if c.TurnChance < 0 || c.TurnChance > 1 || math.IsNaN(c.TurnChance) {
		return configErr("turn chance", "must be within [0, 1], got %v", c.TurnChance)
	}
	return nil
}
