// Package registry provides a global registry for scenario factories.
// Scenarios register themselves in init() functions, allowing the CLI
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tag/internal/config"
	"github.com/vovakirdan/tui-tag/internal/core"
)

// Game is the interface the platform drives each frame.
// Implementations contain pure logic with no Bubble Tea dependency.
type Game interface {
	// ID returns the scenario identifier (e.g., "classic", "duel").
	// Used for CLI commands and run statistics.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh world sized to the runtime screen and seeded
	// from cfg.Seed. Called at start, on restart and on resize.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one frame according to the input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current world into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current run state.
	State() core.GameState

	// Summary returns the statistics of the current run.
	Summary() core.RunSummary
}

// GameInfo contains metadata about a registered scenario.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new scenario instance from the loaded configuration.
type Factory func(cfg config.SimConfig) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f(config.DefaultSimConfig()).Title()
}

// List returns information about all registered scenarios, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a scenario by its ID.
// Returns an error if the ID is not registered.
func Create(id string, cfg config.SimConfig) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}

	return f(cfg), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
