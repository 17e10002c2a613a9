package game

import (
	"github.com/vovakirdan/tui-tag/internal/config"
	"github.com/vovakirdan/tui-tag/internal/registry"
	"github.com/vovakirdan/tui-tag/internal/sim"
)

// Placement is an explicit starting layout for a scenario.
type Placement struct {
	Positions  []sim.Coord
	Velocities []sim.Vec2
	Tagged     sim.AgentID
}

// Scenario describes how a named run shapes the loaded configuration.
type Scenario struct {
	ID    string
	Title string

	Preset config.Preset     // Density preset; empty keeps the loaded density
	Grid   config.GridConfig // Non-zero dimensions override the loaded grid
	Agents int               // Positive value overrides the loaded count

	// Place returns a fixed layout for the resolved world. Nil means
	// random placement.
	Place func(cfg sim.Config) Placement
}

// Apply returns cfg with the scenario's overrides.
func (s Scenario) Apply(cfg config.SimConfig) config.SimConfig {
	if s.Preset != "" {
		//nolint:errcheck // Scenario presets are compile-time constants
		config.ApplyPreset(&cfg, string(s.Preset))
	}
	if s.Grid.Width > 0 {
		cfg.Grid.Width = s.Grid.Width
	}
	if s.Grid.Height > 0 {
		cfg.Grid.Height = s.Grid.Height
	}
	if s.Agents > 0 {
		cfg.Agents.Count = s.Agents
	}
	return cfg
}

// Scenarios lists the built-in scenarios.
var Scenarios = []Scenario{
	{
		ID:    "classic",
		Title: "Classic Tag",
	},
	{
		ID:     "sparse",
		Title:  "Sparse Field",
		Preset: config.PresetSparse,
	},
	{
		ID:     "crowd",
		Title:  "Crowd",
		Preset: config.PresetCrowded,
	},
	{
		ID:     "packed",
		Title:  "Packed Hall",
		Preset: config.PresetPacked,
	},
	{
		ID:     "duel",
		Title:  "Duel",
		Grid:   config.GridConfig{Width: 32, Height: 12},
		Agents: 2,
		Place:  duelPlacement,
	},
}

// duelPlacement puts the tagged agent and a single runner on opposite
// sides of the middle row, both at rest.
func duelPlacement(cfg sim.Config) Placement {
	mid := uint32(cfg.Height / 2)
	return Placement{
		Positions: []sim.Coord{
			sim.C(1, mid),
			sim.C(uint32(cfg.Width-2), mid),
		},
		Velocities: []sim.Vec2{sim.V(0, 0), sim.V(0, 0)},
		Tagged:     0,
	}
}

// Register every built-in scenario with the registry
func init() {
	for _, sc := range Scenarios {
		registry.Register(sc.ID, func(cfg config.SimConfig) registry.Game {
			return New(sc, cfg)
		})
	}
}
