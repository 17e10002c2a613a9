package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-tag/internal/sim"
)

//go:embed defaults/tag.yaml
var defaultTagYAML []byte

// DefaultSimConfig returns the default simulation configuration.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Grid: GridConfig{
			Width:  0,
			Height: 0,
		},
		Agents: AgentsConfig{
			Count:       0,
			Density:     0.05,
			MaxVelocity: sim.DefaultMaxVelocity,
			TurnChance:  sim.DefaultTurnChance,
		},
		Tag: TagConfig{
			ViewDistance: sim.DefaultViewDistance,
			TagRadius:    sim.DefaultTagRadius,
			Cooldown:     true,
		},
	}
}
