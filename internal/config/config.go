// Package config provides YAML-based simulation configuration loading and
// density presets for the tag simulation.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-tag/internal/sim"
)

// SimConfig contains all configuration for a tag simulation run.
type SimConfig struct {
	Grid   GridConfig   `yaml:"grid"`
	Agents AgentsConfig `yaml:"agents"`
	Tag    TagConfig    `yaml:"tag"`
}

// GridConfig defines the world dimensions. Zero means "fit to the screen".
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AgentsConfig defines the population and its movement.
type AgentsConfig struct {
	Count       int     `yaml:"count"`   // Explicit count; overrides density when positive
	Density     float64 `yaml:"density"` // Fraction of cells occupied
	MaxVelocity int32   `yaml:"max_velocity"`
	TurnChance  float64 `yaml:"turn_chance"`
}

// TagConfig defines pursuit and capture parameters.
type TagConfig struct {
	ViewDistance uint32 `yaml:"view_distance"`
	TagRadius    uint32 `yaml:"tag_radius"`
	Cooldown     bool   `yaml:"cooldown"`
}

// Preset represents a named population density.
type Preset string

const (
	PresetSparse  Preset = "sparse"
	PresetNormal  Preset = "normal"
	PresetCrowded Preset = "crowded"
	PresetPacked  Preset = "packed"
)

// Presets lists all presets from emptiest to fullest.
var Presets = []Preset{PresetSparse, PresetNormal, PresetCrowded, PresetPacked}

// DensityForPreset returns the occupied fraction for a preset.
func DensityForPreset(p Preset) (float64, bool) {
	switch p {
	case PresetSparse:
		return 0.01, true
	case PresetNormal:
		return 0.05, true
	case PresetCrowded:
		return 0.2, true
	case PresetPacked:
		return 0.6, true
	default:
		return 0, false
	}
}

// ApplyPreset sets the density from a preset and drops any explicit count.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *SimConfig, preset string) error {
	if preset == "" {
		return nil
	}
	d, ok := DensityForPreset(Preset(preset))
	if !ok {
		return fmt.Errorf("config: unknown preset %q (want sparse, normal, crowded or packed)", preset)
	}
	cfg.Agents.Density = d
	cfg.Agents.Count = 0
	return nil
}

// Validate checks ranges that YAML cannot express.
func (c SimConfig) Validate() error {
	var errs []error
	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		errs = append(errs, fmt.Errorf("config: grid dimensions must not be negative, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Agents.Count < 0 {
		errs = append(errs, fmt.Errorf("config: agents.count must not be negative, got %d", c.Agents.Count))
	}
	if c.Agents.Density < 0 || c.Agents.Density > 1 || math.IsNaN(c.Agents.Density) {
		errs = append(errs, fmt.Errorf("config: agents.density must be within [0, 1], got %v", c.Agents.Density))
	}
	if c.Agents.Count == 0 && c.Agents.Density == 0 {
		errs = append(errs, errors.New("config: one of agents.count or agents.density must be set"))
	}
	if c.Agents.MaxVelocity < 0 {
		errs = append(errs, fmt.Errorf("config: agents.max_velocity must not be negative, got %d", c.Agents.MaxVelocity))
	}
	if c.Agents.TurnChance < 0 || c.Agents.TurnChance > 1 || math.IsNaN(c.Agents.TurnChance) {
		errs = append(errs, fmt.Errorf("config: agents.turn_chance must be within [0, 1], got %v", c.Agents.TurnChance))
	}
	return errors.Join(errs...)
}

// ToSim resolves the config against the available screen area.
// Zero grid dimensions take the screen size; a zero count is derived from
// the density, with at least one agent.
func (c SimConfig) ToSim(screenW, screenH int) (sim.Config, error) {
	if err := c.Validate(); err != nil {
		return sim.Config{}, err
	}

	w, h := c.Grid.Width, c.Grid.Height
	if w == 0 {
		w = screenW
	}
	if h == 0 {
		h = screenH
	}

	n := c.Agents.Count
	if n == 0 {
		n = max(1, int(math.Round(c.Agents.Density*float64(w)*float64(h))))
	}

	out := sim.Config{
		Width:        w,
		Height:       h,
		Agents:       n,
		ViewDistance: c.Tag.ViewDistance,
		TagRadius:    c.Tag.TagRadius,
		MaxVelocity:  c.Agents.MaxVelocity,
		TurnChance:   c.Agents.TurnChance,
		Cooldown:     c.Tag.Cooldown,
	}
	if err := out.Validate(); err != nil {
		return sim.Config{}, fmt.Errorf("config: %w", err)
	}
	return out, nil
}
