package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-tag/internal/sim"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadSim("")
	if err != nil {
		t.Fatalf("LoadSim(\"\") error: %v", err)
	}
	if cfg != DefaultSimConfig() {
		t.Errorf("LoadSim(\"\") = %+v, expected %+v", cfg, DefaultSimConfig())
	}
}

func TestLoadSimCustomPathKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("grid:\n  width: 40\n  height: 20\ntag:\n  tag_radius: 3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSim(path)
	if err != nil {
		t.Fatalf("LoadSim error: %v", err)
	}
	if cfg.Grid.Width != 40 || cfg.Grid.Height != 20 {
		t.Errorf("grid = %dx%d, expected 40x20", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Tag.TagRadius != 3 {
		t.Errorf("TagRadius = %d, expected 3", cfg.Tag.TagRadius)
	}
	if cfg.Tag.ViewDistance != sim.DefaultViewDistance {
		t.Errorf("ViewDistance = %d, expected default %d", cfg.Tag.ViewDistance, sim.DefaultViewDistance)
	}
	if !cfg.Tag.Cooldown {
		t.Error("Cooldown should stay enabled when the file omits it")
	}
}

func TestLoadSimCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSim(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("grid: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSim(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("agents:\n  density: 1.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSim(invalid); err == nil {
		t.Error("out-of-range density should fail")
	}
}

func TestLoadSimUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".tag", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("agents:\n  count: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSim("")
	if err != nil {
		t.Fatalf("LoadSim error: %v", err)
	}
	if cfg.Agents.Count != 7 {
		t.Errorf("Agents.Count = %d, expected 7", cfg.Agents.Count)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  string
		density float64
	}{
		{"sparse", 0.01},
		{"normal", 0.05},
		{"crowded", 0.2},
		{"packed", 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg := DefaultSimConfig()
			cfg.Agents.Count = 99
			if err := ApplyPreset(&cfg, tt.preset); err != nil {
				t.Fatalf("ApplyPreset error: %v", err)
			}
			if cfg.Agents.Density != tt.density {
				t.Errorf("Density = %v, expected %v", cfg.Agents.Density, tt.density)
			}
			if cfg.Agents.Count != 0 {
				t.Errorf("Count = %d, expected 0 after preset", cfg.Agents.Count)
			}
		})
	}

	cfg := DefaultSimConfig()
	if err := ApplyPreset(&cfg, ""); err != nil || cfg != DefaultSimConfig() {
		t.Error("empty preset should be a no-op")
	}
	if err := ApplyPreset(&cfg, "huge"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimConfig)
	}{
		{"negative width", func(c *SimConfig) { c.Grid.Width = -1 }},
		{"negative count", func(c *SimConfig) { c.Agents.Count = -3 }},
		{"density above one", func(c *SimConfig) { c.Agents.Density = 1.2 }},
		{"nothing to place", func(c *SimConfig) { c.Agents.Density = 0 }},
		{"negative velocity", func(c *SimConfig) { c.Agents.MaxVelocity = -1 }},
		{"turn chance above one", func(c *SimConfig) { c.Agents.TurnChance = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSimConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}

	if err := DefaultSimConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestToSimFitsScreen(t *testing.T) {
	cfg := DefaultSimConfig()

	out, err := cfg.ToSim(80, 20)
	if err != nil {
		t.Fatalf("ToSim error: %v", err)
	}
	if out.Width != 80 || out.Height != 20 {
		t.Errorf("grid = %dx%d, expected 80x20", out.Width, out.Height)
	}
	if out.Agents != 80 {
		t.Errorf("Agents = %d, expected 80 (5%% of 1600)", out.Agents)
	}
	if !out.Cooldown || out.TagRadius != sim.DefaultTagRadius {
		t.Errorf("tag settings not carried over: %+v", out)
	}
}

func TestToSimExplicitValues(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.Grid = GridConfig{Width: 10, Height: 5}
	cfg.Agents.Count = 3

	out, err := cfg.ToSim(200, 100)
	if err != nil {
		t.Fatalf("ToSim error: %v", err)
	}
	if out.Width != 10 || out.Height != 5 || out.Agents != 3 {
		t.Errorf("ToSim = %dx%d/%d, expected 10x5/3", out.Width, out.Height, out.Agents)
	}
}

func TestToSimAtLeastOneAgent(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.Agents.Density = 0.0001

	out, err := cfg.ToSim(3, 3)
	if err != nil {
		t.Fatalf("ToSim error: %v", err)
	}
	if out.Agents != 1 {
		t.Errorf("Agents = %d, expected 1", out.Agents)
	}
}

func TestToSimRejectsTooManyAgents(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.Agents.Count = 50

	_, err := cfg.ToSim(5, 5)
	if !errors.Is(err, sim.ErrConfiguration) {
		t.Errorf("ToSim error = %v, expected ErrConfiguration", err)
	}
}

func TestToSimRejectsZeroScreen(t *testing.T) {
	if _, err := DefaultSimConfig().ToSim(0, 10); err == nil {
		t.Error("zero-width screen should fail")
	}
}
