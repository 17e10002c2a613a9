// Package game binds a tag simulation to the platform: it sizes the world
// to the screen, advances it frame by frame and renders it with a HUD.
package game

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tag/internal/config"
	"github.com/vovakirdan/tui-tag/internal/core"
	"github.com/vovakirdan/tui-tag/internal/sim"
)

// HUDHeight is the number of screen rows reserved below the world.
const HUDHeight = 2

// Visual characters for rendering
const (
	TaggedChar  = '@'
	VisibleChar = 'o'
	AgentChar   = '·'
	BorderChar  = '─'
)

// Game runs one scenario.
type Game struct {
	scenario Scenario
	cfg      config.SimConfig // Loaded config with scenario overrides
	runtime  core.RuntimeConfig
	world    *sim.Simulation
	paused   bool
	tooSmall bool
}

// New creates a game for a scenario. The world is built on Reset.
func New(sc Scenario, cfg config.SimConfig) *Game {
	return &Game{
		scenario: sc,
		cfg:      sc.Apply(cfg),
	}
}

// ID returns the scenario identifier.
func (g *Game) ID() string {
	return g.scenario.ID
}

// Title returns the scenario display name.
func (g *Game) Title() string {
	return g.scenario.Title
}

// World returns the running simulation, or nil before a successful Reset
// or while the screen is too small.
func (g *Game) World() *sim.Simulation {
	return g.world
}

// Reset builds a new world for the screen area above the HUD.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	g.runtime = rc
	g.paused = false
	g.tooSmall = false
	g.world = nil

	areaW, areaH := rc.ScreenW, rc.ScreenH-HUDHeight
	if (g.cfg.Grid.Width == 0 && areaW < 1) || (g.cfg.Grid.Height == 0 && areaH < 1) {
		g.tooSmall = true
		return nil
	}

	simCfg, err := g.cfg.ToSim(areaW, areaH)
	if err != nil {
		return fmt.Errorf("game: %s: %w", g.scenario.ID, err)
	}

	rng := rand.New(rand.NewSource(rc.Seed))
	if g.scenario.Place != nil {
		p := g.scenario.Place(simCfg)
		g.world, err = sim.NewFromPlacement(simCfg, rng, p.Positions, p.Velocities, p.Tagged)
	} else {
		g.world, err = sim.New(simCfg, rng)
	}
	if err != nil {
		return fmt.Errorf("game: %s: %w", g.scenario.ID, err)
	}
	return nil
}

// Step advances the world by one tick unless paused. While paused,
// ActionStep advances exactly one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.world == nil {
		return core.StepResult{State: g.State()}
	}
	if g.paused && !in.Has(core.ActionStep) {
		return core.StepResult{State: g.State()}
	}

	tagged := g.world.Tick()
	return core.StepResult{State: g.State(), Tagged: tagged}
}

// State returns the current run state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Paused:   g.paused,
		TooSmall: g.tooSmall,
	}
	if g.world != nil {
		st.Ticks = g.world.Ticks()
		st.Transfers = g.world.Transfers()
	}
	return st
}

// Summary returns the statistics of the current run.
func (g *Game) Summary() core.RunSummary {
	s := core.RunSummary{
		Scenario: g.scenario.ID,
		Seed:     g.runtime.Seed,
	}
	if g.world != nil {
		s.Width = g.world.Width()
		s.Height = g.world.Height()
		s.Agents = g.world.Len()
		s.Ticks = g.world.Ticks()
		s.Transfers = g.world.Transfers()
	}
	return s
}
