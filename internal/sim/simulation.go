// Package sim implements a grid-based pursuit/evasion simulation.
//
// One agent is tagged at any time. Each tick every agent wanders, the tagged
// agent chases the nearest agent it can see while those agents flee, and the
// tag passes to the first eligible agent within capture range.
//
// The package has no dependencies beyond the standard library and is fully
// deterministic for a given Rand. A Simulation is not safe for concurrent use;
// run independent instances in parallel instead.
package sim

// Simulation owns the spatial index and agent state of one world.
type Simulation struct {
	cfg    Config
	rng    Rand
	index  *SpatialIndex
	agents *AgentSet

	lastTagged AgentID // Most recently demoted agent, NoAgent before the first transfer
	ticks      uint64
	transfers  uint64
}

// NewSimulation creates a simulation with default tuning.
func NewSimulation(width, height, agents int, rng Rand) (*Simulation, error) {
	return New(DefaultConfig(width, height, agents), rng)
}

// New creates a simulation with agents placed on distinct, uniformly sampled
// cells. Agent 0 starts tagged.
func New(cfg Config, rng Rand) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := newEmpty(cfg, rng)

	// Floyd's sampling yields a uniform set of cells but not a uniform order,
	// so the cells are shuffled before ids are assigned.
	total := cfg.Cells()
	chosen := make(map[int]struct{}, cfg.Agents)
	cells := make([]int, 0, cfg.Agents)
	for j := total - cfg.Agents; j < total; j++ {
		k := rng.Intn(j + 1)
		if _, taken := chosen[k]; taken {
			k = j
		}
		chosen[k] = struct{}{}
		cells = append(cells, k)
	}
	for i := len(cells) - 1; i > 0; i-- {
		k := rng.Intn(i + 1)
		cells[i], cells[k] = cells[k], cells[i]
	}

	for _, k := range cells {
		s.agents.add(s.index, s.index.coordAt(k), randomVelocity(rng, cfg.MaxVelocity))
	}
	s.agents.tagged[0] = true

	return s, nil
}

// NewFromPlacement creates a simulation with agents at explicit positions.
// Agent i starts at positions[i] with velocities[i]; velocities may be nil for
// all-zero. cfg.Agents is taken from len(positions).
func NewFromPlacement(cfg Config, rng Rand, positions []Coord, velocities []Vec2, tagged AgentID) (*Simulation, error) {
	cfg.Agents = len(positions)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if velocities != nil && len(velocities) != len(positions) {
		return nil, configErr("velocities", "got %d for %d agents", len(velocities), len(positions))
	}
	if int(tagged) >= len(positions) {
		return nil, configErr("tagged", "agent %d does not exist", tagged)
	}

	s := newEmpty(cfg, rng)
	for i, c := range positions {
		if !s.index.InBounds(c) {
			return nil, configErr("positions", "agent %d at %v is off the grid", i, c)
		}
		if other, ok := s.index.Get(c); ok {
			return nil, configErr("positions", "agents %d and %d share cell %v", other, i, c)
		}
		var v Vec2
		if velocities != nil {
			v = velocities[i].Clamp(cfg.MaxVelocity)
		}
		s.agents.add(s.index, c, v)
	}
	s.agents.tagged[tagged] = true

	return s, nil
}

func newEmpty(cfg Config, rng Rand) *Simulation {
	return &Simulation{
		cfg:        cfg,
		rng:        rng,
		index:      NewSpatialIndex(uint32(cfg.Width), uint32(cfg.Height)),
		agents:     newAgentSet(cfg.Agents),
		lastTagged: NoAgent,
	}
}

func randomVelocity(rng Rand, maxVel int32) Vec2 {
	span := int(maxVel)*2 + 1
	return Vec2{
		X: int32(rng.Intn(span)) - maxVel,
		Y: int32(rng.Intn(span)) - maxVel,
	}
}

// Tick advances the simulation by one step: every agent walks, then the
// tagged agent looks around, steers, and tries to pass the tag on.
// It reports whether the tag changed hands.
//
// Tick panics with a *InvariantViolation if the state no longer has exactly
// one tagged agent.
func (s *Simulation) Tick() bool {
	s.agents.walk(s.index, s.rng, s.cfg.MaxVelocity, s.cfg.TurnChance)
	tagged := s.sightAndTag()
	s.ticks++
	return tagged
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Width returns the number of grid columns.
func (s *Simulation) Width() int {
	return s.cfg.Width
}

// Height returns the number of grid rows.
func (s *Simulation) Height() int {
	return s.cfg.Height
}

// Len returns the number of agents.
func (s *Simulation) Len() int {
	return s.agents.Len()
}

// Position returns the cell an agent occupies.
func (s *Simulation) Position(id AgentID) Coord {
	return s.agents.pos[id]
}

// Velocity returns an agent's current velocity.
func (s *Simulation) Velocity(id AgentID) Vec2 {
	return s.agents.vel[id]
}

// Tagged reports whether an agent currently holds the tag.
func (s *Simulation) Tagged(id AgentID) bool {
	return s.agents.tagged[id]
}

// Visible reports whether an agent was within the tagged agent's view on the
// last tick.
func (s *Simulation) Visible(id AgentID) bool {
	return s.agents.visible[id]
}

// TaggedID returns the agent holding the tag.
func (s *Simulation) TaggedID() AgentID {
	return s.agents.taggedID()
}

// LastTagged returns the agent on cooldown, if any.
func (s *Simulation) LastTagged() (AgentID, bool) {
	return s.lastTagged, s.lastTagged != NoAgent
}

// Occupant returns the agent at c, if any.
func (s *Simulation) Occupant(c Coord) (AgentID, bool) {
	return s.index.Get(c)
}

// Ticks returns the number of completed ticks.
func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

// Transfers returns the number of tag transfers so far.
func (s *Simulation) Transfers() uint64 {
	return s.transfers
}

// VisibleCount returns how many agents were in view on the last tick.
func (s *Simulation) VisibleCount() int {
	n := 0
	for _, v := range s.agents.visible {
		if v {
			n++
		}
	}
	return n
}
