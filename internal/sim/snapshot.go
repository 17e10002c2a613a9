package sim

// Snapshot is a deep copy of simulation state for determinism checks and
// off-tick inspection.
type Snapshot struct {
	Tick       uint64
	Transfers  uint64
	Positions  []Coord
	Velocities []Vec2
	Visible    []bool
	Tagged     AgentID
	LastTagged AgentID
}

// Snapshot returns a copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Tick:       s.ticks,
		Transfers:  s.transfers,
		Positions:  append([]Coord(nil), s.agents.pos...),
		Velocities: append([]Vec2(nil), s.agents.vel...),
		Visible:    append([]bool(nil), s.agents.visible...),
		Tagged:     s.agents.taggedID(),
		LastTagged: s.lastTagged,
	}
}

// Equal reports whether two snapshots describe the same state.
func (a Snapshot) Equal(b Snapshot) bool {
	if a.Tick != b.Tick || a.Transfers != b.Transfers ||
		a.Tagged != b.Tagged || a.LastTagged != b.LastTagged ||
		len(a.Positions) != len(b.Positions) {
		return false
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] ||
			a.Velocities[i] != b.Velocities[i] ||
			a.Visible[i] != b.Visible[i] {
			return false
		}
	}
	return true
}
