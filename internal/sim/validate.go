package sim

import "fmt"

// Validate checks the state invariants: exactly one agent is tagged, and the
// spatial index holds exactly one entry per agent, at that agent's position.
// It returns a *InvariantViolation describing the first problem found.
func (s *Simulation) Validate() error {
	tagged := 0
	for _, t := range s.agents.tagged {
		if t {
			tagged++
		}
	}
	if tagged != 1 {
		return &InvariantViolation{Reason: fmt.Sprintf("%d agents tagged, expected 1", tagged)}
	}

	for i, p := range s.agents.pos {
		if !s.index.InBounds(p) {
			return &InvariantViolation{Reason: fmt.Sprintf("agent %d at %v is off the grid", i, p)}
		}
		id, ok := s.index.Get(p)
		if !ok || id != AgentID(i) {
			return &InvariantViolation{Reason: fmt.Sprintf("cell %v does not hold agent %d", p, i)}
		}
	}

	if n := s.index.Count(); n != s.agents.Len() {
		return &InvariantViolation{Reason: fmt.Sprintf("index holds %d occupants for %d agents", n, s.agents.Len())}
	}
	return nil
}
