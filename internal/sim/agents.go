package sim

// Rand is the source of randomness used by a simulation.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// AgentSet stores agent state as parallel slices addressed by AgentID.
type AgentSet struct {
	pos     []Coord
	vel     []Vec2
	tagged  []bool
	visible []bool
}

func newAgentSet(n int) *AgentSet {
	return &AgentSet{
		pos:     make([]Coord, 0, n),
		vel:     make([]Vec2, 0, n),
		tagged:  make([]bool, n),
		visible: make([]bool, n),
	}
}

// Len returns the number of agents.
func (a *AgentSet) Len() int {
	return len(a.pos)
}

// add appends an agent at c and records it in the index.
func (a *AgentSet) add(idx *SpatialIndex, c Coord, v Vec2) AgentID {
	id := AgentID(len(a.pos))
	a.pos = append(a.pos, c)
	a.vel = append(a.vel, v)
	idx.Set(c, id)
	return id
}

// taggedID returns the single tagged agent, panicking when there is not
// exactly one.
func (a *AgentSet) taggedID() AgentID {
	found := NoAgent
	for i, t := range a.tagged {
		if !t {
			continue
		}
		if found != NoAgent {
			panic(&InvariantViolation{Reason: "more than one agent is tagged"})
		}
		found = AgentID(i)
	}
	if found == NoAgent {
		panic(&InvariantViolation{Reason: "no agent is tagged"})
	}
	return found
}

// nudge applies one of four equally likely unit changes to v: -x, +x, -y, +y.
func nudge(v Vec2, choice int) Vec2 {
	switch choice {
	case 0:
		v.X--
	case 1:
		v.X++
	case 2:
		v.Y--
	default:
		v.Y++
	}
	return v
}

// walk moves every agent once in ascending id order.
//
// An agent may first get a random nudge, then heads for pos+vel. A destination
// past the grid edge is clamped to the edge and the velocity on that axis is
// reflected. The move only commits when the destination is empty, so earlier
// agents win conflicts within a tick.
func (a *AgentSet) walk(idx *SpatialIndex, rng Rand, maxVel int32, turnChance float64) {
	maxX := int64(idx.Width()) - 1
	maxY := int64(idx.Height()) - 1

	for i := range a.pos {
		v := a.vel[i]
		if rng.Float64() < turnChance {
			v = nudge(v, rng.Intn(4)).Clamp(maxVel)
		}

		p := a.pos[i]
		nx := int64(p.X) + int64(v.X)
		ny := int64(p.Y) + int64(v.Y)

		if nx > maxX {
			nx = maxX
			v.X = -v.X
		} else if nx < 0 {
			nx = 0
			v.X = -v.X
		}
		if ny > maxY {
			ny = maxY
			v.Y = -v.Y
		} else if ny < 0 {
			ny = 0
			v.Y = -v.Y
		}
		a.vel[i] = v

		// The agent's own cell is occupied, so a zero move falls through here too.
		dst := Coord{X: uint32(nx), Y: uint32(ny)}
		if idx.Occupied(dst) {
			continue
		}
		idx.Clear(p)
		idx.Set(dst, AgentID(i))
		a.pos[i] = dst
	}
}
