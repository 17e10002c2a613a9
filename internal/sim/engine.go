package sim

import "math"

// maxSqRadius is the largest radius whose square fits in an int64.
const maxSqRadius = 3037000499

// window returns the inclusive range [lo, hi] of cells within radius of
// center, clipped to [0, size-1].
func window(center, radius, size uint32) (lo, hi uint32) {
	if center > radius {
		lo = center - radius
	}
	hi = size - 1
	if uint64(center)+uint64(radius) < uint64(hi) {
		hi = center + radius
	}
	return lo, hi
}

// sightAndTag runs the pursuit phase for the current tick.
// It reports whether the tag changed hands.
func (s *Simulation) sightAndTag() bool {
	it := s.agents.taggedID()
	clear(s.agents.visible)

	origin := s.agents.pos[it]
	if closest, ok := s.scanView(it, origin); ok {
		s.agents.vel[it] = towards(origin, closest).Clamp(1)
	}

	return s.scanCapture(it, origin)
}

// scanView marks every agent inside the circular view window as visible and
// points it away from the tagged agent. It returns the position of the
// nearest such agent; ties go to the first cell in row-major order.
func (s *Simulation) scanView(it AgentID, origin Coord) (Coord, bool) {
	r := s.cfg.ViewDistance
	r2 := int64(math.MaxInt64)
	if r <= maxSqRadius {
		r2 = int64(r) * int64(r)
	}
	x0, x1 := window(origin.X, r, s.index.Width())
	y0, y1 := window(origin.Y, r, s.index.Height())

	var closest Coord
	best := int64(math.MaxInt64)
	found := false

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c := Coord{X: x, Y: y}
			d := origin.SqDist(c)
			if d >= r2 {
				continue
			}
			id, ok := s.index.Get(c)
			if !ok || id == it {
				continue
			}

			s.agents.visible[id] = true
			s.agents.vel[id] = towards(origin, c).Clamp(1)

			if d < best {
				best = d
				closest = c
				found = true
			}
		}
	}
	return closest, found
}

// scanCapture hands the tag to the first eligible occupant of the square
// capture window, scanning rows top to bottom and each row left to right.
func (s *Simulation) scanCapture(it AgentID, origin Coord) bool {
	r := s.cfg.TagRadius
	x0, x1 := window(origin.X, r, s.index.Width())
	y0, y1 := window(origin.Y, r, s.index.Height())

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			id, ok := s.index.Get(Coord{X: x, Y: y})
			if !ok || id == it {
				continue
			}
			if s.cfg.Cooldown && id == s.lastTagged {
				continue
			}
			s.transfer(it, id)
			return true
		}
	}
	return false
}

// transfer moves the tag from one agent to another and puts the former
// holder on cooldown.
func (s *Simulation) transfer(from, to AgentID) {
	s.agents.tagged[from] = false
	s.agents.tagged[to] = true
	s.lastTagged = from
	s.transfers++
}
