package sim

import (
	"fmt"
	"math"
)

// AgentID addresses an agent in the AgentSet. IDs are dense and stable for
// the lifetime of a simulation.
type AgentID uint32

// NoAgent is never a valid agent id.
const NoAgent AgentID = math.MaxUint32

// SpatialIndex is a dense occupancy grid over every cell of the world.
// Cells are stored in row-major order: index = y*width + x.
//
// A slot holds id+1 so the zero value means empty and a fresh index needs no
// initialization pass. Each cell holds at most one occupant.
type SpatialIndex struct {
	width  uint32
	height uint32
	cells  []uint32
}

// NewSpatialIndex creates an index with all cells empty.
func NewSpatialIndex(width, height uint32) *SpatialIndex {
	return &SpatialIndex{
		width:  width,
		height: height,
		cells:  make([]uint32, int(width)*int(height)),
	}
}

// Width returns the number of columns.
func (s *SpatialIndex) Width() uint32 {
	return s.width
}

// Height returns the number of rows.
func (s *SpatialIndex) Height() uint32 {
	return s.height
}

// Len returns the number of cells.
func (s *SpatialIndex) Len() int {
	return len(s.cells)
}

// InBounds reports whether c lies on the grid.
func (s *SpatialIndex) InBounds(c Coord) bool {
	return c.X < s.width && c.Y < s.height
}

// index converts a coordinate to a flat array index, panicking when the
// coordinate is off the grid.
func (s *SpatialIndex) index(c Coord) int {
	if !s.InBounds(c) {
		panic(fmt.Sprintf("sim: coordinate %v outside %dx%d grid", c, s.width, s.height))
	}
	return int(c.Y)*int(s.width) + int(c.X)
}

// coordAt converts a flat index back to a coordinate.
func (s *SpatialIndex) coordAt(i int) Coord {
	return Coord{X: uint32(i % int(s.width)), Y: uint32(i / int(s.width))}
}

// Get returns the occupant of c, if any.
func (s *SpatialIndex) Get(c Coord) (AgentID, bool) {
	v := s.cells[s.index(c)]
	if v == 0 {
		return NoAgent, false
	}
	return AgentID(v - 1), true
}

// Occupied reports whether any agent is at c.
func (s *SpatialIndex) Occupied(c Coord) bool {
	return s.cells[s.index(c)] != 0
}

// Set records id as the occupant of c.
// The caller clears the vacated cell first.
func (s *SpatialIndex) Set(c Coord, id AgentID) {
	if id == NoAgent {
		panic("sim: cannot store NoAgent in spatial index")
	}
	s.cells[s.index(c)] = uint32(id) + 1
}

// Clear empties c.
func (s *SpatialIndex) Clear(c Coord) {
	s.cells[s.index(c)] = 0
}

// Count returns the number of occupied cells.
func (s *SpatialIndex) Count() int {
	n := 0
	for _, v := range s.cells {
		if v != 0 {
			n++
		}
	}
	return n
}
