package sim

import "fmt"

// Coord is a cell position on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X uint32
	Y uint32
}

// C is a convenience constructor for Coord.
func C(x, y uint32) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// SqDist returns the squared Euclidean distance to another coordinate.
func (c Coord) SqDist(other Coord) int64 {
	dx := int64(c.X) - int64(other.X)
	dy := int64(c.Y) - int64(other.Y)
	return dx*dx + dy*dy
}

// Vec2 is a signed per-axis velocity or direction.
type Vec2 struct {
	X int32
	Y int32
}

// V is a convenience constructor for Vec2.
func V(x, y int32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Clamp restricts both components to [-limit, limit] independently.
func (v Vec2) Clamp(limit int32) Vec2 {
	return Vec2{X: clampAxis(v.X, limit), Y: clampAxis(v.Y, limit)}
}

func clampAxis(v, limit int32) int32 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// towards returns the vector from one coordinate to another.
func towards(from, to Coord) Vec2 {
	return Vec2{
		X: int32(int64(to.X) - int64(from.X)),
		Y: int32(int64(to.Y) - int64(from.Y)),
	}
}
